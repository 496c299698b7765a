package repository

import (
	"context"
	"errors"
	"fmt"

	"moto-tours/internal/data/entity"
	"moto-tours/internal/data/filter"
	"moto-tours/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type TourRepository interface {
	// Find returns the tours matching pred (over the "t" alias), newest first.
	Find(ctx context.Context, pred filter.Predicate[*entity.Tour]) ([]*entity.Tour, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tour, error)
	Create(ctx context.Context, tour *entity.Tour) error
	Update(ctx context.Context, tour *entity.Tour) (bool, error)
	// Delete removes the tour and its motorcycle links, accommodations and schedules in one
	// transaction. It reports false, with nothing removed, when the tour does not exist, and
	// ErrTourHasBookings when bookings still point at it.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	FindMotorcycles(ctx context.Context, tourIDs []uuid.UUID) (map[uuid.UUID][]*entity.TourMotorcycle, error)
	AddMotorcycle(ctx context.Context, link *entity.TourMotorcycle) error
	FindAccommodations(ctx context.Context, tourID uuid.UUID) ([]*entity.TourAccommodation, error)
	FindItinerary(ctx context.Context, tourID uuid.UUID) ([]*entity.ItineraryDay, error)
}

type tourRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTourRepository(db database.PgxIface, log *zap.Logger) TourRepository {
	return &tourRepository{
		db:  db,
		log: log.With(zap.String("repository", "tour")),
	}
}

const tourColumns = `t.id, t.name, t.description, t.difficulty, t.duration, t.distance,
	t.start_location, t.end_location, t.max_participants, t.base_price, t.published,
	t.highlights, t.inclusions, t.exclusions, t.images, t.created_at, t.updated_at`

// errTourMissing aborts the delete transaction when the tour row is absent.
var errTourMissing = errors.New("tour missing")

// ErrTourHasBookings means bookings still reference the tour or one of its schedules.
var ErrTourHasBookings = errors.New("tour has bookings")

const foreignKeyViolation = "23503"

func (r *tourRepository) Find(ctx context.Context, pred filter.Predicate[*entity.Tour]) ([]*entity.Tour, error) {
	where, args := pred.SQL(1)
	query := `SELECT ` + tourColumns + ` FROM tours t WHERE ` + where + ` ORDER BY t.created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find tours",
			zap.Error(err),
			zap.Int("clauses", pred.Len()),
		)
		return nil, fmt.Errorf("failed to find tours: %w", err)
	}
	defer rows.Close()

	tours := []*entity.Tour{}
	for rows.Next() {
		tour, err := scanTour(rows)
		if err != nil {
			r.log.Error("Failed to scan tour row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan tour: %w", err)
		}
		tours = append(tours, tour)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	r.log.Debug("Tours found", zap.Int("count", len(tours)))

	return tours, nil
}

func (r *tourRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours t WHERE t.id = $1`

	tour, err := scanTour(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tour by ID",
			zap.Error(err),
			zap.String("tour_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find tour: %w", err)
	}

	return tour, nil
}

func (r *tourRepository) Create(ctx context.Context, tour *entity.Tour) error {
	query := `
		INSERT INTO tours (id, name, description, difficulty, duration, distance,
		                   start_location, end_location, max_participants, base_price, published,
		                   highlights, inclusions, exclusions, images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.Exec(ctx, query,
		tour.ID,
		tour.Name,
		tour.Description,
		tour.Difficulty,
		tour.Duration,
		tour.Distance,
		tour.StartLocation,
		tour.EndLocation,
		tour.MaxParticipants,
		tour.BasePrice,
		tour.Published,
		nonNil(tour.Highlights),
		nonNil(tour.Inclusions),
		nonNil(tour.Exclusions),
		nonNil(tour.Images),
		tour.CreatedAt,
		tour.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create tour",
			zap.Error(err),
			zap.String("name", tour.Name),
		)
		return fmt.Errorf("failed to create tour: %w", err)
	}

	return nil
}

func (r *tourRepository) Update(ctx context.Context, tour *entity.Tour) (bool, error) {
	query := `
		UPDATE tours
		SET name = $2, description = $3, difficulty = $4, duration = $5, distance = $6,
		    start_location = $7, end_location = $8, max_participants = $9, base_price = $10,
		    published = $11, highlights = $12, inclusions = $13, exclusions = $14, images = $15,
		    updated_at = $16
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		tour.ID,
		tour.Name,
		tour.Description,
		tour.Difficulty,
		tour.Duration,
		tour.Distance,
		tour.StartLocation,
		tour.EndLocation,
		tour.MaxParticipants,
		tour.BasePrice,
		tour.Published,
		nonNil(tour.Highlights),
		nonNil(tour.Inclusions),
		nonNil(tour.Exclusions),
		nonNil(tour.Images),
		tour.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update tour",
			zap.Error(err),
			zap.String("tour_id", tour.ID.String()),
		)
		return false, fmt.Errorf("failed to update tour: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *tourRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var removed [3]int64

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		for i, stmt := range []string{
			`DELETE FROM tour_motorcycles WHERE tour_id = $1`,
			`DELETE FROM tour_accommodations WHERE tour_id = $1`,
			`DELETE FROM tour_schedules WHERE tour_id = $1`,
		} {
			tag, err := tx.Exec(ctx, stmt, id)
			if err != nil {
				return err
			}
			removed[i] = tag.RowsAffected()
		}

		tag, err := tx.Exec(ctx, `DELETE FROM tours WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return errTourMissing
		}
		return nil
	})

	if errors.Is(err, errTourMissing) {
		return false, nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		r.log.Warn("Tour delete blocked by bookings",
			zap.String("tour_id", id.String()),
			zap.String("constraint", pgErr.ConstraintName),
		)
		return false, ErrTourHasBookings
	}
	if err != nil {
		r.log.Error("Failed to delete tour",
			zap.Error(err),
			zap.String("tour_id", id.String()),
		)
		return false, fmt.Errorf("failed to delete tour: %w", err)
	}

	r.log.Info("Tour deleted",
		zap.String("tour_id", id.String()),
		zap.Int64("motorcycles", removed[0]),
		zap.Int64("accommodations", removed[1]),
		zap.Int64("schedules", removed[2]),
	)
	return true, nil
}

func (r *tourRepository) FindMotorcycles(ctx context.Context, tourIDs []uuid.UUID) (map[uuid.UUID][]*entity.TourMotorcycle, error) {
	result := make(map[uuid.UUID][]*entity.TourMotorcycle, len(tourIDs))
	if len(tourIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT tm.id, tm.tour_id, tm.motorcycle_id, tm.surcharge, tm.created_at,
		       ` + motorcycleColumns + `
		FROM tour_motorcycles tm
		JOIN motorcycles m ON m.id = tm.motorcycle_id
		WHERE tm.tour_id = ANY($1)
		ORDER BY m.make, m.model
	`

	rows, err := r.db.Query(ctx, query, tourIDs)
	if err != nil {
		r.log.Error("Failed to find tour motorcycles", zap.Error(err))
		return nil, fmt.Errorf("failed to find tour motorcycles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var link entity.TourMotorcycle
		var m entity.Motorcycle
		err := rows.Scan(
			&link.ID, &link.TourID, &link.MotorcycleID, &link.Surcharge, &link.CreatedAt,
			&m.ID, &m.Make, &m.Model, &m.Type, &m.EngineSize, &m.PricePerDay,
			&m.Description, &m.ImageURL, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan tour motorcycle row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan tour motorcycle: %w", err)
		}
		link.Motorcycle = &m
		result[link.TourID] = append(result[link.TourID], &link)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return result, nil
}

func (r *tourRepository) AddMotorcycle(ctx context.Context, link *entity.TourMotorcycle) error {
	query := `
		INSERT INTO tour_motorcycles (id, tour_id, motorcycle_id, surcharge, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tour_id, motorcycle_id) DO UPDATE SET surcharge = EXCLUDED.surcharge
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		link.ID,
		link.TourID,
		link.MotorcycleID,
		link.Surcharge,
		link.CreatedAt,
	).Scan(&link.ID, &link.CreatedAt)

	if err != nil {
		r.log.Error("Failed to link motorcycle to tour",
			zap.Error(err),
			zap.String("tour_id", link.TourID.String()),
			zap.String("motorcycle_id", link.MotorcycleID.String()),
		)
		return fmt.Errorf("failed to add tour motorcycle: %w", err)
	}

	return nil
}

func (r *tourRepository) FindAccommodations(ctx context.Context, tourID uuid.UUID) ([]*entity.TourAccommodation, error) {
	query := `
		SELECT id, tour_id, name, location, nights, created_at
		FROM tour_accommodations
		WHERE tour_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, tourID)
	if err != nil {
		r.log.Error("Failed to find accommodations", zap.Error(err), zap.String("tour_id", tourID.String()))
		return nil, fmt.Errorf("failed to find accommodations: %w", err)
	}
	defer rows.Close()

	accommodations := []*entity.TourAccommodation{}
	for rows.Next() {
		var a entity.TourAccommodation
		if err := rows.Scan(&a.ID, &a.TourID, &a.Name, &a.Location, &a.Nights, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan accommodation: %w", err)
		}
		accommodations = append(accommodations, &a)
	}

	return accommodations, rows.Err()
}

func (r *tourRepository) FindItinerary(ctx context.Context, tourID uuid.UUID) ([]*entity.ItineraryDay, error) {
	query := `
		SELECT id, tour_id, day, title, description, created_at
		FROM tour_itinerary_days
		WHERE tour_id = $1
		ORDER BY day
	`

	rows, err := r.db.Query(ctx, query, tourID)
	if err != nil {
		r.log.Error("Failed to find itinerary", zap.Error(err), zap.String("tour_id", tourID.String()))
		return nil, fmt.Errorf("failed to find itinerary: %w", err)
	}
	defer rows.Close()

	days := []*entity.ItineraryDay{}
	for rows.Next() {
		var d entity.ItineraryDay
		if err := rows.Scan(&d.ID, &d.TourID, &d.Day, &d.Title, &d.Description, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan itinerary day: %w", err)
		}
		days = append(days, &d)
	}

	return days, rows.Err()
}

func scanTour(row pgx.Row) (*entity.Tour, error) {
	var t entity.Tour
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.Difficulty,
		&t.Duration,
		&t.Distance,
		&t.StartLocation,
		&t.EndLocation,
		&t.MaxParticipants,
		&t.BasePrice,
		&t.Published,
		&t.Highlights,
		&t.Inclusions,
		&t.Exclusions,
		&t.Images,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nonNil keeps text[] columns NOT NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
