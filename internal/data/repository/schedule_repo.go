package repository

import (
	"context"
	"errors"
	"fmt"

	"moto-tours/internal/data/entity"
	"moto-tours/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *entity.TourSchedule) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TourSchedule, error)
	// FindByTourIDs groups schedules by tour, each group ordered by start date.
	FindByTourIDs(ctx context.Context, tourIDs []uuid.UUID) (map[uuid.UUID][]*entity.TourSchedule, error)
}

type scheduleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScheduleRepository(db database.PgxIface, log *zap.Logger) ScheduleRepository {
	return &scheduleRepository{
		db:  db,
		log: log.With(zap.String("repository", "schedule")),
	}
}

const scheduleColumns = `id, tour_id, start_date, end_date, price, available_spots, status, created_at, updated_at`

func (r *scheduleRepository) Create(ctx context.Context, schedule *entity.TourSchedule) error {
	query := `
		INSERT INTO tour_schedules (` + scheduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		schedule.ID,
		schedule.TourID,
		schedule.StartDate,
		schedule.EndDate,
		schedule.Price,
		schedule.AvailableSpots,
		schedule.Status,
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create schedule",
			zap.Error(err),
			zap.String("tour_id", schedule.TourID.String()),
			zap.Time("start_date", schedule.StartDate),
		)
		return fmt.Errorf("create schedule for tour %s: %w", schedule.TourID.String(), err)
	}

	return nil
}

func (r *scheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TourSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM tour_schedules WHERE id = $1`

	schedule, err := scanSchedule(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find schedule by ID",
			zap.Error(err),
			zap.String("schedule_id", id.String()),
		)
		return nil, fmt.Errorf("find schedule %s: %w", id.String(), err)
	}

	return schedule, nil
}

func (r *scheduleRepository) FindByTourIDs(ctx context.Context, tourIDs []uuid.UUID) (map[uuid.UUID][]*entity.TourSchedule, error) {
	result := make(map[uuid.UUID][]*entity.TourSchedule, len(tourIDs))
	if len(tourIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT ` + scheduleColumns + `
		FROM tour_schedules
		WHERE tour_id = ANY($1)
		ORDER BY start_date ASC
	`

	rows, err := r.db.Query(ctx, query, tourIDs)
	if err != nil {
		r.log.Error("Failed to find schedules", zap.Error(err), zap.Int("tours", len(tourIDs)))
		return nil, fmt.Errorf("find schedules: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			r.log.Error("Failed to scan schedule row", zap.Error(err))
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		result[schedule.TourID] = append(result[schedule.TourID], schedule)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate schedule rows: %w", err)
	}

	return result, nil
}

func scanSchedule(row pgx.Row) (*entity.TourSchedule, error) {
	var s entity.TourSchedule
	err := row.Scan(
		&s.ID,
		&s.TourID,
		&s.StartDate,
		&s.EndDate,
		&s.Price,
		&s.AvailableSpots,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
