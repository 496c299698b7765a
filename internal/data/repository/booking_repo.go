package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"moto-tours/internal/data/entity"
	"moto-tours/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrNotEnoughSpots means the schedule is not open or has fewer spots than requested.
var ErrNotEnoughSpots = errors.New("not enough spots")

type BookingSort string

const (
	SortDateDesc  BookingSort = "date-desc"
	SortDateAsc   BookingSort = "date-asc"
	SortPriceDesc BookingSort = "price-desc"
	SortPriceAsc  BookingSort = "price-asc"
)

var bookingOrder = map[BookingSort]string{
	SortDateDesc:  "s.start_date DESC, b.created_at DESC",
	SortDateAsc:   "s.start_date ASC, b.created_at ASC",
	SortPriceDesc: "b.total_price DESC, b.created_at DESC",
	SortPriceAsc:  "b.total_price ASC, b.created_at DESC",
}

// ParseBookingSort falls back to date-desc for empty or unknown values.
func ParseBookingSort(s string) BookingSort {
	sort := BookingSort(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := bookingOrder[sort]; ok {
		return sort
	}
	return SortDateDesc
}

type BookingRepository interface {
	// Create reserves the participants on the schedule, then stores the booking and its riders,
	// all in one transaction. It returns ErrNotEnoughSpots when the reservation is refused.
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	// FindSummariesByUser lists a user's bookings; a nil status means every status.
	FindSummariesByUser(ctx context.Context, userID uuid.UUID, status *entity.BookingStatus, sort BookingSort) ([]*entity.BookingSummary, error)
	FindSummaries(ctx context.Context, limit, offset int) ([]*entity.BookingSummary, error)
	CountAll(ctx context.Context) (int64, error)
	// CountByUser splits a user's bookings by whether the schedule starts after now.
	CountByUser(ctx context.Context, userID uuid.UUID, now time.Time) (upcoming, past int64, err error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const (
	reserveSpotsQuery = `
		UPDATE tour_schedules
		SET available_spots = available_spots - $3,
		    status = CASE WHEN available_spots - $3 = 0 THEN 'FULL' ELSE status END,
		    updated_at = NOW()
		WHERE id = $1 AND tour_id = $2 AND status = 'OPEN' AND available_spots >= $3
	`
	insertBookingQuery = `
		INSERT INTO bookings (id, reference, user_id, tour_id, schedule_id, participants,
		                      total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	insertRiderQuery = `
		INSERT INTO booking_riders (id, booking_id, position, first_name, last_name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	summarySelect = `
		SELECT b.id, b.reference, t.name, t.start_location, s.start_date, s.end_date,
		       b.status, b.participants, b.total_price, t.images, b.user_id, b.created_at
		FROM bookings b
		JOIN tours t ON t.id = b.tour_id
		JOIN tour_schedules s ON s.id = b.schedule_id
	`
)

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, reserveSpotsQuery, booking.ScheduleID, booking.TourID, booking.Participants)
		if err != nil {
			return fmt.Errorf("reserve spots: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotEnoughSpots
		}

		_, err = tx.Exec(ctx, insertBookingQuery,
			booking.ID,
			booking.Reference,
			booking.UserID,
			booking.TourID,
			booking.ScheduleID,
			booking.Participants,
			booking.TotalPrice,
			booking.Status,
			booking.CreatedAt,
			booking.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		for _, rider := range booking.Riders {
			rider.BookingID = booking.ID
			_, err := tx.Exec(ctx, insertRiderQuery,
				rider.ID,
				rider.BookingID,
				rider.Position,
				rider.FirstName,
				rider.LastName,
				rider.Email,
				rider.Phone,
				rider.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("insert rider %d: %w", rider.Position, err)
			}
		}
		return nil
	})

	if errors.Is(err, ErrNotEnoughSpots) {
		r.log.Info("Booking refused, not enough spots",
			zap.String("schedule_id", booking.ScheduleID.String()),
			zap.Int("participants", booking.Participants),
		)
		return err
	}
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", booking.Reference),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("failed to create booking: %w", err)
	}

	r.log.Info("Booking created",
		zap.String("reference", booking.Reference),
		zap.Int("riders", len(booking.Riders)),
	)
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, reference, user_id, tour_id, schedule_id, participants,
		       total_price, status, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var b entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.Reference,
		&b.UserID,
		&b.TourID,
		&b.ScheduleID,
		&b.Participants,
		&b.TotalPrice,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	riders, err := r.db.Query(ctx, `
		SELECT id, booking_id, position, first_name, last_name, email, phone, created_at
		FROM booking_riders
		WHERE booking_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		r.log.Error("Failed to find booking riders", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("failed to find booking riders: %w", err)
	}
	defer riders.Close()

	for riders.Next() {
		var rider entity.BookingRider
		err := riders.Scan(&rider.ID, &rider.BookingID, &rider.Position, &rider.FirstName,
			&rider.LastName, &rider.Email, &rider.Phone, &rider.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rider: %w", err)
		}
		b.Riders = append(b.Riders, &rider)
	}

	return &b, riders.Err()
}

func (r *bookingRepository) FindSummariesByUser(ctx context.Context, userID uuid.UUID, status *entity.BookingStatus, sort BookingSort) ([]*entity.BookingSummary, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(summarySelect)
	queryBuilder.WriteString(" WHERE b.user_id = $1")

	args := []interface{}{userID}
	argCount := 2

	if status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.status = $%d", argCount))
		args = append(args, *status)
	}

	order, ok := bookingOrder[sort]
	if !ok {
		order = bookingOrder[SortDateDesc]
	}
	queryBuilder.WriteString(" ORDER BY " + order)

	return r.querySummaries(ctx, queryBuilder.String(), args...)
}

func (r *bookingRepository) FindSummaries(ctx context.Context, limit, offset int) ([]*entity.BookingSummary, error) {
	query := summarySelect + ` ORDER BY b.created_at DESC LIMIT $1 OFFSET $2`
	return r.querySummaries(ctx, query, limit, offset)
}

func (r *bookingRepository) querySummaries(ctx context.Context, query string, args ...interface{}) ([]*entity.BookingSummary, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bookings", zap.Error(err))
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer rows.Close()

	summaries := []*entity.BookingSummary{}
	for rows.Next() {
		var s entity.BookingSummary
		err := rows.Scan(
			&s.ID,
			&s.Reference,
			&s.TourName,
			&s.Location,
			&s.CheckIn,
			&s.CheckOut,
			&s.Status,
			&s.Participants,
			&s.TotalPrice,
			&s.Images,
			&s.UserID,
			&s.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		summaries = append(summaries, &s)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return summaries, nil
}

func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&total); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return total, nil
}

func (r *bookingRepository) CountByUser(ctx context.Context, userID uuid.UUID, now time.Time) (int64, int64, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE s.start_date >= $2),
		       COUNT(*) FILTER (WHERE s.start_date < $2)
		FROM bookings b
		JOIN tour_schedules s ON s.id = b.schedule_id
		WHERE b.user_id = $1
	`

	var upcoming, past int64
	if err := r.db.QueryRow(ctx, query, userID, now).Scan(&upcoming, &past); err != nil {
		r.log.Error("Failed to count user bookings", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, 0, fmt.Errorf("failed to count user bookings: %w", err)
	}
	return upcoming, past, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (bool, error) {
	result, err := r.db.Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return false, fmt.Errorf("failed to update booking status: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
