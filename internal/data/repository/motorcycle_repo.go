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
	"go.uber.org/zap"
)

// MotorcycleRepository is served by Postgres or by the in-memory fixture catalog.
type MotorcycleRepository interface {
	// Find returns motorcycles matching pred (over the "m" alias), ordered by make then model.
	Find(ctx context.Context, pred filter.Predicate[*entity.Motorcycle]) ([]*entity.Motorcycle, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Motorcycle, error)
	Create(ctx context.Context, m *entity.Motorcycle) error
}

type motorcycleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMotorcycleRepository(db database.PgxIface, log *zap.Logger) MotorcycleRepository {
	return &motorcycleRepository{
		db:  db,
		log: log.With(zap.String("repository", "motorcycle")),
	}
}

const motorcycleColumns = `m.id, m.make, m.model, m.type, m.engine_size, m.price_per_day,
	m.description, m.image_url, m.created_at, m.updated_at`

func (r *motorcycleRepository) Find(ctx context.Context, pred filter.Predicate[*entity.Motorcycle]) ([]*entity.Motorcycle, error) {
	where, args := pred.SQL(1)
	query := `SELECT ` + motorcycleColumns + ` FROM motorcycles m WHERE ` + where + ` ORDER BY m.make, m.model`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find motorcycles", zap.Error(err), zap.Int("clauses", pred.Len()))
		return nil, fmt.Errorf("failed to find motorcycles: %w", err)
	}
	defer rows.Close()

	motorcycles := []*entity.Motorcycle{}
	for rows.Next() {
		m, err := scanMotorcycle(rows)
		if err != nil {
			r.log.Error("Failed to scan motorcycle row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan motorcycle: %w", err)
		}
		motorcycles = append(motorcycles, m)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return motorcycles, nil
}

func (r *motorcycleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Motorcycle, error) {
	query := `SELECT ` + motorcycleColumns + ` FROM motorcycles m WHERE m.id = $1`

	m, err := scanMotorcycle(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find motorcycle by ID",
			zap.Error(err),
			zap.String("motorcycle_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find motorcycle: %w", err)
	}

	return m, nil
}

func (r *motorcycleRepository) Create(ctx context.Context, m *entity.Motorcycle) error {
	query := `
		INSERT INTO motorcycles (id, make, model, type, engine_size, price_per_day,
		                         description, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		m.ID,
		m.Make,
		m.Model,
		m.Type,
		m.EngineSize,
		m.PricePerDay,
		m.Description,
		m.ImageURL,
		m.CreatedAt,
		m.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create motorcycle",
			zap.Error(err),
			zap.String("name", m.Name()),
		)
		return fmt.Errorf("failed to create motorcycle: %w", err)
	}

	return nil
}

func scanMotorcycle(row pgx.Row) (*entity.Motorcycle, error) {
	var m entity.Motorcycle
	err := row.Scan(
		&m.ID,
		&m.Make,
		&m.Model,
		&m.Type,
		&m.EngineSize,
		&m.PricePerDay,
		&m.Description,
		&m.ImageURL,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
