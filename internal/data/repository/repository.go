package repository

import (
	"moto-tours/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User       UserRepository
	Tour       TourRepository
	Schedule   ScheduleRepository
	Motorcycle MotorcycleRepository
	Booking    BookingRepository
}

// NewRepository wires the Postgres repositories. With useFixtures the motorcycle catalog is
// served from memory instead.
func NewRepository(db database.PgxIface, useFixtures bool, log *zap.Logger) *Repository {
	motorcycles := NewMotorcycleRepository(db, log)
	if useFixtures {
		motorcycles = NewFixtureMotorcycleRepository(FixtureMotorcycles(), log)
	}

	return &Repository{
		User:       NewUserRepository(db, log),
		Tour:       NewTourRepository(db, log),
		Schedule:   NewScheduleRepository(db, log),
		Motorcycle: motorcycles,
		Booking:    NewBookingRepository(db, log),
	}
}
