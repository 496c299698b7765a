package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"moto-tours/internal/data/entity"
	"moto-tours/internal/data/filter"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fixtureMotorcycleRepository keeps the catalog in memory; filtering goes through the same
// predicate the Postgres repository renders as SQL.
type fixtureMotorcycleRepository struct {
	mu          sync.RWMutex
	motorcycles []*entity.Motorcycle
	log         *zap.Logger
}

func NewFixtureMotorcycleRepository(seed []*entity.Motorcycle, log *zap.Logger) MotorcycleRepository {
	r := &fixtureMotorcycleRepository{
		log: log.With(zap.String("repository", "motorcycle_fixture")),
	}
	for _, m := range seed {
		cp := *m
		r.motorcycles = append(r.motorcycles, &cp)
	}
	return r
}

func (r *fixtureMotorcycleRepository) Find(_ context.Context, pred filter.Predicate[*entity.Motorcycle]) ([]*entity.Motorcycle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*entity.Motorcycle{}
	for _, m := range pred.Filter(r.motorcycles) {
		cp := *m
		out = append(out, &cp)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !strings.EqualFold(out[i].Make, out[j].Make) {
			return strings.ToLower(out[i].Make) < strings.ToLower(out[j].Make)
		}
		return strings.ToLower(out[i].Model) < strings.ToLower(out[j].Model)
	})

	r.log.Debug("Fixture motorcycles filtered", zap.Int("count", len(out)))
	return out, nil
}

func (r *fixtureMotorcycleRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Motorcycle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.motorcycles {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fixtureMotorcycleRepository) Create(_ context.Context, m *entity.Motorcycle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *m
	r.motorcycles = append(r.motorcycles, &cp)
	return nil
}

func strPtr(s string) *string { return &s }

// FixtureMotorcycles is the demo catalog served when the database is not wired for motorcycles.
func FixtureMotorcycles() []*entity.Motorcycle {
	created := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	mk := func(id, brand, model string, t entity.MotorcycleType, cc int, price float64, image, desc string) *entity.Motorcycle {
		return &entity.Motorcycle{
			Base:        entity.Base{ID: uuid.MustParse(id), CreatedAt: created, UpdatedAt: created},
			Make:        brand,
			Model:       model,
			Type:        t,
			EngineSize:  cc,
			PricePerDay: price,
			ImageURL:    strPtr(image),
			Description: desc,
		}
	}

	return []*entity.Motorcycle{
		mk("6f1c2a4e-0b1d-4c53-9a36-1d2f4e5a6b01", "BMW", "R 1250 GS", entity.MotorcycleAdventure, 1254, 180,
			"/images/motorcycles/bmw-r1250gs.jpg", "The ultimate adventure motorcycle for long-distance touring."),
		mk("6f1c2a4e-0b1d-4c53-9a36-1d2f4e5a6b02", "Honda", "Africa Twin", entity.MotorcycleAdventure, 1084, 160,
			"/images/motorcycles/honda-africa-twin.jpg",
			"Built for true adventure, with a powerful engine and comfortable riding position."),
		mk("6f1c2a4e-0b1d-4c53-9a36-1d2f4e5a6b03", "Honda", "CRF300L", entity.MotorcycleDualSport, 286, 75,
			"/images/motorcycles/honda-crf300l.jpg", "Light dual sport for forest tracks and gravel roads."),
		mk("6f1c2a4e-0b1d-4c53-9a36-1d2f4e5a6b04", "Triumph", "Tiger 900 Rally", entity.MotorcycleAdventure, 888, 140,
			"/images/motorcycles/triumph-tiger-900.jpg", "Triple-cylinder adventure bike with long-travel suspension."),
		mk("6f1c2a4e-0b1d-4c53-9a36-1d2f4e5a6b05", "Yamaha", "Tracer 9 GT", entity.MotorcycleTouring, 890, 130,
			"/images/motorcycles/yamaha-tracer-9.jpg", "Sport touring with panniers and electronic suspension."),
		mk("6f1c2a4e-0b1d-4c53-9a36-1d2f4e5a6b06", "Harley-Davidson", "Road Glide", entity.MotorcycleCruiser, 1923, 210,
			"/images/motorcycles/harley-road-glide.jpg", "Big-twin cruiser for relaxed highway miles."),
		mk("6f1c2a4e-0b1d-4c53-9a36-1d2f4e5a6b07", "Royal Enfield", "Himalayan", entity.MotorcycleAdventure, 411, 65,
			"/images/motorcycles/royal-enfield-himalayan.jpg", "Simple, rugged and easy to fix on mountain roads."),
		mk("6f1c2a4e-0b1d-4c53-9a36-1d2f4e5a6b08", "Kawasaki", "Z900", entity.MotorcycleStandard, 948, 110,
			"/images/motorcycles/kawasaki-z900.jpg", "Naked standard with a smooth inline four."),
	}
}
