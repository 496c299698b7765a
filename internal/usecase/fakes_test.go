package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"moto-tours/internal/data/entity"
	"moto-tours/internal/data/filter"
	"moto-tours/internal/data/repository"
	"moto-tours/pkg/cache"

	"github.com/google/uuid"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Upsert(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			existing.Name = user.Name
			existing.Image = user.Image
			user.ID = existing.ID
			user.Role = existing.Role
			user.CreatedAt = existing.CreatedAt
			return nil
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		out = append(out, u)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeUserRepo) CountAll(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role entity.UserRole) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return false, nil
	}
	u.Role = role
	return true, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

type fakeTourRepo struct {
	mu        sync.Mutex
	tours     []*entity.Tour
	findCalls int
	links     map[uuid.UUID][]*entity.TourMotorcycle
	deleteErr error
}

func (r *fakeTourRepo) Find(_ context.Context, pred filter.Predicate[*entity.Tour]) ([]*entity.Tour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	var out []*entity.Tour
	for _, t := range pred.Filter(r.tours) {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeTourRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Tour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tours {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTourRepo) Create(_ context.Context, tour *entity.Tour) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tours = append(r.tours, tour)
	return nil
}

func (r *fakeTourRepo) Update(_ context.Context, tour *entity.Tour) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.tours {
		if t.ID == tour.ID {
			r.tours[i] = tour
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTourRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	for i, t := range r.tours {
		if t.ID == id {
			r.tours = append(r.tours[:i], r.tours[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTourRepo) FindMotorcycles(_ context.Context, tourIDs []uuid.UUID) (map[uuid.UUID][]*entity.TourMotorcycle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[uuid.UUID][]*entity.TourMotorcycle{}
	for _, id := range tourIDs {
		if links := r.links[id]; len(links) > 0 {
			out[id] = links
		}
	}
	return out, nil
}

func (r *fakeTourRepo) AddMotorcycle(_ context.Context, link *entity.TourMotorcycle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.links == nil {
		r.links = map[uuid.UUID][]*entity.TourMotorcycle{}
	}
	r.links[link.TourID] = append(r.links[link.TourID], link)
	return nil
}

func (r *fakeTourRepo) FindAccommodations(context.Context, uuid.UUID) ([]*entity.TourAccommodation, error) {
	return nil, nil
}

func (r *fakeTourRepo) FindItinerary(context.Context, uuid.UUID) ([]*entity.ItineraryDay, error) {
	return nil, nil
}

type fakeScheduleRepo struct {
	mu        sync.Mutex
	schedules []*entity.TourSchedule
}

func (r *fakeScheduleRepo) Create(_ context.Context, s *entity.TourSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schedules = append(r.schedules, s)
	return nil
}

func (r *fakeScheduleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.TourSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.schedules {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeScheduleRepo) FindByTourIDs(_ context.Context, tourIDs []uuid.UUID) (map[uuid.UUID][]*entity.TourSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[uuid.UUID][]*entity.TourSchedule{}
	for _, id := range tourIDs {
		for _, s := range r.schedules {
			if s.TourID == id {
				out[id] = append(out[id], s)
			}
		}
	}
	return out, nil
}

// reserve mirrors the conditional UPDATE in the booking repository.
func (r *fakeScheduleRepo) reserve(id uuid.UUID, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.schedules {
		if s.ID != id {
			continue
		}
		if s.Status != entity.ScheduleStatusOpen || s.AvailableSpots < n {
			return repository.ErrNotEnoughSpots
		}
		s.AvailableSpots -= n
		if s.AvailableSpots == 0 {
			s.Status = entity.ScheduleStatusFull
		}
		return nil
	}
	return repository.ErrNotEnoughSpots
}

type fakeBookingRepo struct {
	mu        sync.Mutex
	created   []*entity.Booking
	createErr error
	schedules *fakeScheduleRepo

	summaries      []*entity.BookingSummary
	lastStatus     *entity.BookingStatus
	lastSort       repository.BookingSort
	summariesCalls int

	upcoming, past int64
}

func (r *fakeBookingRepo) Create(_ context.Context, b *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if r.schedules != nil {
		if err := r.schedules.reserve(b.ScheduleID, b.Participants); err != nil {
			return err
		}
	}
	r.created = append(r.created, b)
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.created {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindSummariesByUser(_ context.Context, _ uuid.UUID, status *entity.BookingStatus, sort repository.BookingSort) ([]*entity.BookingSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summariesCalls++
	r.lastStatus = status
	r.lastSort = sort
	return r.summaries, nil
}

func (r *fakeBookingRepo) FindSummaries(context.Context, int, int) ([]*entity.BookingSummary, error) {
	return r.summaries, nil
}

func (r *fakeBookingRepo) CountAll(context.Context) (int64, error) {
	return int64(len(r.summaries)), nil
}

func (r *fakeBookingRepo) CountByUser(context.Context, uuid.UUID, time.Time) (int64, int64, error) {
	return r.upcoming, r.past, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.created {
		if b.ID == id {
			b.Status = status
			return true, nil
		}
	}
	return false, nil
}

// memCache stores JSON like the Redis cache does.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *memCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *memCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

type fixture struct {
	users     *fakeUserRepo
	tours     *fakeTourRepo
	schedules *fakeScheduleRepo
	bookings  *fakeBookingRepo
	repo      *repository.Repository
}

func newFixture() *fixture {
	f := &fixture{
		users:     newFakeUserRepo(),
		tours:     &fakeTourRepo{},
		schedules: &fakeScheduleRepo{},
		bookings:  &fakeBookingRepo{},
	}
	f.bookings.schedules = f.schedules
	f.repo = &repository.Repository{
		User:     f.users,
		Tour:     f.tours,
		Schedule: f.schedules,
		Booking:  f.bookings,
	}
	return f
}

var testNow = time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)

func newTour(name string, published bool, basePrice float64) *entity.Tour {
	return &entity.Tour{
		Base:            entity.NewBase(testNow),
		Name:            name,
		Description:     name + " description",
		Difficulty:      entity.DifficultyModerate,
		Duration:        7,
		Distance:        1200,
		StartLocation:   "Denver",
		EndLocation:     "Moab",
		MaxParticipants: 10,
		BasePrice:       basePrice,
		Published:       published,
		Highlights:      []string{},
		Inclusions:      []string{},
		Exclusions:      []string{},
		Images:          []string{},
	}
}

func newSchedule(tourID uuid.UUID, price *float64, spots int) *entity.TourSchedule {
	start := testNow.AddDate(0, 2, 0)
	return &entity.TourSchedule{
		Base:           entity.NewBase(testNow),
		TourID:         tourID,
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, 7),
		Price:          price,
		AvailableSpots: spots,
		Status:         entity.ScheduleStatusOpen,
	}
}

func floatPtr(v float64) *float64 { return &v }
