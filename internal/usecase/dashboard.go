package usecase

import (
	"context"
	"strings"
	"time"

	"moto-tours/internal/data/entity"
	"moto-tours/internal/data/filter"
	"moto-tours/internal/data/repository"
	"moto-tours/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const recentToursLimit = 5

// Tab is one dashboard navigation entry.
type Tab struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Href  string `json:"href"`
}

// TabsFor is the single source of dashboard navigation. Unknown roles get the customer tabs.
func TabsFor(role string) []Tab {
	r := entity.NormalizeRole(role)
	base := "/dashboard/" + strings.ToLower(string(r))

	tabs := []Tab{
		{ID: "upcoming", Label: "Upcoming Bookings", Href: base + "/bookings/upcoming"},
		{ID: "past", Label: "Past Bookings", Href: base + "/bookings/past"},
		{ID: "profile", Label: "Profile", Href: base + "/profile"},
	}

	switch r {
	case entity.RoleAdmin:
		tabs = append(tabs,
			Tab{ID: "tours", Label: "Manage Tours", Href: "/dashboard/admin/tours"},
			Tab{ID: "users", Label: "Users", Href: "/dashboard/admin/users"},
			Tab{ID: "bookings", Label: "All Bookings", Href: "/dashboard/admin/bookings"},
			Tab{ID: "motorcycles", Label: "Motorcycles", Href: "/dashboard/admin/motorcycles"},
		)
	case entity.RoleGuide:
		tabs = append(tabs,
			Tab{ID: "my-tours", Label: "My Tours", Href: "/dashboard/guide/tours"},
			Tab{ID: "schedule", Label: "Schedule", Href: "/dashboard/guide/schedule"},
		)
	}

	return tabs
}

type Overview struct {
	Role             string                  `json:"role"`
	Tabs             []Tab                   `json:"tabs"`
	UpcomingBookings int64                   `json:"upcomingBookings"`
	PastBookings     int64                   `json:"pastBookings"`
	RecentTours      []response.TourResponse `json:"recentTours,omitempty"`
}

// DashboardService resolves the role from the stored user, never from the session token,
// so a demotion applies on the next request.
type DashboardService interface {
	Tabs(ctx context.Context, userID uuid.UUID) ([]Tab, error)
	Overview(ctx context.Context, userID uuid.UUID) (*Overview, error)
}

type dashboardService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewDashboardService(repo *repository.Repository, log *zap.Logger) DashboardService {
	return &dashboardService{
		repo: repo,
		now:  time.Now,
		log:  log.With(zap.String("service", "dashboard")),
	}
}

func (s *dashboardService) storedRole(ctx context.Context, userID uuid.UUID) (entity.UserRole, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", newError(ErrUnauthorized, "user %s no longer exists", userID)
	}
	return user.EffectiveRole(), nil
}

func (s *dashboardService) Tabs(ctx context.Context, userID uuid.UUID) ([]Tab, error) {
	r, err := s.storedRole(ctx, userID)
	if err != nil {
		return nil, err
	}
	return TabsFor(string(r)), nil
}

func (s *dashboardService) Overview(ctx context.Context, userID uuid.UUID) (*Overview, error) {
	r, err := s.storedRole(ctx, userID)
	if err != nil {
		return nil, err
	}
	overview := &Overview{Role: string(r), Tabs: TabsFor(string(r))}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		overview.UpcomingBookings, overview.PastBookings, err = s.repo.Booking.CountByUser(gctx, userID, s.now())
		return err
	})

	if r == entity.RoleAdmin || r == entity.RoleGuide {
		g.Go(func() error {
			tours, err := s.repo.Tour.Find(gctx, filter.Predicate[*entity.Tour]{})
			if err != nil {
				return err
			}
			if len(tours) > recentToursLimit {
				tours = tours[:recentToursLimit]
			}
			overview.RecentTours = response.ToursToResponse(tours)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.log.Error("Failed to build dashboard overview", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, err
	}

	return overview, nil
}
