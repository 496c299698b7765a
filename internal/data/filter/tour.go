package filter

import (
	"strconv"
	"strings"
	"time"

	"moto-tours/internal/data/entity"
)

// TourParams are the public tour listing filters as they arrive in the query string.
type TourParams struct {
	Search     string `schema:"search"`
	Difficulty string `schema:"difficulty"`
	Duration   string `schema:"duration"`
	BikeType   string `schema:"bikeType"`
	Month      string `schema:"month"`
}

// Key is a stable form of the params, used for cache keys. It carries now's year because a
// month filter resolves to a different interval once the year rolls over.
func (p TourParams) Key(now time.Time) string {
	parts := []string{
		strconv.Itoa(now.Year()),
		strings.ToLower(strings.TrimSpace(p.Search)),
		strings.ToLower(strings.TrimSpace(p.Difficulty)),
		strings.ToLower(strings.TrimSpace(p.Duration)),
		strings.ToLower(strings.TrimSpace(p.BikeType)),
		strings.ToLower(strings.TrimSpace(p.Month)),
	}
	return strings.Join(parts, "|")
}

// TourPredicate builds the public listing predicate. Columns are qualified with the "t" alias.
// Month filters resolve against now's year and location. Unreadable values add nothing.
func TourPredicate(p TourParams, now time.Time) Predicate[*entity.Tour] {
	var pred Predicate[*entity.Tour]

	pred.And(Clause[*entity.Tour]{
		SQL:   "t.published = TRUE",
		Match: func(t *entity.Tour) bool { return t.Published },
	})

	if search := strings.TrimSpace(p.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		pred.And(Clause[*entity.Tour]{
			SQL:  "t.name ILIKE ? OR t.description ILIKE ?",
			Args: []any{pattern, pattern},
			Match: func(t *entity.Tour) bool {
				return containsFold(t.Name, search) || containsFold(t.Description, search)
			},
		})
	}

	if !isAll(p.Difficulty) {
		if d, ok := entity.ParseDifficulty(p.Difficulty); ok {
			pred.And(Clause[*entity.Tour]{
				SQL:   "t.difficulty = ?",
				Args:  []any{string(d)},
				Match: func(t *entity.Tour) bool { return t.Difficulty == d },
			})
		}
	}

	for _, c := range rangeClauses("t.duration", ParseRange(p.Duration), true,
		func(t *entity.Tour) float64 { return float64(t.Duration) }) {
		pred.And(c)
	}

	if !isAll(p.BikeType) {
		if bt, ok := entity.ParseMotorcycleType(p.BikeType); ok {
			pred.And(Clause[*entity.Tour]{
				SQL: `EXISTS (SELECT 1 FROM tour_motorcycles tm
					JOIN motorcycles m ON m.id = tm.motorcycle_id
					WHERE tm.tour_id = t.id AND m.type = ?)`,
				Args: []any{string(bt)},
				Match: func(t *entity.Tour) bool {
					for _, tm := range t.Motorcycles {
						if tm.Motorcycle != nil && tm.Motorcycle.Type == bt {
							return true
						}
					}
					return false
				},
			})
		}
	}

	if start, end, ok := MonthInterval(p.Month, now); ok {
		pred.And(Clause[*entity.Tour]{
			SQL: `EXISTS (SELECT 1 FROM tour_schedules s
				WHERE s.tour_id = t.id AND s.start_date >= ? AND s.start_date < ?)`,
			Args: []any{start, end},
			Match: func(t *entity.Tour) bool {
				for _, s := range t.Schedules {
					if !s.StartDate.Before(start) && s.StartDate.Before(end) {
						return true
					}
				}
				return false
			},
		})
	}

	return pred
}

// MonthInterval resolves an English month name (full or three-letter, any case) to
// [first of month, first of next month) in now's year and location.
func MonthInterval(name string, now time.Time) (time.Time, time.Time, bool) {
	if isAll(name) {
		return time.Time{}, time.Time{}, false
	}

	name = strings.ToLower(strings.TrimSpace(name))
	for m := time.January; m <= time.December; m++ {
		full := strings.ToLower(m.String())
		if name == full || name == full[:3] {
			start := time.Date(now.Year(), m, 1, 0, 0, 0, 0, now.Location())
			return start, start.AddDate(0, 1, 0), true
		}
	}
	return time.Time{}, time.Time{}, false
}
