package filter

import (
	"strings"

	"moto-tours/internal/data/entity"
)

// MotorcycleParams are the catalog filters. Price and EngineSize take range labels (see ParseRange).
type MotorcycleParams struct {
	Brand      string `schema:"brand"`
	Category   string `schema:"category"`
	EngineSize string `schema:"engineSize"`
	Price      string `schema:"price"`
	Search     string `schema:"search"`
}

func (p MotorcycleParams) Key() string {
	parts := []string{
		strings.ToLower(strings.TrimSpace(p.Brand)),
		strings.ToLower(strings.TrimSpace(p.Category)),
		strings.ToLower(strings.TrimSpace(p.EngineSize)),
		strings.ToLower(strings.TrimSpace(p.Price)),
		strings.ToLower(strings.TrimSpace(p.Search)),
	}
	return strings.Join(parts, "|")
}

// MotorcyclePredicate builds the catalog predicate over the "m" alias.
func MotorcyclePredicate(p MotorcycleParams) Predicate[*entity.Motorcycle] {
	var pred Predicate[*entity.Motorcycle]

	if !isAll(p.Brand) {
		brand := strings.TrimSpace(p.Brand)
		pred.And(Clause[*entity.Motorcycle]{
			SQL:   "LOWER(m.make) = LOWER(?)",
			Args:  []any{brand},
			Match: func(m *entity.Motorcycle) bool { return strings.EqualFold(m.Make, brand) },
		})
	}

	if !isAll(p.Category) {
		if mt, ok := entity.ParseMotorcycleType(p.Category); ok {
			pred.And(Clause[*entity.Motorcycle]{
				SQL:   "m.type = ?",
				Args:  []any{string(mt)},
				Match: func(m *entity.Motorcycle) bool { return m.Type == mt },
			})
		}
	}

	for _, c := range rangeClauses("m.engine_size", ParseRange(p.EngineSize), true,
		func(m *entity.Motorcycle) float64 { return float64(m.EngineSize) }) {
		pred.And(c)
	}

	for _, c := range rangeClauses("m.price_per_day", ParseRange(p.Price), false,
		func(m *entity.Motorcycle) float64 { return m.PricePerDay }) {
		pred.And(c)
	}

	if search := strings.TrimSpace(p.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		pred.And(Clause[*entity.Motorcycle]{
			SQL: `m.make ILIKE ? OR m.model ILIKE ? OR (m.make || ' ' || m.model) ILIKE ?
				OR REPLACE(m.type::text, '_', ' ') ILIKE ? OR m.description ILIKE ?`,
			Args: []any{pattern, pattern, pattern, pattern, pattern},
			Match: func(m *entity.Motorcycle) bool {
				return containsFold(m.Make, search) ||
					containsFold(m.Model, search) ||
					containsFold(m.Name(), search) ||
					containsFold(m.Type.Label(), search) ||
					containsFold(m.Description, search)
			},
		})
	}

	return pred
}
