package response

import "moto-tours/internal/data/entity"

type MotorcycleResponse struct {
	ID          string  `json:"id"`
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	TypeLabel   string  `json:"typeLabel"`
	EngineSize  int     `json:"engineSize"`
	PricePerDay float64 `json:"pricePerDay"`
	Description string  `json:"description"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

func MotorcycleToResponse(m *entity.Motorcycle) MotorcycleResponse {
	return MotorcycleResponse{
		ID:          m.ID.String(),
		Make:        m.Make,
		Model:       m.Model,
		Name:        m.Name(),
		Type:        string(m.Type),
		TypeLabel:   m.Type.Label(),
		EngineSize:  m.EngineSize,
		PricePerDay: m.PricePerDay,
		Description: m.Description,
		ImageURL:    m.ImageURL,
	}
}

func MotorcyclesToResponse(ms []*entity.Motorcycle) []MotorcycleResponse {
	out := make([]MotorcycleResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, MotorcycleToResponse(m))
	}
	return out
}
