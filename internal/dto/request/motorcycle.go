package request

type MotorcycleRequest struct {
	Make        string  `json:"make" validate:"required,max=100"`
	Model       string  `json:"model" validate:"required,max=100"`
	Type        string  `json:"type" validate:"required,oneof=ADVENTURE DUAL_SPORT SPORT TOURING CRUISER STANDARD"`
	EngineSize  int     `json:"engineSize" validate:"required,min=1"`
	PricePerDay float64 `json:"pricePerDay" validate:"gte=0"`
	Description string  `json:"description"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}
