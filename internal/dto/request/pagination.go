package request

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// PaginatedRequest is read from ?page=&per_page= by the admin listings and validated before use.
type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

func NewPaginatedRequest() *PaginatedRequest {
	return &PaginatedRequest{Page: DefaultPage, PerPage: DefaultPerPage}
}

func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

// Limit is PerPage, falling back to the default for requests built without validation.
func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 || p.PerPage > MaxPerPage {
		return DefaultPerPage
	}
	return p.PerPage
}
