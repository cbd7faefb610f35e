package domain

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

type PageRequest struct {
	Page    int
	PerPage int
}

// Normalize clamps the request into a usable window. Unlimited keeps large
// page sizes for listings that are allowed to return everything at once.
func (p PageRequest) Normalize(unlimited bool) PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage && !unlimited {
		p.PerPage = MaxPerPage
	}

	return p
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(p PageRequest, total int64) Pagination {
	pages := 0
	if p.PerPage > 0 {
		pages = int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	}

	return Pagination{
		Page:       p.Page,
		Limit:      p.PerPage,
		Total:      total,
		TotalPages: pages,
	}
}
