package domain

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type PageRequest struct {
	Page  int
	Limit int
}

// Normalize fills zero values with defaults.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset saturates at math.MaxInt instead of wrapping for huge page numbers.
func (p PageRequest) Offset() int {
	p = p.Normalize()
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Page is the pagination envelope returned next to every list.
// Total is the filtered count before pagination.
type Page struct {
	Total      int
	Limit      int
	Page       int
	TotalPages int
	NextPage   *int
	PrevPage   *int
}

func NewPage(req PageRequest, total int) Page {
	req = req.Normalize()

	p := Page{
		Total:      total,
		Limit:      req.Limit,
		Page:       req.Page,
		TotalPages: (total + req.Limit - 1) / req.Limit,
	}
	// page*limit < total, without the multiplication.
	if req.Page < p.TotalPages {
		next := req.Page + 1
		p.NextPage = &next
	}
	if req.Page > 1 {
		prev := req.Page - 1
		p.PrevPage = &prev
	}
	return p
}
