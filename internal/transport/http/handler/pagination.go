package handler

import (
	"github.com/ErlanBelekov/vehicle-api/internal/domain"
)

// pageQuery is embedded in every list query; absent values fall back to the
// domain defaults.
type pageQuery struct {
	Page  *int `form:"page" binding:"omitnil,min=1"`
	Limit *int `form:"limit" binding:"omitnil,min=1,max=100"`
}

func (q pageQuery) request() domain.PageRequest {
	var req domain.PageRequest
	if q.Page != nil {
		req.Page = *q.Page
	}
	if q.Limit != nil {
		req.Limit = *q.Limit
	}
	return req.Normalize()
}

type metadataResponse struct {
	Total      int  `json:"total"`
	Limit      int  `json:"limit"`
	Page       int  `json:"page"`
	TotalPages int  `json:"totalPages"`
	NextPage   *int `json:"nextPage"`
	PrevPage   *int `json:"prevPage"`
}

func toMetadata(p domain.Page) metadataResponse {
	return metadataResponse{
		Total:      p.Total,
		Limit:      p.Limit,
		Page:       p.Page,
		TotalPages: p.TotalPages,
		NextPage:   p.NextPage,
		PrevPage:   p.PrevPage,
	}
}
