package request

import "customer-reviews/pkg/utils"

// PaginatedRequest is page/per_page from the query string. per_page outside
// 1..100 is clamped by Limit; page is validated.
type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1,max=1000000"`
	PerPage int `json:"per_page" validate:"gte=0"`
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.Limit())
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return 10
	}
	if p.PerPage > 100 {
		return 100
	}
	return p.PerPage
}
