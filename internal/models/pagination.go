package models

// Pagination describes listing metadata in responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// NewPagination builds listing metadata.
func NewPagination(page, pageSize, total int) *Pagination {
	return &Pagination{Page: page, PageSize: pageSize, TotalCount: total}
}
