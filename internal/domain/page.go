package domain

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest is a 1-based page selector. Zero values fall back to defaults.
type PageRequest struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

func (p PageRequest) Limit() uint {
	return uint(p.Size)
}

func (p PageRequest) Offset() uint {
	return uint((p.Page - 1) * p.Size)
}

// Page is one page of results plus paging metadata.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

func NewPage[T any](items []T, req PageRequest, total int64) *Page[T] {
	totalPages := int(total) / req.Size
	if int(total)%req.Size != 0 {
		totalPages++
	}
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:      items,
		Page:       req.Page,
		Size:       req.Size,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
