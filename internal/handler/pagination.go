package handler

import "gamecatalog/backend/internal/service"

// PaginationMeta defines the structure for pagination metadata.
type PaginationMeta struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

// PaginatedResponse defines the structure for a paginated list of any type.
type PaginatedResponse[T any] struct {
	Data []T            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// NewPaginatedResponse creates a new PaginatedResponse.
func NewPaginatedResponse[T any](data []T, totalItems int64, page, limit int) PaginatedResponse[T] {
	if limit <= 0 {
		limit = 1
	}
	if data == nil {
		data = []T{}
	}
	return PaginatedResponse[T]{
		Data: data,
		Meta: PaginationMeta{
			TotalItems:  totalItems,
			TotalPages:  service.PageCount(limit, int(totalItems)),
			CurrentPage: page,
			PageSize:    limit,
		},
	}
}

// Paginate cuts one page out of items and converts it for the response.
func Paginate[S, T any](items []S, page, limit int, convert func(S) T) PaginatedResponse[T] {
	visible := service.Paginate(limit, page, items)
	data := make([]T, 0, len(visible))
	for _, item := range visible {
		data = append(data, convert(item))
	}
	return NewPaginatedResponse(data, int64(len(items)), page, limit)
}
