package service

import "itemshare-api/internal/apperr"

const (
	// DefaultPageSize applies when list endpoints omit size.
	DefaultPageSize = 20
	// MaxPageSize bounds a single page.
	MaxPageSize = 100
)

// pageBounds validates from/size and resolves them to row bounds. The
// offset snaps to a whole page: page index = from / size.
func pageBounds(from, size int) (limit, offset int, err error) {
	if from < 0 {
		return 0, 0, apperr.InvalidInputf("from must not be negative, got %d", from)
	}
	if size < 1 || size > MaxPageSize {
		return 0, 0, apperr.InvalidInputf("size must be between 1 and %d, got %d", MaxPageSize, size)
	}
	return size, (from / size) * size, nil
}
