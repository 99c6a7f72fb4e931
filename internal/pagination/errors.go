package pagination

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPageSize marks a page size outside [1, max] (maps to HTTP 400).
	ErrInvalidPageSize = errors.New("invalid page size")
	// ErrPageExpired marks an unknown or expired page link (maps to HTTP 404).
	ErrPageExpired = errors.New("page expired")
	// ErrConflictingParams marks a page link combined with name or size filters (maps to HTTP 400).
	ErrConflictingParams = errors.New("pageLink cannot be combined with name or pageSize")
)

// InvalidPageSizeError carries the rejected size and the configured maximum.
type InvalidPageSizeError struct {
	Size int
	Max  int
}

func (e *InvalidPageSizeError) Error() string {
	return fmt.Sprintf("The page size '%d' is not between '1' and '%d'", e.Size, e.Max)
}

func (e *InvalidPageSizeError) Unwrap() error { return ErrInvalidPageSize }

// PageExpiredError carries the page link that could not be resolved.
type PageExpiredError struct {
	PageLink string
}

// NewPageExpired is what collection sources return for unknown or expired links.
func NewPageExpired(pageLink string) error {
	return &PageExpiredError{PageLink: pageLink}
}

func (e *PageExpiredError) Error() string {
	return fmt.Sprintf("Page %s has expired", e.PageLink)
}

func (e *PageExpiredError) Unwrap() error { return ErrPageExpired }
