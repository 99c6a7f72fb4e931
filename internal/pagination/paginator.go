// Package pagination implements the listing contract shared by collection endpoints:
// a first page is requested by size (and optional name filter), every following page
// by the opaque link the previous page returned.
package pagination

import (
	"context"
	"errors"
	"fmt"

	"github.com/maxviazov/subnets-service/internal/model"
)

// Request is a single listing call. Either the first-page form (Name, PageSize)
// or the continuation form (PageLink) may be used, never both.
type Request struct {
	Name     *string
	PageSize *int
	PageLink *string
}

// Bounds holds the process-wide page size limits.
type Bounds struct {
	DefaultSize int
	MaxSize     int
}

// Validate rejects bounds that could never serve a default request.
func (b Bounds) Validate() error {
	if b.MaxSize < 1 {
		return fmt.Errorf("max page size must be >= 1, got %d", b.MaxSize)
	}
	if b.DefaultSize < 1 || b.DefaultSize > b.MaxSize {
		return fmt.Errorf("default page size %d must be between 1 and %d", b.DefaultSize, b.MaxSize)
	}
	return nil
}

// Resolve returns the effective page size for an optional client value.
func (b Bounds) Resolve(size *int) (int, error) {
	if size == nil {
		return b.DefaultSize, nil
	}
	if *size < 1 || *size > b.MaxSize {
		return 0, &InvalidPageSizeError{Size: *size, Max: b.MaxSize}
	}
	return *size, nil
}

// Source is the backend that actually knows how to fetch pages.
// GetPage must return an error wrapping ErrPageExpired for unknown or expired links.
type Source[T any] interface {
	Find(ctx context.Context, name *string, size int) (model.ResourceList[T], error)
	GetPage(ctx context.Context, pageLink string) (model.ResourceList[T], error)
}

// Paginator validates requests and shapes results for one collection.
// It holds no mutable state and is safe for concurrent use.
type Paginator[T any] struct {
	src    Source[T]
	bounds Bounds
}

func New[T any](src Source[T], bounds Bounds) *Paginator[T] {
	return &Paginator[T]{src: src, bounds: bounds}
}

// Bounds exposes the configured limits.
func (p *Paginator[T]) Bounds() Bounds { return p.bounds }

// List serves one page.
func (p *Paginator[T]) List(ctx context.Context, req Request) (model.ResourceList[T], error) {
	if req.PageLink != nil {
		if req.Name != nil || req.PageSize != nil {
			return model.ResourceList[T]{}, ErrConflictingParams
		}
		res, err := p.src.GetPage(ctx, *req.PageLink)
		if err != nil {
			var expired *PageExpiredError
			if errors.Is(err, ErrPageExpired) && !errors.As(err, &expired) {
				return model.ResourceList[T]{}, NewPageExpired(*req.PageLink)
			}
			return model.ResourceList[T]{}, err
		}
		return normalize(res, p.bounds.MaxSize), nil
	}

	size, err := p.bounds.Resolve(req.PageSize)
	if err != nil {
		return model.ResourceList[T]{}, err
	}
	res, err := p.src.Find(ctx, req.Name, size)
	if err != nil {
		return model.ResourceList[T]{}, err
	}
	return normalize(res, size), nil
}

// normalize caps the page at limit and guarantees a non-nil item slice for JSON.
func normalize[T any](res model.ResourceList[T], limit int) model.ResourceList[T] {
	if res.Items == nil {
		res.Items = []T{}
	}
	if len(res.Items) > limit {
		res.Items = res.Items[:limit]
	}
	return res
}
