// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/subnets-service/internal/model"
	"github.com/maxviazov/subnets-service/internal/pagination"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidJSON marks a request body that could not be decoded (maps to HTTP 400).
var ErrInvalidJSON = errors.New("invalid JSON body")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error if any field errors are present.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	var v *invalidInputError
	if errors.As(err, &v) {
		return v.Fields()
	}
	return nil
}

// SubnetService defines subnet-oriented use cases.
type SubnetService interface {
	ListSubnets(ctx context.Context, req pagination.Request) (model.ResourceList[model.Subnet], error)
	GetSubnet(ctx context.Context, id string) (model.Subnet, error)
	CreateSubnet(ctx context.Context, spec model.SubnetCreateSpec) (model.Task, error)
	DeleteSubnet(ctx context.Context, id string) (model.Task, error)
	// PageBounds reports the page size limits listing requests are checked against.
	PageBounds() pagination.Bounds
}

// TaskService defines task status lookups.
type TaskService interface {
	GetTask(ctx context.Context, id string) (model.Task, error)
}
