package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/maxviazov/subnets-service/internal/model"
	"github.com/maxviazov/subnets-service/internal/pagination"
	"github.com/maxviazov/subnets-service/internal/repository"
)

// subnetService holds subnet use-case logic: validation + orchestration, no transport / SQL details.
type subnetService struct {
	subnets  repository.SubnetRepository
	tasks    repository.TaskRepository
	tx       repository.TxManager
	pager    *pagination.Paginator[model.Subnet]
	validate *validator.Validate
	now      func() time.Time
	log      zerolog.Logger
}

// NewSubnetService wires the subnet use cases. Listing goes through a paginator
// over src, which must be the subnet collection source.
func NewSubnetService(
	subnets repository.SubnetRepository,
	tasks repository.TaskRepository,
	tx repository.TxManager,
	src pagination.Source[model.Subnet],
	bounds pagination.Bounds,
	logger zerolog.Logger,
) (SubnetService, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	l := logger.With().Str("module", "service").Str("component", "subnet").Logger()
	return &subnetService{
		subnets:  subnets,
		tasks:    tasks,
		tx:       tx,
		pager:    pagination.New[model.Subnet](src, bounds),
		validate: newValidator(),
		now:      func() time.Time { return time.Now().UTC() },
		log:      l,
	}, nil
}

func (s *subnetService) PageBounds() pagination.Bounds { return s.pager.Bounds() }

func (s *subnetService) ListSubnets(ctx context.Context, req pagination.Request) (model.ResourceList[model.Subnet], error) {
	res, err := s.pager.List(ctx, req)
	if err != nil {
		if isClientPagingError(err) {
			s.log.Debug().Err(err).Msg("list subnets rejected")
		} else {
			s.log.Error().Err(err).Msg("list subnets failed")
		}
		return model.ResourceList[model.Subnet]{}, err
	}
	return res, nil
}

func isClientPagingError(err error) bool {
	return errors.Is(err, pagination.ErrInvalidPageSize) ||
		errors.Is(err, pagination.ErrPageExpired) ||
		errors.Is(err, pagination.ErrConflictingParams)
}

func (s *subnetService) GetSubnet(ctx context.Context, id string) (model.Subnet, error) {
	if err := validateID(id); err != nil {
		return model.Subnet{}, err
	}
	return s.subnets.GetByID(ctx, id)
}

func (s *subnetService) CreateSubnet(ctx context.Context, spec model.SubnetCreateSpec) (model.Task, error) {
	start := time.Now()
	spec = normalizeSpec(spec)
	if err := s.validate.Struct(spec); err != nil {
		ferrs := toFieldErrors(err)
		s.log.Debug().Str("name", spec.Name).Interface("field_errors", ferrs).Msg("subnet validation failed")
		return model.Task{}, NewInvalidInputError(ferrs)
	}

	now := s.now()
	subnet := model.Subnet{
		ID:          uuid.NewString(),
		Name:        spec.Name,
		Description: spec.Description,
		State:       model.SubnetStateReady,
		PortGroups:  spec.PortGroups,
	}
	task := model.Task{
		ID:          uuid.NewString(),
		Entity:      model.Entity{ID: subnet.ID, Kind: model.KindSubnet},
		State:       model.TaskStateCompleted,
		Operation:   model.OperationCreateSubnet,
		StartedTime: now,
		EndTime:     &now,
	}

	var out model.Task
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.subnets.Create(ctx, subnet); err != nil {
			return err
		}
		created, err := s.tasks.Create(ctx, task)
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Str("name", spec.Name).Msg("create subnet failed")
		return model.Task{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Str("subnet_id", subnet.ID).Str("task_id", out.ID).Msg("subnet created")
	return out, nil
}

func (s *subnetService) DeleteSubnet(ctx context.Context, id string) (model.Task, error) {
	if err := validateID(id); err != nil {
		return model.Task{}, err
	}
	now := s.now()
	task := model.Task{
		ID:          uuid.NewString(),
		Entity:      model.Entity{ID: id, Kind: model.KindSubnet},
		State:       model.TaskStateCompleted,
		Operation:   model.OperationDeleteSubnet,
		StartedTime: now,
		EndTime:     &now,
	}

	var out model.Task
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.subnets.MarkDeleted(ctx, id); err != nil {
			return err
		}
		created, err := s.tasks.Create(ctx, task)
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Task{}, err
		}
		s.log.Error().Err(err).Str("subnet_id", id).Msg("delete subnet failed")
		return model.Task{}, err
	}
	s.log.Info().Str("subnet_id", id).Str("task_id", out.ID).Msg("subnet deleted")
	return out, nil
}

func normalizeSpec(spec model.SubnetCreateSpec) model.SubnetCreateSpec {
	spec.Name = strings.TrimSpace(spec.Name)
	spec.Description = strings.TrimSpace(spec.Description)
	if spec.PortGroups != nil {
		groups := make([]string, len(spec.PortGroups))
		for i, g := range spec.PortGroups {
			groups[i] = strings.TrimSpace(g)
		}
		spec.PortGroups = groups
	}
	return spec
}
