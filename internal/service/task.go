package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/maxviazov/subnets-service/internal/model"
	"github.com/maxviazov/subnets-service/internal/repository"
)

type taskService struct {
	repo repository.TaskRepository
	log  zerolog.Logger
}

func NewTaskService(repo repository.TaskRepository, logger zerolog.Logger) TaskService {
	l := logger.With().Str("module", "service").Str("component", "task").Logger()
	return &taskService{repo: repo, log: l}
}

func (s *taskService) GetTask(ctx context.Context, id string) (model.Task, error) {
	if err := validateID(id); err != nil {
		return model.Task{}, err
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.log.Error().Err(err).Str("task_id", id).Msg("get task failed")
	}
	return t, err
}
