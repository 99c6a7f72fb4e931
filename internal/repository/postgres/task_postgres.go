package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/subnets-service/internal/model"
	"github.com/maxviazov/subnets-service/internal/repository"
)

const taskColumns = `id::text, entity_id::text, entity_kind, state, operation, started_at, ended_at`

type taskRepository struct{ pool *pgxpool.Pool }

func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func scanTask(row pgx.Row) (model.Task, error) {
	var t model.Task
	err := row.Scan(&t.ID, &t.Entity.ID, &t.Entity.Kind, &t.State, &t.Operation, &t.StartedTime, &t.EndTime)
	if err != nil {
		return model.Task{}, err
	}
	t.Kind = model.KindTask
	return t, nil
}

func (r *taskRepository) Create(ctx context.Context, t model.Task) (model.Task, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Task{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO tasks (id, entity_id, entity_kind, state, operation, started_at, ended_at)
		 VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6, $7)
		 RETURNING `+taskColumns,
		t.ID, t.Entity.ID, t.Entity.Kind, t.State, t.Operation, t.StartedTime, t.EndTime,
	)
	out, err := scanTask(row)
	if err != nil {
		return model.Task{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (model.Task, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Task{}, err
	}
	exec := getQ(ctx, r.pool)
	out, err := scanTask(exec.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1::uuid`, id))
	if err != nil {
		return model.Task{}, repository.MapPgError(err)
	}
	return out, nil
}

var _ repository.TaskRepository = (*taskRepository)(nil)
