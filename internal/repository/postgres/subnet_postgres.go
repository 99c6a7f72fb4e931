package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/subnets-service/internal/model"
	"github.com/maxviazov/subnets-service/internal/repository"
)

const subnetColumns = `seq, id::text, name, description, state, port_groups, is_default, created_at, updated_at`

type subnetRepository struct{ pool *pgxpool.Pool }

func NewSubnetRepository(pool *pgxpool.Pool) repository.SubnetRepository {
	return &subnetRepository{pool: pool}
}

func scanSubnet(row pgx.Row) (model.Subnet, error) {
	var s model.Subnet
	err := row.Scan(&s.Seq, &s.ID, &s.Name, &s.Description, &s.State, &s.PortGroups, &s.IsDefault, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return model.Subnet{}, err
	}
	s.Kind = model.KindSubnet
	return s, nil
}

func (r *subnetRepository) Create(ctx context.Context, s model.Subnet) (model.Subnet, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Subnet{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO subnets (id, name, description, state, port_groups, is_default)
		 VALUES ($1::uuid, $2, $3, $4, $5, $6)
		 RETURNING `+subnetColumns,
		s.ID, s.Name, s.Description, s.State, s.PortGroups, s.IsDefault,
	)
	out, err := scanSubnet(row)
	if err != nil {
		return model.Subnet{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *subnetRepository) GetByID(ctx context.Context, id string) (model.Subnet, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Subnet{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`SELECT `+subnetColumns+` FROM subnets WHERE id = $1::uuid AND state <> $2`,
		id, model.SubnetStateDeleted,
	)
	out, err := scanSubnet(row)
	if err != nil {
		return model.Subnet{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *subnetRepository) List(ctx context.Context, q repository.SubnetQuery) ([]model.Subnet, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+subnetColumns+`
		 FROM subnets
		 WHERE state <> $1 AND seq > $2 AND ($3::text IS NULL OR name = $3)
		 ORDER BY seq
		 LIMIT $4`,
		model.SubnetStateDeleted, q.AfterSeq, q.Name, limit,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.Subnet, 0, limit)
	for rows.Next() {
		s, err := scanSubnet(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

func (r *subnetRepository) MarkDeleted(ctx context.Context, id string) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx,
		`UPDATE subnets SET state = $2, updated_at = now() WHERE id = $1::uuid AND state <> $2`,
		id, model.SubnetStateDeleted,
	)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.SubnetRepository = (*subnetRepository)(nil)
