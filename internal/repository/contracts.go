package repository

import (
	"context"
	"time"

	"github.com/maxviazov/subnets-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// I prefer a single entry point to keep transaction boundaries explicit and testable.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// SubnetRepository declares persistence operations for subnets.
// Deleted subnets are invisible to GetByID and List.
type SubnetRepository interface {
	Create(ctx context.Context, s model.Subnet) (model.Subnet, error)
	GetByID(ctx context.Context, id string) (model.Subnet, error)
	// List returns up to q.Limit subnets with Seq > q.AfterSeq in ascending Seq order.
	List(ctx context.Context, q SubnetQuery) ([]model.Subnet, error)
	MarkDeleted(ctx context.Context, id string) error
}

// TaskRepository declares persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	GetByID(ctx context.Context, id string) (model.Task, error)
}

// PageLinkStore keeps page cursors for the duration of their retention window.
// Load returns ErrNotFound once a link is unknown or expired.
type PageLinkStore interface {
	Save(ctx context.Context, link string, c PageCursor, ttl time.Duration) error
	Load(ctx context.Context, link string) (PageCursor, error)
}
