package postgres

import (
	"context"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/maxviazov/subnets-service/internal/repository"
	"github.com/maxviazov/subnets-service/internal/repository/contract"
)

var (
	pool   *pgxpool.Pool
	skippy bool
)

func TestMain(m *testing.M) {
	if os.Getenv("CONTRACT_TESTS") != "1" {
		// allow skipping contract tests unless explicitly enabled
		skippy = true
		os.Exit(m.Run())
	}

	dsn := buildDSNFromEnv()
	if dsn == "" {
		fmt.Println("[contract] DATABASE_URL or APP_POSTGRES_* env not set; skipping")
		skippy = true
		os.Exit(m.Run())
	}

	ctx := context.Background()
	var err error
	pool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Println("[contract] pool new error:", err)
		os.Exit(1)
	}
	if err := pool.Ping(ctx); err != nil {
		fmt.Println("[contract] db ping error:", err)
		os.Exit(1)
	}
	if err := Migrate(ctx, pool, zerolog.New(io.Discard)); err != nil {
		fmt.Println("[contract] migrate error:", err)
		os.Exit(1)
	}

	code := m.Run()
	pool.Close()
	os.Exit(code)
}

func skipIfNeeded(t *testing.T) {
	if skippy {
		t.Skip("contract tests skipped")
	}
}

func buildDSNFromEnv() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	user := firstNonEmpty(os.Getenv("APP_POSTGRES_USER"), os.Getenv("POSTGRES_USER"))
	pass := firstNonEmpty(os.Getenv("APP_POSTGRES_PASSWORD"), os.Getenv("POSTGRES_PASSWORD"))
	host := firstNonEmpty(os.Getenv("APP_POSTGRES_HOST"), os.Getenv("POSTGRES_HOST"), "localhost")
	port := firstNonEmpty(os.Getenv("APP_POSTGRES_PORT"), os.Getenv("POSTGRES_PORT"), "5432")
	db := firstNonEmpty(os.Getenv("APP_POSTGRES_DB"), os.Getenv("POSTGRES_DB"))
	if user == "" || pass == "" || db == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, port, db)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncateAll(t *testing.T) {
	if _, err := pool.Exec(context.Background(), "TRUNCATE TABLE tasks, subnets RESTART IDENTITY"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func TestSubnetRepository_PostgresContract(t *testing.T) {
	contract.RunSubnetRepositoryContract(t, func(t *testing.T) (repository.SubnetRepository, func()) {
		skipIfNeeded(t)
		truncateAll(t)
		return NewSubnetRepository(pool), func() { truncateAll(t) }
	})
}

func TestTaskRepository_PostgresContract(t *testing.T) {
	contract.RunTaskRepositoryContract(t, func(t *testing.T) (repository.TaskRepository, func()) {
		skipIfNeeded(t)
		truncateAll(t)
		return NewTaskRepository(pool), func() { truncateAll(t) }
	})
}

func TestTxManager_PostgresContract(t *testing.T) {
	contract.RunTxManagerContract(t, func(t *testing.T) (repository.TxManager, repository.SubnetRepository, func()) {
		skipIfNeeded(t)
		truncateAll(t)
		return NewTxManager(pool), NewSubnetRepository(pool), func() { truncateAll(t) }
	})
}

func TestPinger_PostgresContract(t *testing.T) {
	contract.RunPingerContract(t, func(t *testing.T) (repository.Pinger, func()) {
		skipIfNeeded(t)
		return NewPinger(pool), func() {}
	})
}

func TestNilPoolGuards(t *testing.T) {
	ctx := context.Background()
	if _, err := NewSubnetRepository(nil).GetByID(ctx, "x"); err == nil {
		t.Fatal("expected error for nil pool")
	}
	if _, err := NewTaskRepository(nil).GetByID(ctx, "x"); err == nil {
		t.Fatal("expected error for nil pool")
	}
	if err := NewTxManager(nil).WithinTx(ctx, func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected error for nil pool")
	}
	if err := NewPinger(nil).Ping(ctx); err == nil {
		t.Fatal("expected error for nil pool")
	}
}
