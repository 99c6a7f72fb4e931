// Package contract holds behaviour suites every repository implementation must pass.
package contract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/maxviazov/subnets-service/internal/model"
	"github.com/maxviazov/subnets-service/internal/repository"
)

type SubnetFactory func(t *testing.T) (repository.SubnetRepository, func())

type TaskFactory func(t *testing.T) (repository.TaskRepository, func())

type TxFactory func(t *testing.T) (tx repository.TxManager, subnets repository.SubnetRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

type PageLinkStoreFactory func(t *testing.T) (repository.PageLinkStore, func())

func newSubnet(name string) model.Subnet {
	return model.Subnet{
		ID:         uuid.NewString(),
		Name:       name,
		State:      model.SubnetStateReady,
		PortGroups: []string{"PG1"},
	}
}

func RunSubnetRepositoryContract(t *testing.T, makeRepo SubnetFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		in := newSubnet("net-a")
		in.Description = "VM VLAN"
		in.PortGroups = []string{"PG1", "PG2"}
		created, err := repo.Create(ctx, in)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if created.Seq <= 0 || created.Kind != model.KindSubnet {
			t.Fatalf("expected seq and kind to be set: %+v", created)
		}
		got, err := repo.GetByID(ctx, in.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != in.ID || got.Name != "net-a" || got.Description != "VM VLAN" || len(got.PortGroups) != 2 {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), uuid.NewString())
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("duplicate_id", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		s := newSubnet("dup")
		if _, err := repo.Create(ctx, s); err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := repo.Create(ctx, s); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("list_keyset_windows", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i := 0; i < 7; i++ {
			if _, err := repo.Create(ctx, newSubnet("net-"+string(rune('a'+i)))); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		first, err := repo.List(ctx, repository.SubnetQuery{Limit: 3})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(first) != 3 || first[0].Name != "net-a" || first[2].Name != "net-c" {
			t.Fatalf("unexpected first window: %+v", first)
		}
		second, err := repo.List(ctx, repository.SubnetQuery{Limit: 3, AfterSeq: first[2].Seq})
		if err != nil {
			t.Fatalf("list2: %v", err)
		}
		if len(second) != 3 || second[0].Name != "net-d" {
			t.Fatalf("unexpected second window: %+v", second)
		}
		rest, err := repo.List(ctx, repository.SubnetQuery{Limit: 3, AfterSeq: second[2].Seq})
		if err != nil {
			t.Fatalf("list3: %v", err)
		}
		if len(rest) != 1 || rest[0].Name != "net-g" {
			t.Fatalf("unexpected last window: %+v", rest)
		}
	})

	t.Run("list_by_name", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for _, n := range []string{"n1", "n2", "n1"} {
			if _, err := repo.Create(ctx, newSubnet(n)); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		name := "n1"
		got, err := repo.List(ctx, repository.SubnetQuery{Name: &name, Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 subnets named n1, got %d", len(got))
		}
		for _, s := range got {
			if s.Name != "n1" {
				t.Fatalf("filter leaked %q", s.Name)
			}
		}
	})

	t.Run("mark_deleted_hides_subnet", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		s, err := repo.Create(ctx, newSubnet("gone"))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := repo.MarkDeleted(ctx, s.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := repo.GetByID(ctx, s.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
		if err := repo.MarkDeleted(ctx, s.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
		items, err := repo.List(ctx, repository.SubnetQuery{Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(items) != 0 {
			t.Fatalf("deleted subnet still listed: %+v", items)
		}
	})
}

func RunTaskRepositoryContract(t *testing.T, makeRepo TaskFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		now := time.Now().UTC().Truncate(time.Millisecond)
		in := model.Task{
			ID:          uuid.NewString(),
			Entity:      model.Entity{ID: uuid.NewString(), Kind: model.KindSubnet},
			State:       model.TaskStateCompleted,
			Operation:   model.OperationCreateSubnet,
			StartedTime: now,
			EndTime:     &now,
		}
		if _, err := repo.Create(ctx, in); err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := repo.GetByID(ctx, in.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Entity.ID != in.Entity.ID || got.Operation != in.Operation || got.Kind != model.KindTask {
			t.Fatalf("mismatch: %+v", got)
		}
		if got.EndTime == nil || !got.EndTime.Equal(now) {
			t.Fatalf("end time not persisted: %+v", got.EndTime)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		if _, err := repo.GetByID(context.Background(), uuid.NewString()); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, subnets, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		s := newSubnet("rolled-back")
		boom := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := subnets.Create(ctx, s); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		if _, err := subnets.GetByID(ctx, s.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected rollback, got %v", err)
		}
	})

	t.Run("commit", func(t *testing.T) {
		tx, subnets, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		s := newSubnet("committed")
		if err := tx.WithinTx(ctx, func(ctx context.Context) error {
			_, err := subnets.Create(ctx, s)
			return err
		}); err != nil {
			t.Fatalf("tx: %v", err)
		}
		if _, err := subnets.GetByID(ctx, s.ID); err != nil {
			t.Fatalf("expected committed subnet, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	p, cleanup := makePinger(t)
	t.Cleanup(cleanup)
	if err := p.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func RunPageLinkStoreContract(t *testing.T, makeStore PageLinkStoreFactory) {
	t.Helper()

	t.Run("save_and_load", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		name := "n1"
		in := repository.PageCursor{Name: &name, Limit: 2, AfterSeq: 42, Prev: "prev-link"}
		if err := store.Save(ctx, "link-1", in, time.Minute); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := store.Load(ctx, "link-1")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if got.Limit != 2 || got.AfterSeq != 42 || got.Prev != "prev-link" || got.Name == nil || *got.Name != "n1" {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("load_is_repeatable", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if err := store.Save(ctx, "link-r", repository.PageCursor{Limit: 1}, time.Minute); err != nil {
			t.Fatalf("save: %v", err)
		}
		for i := 0; i < 3; i++ {
			if _, err := store.Load(ctx, "link-r"); err != nil {
				t.Fatalf("load %d: %v", i, err)
			}
		}
	})

	t.Run("unknown_link", func(t *testing.T) {
		store, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		if _, err := store.Load(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
