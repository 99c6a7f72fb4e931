// Package memory keeps page cursors in process; suited to single-replica
// deployments and tests.
package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-memdb"

	"github.com/maxviazov/subnets-service/internal/repository"
)

const tablePageLinks = "page_links"

var schemaPageLinks = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		tablePageLinks: {
			Name: tablePageLinks,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "Link"},
				},
			},
		},
	},
}

type entry struct {
	Link      string
	Cursor    repository.PageCursor
	ExpiresAt time.Time
}

type PageLinkStore struct {
	db  *memdb.MemDB
	now func() time.Time
}

func NewPageLinkStore() (*PageLinkStore, error) {
	db, err := memdb.NewMemDB(schemaPageLinks)
	if err != nil {
		return nil, fmt.Errorf("memdb init: %w", err)
	}
	return &PageLinkStore{db: db, now: time.Now}, nil
}

func (s *PageLinkStore) Save(_ context.Context, link string, c repository.PageCursor, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("page link ttl must be positive, got %s", ttl)
	}
	txn := s.db.Txn(true)
	if err := txn.Insert(tablePageLinks, &entry{Link: link, Cursor: c, ExpiresAt: s.now().Add(ttl)}); err != nil {
		txn.Abort()
		return fmt.Errorf("memdb insert page link: %w", err)
	}
	txn.Commit()
	return nil
}

func (s *PageLinkStore) Load(_ context.Context, link string) (repository.PageCursor, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()
	raw, err := txn.First(tablePageLinks, "id", link)
	if err != nil {
		return repository.PageCursor{}, fmt.Errorf("memdb lookup page link: %w", err)
	}
	e, ok := raw.(*entry)
	if !ok || !s.now().Before(e.ExpiresAt) {
		return repository.PageCursor{}, repository.ErrNotFound
	}
	return e.Cursor, nil
}

// Sweep drops expired links and reports how many were removed.
func (s *PageLinkStore) Sweep() (int, error) {
	now := s.now()
	txn := s.db.Txn(true)
	it, err := txn.Get(tablePageLinks, "id")
	if err != nil {
		txn.Abort()
		return 0, err
	}
	var expired []*entry
	for raw := it.Next(); raw != nil; raw = it.Next() {
		if e, ok := raw.(*entry); ok && !now.Before(e.ExpiresAt) {
			expired = append(expired, e)
		}
	}
	for _, e := range expired {
		if err := txn.Delete(tablePageLinks, e); err != nil {
			txn.Abort()
			return 0, err
		}
	}
	txn.Commit()
	return len(expired), nil
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *PageLinkStore) RunSweeper(ctx context.Context, interval time.Duration, onSweep func(removed int, err error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Sweep()
			if onSweep != nil {
				onSweep(n, err)
			}
		}
	}
}
