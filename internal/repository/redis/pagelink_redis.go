// Package redis stores page cursors in Redis so page links survive restarts and
// are shared between replicas.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/maxviazov/subnets-service/internal/config"
	"github.com/maxviazov/subnets-service/internal/repository"
)

// NewPool dials lazily; the first command surfaces connection errors.
func NewPool(cfg config.RedisConfig) *redis.Pool {
	opts := []redis.DialOption{redis.DialDatabase(cfg.DB)}
	if cfg.Password != "" {
		opts = append(opts, redis.DialPassword(cfg.Password))
	}
	return &redis.Pool{
		MaxIdle:     cfg.MaxIdle,
		IdleTimeout: cfg.IdleTimeout,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", cfg.Addr, opts...)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

type pageLinkStore struct {
	pool   *redis.Pool
	prefix string
}

// NewPageLinkStore keys every cursor as prefix+link and lets Redis expire it.
func NewPageLinkStore(pool *redis.Pool, prefix string) repository.PageLinkStore {
	return &pageLinkStore{pool: pool, prefix: prefix}
}

func (s *pageLinkStore) key(link string) string { return s.prefix + link }

func (s *pageLinkStore) Save(ctx context.Context, link string, c repository.PageCursor, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("page link ttl must be positive, got %s", ttl)
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode page cursor: %w", err)
	}
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("redis get conn: %w", err)
	}
	defer conn.Close()

	if _, err := redis.String(conn.Do("SET", s.key(link), string(payload), "PX", ttl.Milliseconds())); err != nil {
		return fmt.Errorf("redis set page link: %w", err)
	}
	return nil
}

func (s *pageLinkStore) Load(ctx context.Context, link string) (repository.PageCursor, error) {
	var c repository.PageCursor
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return c, fmt.Errorf("redis get conn: %w", err)
	}
	defer conn.Close()

	raw, err := redis.Bytes(conn.Do("GET", s.key(link)))
	if errors.Is(err, redis.ErrNil) {
		return c, repository.ErrNotFound
	}
	if err != nil {
		return c, fmt.Errorf("redis get page link: %w", err)
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("decode page cursor: %w", err)
	}
	return c, nil
}

type pinger struct{ pool *redis.Pool }

// NewPinger reports Redis readiness.
func NewPinger(pool *redis.Pool) repository.Pinger { return &pinger{pool: pool} }

func (p *pinger) Ping(ctx context.Context) error {
	if p.pool == nil {
		return errors.New("redis pool is not initialized")
	}
	conn, err := p.pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	_, err = conn.Do("PING")
	return err
}
