package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/maxviazov/subnets-service/internal/metrics"
	"github.com/maxviazov/subnets-service/internal/model"
	"github.com/maxviazov/subnets-service/internal/pagination"
	"github.com/maxviazov/subnets-service/internal/repository"
)

// subnetSource serves subnet pages by keyset over Seq and remembers every
// issued page link in the link store for ttl.
type subnetSource struct {
	repo     repository.SubnetRepository
	links    repository.PageLinkStore
	ttl      time.Duration
	newToken func() string
	log      zerolog.Logger
}

// NewSubnetSource returns the collection source behind subnet listings.
func NewSubnetSource(repo repository.SubnetRepository, links repository.PageLinkStore, ttl time.Duration, logger zerolog.Logger) pagination.Source[model.Subnet] {
	l := logger.With().Str("module", "service").Str("component", "subnet_source").Logger()
	return &subnetSource{repo: repo, links: links, ttl: ttl, newToken: uuid.NewString, log: l}
}

func (s *subnetSource) Find(ctx context.Context, name *string, size int) (model.ResourceList[model.Subnet], error) {
	rows, err := s.repo.List(ctx, repository.SubnetQuery{Name: name, Limit: size + 1})
	if err != nil {
		return model.ResourceList[model.Subnet]{}, err
	}
	res, err := s.page(ctx, rows, repository.PageCursor{Name: name, Limit: size}, "")
	if err != nil {
		return model.ResourceList[model.Subnet]{}, err
	}
	metrics.PagesServed.WithLabelValues(model.KindSubnet, metrics.ModeFirst).Inc()
	return res, nil
}

func (s *subnetSource) GetPage(ctx context.Context, link string) (model.ResourceList[model.Subnet], error) {
	cur, err := s.links.Load(ctx, link)
	if errors.Is(err, repository.ErrNotFound) {
		metrics.PageLinksExpired.WithLabelValues(model.KindSubnet).Inc()
		return model.ResourceList[model.Subnet]{}, pagination.NewPageExpired(link)
	}
	if err != nil {
		return model.ResourceList[model.Subnet]{}, fmt.Errorf("load page link: %w", err)
	}
	if cur.Limit < 1 {
		return model.ResourceList[model.Subnet]{}, fmt.Errorf("page link %s has invalid limit %d", link, cur.Limit)
	}

	rows, err := s.repo.List(ctx, repository.SubnetQuery{Name: cur.Name, AfterSeq: cur.AfterSeq, Limit: cur.Limit + 1})
	if err != nil {
		return model.ResourceList[model.Subnet]{}, err
	}
	res, err := s.page(ctx, rows, cur, link)
	if err != nil {
		return model.ResourceList[model.Subnet]{}, err
	}
	metrics.PagesServed.WithLabelValues(model.KindSubnet, metrics.ModeLink).Inc()
	return res, nil
}

// page trims the look-ahead row and issues the links around the window.
// self is the link the window was requested with, empty for a first page.
func (s *subnetSource) page(ctx context.Context, rows []model.Subnet, cur repository.PageCursor, self string) (model.ResourceList[model.Subnet], error) {
	res := model.ResourceList[model.Subnet]{Items: rows, PreviousPageLink: cur.Prev}
	if res.Items == nil {
		res.Items = []model.Subnet{}
	}
	if len(rows) <= cur.Limit {
		return res, nil
	}
	res.Items = rows[:cur.Limit]

	if self == "" {
		tok, err := s.issue(ctx, cur)
		if err != nil {
			return model.ResourceList[model.Subnet]{}, err
		}
		self = tok
	}
	next := repository.PageCursor{
		Name:     cur.Name,
		Limit:    cur.Limit,
		AfterSeq: res.Items[len(res.Items)-1].Seq,
		Prev:     self,
	}
	tok, err := s.issue(ctx, next)
	if err != nil {
		return model.ResourceList[model.Subnet]{}, err
	}
	res.NextPageLink = tok
	return res, nil
}

func (s *subnetSource) issue(ctx context.Context, c repository.PageCursor) (string, error) {
	tok := s.newToken()
	if err := s.links.Save(ctx, tok, c, s.ttl); err != nil {
		s.log.Error().Err(err).Msg("save page link failed")
		return "", fmt.Errorf("save page link: %w", err)
	}
	metrics.PageLinksIssued.WithLabelValues(model.KindSubnet).Inc()
	s.log.Debug().Str("page_link", tok).Int64("after_seq", c.AfterSeq).Int("limit", c.Limit).Msg("page link issued")
	return tok, nil
}
