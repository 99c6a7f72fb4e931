package service_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/subnets-service/internal/model"
	"github.com/maxviazov/subnets-service/internal/pagination"
	"github.com/maxviazov/subnets-service/internal/repository"
	"github.com/maxviazov/subnets-service/internal/repository/memory"
	"github.com/maxviazov/subnets-service/internal/service"
)

func seed(t *testing.T, repo *fakeSubnetRepo, names ...string) {
	t.Helper()
	for _, n := range names {
		_, err := repo.Create(context.Background(), model.Subnet{ID: uuid.NewString(), Name: n, State: model.SubnetStateReady, PortGroups: []string{"PG1"}})
		require.NoError(t, err)
	}
}

func names(items []model.Subnet) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.Name
	}
	return out
}

func newSource(t *testing.T, repo repository.SubnetRepository) pagination.Source[model.Subnet] {
	t.Helper()
	links, err := memory.NewPageLinkStore()
	require.NoError(t, err)
	return service.NewSubnetSource(repo, links, time.Minute, zerolog.New(io.Discard))
}

func TestSubnetSource_WalkForwardAndBack(t *testing.T) {
	repo := newFakeSubnetRepo()
	seed(t, repo, "a", "b", "c", "d", "e")
	src := newSource(t, repo)
	ctx := context.Background()

	first, err := src.Find(ctx, nil, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names(first.Items))
	assert.Empty(t, first.PreviousPageLink)
	require.NotEmpty(t, first.NextPageLink)

	second, err := src.GetPage(ctx, first.NextPageLink)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, names(second.Items))
	require.NotEmpty(t, second.PreviousPageLink)
	require.NotEmpty(t, second.NextPageLink)

	back, err := src.GetPage(ctx, second.PreviousPageLink)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names(back.Items))

	last, err := src.GetPage(ctx, second.NextPageLink)
	require.NoError(t, err)
	assert.Equal(t, []string{"e"}, names(last.Items))
	assert.Empty(t, last.NextPageLink)
	assert.Equal(t, first.NextPageLink, last.PreviousPageLink)

	again, err := src.GetPage(ctx, first.NextPageLink)
	require.NoError(t, err)
	assert.Equal(t, names(second.Items), names(again.Items))
}

func TestSubnetSource_ExactFitHasNoNext(t *testing.T) {
	repo := newFakeSubnetRepo()
	seed(t, repo, "n1", "n2")
	src := newSource(t, repo)

	res, err := src.Find(context.Background(), nil, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"n1", "n2"}, names(res.Items))
	assert.Empty(t, res.NextPageLink)

	res, err = src.Find(context.Background(), nil, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"n1"}, names(res.Items))
	assert.NotEmpty(t, res.NextPageLink)
}

func TestSubnetSource_NameFilterCarriedAcrossPages(t *testing.T) {
	repo := newFakeSubnetRepo()
	seed(t, repo, "n1", "n2", "n1", "n2", "n1")
	src := newSource(t, repo)
	ctx := context.Background()
	name := "n1"

	first, err := src.Find(ctx, &name, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"n1", "n1"}, names(first.Items))

	next, err := src.GetPage(ctx, first.NextPageLink)
	require.NoError(t, err)
	assert.Equal(t, []string{"n1"}, names(next.Items))
	assert.Empty(t, next.NextPageLink)
}

func TestSubnetSource_EmptyCollection(t *testing.T) {
	src := newSource(t, newFakeSubnetRepo())
	res, err := src.Find(context.Background(), nil, 10)
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Empty(t, res.NextPageLink)
}

func TestSubnetSource_UnknownLink(t *testing.T) {
	src := newSource(t, newFakeSubnetRepo())
	_, err := src.GetPage(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, pagination.ErrPageExpired)
	assert.Equal(t, "Page nope has expired", err.Error())
}

type failingLinks struct{ err error }

func (f failingLinks) Save(context.Context, string, repository.PageCursor, time.Duration) error {
	return f.err
}

func (f failingLinks) Load(context.Context, string) (repository.PageCursor, error) {
	return repository.PageCursor{}, f.err
}

func TestSubnetSource_StoreFailures(t *testing.T) {
	repo := newFakeSubnetRepo()
	seed(t, repo, "a", "b")
	boom := errors.New("store down")
	src := service.NewSubnetSource(repo, failingLinks{err: boom}, time.Minute, zerolog.New(io.Discard))

	_, err := src.Find(context.Background(), nil, 1)
	assert.ErrorIs(t, err, boom)

	_, err = src.GetPage(context.Background(), "tok")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, pagination.ErrPageExpired)
}
