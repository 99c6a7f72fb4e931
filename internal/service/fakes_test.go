package service_test

import (
	"context"
	"sort"
	"sync"

	"github.com/maxviazov/subnets-service/internal/model"
	"github.com/maxviazov/subnets-service/internal/repository"
)

type fakeSubnetRepo struct {
	mu        sync.Mutex
	seq       int64
	subnets   map[string]model.Subnet
	createErr error
}

func newFakeSubnetRepo() *fakeSubnetRepo { return &fakeSubnetRepo{subnets: map[string]model.Subnet{}} }

func (f *fakeSubnetRepo) Create(_ context.Context, s model.Subnet) (model.Subnet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return model.Subnet{}, f.createErr
	}
	if _, ok := f.subnets[s.ID]; ok {
		return model.Subnet{}, repository.ErrAlreadyExists
	}
	f.seq++
	s.Seq = f.seq
	s.Kind = model.KindSubnet
	f.subnets[s.ID] = s
	return s, nil
}

func (f *fakeSubnetRepo) GetByID(_ context.Context, id string) (model.Subnet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.subnets[id]
	if !ok || s.State == model.SubnetStateDeleted {
		return model.Subnet{}, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeSubnetRepo) List(_ context.Context, q repository.SubnetQuery) ([]model.Subnet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Subnet
	for _, s := range f.subnets {
		if s.State == model.SubnetStateDeleted || s.Seq <= q.AfterSeq {
			continue
		}
		if q.Name != nil && s.Name != *q.Name {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakeSubnetRepo) MarkDeleted(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.subnets[id]
	if !ok || s.State == model.SubnetStateDeleted {
		return repository.ErrNotFound
	}
	s.State = model.SubnetStateDeleted
	f.subnets[id] = s
	return nil
}

var _ repository.SubnetRepository = (*fakeSubnetRepo)(nil)

type fakeTaskRepo struct {
	tasks     map[string]model.Task
	createErr error
}

func newFakeTaskRepo() *fakeTaskRepo { return &fakeTaskRepo{tasks: map[string]model.Task{}} }

func (f *fakeTaskRepo) Create(_ context.Context, t model.Task) (model.Task, error) {
	if f.createErr != nil {
		return model.Task{}, f.createErr
	}
	t.Kind = model.KindTask
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id string) (model.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return model.Task{}, repository.ErrNotFound
	}
	return t, nil
}

var _ repository.TaskRepository = (*fakeTaskRepo)(nil)

type fakeTx struct{ calls int }

func (f *fakeTx) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	f.calls++
	return fn(ctx)
}

var _ repository.TxManager = (*fakeTx)(nil)
