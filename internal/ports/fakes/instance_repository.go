package fakes

import (
	"context"
	"sort"
	"sync"

	"github.com/softfang/guildctl/internal/domain"
	"github.com/softfang/guildctl/internal/ports"
)

// InstanceRepository is an in-memory credential store with replace-by-id
// add semantics.
type InstanceRepository struct {
	mu    sync.Mutex
	items map[domain.InstanceID]domain.Instance

	// Err, when set, fails every call.
	Err error
}

var _ ports.InstanceRepository = (*InstanceRepository)(nil)

func NewInstanceRepository(instances ...domain.Instance) *InstanceRepository {
	repo := &InstanceRepository{items: map[domain.InstanceID]domain.Instance{}}
	for _, inst := range instances {
		repo.items[inst.ID] = inst
	}
	return repo
}

func (r *InstanceRepository) List(ctx context.Context) ([]domain.Instance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]domain.Instance, 0, len(r.items))
	for _, inst := range r.items {
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InstanceRepository) Find(ctx context.Context, id domain.InstanceID) (domain.Instance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return domain.Instance{}, r.Err
	}
	inst, ok := r.items[id]
	if !ok {
		return domain.Instance{}, domain.ErrInstanceNotFound
	}
	return inst, nil
}

func (r *InstanceRepository) Add(ctx context.Context, instance domain.Instance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.items[instance.ID] = instance
	return nil
}

func (r *InstanceRepository) Remove(ctx context.Context, id domain.InstanceID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	delete(r.items, id)
	return nil
}
