package items

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/itemvault/internal/common"
	"github.com/google/uuid"
)

// MemoryRepository is the in-memory fake satisfying the same contract as the
// Postgres adapter, including ordering and error mapping. Used in tests.
type MemoryRepository struct {
	mu    sync.Mutex
	items map[string]Item
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]Item)}
}

func (r *MemoryRepository) Create(ctx context.Context, item *Item) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneItem(*item)
	stored.ID = uuid.NewString()
	r.items[stored.ID] = stored

	out := cloneItem(stored)
	return &out, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}

	out := cloneItem(stored)
	return &out, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*Item, 0, len(r.items))
	for _, stored := range r.items {
		out := cloneItem(stored)
		result = append(result, &out)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *MemoryRepository) Update(ctx context.Context, item *Item) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[item.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}

	stored.Name = item.Name
	stored.Description = nil
	if item.Description != nil {
		d := *item.Description
		stored.Description = &d
	}
	stored.UpdatedAt = item.UpdatedAt
	r.items[item.ID] = stored

	out := cloneItem(stored)
	return &out, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

func cloneItem(in Item) Item {
	if in.Description != nil {
		d := *in.Description
		in.Description = &d
	}
	return in
}
