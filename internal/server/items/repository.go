package items

import (
	"context"
)

// Repository is the CRUD contract over items. Implementations map a missing
// or malformed id to common.ErrorNotFound (never a panic) and enforce the
// created_at-descending order of List on the store side.
type Repository interface {
	Create(ctx context.Context, item *Item) (*Item, error)
	Get(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context) ([]*Item, error)
	Update(ctx context.Context, item *Item) (*Item, error)
	Delete(ctx context.Context, id string) error
}
