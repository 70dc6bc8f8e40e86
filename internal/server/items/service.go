package items

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/itemvault/internal/common"
)

// Service enforces the item business rules (name constraints, existence
// checks, timestamp ownership) and orchestrates the repository.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", common.ErrorValidation, MaxNameLength)
	}
	return nil
}

// Create validates the name and persists a new item with server-assigned
// timestamps: created_at == updated_at at creation.
func (s *Service) Create(ctx context.Context, name string, description *string) (*Item, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	now := s.now()
	item := &Item{
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	item, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("error creating item: %w", err)
	}

	return item, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Item, error) {
	return s.repo.Get(ctx, id)
}

// List returns all items ordered by created_at descending.
func (s *Service) List(ctx context.Context) ([]*Item, error) {
	return s.repo.List(ctx)
}

// Update fetches the current item (existence check first), re-validates the
// name, replaces name/description and refreshes updated_at.
func (s *Service) Update(ctx context.Context, id string, name string, description *string) (*Item, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateName(name); err != nil {
		return nil, err
	}

	item.Name = name
	item.Description = description
	item.UpdatedAt = s.now()

	item, err = s.repo.Update(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("error updating item: %w", err)
	}

	return item, nil
}

// Delete removes the item; a miss reports common.ErrorNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
