package items

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/itemvault/internal/common"
)

func strPtr(s string) *string { return &s }

func TestCreateGet_RoundTrip(t *testing.T) {
	t.Parallel()

	s := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := s.Create(ctx, "Widget", strPtr("desc"))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("store must assign an id")
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("created_at != updated_at at creation: %v vs %v", created.CreatedAt, created.UpdatedAt)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Name != "Widget" || got.Description == nil || *got.Description != "desc" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at changed in round-trip")
	}
}

func TestCreate_NameValidation(t *testing.T) {
	t.Parallel()

	s := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := s.Create(ctx, "", nil)
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("empty name: expected common.ErrorValidation, got %v", err)
	}

	_, err = s.Create(ctx, strings.Repeat("x", MaxNameLength+1), nil)
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("long name: expected common.ErrorValidation, got %v", err)
	}

	// exactly 200 characters is valid
	if _, err := s.Create(ctx, strings.Repeat("x", MaxNameLength), nil); err != nil {
		t.Fatalf("200-char name rejected: %v", err)
	}
}

func TestUpdate_RefreshesUpdatedAtKeepsCreatedAt(t *testing.T) {
	t.Parallel()

	s := NewService(NewMemoryRepository())
	ctx := context.Background()

	base := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	current := base
	s.now = func() time.Time { return current }

	created, err := s.Create(ctx, "Widget", strPtr("desc"))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	current = base.Add(time.Minute)
	updated, err := s.Update(ctx, created.ID, "Widget2", nil)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at must not change on update")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("updated_at must move forward: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
	if updated.Name != "Widget2" {
		t.Fatalf("name not replaced: %+v", updated)
	}
	if updated.Description != nil {
		t.Fatalf("description must be absent after update with nil, got %q", *updated.Description)
	}
}

func TestUpdate_ValidatesAfterExistenceCheck(t *testing.T) {
	t.Parallel()

	s := NewService(NewMemoryRepository())
	ctx := context.Background()

	// missing item wins over invalid name
	_, err := s.Update(ctx, "no-such-id", "", nil)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}

	created, err := s.Create(ctx, "Widget", nil)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	_, err = s.Update(ctx, created.ID, "", nil)
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected common.ErrorValidation, got %v", err)
	}
}

func TestList_OrderedByCreatedAtDescending(t *testing.T) {
	t.Parallel()

	s := NewService(NewMemoryRepository())
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	current := base
	s.now = func() time.Time { return current }

	// insertion order deliberately not chronological
	for _, offset := range []time.Duration{2 * time.Hour, 0, 3 * time.Hour, time.Hour} {
		current = base.Add(offset)
		if _, err := s.Create(ctx, "item", nil); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("expected 4 items, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].CreatedAt.After(list[i-1].CreatedAt) {
			t.Fatalf("list not sorted descending at %d: %v before %v", i, list[i-1].CreatedAt, list[i].CreatedAt)
		}
	}
}

func TestDelete_MissingAndSubsequentGet(t *testing.T) {
	t.Parallel()

	s := NewService(NewMemoryRepository())
	ctx := context.Background()

	if err := s.Delete(ctx, "ghost"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("delete missing: expected common.ErrorNotFound, got %v", err)
	}

	created, err := s.Create(ctx, "Widget", nil)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(ctx, created.ID); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("get after delete: expected common.ErrorNotFound, got %v", err)
	}
	if err := s.Delete(ctx, created.ID); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("second delete: expected common.ErrorNotFound, got %v", err)
	}
}
