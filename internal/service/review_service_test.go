package service

import (
	"context"
	"errors"
	"testing"

	"attar/internal/repository"
)

func TestReview_CreateAndList(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	rs := NewReviewService(repository.NewMemoryReviews(store), store)
	p := seedProduct(t, store, "Oud", 100)

	r, err := rs.Create(ctx, p.ID, "cust-1", 5, "  excellent sillage ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.Comment != "excellent sillage" {
		t.Fatalf("comment not trimmed: %q", r.Comment)
	}

	list, err := rs.ListByProduct(ctx, p.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v, len=%d", err, len(list))
	}

	if err := rs.Delete(ctx, r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, _ = rs.ListByProduct(ctx, p.ID)
	if len(list) != 0 {
		t.Fatalf("review not deleted")
	}
}

func TestReview_Validation(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	rs := NewReviewService(repository.NewMemoryReviews(store), store)
	p := seedProduct(t, store, "Oud", 100)

	if _, err := rs.Create(ctx, p.ID, "cust-1", 0, "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("rating 0: got %v", err)
	}
	if _, err := rs.Create(ctx, p.ID, "cust-1", 6, "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("rating 6: got %v", err)
	}
	if _, err := rs.Create(ctx, "missing", "cust-1", 4, "x"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing product: got %v", err)
	}
}
