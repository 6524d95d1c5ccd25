package service

import (
	"context"
	"errors"
	"testing"

	"attar/internal/domain"
	"attar/internal/repository"
)

func setupCart(t *testing.T) (*repository.MemoryStore, *CartService) {
	t.Helper()
	store := repository.NewMemoryStore()
	return store, NewCartService(store)
}

func seedProduct(t *testing.T, store *repository.MemoryStore, name string, price int64) *domain.Product {
	t.Helper()
	p := domain.Product{Name: name, Brand: "Bardiya", Price: price, Stock: 10}
	if err := store.Create(context.Background(), &p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return &p
}

func TestAddLine(t *testing.T) {
	ctx := context.Background()
	store, cart := setupCart(t)
	p := seedProduct(t, store, "Oud Royale", 100)

	lines, err := cart.AddLine(ctx, nil, p.ID, 3)
	if err != nil {
		t.Fatalf("add line: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 || lines[0].Price != 100 || lines[0].Name != "Oud Royale" {
		t.Fatalf("bad snapshot: %+v", lines[0])
	}

	view, err := cart.Resolve(ctx, lines)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if view.TotalPrice != 300 {
		t.Fatalf("total expected 300, got %d", view.TotalPrice)
	}
}

func TestAddLine_NonMerging(t *testing.T) {
	ctx := context.Background()
	store, cart := setupCart(t)
	p := seedProduct(t, store, "Amber Noir", 50)

	lines, err := cart.AddLine(ctx, nil, p.ID, 1)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	lines, err = cart.AddLine(ctx, lines, p.ID, 1)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	// повторное добавление не сливается в одну строку
	if len(lines) != 2 {
		t.Fatalf("expected 2 separate lines, got %d", len(lines))
	}
	view, _ := cart.Resolve(ctx, lines)
	if view.TotalPrice != 100 {
		t.Fatalf("total expected 100, got %d", view.TotalPrice)
	}
}

func TestAddLine_InvalidQuantity(t *testing.T) {
	ctx := context.Background()
	store, cart := setupCart(t)
	p := seedProduct(t, store, "Rose Attar", 70)

	for _, qty := range []int64{0, -1} {
		if _, err := cart.AddLine(ctx, nil, p.ID, qty); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("qty %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
}

func TestAddLine_ProductNotFound(t *testing.T) {
	ctx := context.Background()
	_, cart := setupCart(t)
	if _, err := cart.AddLine(ctx, nil, "missing", 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestResolve_StaleLineSurfaced(t *testing.T) {
	ctx := context.Background()
	store, cart := setupCart(t)
	p := seedProduct(t, store, "Vetiver", 80)

	lines, err := cart.AddLine(ctx, nil, p.ID, 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	// товар удалён из каталога между добавлением и просмотром
	if err := store.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	view, err := cart.Resolve(ctx, lines)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("expected no resolved lines, got %d", len(view.Lines))
	}
	if len(view.Stale) != 1 || view.Stale[0].ProductID != p.ID {
		t.Fatalf("stale line not surfaced: %+v", view.Stale)
	}
	if view.TotalPrice != 0 {
		t.Fatalf("total must exclude stale lines, got %d", view.TotalPrice)
	}
}

func TestResolve_UsesCurrentPrice(t *testing.T) {
	ctx := context.Background()
	store, cart := setupCart(t)
	p := seedProduct(t, store, "Musk", 100)

	lines, _ := cart.AddLine(ctx, nil, p.ID, 1)

	p.Price = 120
	if err := store.Update(ctx, p); err != nil {
		t.Fatalf("update price: %v", err)
	}

	view, err := cart.Resolve(ctx, lines)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if view.TotalPrice != 120 {
		t.Fatalf("expected current catalog price 120, got %d", view.TotalPrice)
	}
	// снапшот в самой строке не переписывается
	if lines[0].Price != 100 {
		t.Fatalf("snapshot price must stay 100, got %d", lines[0].Price)
	}
}

func TestClear_Idempotent(t *testing.T) {
	ctx := context.Background()
	store, cart := setupCart(t)
	p := seedProduct(t, store, "Saffron", 30)

	lines, _ := cart.AddLine(ctx, nil, p.ID, 1)
	lines = cart.Clear(lines)
	if len(lines) != 0 {
		t.Fatalf("expected empty cart")
	}
	lines = cart.Clear(lines)
	if len(lines) != 0 {
		t.Fatalf("second clear must be a no-op")
	}
}
