package service

import (
	"context"
	"testing"

	"attar/internal/domain"
	"attar/internal/repository"
)

func setupPS(t *testing.T) *ProductService {
	t.Helper()
	store := repository.NewMemoryStore()
	return NewProductService(store)
}

func TestProduct_Create_Valid(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	p, err := ps.Create(ctx, domain.Product{Name: "Oud Royale", Brand: "Bardiya", Price: 100, Stock: 10})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected id assigned")
	}
}

func TestProduct_Create_Invalid(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	if _, err := ps.Create(ctx, domain.Product{Name: "", Brand: "B", Price: 1, Stock: 1}); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := ps.Create(ctx, domain.Product{Name: "N", Brand: "", Price: 1, Stock: 1}); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := ps.Create(ctx, domain.Product{Name: "N", Brand: "B", Price: -1, Stock: 1}); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := ps.Create(ctx, domain.Product{Name: "N", Brand: "B", Price: 1, Stock: -1}); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := ps.Create(ctx, domain.Product{Name: "N", Brand: "B", Price: 1, Stock: 1, Rating: 6}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestProduct_Update_Get_Delete(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	p, _ := ps.Create(ctx, domain.Product{Name: "Amber", Brand: "Bardiya", Price: 10, Stock: 5})

	// get
	got, err := ps.GetByID(ctx, p.ID)
	if err != nil || got.ID != p.ID {
		t.Fatalf("get failed: %v", err)
	}

	// update
	p.Name = "Amber Noir"
	p.Price = 12
	p.Stock = 7
	up, err := ps.Update(ctx, *p)
	if err != nil {
		t.Fatalf("update err: %v", err)
	}
	if up.Name != "Amber Noir" || up.Price != 12 || up.Stock != 7 {
		t.Fatalf("not updated")
	}

	// delete
	if err := ps.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete err: %v", err)
	}
	if _, err := ps.GetByID(ctx, p.ID); err == nil {
		t.Fatalf("expected not found after delete")
	}
}

func TestProduct_List_Filtering(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	ps := NewProductService(store)
	must := func(p *domain.Product, err error) *domain.Product {
		if err != nil {
			t.Fatal(err)
		}
		return p
	}
	_ = must(ps.Create(ctx, domain.Product{Name: "Oud Royale", Brand: "Bardiya", Category: "oriental", Gender: "unisex", Price: 100, Stock: 5}))
	_ = must(ps.Create(ctx, domain.Product{Name: "Rose Attar", Brand: "Gulab", Category: "floral", Gender: "female", Price: 50, Stock: 5}))
	_ = must(ps.Create(ctx, domain.Product{Name: "Vetiver Sauvage", Brand: "Bardiya", Category: "woody", Gender: "male", Price: 150, Stock: 5}))

	// substring
	list, err := ps.List(ctx, repository.ProductFilter{NameSubstring: "att"})
	if err != nil {
		t.Fatalf("list err: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one match, got %d", len(list))
	}

	// brand
	list, err = ps.List(ctx, repository.ProductFilter{Brand: "bardiya"})
	if err != nil {
		t.Fatalf("list err: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("brand filter expected 2, got %d", len(list))
	}

	// min price
	min := int64(100)
	list, err = ps.List(ctx, repository.ProductFilter{MinPrice: &min})
	if err != nil {
		t.Fatalf("list err: %v", err)
	}
	for _, p := range list {
		if p.Price < min {
			t.Fatalf("price filter failed")
		}
	}

	// max price
	max := int64(100)
	list, err = ps.List(ctx, repository.ProductFilter{MaxPrice: &max})
	if err != nil {
		t.Fatalf("list err: %v", err)
	}
	for _, p := range list {
		if p.Price > max {
			t.Fatalf("price filter failed")
		}
	}
}
