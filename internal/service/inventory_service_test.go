package service

import (
	"context"
	"errors"
	"testing"

	"github.com/keremavan/feed-engine/internal/domain"
)

type fakeInventoryRepo struct {
	createFn   func(ctx context.Context, item *domain.InventoryItem) error
	getBySKUFn func(ctx context.Context, sku string) (*domain.InventoryItem, error)
	getAllFn   func(ctx context.Context) ([]domain.InventoryItem, error)
	updateFn   func(ctx context.Context, item *domain.InventoryItem) error
	deleteFn   func(ctx context.Context, sku string) error
	adjustFn   func(ctx context.Context, sku string, delta int) (*domain.InventoryItem, error)
	existsFn   func(ctx context.Context, sku string) (bool, error)
}

func (f *fakeInventoryRepo) Create(ctx context.Context, item *domain.InventoryItem) error {
	if f.createFn != nil {
		return f.createFn(ctx, item)
	}
	return nil
}

func (f *fakeInventoryRepo) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	if f.existsFn != nil {
		return f.existsFn(ctx, sku)
	}
	return false, nil
}

func (f *fakeInventoryRepo) GetBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error) {
	if f.getBySKUFn != nil {
		return f.getBySKUFn(ctx, sku)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInventoryRepo) GetAll(ctx context.Context) ([]domain.InventoryItem, error) {
	if f.getAllFn != nil {
		return f.getAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeInventoryRepo) Update(ctx context.Context, item *domain.InventoryItem) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, item)
	}
	return nil
}

func (f *fakeInventoryRepo) Delete(ctx context.Context, sku string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, sku)
	}
	return nil
}

func (f *fakeInventoryRepo) AdjustQuantity(ctx context.Context, sku string, delta int) (*domain.InventoryItem, error) {
	if f.adjustFn != nil {
		return f.adjustFn(ctx, sku, delta)
	}
	return nil, domain.ErrNotFound
}

func TestInventoryServiceCreateValidates(t *testing.T) {
	t.Parallel()

	svc, err := NewInventoryService(&fakeInventoryRepo{
		createFn: func(ctx context.Context, item *domain.InventoryItem) error {
			t.Fatal("create must not be called for invalid item")
			return nil
		},
	}, nil, nil)
	if err != nil {
		t.Fatalf("NewInventoryService() error = %v", err)
	}

	item := &domain.InventoryItem{SKU: "SKU-1", ProductName: "Widget", Quantity: -5, Price: 9.99}
	if _, err := svc.Create(context.Background(), item); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("Create() error = %v, want validation error", err)
	}
}

func TestInventoryServiceCreateTrimsSKU(t *testing.T) {
	t.Parallel()

	svc, err := NewInventoryService(&fakeInventoryRepo{
		createFn: func(ctx context.Context, item *domain.InventoryItem) error {
			if item.SKU != "SKU-1" {
				t.Fatalf("sku = %q, want trimmed", item.SKU)
			}
			return nil
		},
	}, nil, nil)
	if err != nil {
		t.Fatalf("NewInventoryService() error = %v", err)
	}

	item := &domain.InventoryItem{SKU: " SKU-1 ", ProductName: "Widget", Quantity: 3, Price: 9.99}
	if _, err := svc.Create(context.Background(), item); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
}

func TestInventoryServiceAdjustQuantity(t *testing.T) {
	t.Parallel()

	svc, err := NewInventoryService(&fakeInventoryRepo{
		adjustFn: func(ctx context.Context, sku string, delta int) (*domain.InventoryItem, error) {
			if delta != -2 {
				t.Fatalf("delta = %d, want -2", delta)
			}
			return &domain.InventoryItem{SKU: sku, ProductName: "Widget", Quantity: 1, Price: 9.99}, nil
		},
	}, nil, nil)
	if err != nil {
		t.Fatalf("NewInventoryService() error = %v", err)
	}

	item, err := svc.AdjustQuantity(context.Background(), "SKU-1", -2)
	if err != nil {
		t.Fatalf("AdjustQuantity() error = %v", err)
	}
	if item.Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", item.Quantity)
	}
}

func TestInventoryServiceAdjustQuantityZeroDeltaReads(t *testing.T) {
	t.Parallel()

	svc, err := NewInventoryService(&fakeInventoryRepo{
		getBySKUFn: func(ctx context.Context, sku string) (*domain.InventoryItem, error) {
			return &domain.InventoryItem{SKU: sku, ProductName: "Widget", Quantity: 4, Price: 9.99}, nil
		},
		adjustFn: func(ctx context.Context, sku string, delta int) (*domain.InventoryItem, error) {
			t.Fatal("adjust must not run for zero delta")
			return nil, nil
		},
	}, nil, nil)
	if err != nil {
		t.Fatalf("NewInventoryService() error = %v", err)
	}

	item, err := svc.AdjustQuantity(context.Background(), "SKU-1", 0)
	if err != nil {
		t.Fatalf("AdjustQuantity() error = %v", err)
	}
	if item.Quantity != 4 {
		t.Fatalf("quantity = %d, want 4", item.Quantity)
	}
}

func TestInventoryServiceAdjustQuantityConflict(t *testing.T) {
	t.Parallel()

	svc, err := NewInventoryService(&fakeInventoryRepo{
		adjustFn: func(ctx context.Context, sku string, delta int) (*domain.InventoryItem, error) {
			return nil, domain.ErrConflict
		},
	}, nil, nil)
	if err != nil {
		t.Fatalf("NewInventoryService() error = %v", err)
	}

	if _, err := svc.AdjustQuantity(context.Background(), "SKU-1", -10); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("AdjustQuantity() error = %v, want conflict", err)
	}
}

func TestInventoryServiceDeleteForgetsImportKey(t *testing.T) {
	t.Parallel()

	cache := &fakeKeyCache{}
	svc, err := NewInventoryService(&fakeInventoryRepo{}, cache, nil)
	if err != nil {
		t.Fatalf("NewInventoryService() error = %v", err)
	}

	if err := svc.Delete(context.Background(), " SKU-1 "); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	keys := cache.forgotten["inventory"]
	if len(keys) != 1 || keys[0] != "SKU-1" {
		t.Fatalf("forgotten inventory keys = %v, want [SKU-1]", keys)
	}
}

func TestInventoryServiceDeleteRequiresSKU(t *testing.T) {
	t.Parallel()

	svc, err := NewInventoryService(&fakeInventoryRepo{}, nil, nil)
	if err != nil {
		t.Fatalf("NewInventoryService() error = %v", err)
	}

	if err := svc.Delete(context.Background(), "   "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("Delete() error = %v, want validation error", err)
	}
}
