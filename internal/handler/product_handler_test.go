package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/keremavan/feed-engine/internal/domain"
)

type fakeProductService struct {
	createFn         func(ctx context.Context, p *domain.Product) (*domain.Product, error)
	getByIDFn        func(ctx context.Context, id string) (*domain.Product, error)
	listFn           func(ctx context.Context, sortBy string) ([]domain.Product, error)
	listByCategoryFn func(ctx context.Context, category, sortBy string) ([]domain.Product, error)
	updateFn         func(ctx context.Context, p *domain.Product) (*domain.Product, error)
	updateStatusFn   func(ctx context.Context, id, status string) (*domain.Product, error)
	deleteFn         func(ctx context.Context, id string) error
}

func (f *fakeProductService) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return p, nil
}

func (f *fakeProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProductService) List(ctx context.Context, sortBy string) ([]domain.Product, error) {
	if f.listFn != nil {
		return f.listFn(ctx, sortBy)
	}
	return nil, nil
}

func (f *fakeProductService) ListByCategory(ctx context.Context, category, sortBy string) ([]domain.Product, error) {
	if f.listByCategoryFn != nil {
		return f.listByCategoryFn(ctx, category, sortBy)
	}
	return nil, nil
}

func (f *fakeProductService) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, p)
	}
	return p, nil
}

func (f *fakeProductService) UpdateStatus(ctx context.Context, id, status string) (*domain.Product, error) {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, id, status)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProductService) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func newProductTestApp(t *testing.T, svc ProductService) *fiber.App {
	t.Helper()

	app := fiber.New()
	if err := RegisterProductRoutes(app, svc); err != nil {
		t.Fatalf("RegisterProductRoutes() error = %v", err)
	}
	return app
}

func TestCreateProductCarriesCategoryPayload(t *testing.T) {
	t.Parallel()

	svc := &fakeProductService{
		createFn: func(ctx context.Context, p *domain.Product) (*domain.Product, error) {
			if p.Category != domain.CategoryElectronics {
				t.Fatalf("category = %v, want electronics", p.Category)
			}
			if p.Electronics == nil || p.Electronics.Brand != "Acme" || p.Electronics.WarrantyMonths != 24 {
				t.Fatalf("electronics detail = %+v", p.Electronics)
			}
			if p.Clothing != nil || p.Grocery != nil {
				t.Fatal("other category payloads must stay empty")
			}
			p.ID = "prod-1"
			p.Status = domain.ProductAvailable
			return p, nil
		},
	}
	app := newProductTestApp(t, svc)

	body, _ := json.Marshal(map[string]any{
		"name":           "Laptop",
		"price":          1299.99,
		"category":       "ELECTRONICS",
		"brand":          "Acme",
		"warrantyMonths": 24,
	})
	req := httptest.NewRequest(fiber.MethodPost, "/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusCreated)
	}

	var got productResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != "prod-1" {
		t.Errorf("id = %q, want prod-1", got.ID)
	}
	if got.Brand == nil || *got.Brand != "Acme" {
		t.Errorf("brand = %v, want Acme", got.Brand)
	}
	if got.Size != nil || got.ExpiryDate != nil {
		t.Error("response must not carry fields of other categories")
	}
}

func TestCreateProductUnknownCategoryRejected(t *testing.T) {
	t.Parallel()

	called := false
	svc := &fakeProductService{
		createFn: func(ctx context.Context, p *domain.Product) (*domain.Product, error) {
			called = true
			return p, nil
		},
	}
	app := newProductTestApp(t, svc)

	body, _ := json.Marshal(map[string]any{
		"name":     "Mystery",
		"price":    1.0,
		"category": "FURNITURE",
	})
	req := httptest.NewRequest(fiber.MethodPost, "/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
	}
	if called {
		t.Fatal("service must not be called for an unknown category")
	}
}

func TestCreateProductBadExpiryDateRejected(t *testing.T) {
	t.Parallel()

	app := newProductTestApp(t, &fakeProductService{})

	body, _ := json.Marshal(map[string]any{
		"name":       "Milk",
		"price":      2.5,
		"category":   "GROCERY",
		"expiryDate": "15-01-2026",
		"weightKg":   1.0,
	})
	req := httptest.NewRequest(fiber.MethodPost, "/v1/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusBadRequest)
	}
}

func TestListProductsForwardsCategoryAndSort(t *testing.T) {
	t.Parallel()

	expiry := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := &fakeProductService{
		listByCategoryFn: func(ctx context.Context, category, sortBy string) ([]domain.Product, error) {
			if category != "GROCERY" {
				t.Fatalf("category = %q, want GROCERY", category)
			}
			if sortBy != "price_asc" {
				t.Fatalf("sortBy = %q, want price_asc", sortBy)
			}
			return []domain.Product{
				{
					ID:       "prod-9",
					Name:     "Rice",
					Price:    3.2,
					Status:   domain.ProductAvailable,
					Category: domain.CategoryGrocery,
					Grocery:  &domain.GroceryDetail{ExpiryDate: expiry, WeightKG: 5},
				},
			}, nil
		},
	}
	app := newProductTestApp(t, svc)

	req := httptest.NewRequest(fiber.MethodGet, "/v1/products?category=GROCERY&sort=price_asc", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}

	var got struct {
		Data []productResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.Data) != 1 {
		t.Fatalf("len(data) = %d, want 1", len(got.Data))
	}
	if got.Data[0].ExpiryDate == nil || *got.Data[0].ExpiryDate != "2026-03-01" {
		t.Errorf("expiryDate = %v, want 2026-03-01", got.Data[0].ExpiryDate)
	}
}

func TestUpdateProductStatus(t *testing.T) {
	t.Parallel()

	svc := &fakeProductService{
		updateStatusFn: func(ctx context.Context, id, status string) (*domain.Product, error) {
			if id != "prod-3" {
				t.Fatalf("id = %q, want prod-3", id)
			}
			if status != "DISCONTINUED" {
				t.Fatalf("status = %q, want DISCONTINUED", status)
			}
			return &domain.Product{
				ID:       id,
				Name:     "Jacket",
				Status:   domain.ProductDiscontinued,
				Category: domain.CategoryClothing,
				Clothing: &domain.ClothingDetail{Size: "M", Material: "wool"},
			}, nil
		},
	}
	app := newProductTestApp(t, svc)

	body, _ := json.Marshal(map[string]string{"status": "DISCONTINUED"})
	req := httptest.NewRequest(fiber.MethodPatch, "/v1/products/prod-3/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}

	var got productResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Status != "DISCONTINUED" {
		t.Errorf("status = %q, want DISCONTINUED", got.Status)
	}
}

func TestDeleteProductNotFound(t *testing.T) {
	t.Parallel()

	svc := &fakeProductService{
		deleteFn: func(ctx context.Context, id string) error {
			return domain.ErrNotFound
		},
	}
	app := newProductTestApp(t, svc)

	req := httptest.NewRequest(fiber.MethodDelete, "/v1/products/missing", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusNotFound)
	}
}
