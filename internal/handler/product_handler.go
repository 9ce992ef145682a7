package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/keremavan/feed-engine/internal/domain"
)

type ProductService interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, sortBy string) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category string, sortBy string) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	UpdateStatus(ctx context.Context, id string, status string) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductHandler struct {
	service ProductService
}

func NewProductHandler(service ProductService) (*ProductHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("product service is required")
	}
	return &ProductHandler{service: service}, nil
}

func RegisterProductRoutes(router fiber.Router, service ProductService) error {
	h, err := NewProductHandler(service)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Post("/products", h.CreateProduct)
	v1.Get("/products", h.ListProducts)
	v1.Get("/products/:id", h.GetProduct)
	v1.Put("/products/:id", h.UpdateProduct)
	v1.Patch("/products/:id/status", h.UpdateProductStatus)
	v1.Delete("/products/:id", h.DeleteProduct)

	return nil
}

type productRequest struct {
	Name           string   `json:"name"`
	Price          float64  `json:"price"`
	Status         string   `json:"status"`
	Category       string   `json:"category"`
	Brand          *string  `json:"brand,omitempty"`
	WarrantyMonths *int     `json:"warrantyMonths,omitempty"`
	Size           *string  `json:"size,omitempty"`
	Material       *string  `json:"material,omitempty"`
	ExpiryDate     *string  `json:"expiryDate,omitempty"`
	WeightKG       *float64 `json:"weightKg,omitempty"`
}

type productResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Price          float64   `json:"price"`
	Status         string    `json:"status"`
	Category       string    `json:"category"`
	Brand          *string   `json:"brand,omitempty"`
	WarrantyMonths *int      `json:"warrantyMonths,omitempty"`
	Size           *string   `json:"size,omitempty"`
	Material       *string   `json:"material,omitempty"`
	ExpiryDate     *string   `json:"expiryDate,omitempty"`
	WeightKG       *float64  `json:"weightKg,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt,omitempty"`
}

type productStatusRequest struct {
	Status string `json:"status"`
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	product, err := requestToDomainProduct(req)
	if err != nil {
		return toHTTPError(err)
	}

	created, err := h.service.Create(c.Context(), &product)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(toProductResponse(created))
}

func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	sortBy := c.Query("sort")
	category := strings.TrimSpace(c.Query("category"))

	var (
		products []domain.Product
		err      error
	)
	if category != "" {
		products, err = h.service.ListByCategory(c.Context(), category, sortBy)
	} else {
		products, err = h.service.List(c.Context(), sortBy)
	}
	if err != nil {
		return toHTTPError(err)
	}

	responses := make([]productResponse, 0, len(products))
	for i := range products {
		responses = append(responses, toProductResponse(&products[i]))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": responses})
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(toProductResponse(product))
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	product, err := requestToDomainProduct(req)
	if err != nil {
		return toHTTPError(err)
	}
	product.ID = strings.TrimSpace(c.Params("id"))

	updated, err := h.service.Update(c.Context(), &product)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(toProductResponse(updated))
}

func (h *ProductHandler) UpdateProductStatus(c *fiber.Ctx) error {
	var req productStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updated, err := h.service.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(toProductResponse(updated))
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return toHTTPError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func requestToDomainProduct(req productRequest) (domain.Product, error) {
	category, err := domain.ParseProductCategory(req.Category)
	if err != nil {
		return domain.Product{}, err
	}

	p := domain.Product{
		Name:     strings.TrimSpace(req.Name),
		Price:    req.Price,
		Category: category,
	}
	if strings.TrimSpace(req.Status) != "" {
		status, err := domain.ParseProductStatus(req.Status)
		if err != nil {
			return domain.Product{}, err
		}
		p.Status = status
	}

	switch category {
	case domain.CategoryElectronics:
		detail := &domain.ElectronicsDetail{}
		if req.Brand != nil {
			detail.Brand = strings.TrimSpace(*req.Brand)
		}
		if req.WarrantyMonths != nil {
			detail.WarrantyMonths = *req.WarrantyMonths
		}
		p.Electronics = detail
	case domain.CategoryClothing:
		detail := &domain.ClothingDetail{}
		if req.Size != nil {
			detail.Size = strings.TrimSpace(*req.Size)
		}
		if req.Material != nil {
			detail.Material = strings.TrimSpace(*req.Material)
		}
		p.Clothing = detail
	case domain.CategoryGrocery:
		detail := &domain.GroceryDetail{}
		if req.ExpiryDate != nil {
			expiry, err := time.Parse(domain.DateLayout, strings.TrimSpace(*req.ExpiryDate))
			if err != nil {
				return domain.Product{}, fmt.Errorf("%w: expiryDate must be yyyy-MM-dd", domain.ErrValidation)
			}
			detail.ExpiryDate = expiry
		}
		if req.WeightKG != nil {
			detail.WeightKG = *req.WeightKG
		}
		p.Grocery = detail
	}

	return p, nil
}

func toProductResponse(p *domain.Product) productResponse {
	if p == nil {
		return productResponse{}
	}

	resp := productResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Status:    p.Status.String(),
		Category:  p.Category.String(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}

	switch p.Category {
	case domain.CategoryElectronics:
		if p.Electronics != nil {
			resp.Brand = &p.Electronics.Brand
			resp.WarrantyMonths = &p.Electronics.WarrantyMonths
		}
	case domain.CategoryClothing:
		if p.Clothing != nil {
			resp.Size = &p.Clothing.Size
			resp.Material = &p.Clothing.Material
		}
	case domain.CategoryGrocery:
		if p.Grocery != nil {
			expiry := p.Grocery.ExpiryDate.Format(domain.DateLayout)
			resp.ExpiryDate = &expiry
			resp.WeightKG = &p.Grocery.WeightKG
		}
	}

	return resp
}
