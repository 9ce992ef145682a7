package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/keremavan/feed-engine/internal/domain"
)

type InventoryService interface {
	Create(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error)
	GetBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error)
	GetAll(ctx context.Context) ([]domain.InventoryItem, error)
	Update(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error)
	Delete(ctx context.Context, sku string) error
	AdjustQuantity(ctx context.Context, sku string, delta int) (*domain.InventoryItem, error)
}

type InventoryHandler struct {
	service InventoryService
}

func NewInventoryHandler(service InventoryService) (*InventoryHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("inventory service is required")
	}
	return &InventoryHandler{service: service}, nil
}

func RegisterInventoryRoutes(router fiber.Router, service InventoryService) error {
	h, err := NewInventoryHandler(service)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Post("/inventory", h.CreateItem)
	v1.Get("/inventory", h.ListItems)
	v1.Get("/inventory/:sku", h.GetItem)
	v1.Put("/inventory/:sku", h.UpdateItem)
	v1.Delete("/inventory/:sku", h.DeleteItem)
	v1.Post("/inventory/:sku/adjust", h.AdjustQuantity)

	return nil
}

type inventoryRequest struct {
	SKU         string  `json:"sku"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type inventoryResponse struct {
	SKU         string    `json:"sku"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

type adjustRequest struct {
	Delta int `json:"delta"`
}

func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var req inventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	item := requestToDomainItem(req)
	created, err := h.service.Create(c.Context(), &item)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(toInventoryResponse(created))
}

func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.service.GetAll(c.Context())
	if err != nil {
		return toHTTPError(err)
	}

	responses := make([]inventoryResponse, 0, len(items))
	for i := range items {
		responses = append(responses, toInventoryResponse(&items[i]))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": responses})
}

func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.service.GetBySKU(c.Context(), c.Params("sku"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(toInventoryResponse(item))
}

func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	var req inventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req.SKU = strings.TrimSpace(c.Params("sku"))

	item := requestToDomainItem(req)
	updated, err := h.service.Update(c.Context(), &item)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(toInventoryResponse(updated))
}

func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("sku")); err != nil {
		return toHTTPError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *InventoryHandler) AdjustQuantity(c *fiber.Ctx) error {
	var req adjustRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	item, err := h.service.AdjustQuantity(c.Context(), c.Params("sku"), req.Delta)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(toInventoryResponse(item))
}

func requestToDomainItem(req inventoryRequest) domain.InventoryItem {
	return domain.InventoryItem{
		SKU:         strings.TrimSpace(req.SKU),
		ProductName: strings.TrimSpace(req.ProductName),
		Quantity:    req.Quantity,
		Price:       req.Price,
	}
}

func toInventoryResponse(item *domain.InventoryItem) inventoryResponse {
	if item == nil {
		return inventoryResponse{}
	}

	return inventoryResponse{
		SKU:         item.SKU,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		Price:       item.Price,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
