package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/keremavan/feed-engine/internal/domain"
	"github.com/keremavan/feed-engine/internal/repository"
)

type InventoryService struct {
	inventory repository.InventoryRepository
	cache     KeyCache
	logger    *zap.Logger
}

func NewInventoryService(inventory repository.InventoryRepository, cache KeyCache, logger *zap.Logger) (*InventoryService, error) {
	if inventory == nil {
		return nil, fmt.Errorf("inventory repository is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &InventoryService{
		inventory: inventory,
		cache:     cache,
		logger:    logger,
	}, nil
}

func (s *InventoryService) Create(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if item == nil {
		return nil, fmt.Errorf("%w: inventory item is required", domain.ErrValidation)
	}

	item.SKU = strings.TrimSpace(item.SKU)
	item.ProductName = strings.TrimSpace(item.ProductName)
	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := s.inventory.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("inventory item created", zap.String("sku", item.SKU))
	return item, nil
}

func (s *InventoryService) GetBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, fmt.Errorf("%w: sku is required", domain.ErrValidation)
	}
	return s.inventory.GetBySKU(ctx, sku)
}

func (s *InventoryService) GetAll(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.inventory.GetAll(ctx)
}

func (s *InventoryService) Update(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if item == nil {
		return nil, fmt.Errorf("%w: inventory item is required", domain.ErrValidation)
	}

	item.SKU = strings.TrimSpace(item.SKU)
	item.ProductName = strings.TrimSpace(item.ProductName)
	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := s.inventory.Update(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("inventory item updated", zap.String("sku", item.SKU))
	return s.inventory.GetBySKU(ctx, item.SKU)
}

func (s *InventoryService) Delete(ctx context.Context, sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return fmt.Errorf("%w: sku is required", domain.ErrValidation)
	}

	if err := s.inventory.Delete(ctx, sku); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Forget(ctx, "inventory", sku)
	}

	s.logger.Info("inventory item deleted", zap.String("sku", sku))
	return nil
}

// AdjustQuantity applies a relative stock change; a change that would drive
// the quantity negative is refused with a conflict.
func (s *InventoryService) AdjustQuantity(ctx context.Context, sku string, delta int) (*domain.InventoryItem, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, fmt.Errorf("%w: sku is required", domain.ErrValidation)
	}
	if delta == 0 {
		return s.inventory.GetBySKU(ctx, sku)
	}

	item, err := s.inventory.AdjustQuantity(ctx, sku, delta)
	if err != nil {
		return nil, err
	}

	s.logger.Info("inventory quantity adjusted",
		zap.String("sku", sku),
		zap.Int("delta", delta),
		zap.Int("quantity", item.Quantity),
	)
	return item, nil
}
