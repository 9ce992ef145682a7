package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/keremavan/feed-engine/internal/domain"
)

type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	GetBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error)
	GetAll(ctx context.Context) ([]domain.InventoryItem, error)
	Update(ctx context.Context, item *domain.InventoryItem) error
	Delete(ctx context.Context, sku string) error
	AdjustQuantity(ctx context.Context, sku string, delta int) (*domain.InventoryItem, error)
}

type GormInventoryRepo struct {
	db *gorm.DB
}

func NewGormInventoryRepo(db *gorm.DB) *GormInventoryRepo {
	return &GormInventoryRepo{db: db}
}

func (r *GormInventoryRepo) Create(ctx context.Context, item *domain.InventoryItem) error {
	model := inventoryModelFromDomain(item)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicate
		}
		return err
	}
	if item != nil {
		*item = *inventoryModelToDomain(model)
	}
	return nil
}

func (r *GormInventoryRepo) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&InventoryItemModel{}).
		Where("sku = ?", sku).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormInventoryRepo) GetBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error) {
	var model InventoryItemModel
	err := r.db.WithContext(ctx).First(&model, "sku = ?", sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return inventoryModelToDomain(&model), nil
}

func (r *GormInventoryRepo) GetAll(ctx context.Context) ([]domain.InventoryItem, error) {
	var models []InventoryItemModel
	err := r.db.WithContext(ctx).
		Order("sku ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	items := make([]domain.InventoryItem, 0, len(models))
	for i := range models {
		items = append(items, *inventoryModelToDomain(&models[i]))
	}
	return items, nil
}

func (r *GormInventoryRepo) Update(ctx context.Context, item *domain.InventoryItem) error {
	result := r.db.WithContext(ctx).
		Model(&InventoryItemModel{}).
		Where("sku = ?", item.SKU).
		Updates(map[string]any{
			"product_name": item.ProductName,
			"quantity":     item.Quantity,
			"price":        item.Price,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormInventoryRepo) Delete(ctx context.Context, sku string) error {
	result := r.db.WithContext(ctx).
		Where("sku = ?", sku).
		Delete(&InventoryItemModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustQuantity applies a relative stock change. A negative delta that
// would take the quantity below zero matches no row and reports a conflict.
func (r *GormInventoryRepo) AdjustQuantity(ctx context.Context, sku string, delta int) (*domain.InventoryItem, error) {
	result := r.db.WithContext(ctx).
		Model(&InventoryItemModel{}).
		Where("sku = ? AND quantity + ? >= 0", sku, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		exists, err := r.ExistsBySKU(ctx, sku)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrConflict
	}
	return r.GetBySKU(ctx, sku)
}
