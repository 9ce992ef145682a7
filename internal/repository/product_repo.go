package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/keremavan/feed-engine/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category domain.ProductCategory) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	UpdateStatus(ctx context.Context, id string, status domain.ProductStatus) error
	Delete(ctx context.Context, id string) error
}

type GormProductRepo struct {
	db *gorm.DB
}

func NewGormProductRepo(db *gorm.DB) *GormProductRepo {
	return &GormProductRepo{db: db}
}

func (r *GormProductRepo) Create(ctx context.Context, p *domain.Product) error {
	model := productModelFromDomain(p)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicate
		}
		return err
	}
	if p != nil {
		*p = *productModelToDomain(model)
	}
	return nil
}

func (r *GormProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var model ProductModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return productModelToDomain(&model), nil
}

func (r *GormProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	var models []ProductModel
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return productModelsToDomain(models), nil
}

func (r *GormProductRepo) ListByCategory(ctx context.Context, category domain.ProductCategory) ([]domain.Product, error) {
	var models []ProductModel
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return productModelsToDomain(models), nil
}

func (r *GormProductRepo) Update(ctx context.Context, p *domain.Product) error {
	model := productModelFromDomain(p)
	result := r.db.WithContext(ctx).
		Model(&ProductModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"name":            model.Name,
			"price":           model.Price,
			"status":          model.Status,
			"category":        model.Category,
			"brand":           model.Brand,
			"warranty_months": model.WarrantyMonths,
			"size":            model.Size,
			"material":        model.Material,
			"expiry_date":     model.ExpiryDate,
			"weight_kg":       model.WeightKG,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormProductRepo) UpdateStatus(ctx context.Context, id string, status domain.ProductStatus) error {
	result := r.db.WithContext(ctx).
		Model(&ProductModel{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormProductRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&ProductModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func productModelsToDomain(models []ProductModel) []domain.Product {
	products := make([]domain.Product, 0, len(models))
	for i := range models {
		products = append(products, *productModelToDomain(&models[i]))
	}
	return products
}
