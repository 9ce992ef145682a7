package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/keremavan/feed-engine/internal/domain"
	"github.com/keremavan/feed-engine/internal/repository"
)

// Product list orderings accepted by List.
const (
	SortByName      = "name"
	SortByPriceAsc  = "price_asc"
	SortByPriceDesc = "price_desc"
)

type ProductService struct {
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewProductService(products repository.ProductRepository, logger *zap.Logger) (*ProductService, error) {
	if products == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ProductService{
		products: products,
		logger:   logger,
	}, nil
}

func (s *ProductService) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if p == nil {
		return nil, fmt.Errorf("%w: product is required", domain.ErrValidation)
	}

	p.Name = strings.TrimSpace(p.Name)
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		p.ID = domain.NewProductID()
	}
	if p.Status == "" {
		p.Status = domain.ProductAvailable
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("productId", p.ID),
		zap.String("category", p.Category.String()),
	)
	return p, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: product id is required", domain.ErrValidation)
	}
	return s.products.GetByID(ctx, id)
}

// List returns the full catalog ordered by sortBy; an empty sortBy means
// name order.
func (s *ProductService) List(ctx context.Context, sortBy string) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := sortProducts(products, sortBy); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) ListByCategory(ctx context.Context, category string, sortBy string) ([]domain.Product, error) {
	parsed, err := domain.ParseProductCategory(category)
	if err != nil {
		return nil, err
	}

	products, err := s.products.ListByCategory(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if err := sortProducts(products, sortBy); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if p == nil {
		return nil, fmt.Errorf("%w: product is required", domain.ErrValidation)
	}

	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		return nil, fmt.Errorf("%w: product id is required", domain.ErrValidation)
	}
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("product updated", zap.String("productId", p.ID))
	return s.products.GetByID(ctx, p.ID)
}

func (s *ProductService) UpdateStatus(ctx context.Context, id string, status string) (*domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: product id is required", domain.ErrValidation)
	}

	parsed, err := domain.ParseProductStatus(status)
	if err != nil {
		return nil, err
	}

	if err := s.products.UpdateStatus(ctx, id, parsed); err != nil {
		return nil, err
	}

	s.logger.Info("product status updated",
		zap.String("productId", id),
		zap.String("status", parsed.String()),
	)
	return s.products.GetByID(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: product id is required", domain.ErrValidation)
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("product deleted", zap.String("productId", id))
	return nil
}

func sortProducts(products []domain.Product, sortBy string) error {
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "", SortByName:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
		})
	case SortByPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortByPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	default:
		return fmt.Errorf("%w: unsupported sort %q", domain.ErrValidation, sortBy)
	}
	return nil
}
