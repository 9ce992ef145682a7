package repository

import (
	"time"

	"github.com/keremavan/feed-engine/internal/domain"
)

// EmployeeModel is the persistence model for the employees table.
type EmployeeModel struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	EmployeeID int       `gorm:"uniqueIndex;not null"`
	FirstName  string    `gorm:"type:varchar(100);not null"`
	LastName   string    `gorm:"type:varchar(100);not null"`
	Email      string    `gorm:"type:varchar(255);not null"`
	Phone      string    `gorm:"type:varchar(32);not null"`
	Department string    `gorm:"type:varchar(100);not null"`
	Salary     float64   `gorm:"type:numeric(12,2);not null"`
	JoinDate   time.Time `gorm:"type:date;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (EmployeeModel) TableName() string {
	return "employees"
}

// InventoryItemModel is the persistence model for the inventory table.
type InventoryItemModel struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"`
	SKU         string  `gorm:"type:varchar(64);uniqueIndex;not null"`
	ProductName string  `gorm:"type:varchar(255);not null"`
	Quantity    int     `gorm:"not null"`
	Price       float64 `gorm:"type:numeric(12,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (InventoryItemModel) TableName() string {
	return "inventory"
}

// ProductModel flattens the category-specific payloads into one row; the
// columns for the other categories stay NULL.
type ProductModel struct {
	ID             string                 `gorm:"type:uuid;primaryKey"`
	Name           string                 `gorm:"type:varchar(255);not null"`
	Price          float64                `gorm:"type:numeric(12,2);not null"`
	Status         domain.ProductStatus   `gorm:"type:varchar(20);not null"`
	Category       domain.ProductCategory `gorm:"type:varchar(20);not null;index"`
	Brand          *string                `gorm:"type:varchar(100)"`
	WarrantyMonths *int                   `gorm:"type:int"`
	Size           *string                `gorm:"type:varchar(20)"`
	Material       *string                `gorm:"type:varchar(100)"`
	ExpiryDate     *time.Time             `gorm:"type:date"`
	WeightKG       *float64               `gorm:"type:numeric(10,3)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ProductModel) TableName() string {
	return "products"
}

func employeeModelFromDomain(e *domain.Employee) *EmployeeModel {
	if e == nil {
		return nil
	}

	return &EmployeeModel{
		EmployeeID: e.EmployeeID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Phone:      e.Phone,
		Department: e.Department,
		Salary:     e.Salary,
		JoinDate:   e.JoinDate,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func employeeModelToDomain(m *EmployeeModel) *domain.Employee {
	if m == nil {
		return nil
	}

	return &domain.Employee{
		EmployeeID: m.EmployeeID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Email:      m.Email,
		Phone:      m.Phone,
		Department: m.Department,
		Salary:     m.Salary,
		JoinDate:   m.JoinDate,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func inventoryModelFromDomain(i *domain.InventoryItem) *InventoryItemModel {
	if i == nil {
		return nil
	}

	return &InventoryItemModel{
		SKU:         i.SKU,
		ProductName: i.ProductName,
		Quantity:    i.Quantity,
		Price:       i.Price,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func inventoryModelToDomain(m *InventoryItemModel) *domain.InventoryItem {
	if m == nil {
		return nil
	}

	return &domain.InventoryItem{
		SKU:         m.SKU,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		Price:       m.Price,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func productModelFromDomain(p *domain.Product) *ProductModel {
	if p == nil {
		return nil
	}

	m := &ProductModel{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Status:    p.Status,
		Category:  p.Category,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}

	switch p.Category {
	case domain.CategoryElectronics:
		if p.Electronics != nil {
			m.Brand = &p.Electronics.Brand
			m.WarrantyMonths = &p.Electronics.WarrantyMonths
		}
	case domain.CategoryClothing:
		if p.Clothing != nil {
			m.Size = &p.Clothing.Size
			m.Material = &p.Clothing.Material
		}
	case domain.CategoryGrocery:
		if p.Grocery != nil {
			m.ExpiryDate = &p.Grocery.ExpiryDate
			m.WeightKG = &p.Grocery.WeightKG
		}
	}

	return m
}

func productModelToDomain(m *ProductModel) *domain.Product {
	if m == nil {
		return nil
	}

	p := &domain.Product{
		ID:        m.ID,
		Name:      m.Name,
		Price:     m.Price,
		Status:    m.Status,
		Category:  m.Category,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	switch m.Category {
	case domain.CategoryElectronics:
		detail := &domain.ElectronicsDetail{}
		if m.Brand != nil {
			detail.Brand = *m.Brand
		}
		if m.WarrantyMonths != nil {
			detail.WarrantyMonths = *m.WarrantyMonths
		}
		p.Electronics = detail
	case domain.CategoryClothing:
		detail := &domain.ClothingDetail{}
		if m.Size != nil {
			detail.Size = *m.Size
		}
		if m.Material != nil {
			detail.Material = *m.Material
		}
		p.Clothing = detail
	case domain.CategoryGrocery:
		detail := &domain.GroceryDetail{}
		if m.ExpiryDate != nil {
			detail.ExpiryDate = *m.ExpiryDate
		}
		if m.WeightKG != nil {
			detail.WeightKG = *m.WeightKG
		}
		p.Grocery = detail
	}

	return p
}
