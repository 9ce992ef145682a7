package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/keremavan/feed-engine/internal/domain"
)

type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) error
	ExistsByID(ctx context.Context, employeeID int) (bool, error)
	GetByID(ctx context.Context, employeeID int) (*domain.Employee, error)
	GetByIDs(ctx context.Context, employeeIDs []int) ([]domain.Employee, error)
	GetAll(ctx context.Context) ([]domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, employeeID int) error
	TransferDepartment(ctx context.Context, employeeIDs []int, department string) (int64, error)
}

type GormEmployeeRepo struct {
	db *gorm.DB
}

func NewGormEmployeeRepo(db *gorm.DB) *GormEmployeeRepo {
	return &GormEmployeeRepo{db: db}
}

func (r *GormEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	model := employeeModelFromDomain(e)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicate
		}
		return err
	}
	if e != nil {
		*e = *employeeModelToDomain(model)
	}
	return nil
}

func (r *GormEmployeeRepo) ExistsByID(ctx context.Context, employeeID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&EmployeeModel{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormEmployeeRepo) GetByID(ctx context.Context, employeeID int) (*domain.Employee, error) {
	var model EmployeeModel
	err := r.db.WithContext(ctx).First(&model, "employee_id = ?", employeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return employeeModelToDomain(&model), nil
}

func (r *GormEmployeeRepo) GetByIDs(ctx context.Context, employeeIDs []int) ([]domain.Employee, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}

	var models []EmployeeModel
	err := r.db.WithContext(ctx).
		Where("employee_id IN ?", employeeIDs).
		Order("employee_id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	employees := make([]domain.Employee, 0, len(models))
	for i := range models {
		employees = append(employees, *employeeModelToDomain(&models[i]))
	}
	return employees, nil
}

func (r *GormEmployeeRepo) GetAll(ctx context.Context) ([]domain.Employee, error) {
	var models []EmployeeModel
	err := r.db.WithContext(ctx).
		Order("employee_id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	employees := make([]domain.Employee, 0, len(models))
	for i := range models {
		employees = append(employees, *employeeModelToDomain(&models[i]))
	}
	return employees, nil
}

func (r *GormEmployeeRepo) Update(ctx context.Context, e *domain.Employee) error {
	result := r.db.WithContext(ctx).
		Model(&EmployeeModel{}).
		Where("employee_id = ?", e.EmployeeID).
		Updates(map[string]any{
			"first_name": e.FirstName,
			"last_name":  e.LastName,
			"email":      e.Email,
			"phone":      e.Phone,
			"department": e.Department,
			"salary":     e.Salary,
			"join_date":  e.JoinDate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormEmployeeRepo) Delete(ctx context.Context, employeeID int) error {
	result := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&EmployeeModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// TransferDepartment moves every listed employee to department in one
// statement and reports how many rows actually changed.
func (r *GormEmployeeRepo) TransferDepartment(ctx context.Context, employeeIDs []int, department string) (int64, error) {
	if len(employeeIDs) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Model(&EmployeeModel{}).
		Where("employee_id IN ?", employeeIDs).
		Update("department", department)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
