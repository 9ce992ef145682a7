package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/keremavan/feed-engine/internal/domain"
	"github.com/keremavan/feed-engine/internal/repository"
)

// KeyCache lets destructive writes invalidate the advisory import key cache,
// so a deleted record can be re-imported without a false duplicate rejection.
type KeyCache interface {
	Forget(ctx context.Context, target string, keys ...string)
}

type EmployeeService struct {
	employees repository.EmployeeRepository
	cache     KeyCache
	logger    *zap.Logger
}

func NewEmployeeService(employees repository.EmployeeRepository, cache KeyCache, logger *zap.Logger) (*EmployeeService, error) {
	if employees == nil {
		return nil, fmt.Errorf("employee repository is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &EmployeeService{
		employees: employees,
		cache:     cache,
		logger:    logger,
	}, nil
}

func (s *EmployeeService) Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if e == nil {
		return nil, fmt.Errorf("%w: employee is required", domain.ErrValidation)
	}

	normalizeEmployee(e)
	if err := e.Validate(); err != nil {
		return nil, err
	}

	if err := s.employees.Create(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("employee created", zap.Int("employeeId", e.EmployeeID))
	return e, nil
}

func (s *EmployeeService) GetByID(ctx context.Context, employeeID int) (*domain.Employee, error) {
	if employeeID <= 0 {
		return nil, fmt.Errorf("%w: employee id must be positive", domain.ErrValidation)
	}
	return s.employees.GetByID(ctx, employeeID)
}

func (s *EmployeeService) GetByIDs(ctx context.Context, employeeIDs []int) ([]domain.Employee, error) {
	for _, id := range employeeIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: employee id must be positive", domain.ErrValidation)
		}
	}
	return s.employees.GetByIDs(ctx, employeeIDs)
}

func (s *EmployeeService) GetAll(ctx context.Context) ([]domain.Employee, error) {
	return s.employees.GetAll(ctx)
}

func (s *EmployeeService) Update(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if e == nil {
		return nil, fmt.Errorf("%w: employee is required", domain.ErrValidation)
	}

	normalizeEmployee(e)
	if err := e.Validate(); err != nil {
		return nil, err
	}

	if err := s.employees.Update(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("employee updated", zap.Int("employeeId", e.EmployeeID))
	return s.employees.GetByID(ctx, e.EmployeeID)
}

func (s *EmployeeService) Delete(ctx context.Context, employeeID int) error {
	if employeeID <= 0 {
		return fmt.Errorf("%w: employee id must be positive", domain.ErrValidation)
	}

	if err := s.employees.Delete(ctx, employeeID); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Forget(ctx, "employees", strconv.Itoa(employeeID))
	}

	s.logger.Info("employee deleted", zap.Int("employeeId", employeeID))
	return nil
}

// TransferDepartment moves the listed employees into department. Every id
// must resolve to an existing employee or the whole transfer is refused.
func (s *EmployeeService) TransferDepartment(ctx context.Context, employeeIDs []int, department string) (int64, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	department = strings.TrimSpace(department)
	if department == "" {
		return 0, fmt.Errorf("%w: department is required", domain.ErrValidation)
	}
	if len(employeeIDs) == 0 {
		return 0, fmt.Errorf("%w: at least one employee id is required", domain.ErrValidation)
	}
	for _, id := range employeeIDs {
		if id <= 0 {
			return 0, fmt.Errorf("%w: employee id must be positive", domain.ErrValidation)
		}
	}

	existing, err := s.employees.GetByIDs(ctx, employeeIDs)
	if err != nil {
		return 0, err
	}
	if len(existing) != len(uniqueIDs(employeeIDs)) {
		return 0, fmt.Errorf("%w: one or more employees do not exist", domain.ErrNotFound)
	}

	moved, err := s.employees.TransferDepartment(ctx, employeeIDs, department)
	if err != nil {
		return 0, err
	}

	s.logger.Info("employees transferred",
		zap.Int64("moved", moved),
		zap.String("department", department),
	)
	return moved, nil
}

func normalizeEmployee(e *domain.Employee) {
	e.FirstName = strings.TrimSpace(e.FirstName)
	e.LastName = strings.TrimSpace(e.LastName)
	e.Email = strings.TrimSpace(e.Email)
	e.Phone = strings.TrimSpace(e.Phone)
	e.Department = strings.TrimSpace(e.Department)
}

func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
