package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/keremavan/feed-engine/internal/domain"
)

type EmployeeService interface {
	Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	GetByID(ctx context.Context, employeeID int) (*domain.Employee, error)
	GetAll(ctx context.Context) ([]domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	Delete(ctx context.Context, employeeID int) error
	TransferDepartment(ctx context.Context, employeeIDs []int, department string) (int64, error)
}

type EmployeeHandler struct {
	service EmployeeService
}

func NewEmployeeHandler(service EmployeeService) (*EmployeeHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("employee service is required")
	}
	return &EmployeeHandler{service: service}, nil
}

func RegisterEmployeeRoutes(router fiber.Router, service EmployeeService) error {
	h, err := NewEmployeeHandler(service)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Post("/employees", h.CreateEmployee)
	v1.Get("/employees", h.ListEmployees)
	v1.Get("/employees/:id", h.GetEmployee)
	v1.Put("/employees/:id", h.UpdateEmployee)
	v1.Delete("/employees/:id", h.DeleteEmployee)
	v1.Post("/employees/transfer", h.TransferDepartment)

	return nil
}

type employeeRequest struct {
	EmployeeID int     `json:"employeeId"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
	JoinDate   string  `json:"joinDate"`
}

type employeeResponse struct {
	EmployeeID int       `json:"employeeId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Department string    `json:"department"`
	Salary     float64   `json:"salary"`
	JoinDate   string    `json:"joinDate"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty"`
}

type transferRequest struct {
	EmployeeIDs []int  `json:"employeeIds"`
	Department  string `json:"department"`
}

type transferResponse struct {
	Moved      int64  `json:"moved"`
	Department string `json:"department"`
}

func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var req employeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	employee, err := requestToDomainEmployee(req)
	if err != nil {
		return toHTTPError(err)
	}

	created, err := h.service.Create(c.Context(), &employee)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(toEmployeeResponse(created))
}

func (h *EmployeeHandler) ListEmployees(c *fiber.Ctx) error {
	employees, err := h.service.GetAll(c.Context())
	if err != nil {
		return toHTTPError(err)
	}

	responses := make([]employeeResponse, 0, len(employees))
	for i := range employees {
		responses = append(responses, toEmployeeResponse(&employees[i]))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": responses})
}

func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := employeeIDParam(c)
	if err != nil {
		return toHTTPError(err)
	}

	employee, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(toEmployeeResponse(employee))
}

func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := employeeIDParam(c)
	if err != nil {
		return toHTTPError(err)
	}

	var req employeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req.EmployeeID = id

	employee, err := requestToDomainEmployee(req)
	if err != nil {
		return toHTTPError(err)
	}

	updated, err := h.service.Update(c.Context(), &employee)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(toEmployeeResponse(updated))
}

func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := employeeIDParam(c)
	if err != nil {
		return toHTTPError(err)
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return toHTTPError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *EmployeeHandler) TransferDepartment(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	moved, err := h.service.TransferDepartment(c.Context(), req.EmployeeIDs, req.Department)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(transferResponse{
		Moved:      moved,
		Department: strings.TrimSpace(req.Department),
	})
}

func employeeIDParam(c *fiber.Ctx) (int, error) {
	raw := strings.TrimSpace(c.Params("id"))
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: employee id must be a positive integer", domain.ErrValidation)
	}
	return id, nil
}

func requestToDomainEmployee(req employeeRequest) (domain.Employee, error) {
	joinDate, err := time.Parse(domain.DateLayout, strings.TrimSpace(req.JoinDate))
	if err != nil {
		return domain.Employee{}, fmt.Errorf("%w: joinDate must be yyyy-MM-dd", domain.ErrValidation)
	}

	return domain.Employee{
		EmployeeID: req.EmployeeID,
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Department: strings.TrimSpace(req.Department),
		Salary:     req.Salary,
		JoinDate:   joinDate,
	}, nil
}

func toEmployeeResponse(e *domain.Employee) employeeResponse {
	if e == nil {
		return employeeResponse{}
	}

	return employeeResponse{
		EmployeeID: e.EmployeeID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Phone:      e.Phone,
		Department: e.Department,
		Salary:     e.Salary,
		JoinDate:   e.JoinDate.Format(domain.DateLayout),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return err
	}
}
