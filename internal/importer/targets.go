package importer

import (
	"github.com/keremavan/feed-engine/internal/domain"
)

// EmployeeTarget parses employee feed lines:
// id, first name, last name, email, phone, department, salary, join date.
type EmployeeTarget struct{}

func (EmployeeTarget) Name() string   { return "employees" }
func (EmployeeTarget) Label() string  { return "Employee ID" }
func (EmployeeTarget) MinFields() int { return 8 }

func (EmployeeTarget) Parse(fields []string) (Record, *FieldError) {
	id, ferr := ParseID("Employee ID", fields[0])
	if ferr != nil {
		return nil, ferr
	}
	first, ferr := ParseText("First Name", fields[1])
	if ferr != nil {
		return nil, ferr
	}
	last, ferr := ParseText("Last Name", fields[2])
	if ferr != nil {
		return nil, ferr
	}
	email, ferr := ParseEmail("Email", fields[3])
	if ferr != nil {
		return nil, ferr
	}
	phone, ferr := ParsePhone("Phone", fields[4])
	if ferr != nil {
		return nil, ferr
	}
	department, ferr := ParseText("Department", fields[5])
	if ferr != nil {
		return nil, ferr
	}
	// Salary imports do not enforce non-negativity; adjustments can be
	// negative in source systems.
	salary, ferr := ParseAmount("Salary", fields[6], true)
	if ferr != nil {
		return nil, ferr
	}
	joinDate, ferr := ParseDate("Join Date", fields[7])
	if ferr != nil {
		return nil, ferr
	}

	return &domain.Employee{
		EmployeeID: id,
		FirstName:  first,
		LastName:   last,
		Email:      email,
		Phone:      phone,
		Department: department,
		Salary:     salary,
		JoinDate:   joinDate,
	}, nil
}

// InventoryTarget parses inventory feed lines:
// sku, product name, quantity, price.
type InventoryTarget struct{}

func (InventoryTarget) Name() string   { return "inventory" }
func (InventoryTarget) Label() string  { return "SKU" }
func (InventoryTarget) MinFields() int { return 4 }

func (InventoryTarget) Parse(fields []string) (Record, *FieldError) {
	sku, ferr := ParseText("SKU", fields[0])
	if ferr != nil {
		return nil, ferr
	}
	name, ferr := ParseText("Product Name", fields[1])
	if ferr != nil {
		return nil, ferr
	}
	quantity, ferr := ParseQuantity("Quantity", fields[2], false)
	if ferr != nil {
		return nil, ferr
	}
	price, ferr := ParseAmount("Price", fields[3], false)
	if ferr != nil {
		return nil, ferr
	}

	return &domain.InventoryItem{
		SKU:         sku,
		ProductName: name,
		Quantity:    quantity,
		Price:       price,
	}, nil
}
