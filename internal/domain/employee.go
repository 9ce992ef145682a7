package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)
	phonePattern = regexp.MustCompile(`^[0-9]+$`)
)

// DateLayout is the calendar date format accepted on all date fields.
const DateLayout = "2006-01-02"

// Employee is a single personnel record keyed by its employee id.
type Employee struct {
	EmployeeID int
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Department string
	Salary     float64
	JoinDate   time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Key returns the unique record identifier as text.
func (e *Employee) Key() string { return strconv.Itoa(e.EmployeeID) }

func (e *Employee) Validate() error {
	if e.EmployeeID <= 0 {
		return fmt.Errorf("%w: employee id must be positive", ErrValidation)
	}
	if strings.TrimSpace(e.FirstName) == "" {
		return fmt.Errorf("%w: first name is required", ErrValidation)
	}
	if strings.TrimSpace(e.LastName) == "" {
		return fmt.Errorf("%w: last name is required", ErrValidation)
	}
	if !emailPattern.MatchString(e.Email) {
		return fmt.Errorf("%w: invalid email %q", ErrValidation, e.Email)
	}
	if !phonePattern.MatchString(e.Phone) {
		return fmt.Errorf("%w: invalid phone %q", ErrValidation, e.Phone)
	}
	if strings.TrimSpace(e.Department) == "" {
		return fmt.Errorf("%w: department is required", ErrValidation)
	}
	if e.JoinDate.IsZero() {
		return fmt.Errorf("%w: join date is required", ErrValidation)
	}
	return nil
}

// ValidEmail reports whether raw matches the conservative address shape
// used on both the import and CRUD paths.
func ValidEmail(raw string) bool { return emailPattern.MatchString(raw) }

// ValidPhone reports whether raw is digits only.
func ValidPhone(raw string) bool { return phonePattern.MatchString(raw) }
