package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/keremavan/feed-engine/internal/domain"
)

// FieldCode classifies why a single field failed validation.
type FieldCode string

const (
	CodeEmptyField     FieldCode = "EMPTY_FIELD"
	CodeNotANumber     FieldCode = "NOT_A_NUMBER"
	CodeMalformedEmail FieldCode = "MALFORMED_EMAIL"
	CodeMalformedPhone FieldCode = "MALFORMED_PHONE"
	CodeMalformedDate  FieldCode = "MALFORMED_DATE"
	CodeNegativeAmount FieldCode = "NEGATIVE_AMOUNT"
)

// FieldError is the classified failure of one field validator. Reason is a
// complete human-readable sentence fragment suitable for line diagnostics.
type FieldError struct {
	Field  string
	Code   FieldCode
	Reason string
}

func (e *FieldError) Error() string { return e.Reason }

func emptyField(field string) *FieldError {
	return &FieldError{
		Field:  field,
		Code:   CodeEmptyField,
		Reason: fmt.Sprintf("%s cannot be empty", field),
	}
}

// ParseID validates a unique numeric identifier: non-blank and a positive
// integer.
func ParseID(field, raw string) (int, *FieldError) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, emptyField(field)
	}
	id, err := strconv.Atoi(trimmed)
	if err != nil || id <= 0 {
		return 0, &FieldError{
			Field:  field,
			Code:   CodeNotANumber,
			Reason: fmt.Sprintf("Invalid %s format '%s'. Expected a positive number", field, trimmed),
		}
	}
	return id, nil
}

// ParseText validates a name-like field: non-blank after trimming.
func ParseText(field, raw string) (string, *FieldError) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", emptyField(field)
	}
	return trimmed, nil
}

// ParseEmail validates an address of the local@domain.tld shape.
func ParseEmail(field, raw string) (string, *FieldError) {
	trimmed, ferr := ParseText(field, raw)
	if ferr != nil {
		return "", ferr
	}
	if !domain.ValidEmail(trimmed) {
		return "", &FieldError{
			Field:  field,
			Code:   CodeMalformedEmail,
			Reason: fmt.Sprintf("Invalid email format '%s'", trimmed),
		}
	}
	return trimmed, nil
}

// ParsePhone validates a digits-only phone number.
func ParsePhone(field, raw string) (string, *FieldError) {
	trimmed, ferr := ParseText(field, raw)
	if ferr != nil {
		return "", ferr
	}
	if !domain.ValidPhone(trimmed) {
		return "", &FieldError{
			Field:  field,
			Code:   CodeMalformedPhone,
			Reason: fmt.Sprintf("Invalid phone number format '%s'. Expected digits only", trimmed),
		}
	}
	return trimmed, nil
}

// ParseAmount validates a decimal amount. Non-negativity is a per-target
// policy, not a universal rule.
func ParseAmount(field, raw string, allowNegative bool) (float64, *FieldError) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, emptyField(field)
	}
	amount, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &FieldError{
			Field:  field,
			Code:   CodeNotANumber,
			Reason: fmt.Sprintf("Invalid %s format '%s'. Expected a number", field, trimmed),
		}
	}
	if !allowNegative && amount < 0 {
		return 0, &FieldError{
			Field:  field,
			Code:   CodeNegativeAmount,
			Reason: fmt.Sprintf("Negative %s '%s' is not allowed", field, trimmed),
		}
	}
	return amount, nil
}

// ParseQuantity validates a whole-number amount with the same non-negativity
// policy as ParseAmount.
func ParseQuantity(field, raw string, allowNegative bool) (int, *FieldError) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, emptyField(field)
	}
	qty, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &FieldError{
			Field:  field,
			Code:   CodeNotANumber,
			Reason: fmt.Sprintf("Invalid %s format '%s'. Expected a whole number", field, trimmed),
		}
	}
	if !allowNegative && qty < 0 {
		return 0, &FieldError{
			Field:  field,
			Code:   CodeNegativeAmount,
			Reason: fmt.Sprintf("Negative %s '%s' is not allowed", field, trimmed),
		}
	}
	return qty, nil
}

// ParseDate validates an ISO-8601 calendar date (YYYY-MM-DD).
func ParseDate(field, raw string) (time.Time, *FieldError) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, emptyField(field)
	}
	parsed, err := time.Parse(domain.DateLayout, trimmed)
	if err != nil {
		return time.Time{}, &FieldError{
			Field:  field,
			Code:   CodeMalformedDate,
			Reason: fmt.Sprintf("Invalid date format '%s'. Expected YYYY-MM-DD", trimmed),
		}
	}
	return parsed, nil
}
