package importer

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeStore struct {
	existsFn func(ctx context.Context, key string) (bool, error)
	insertFn func(ctx context.Context, rec Record) (int64, error)

	inserted []Record
}

func (s *fakeStore) Exists(ctx context.Context, key string) (bool, error) {
	if s.existsFn != nil {
		return s.existsFn(ctx, key)
	}
	return false, nil
}

func (s *fakeStore) Insert(ctx context.Context, rec Record) (int64, error) {
	s.inserted = append(s.inserted, rec)
	if s.insertFn != nil {
		return s.insertFn(ctx, rec)
	}
	return 1, nil
}

func employeeRow(number int, fields ...string) Row {
	return Row{Number: number, Fields: fields}
}

var validEmployeeFields = []string{"1", "John", "Doe", "john@doe.com", "5551234", "Eng", "50000", "2023-01-15"}

func TestProcessRowImports(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	got := processRow(context.Background(), store, EmployeeTarget{}, nil, employeeRow(2, validEmployeeFields...))

	if !got.Imported {
		t.Fatalf("outcome = %+v, want imported", got)
	}
	if got.Key != "1" {
		t.Fatalf("Key = %s, want 1", got.Key)
	}
	if got.Message != "Successfully imported Employee ID: 1" {
		t.Fatalf("Message = %q", got.Message)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d records, want 1", len(store.inserted))
	}
}

func TestProcessRowIncompleteRecord(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	got := processRow(context.Background(), store, EmployeeTarget{}, nil,
		employeeRow(2, "1", "John", "Doe", "john@doe.com", "5551234"))

	if got.Imported {
		t.Fatal("expected rejection for incomplete record")
	}
	if got.Message != "Line 2: Incomplete set of data. Expected 8 fields, got 5. Skipping record." {
		t.Fatalf("Message = %q", got.Message)
	}
	if len(store.inserted) != 0 {
		t.Fatal("incomplete record must not reach the store")
	}
}

func TestProcessRowShortCircuitsOnFirstInvalidField(t *testing.T) {
	t.Parallel()

	// Both the email and the phone are invalid; only the email, which comes
	// first in field order, may be reported.
	fields := []string{"1", "John", "Doe", "not-an-email", "555-12x34", "Eng", "50000", "2023-01-15"}
	got := processRow(context.Background(), &fakeStore{}, EmployeeTarget{}, nil, employeeRow(2, fields...))

	if got.Imported {
		t.Fatal("expected rejection")
	}
	if !strings.Contains(got.Message, "Invalid email format") {
		t.Fatalf("Message = %q, want email failure", got.Message)
	}
	if strings.Contains(got.Message, "phone") {
		t.Fatalf("Message = %q, must not mention the later phone failure", got.Message)
	}
}

func TestProcessRowDuplicateTakesPrecedenceOverInsert(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		existsFn: func(ctx context.Context, key string) (bool, error) { return true, nil },
	}
	got := processRow(context.Background(), store, EmployeeTarget{}, nil, employeeRow(2, validEmployeeFields...))

	if got.Imported {
		t.Fatal("expected duplicate rejection")
	}
	if got.Message != "Line 2: Employee ID 1 already exists (Duplicate). Skipping record." {
		t.Fatalf("Message = %q", got.Message)
	}
	if len(store.inserted) != 0 {
		t.Fatal("duplicate must not be inserted")
	}
}

func TestProcessRowDuplicateCheckStorageError(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		existsFn: func(ctx context.Context, key string) (bool, error) {
			return false, errors.New("connection reset")
		},
	}
	got := processRow(context.Background(), store, EmployeeTarget{}, nil, employeeRow(3, validEmployeeFields...))

	if got.Imported {
		t.Fatal("expected rejection")
	}
	// "could not check" is never reported as "found a duplicate".
	if strings.Contains(got.Message, "Duplicate") {
		t.Fatalf("Message = %q, must not claim a duplicate", got.Message)
	}
	if !strings.Contains(got.Message, "Storage error checking duplicate") {
		t.Fatalf("Message = %q, want storage error", got.Message)
	}
}

func TestProcessRowInsertFailures(t *testing.T) {
	t.Parallel()

	zeroRows := &fakeStore{
		insertFn: func(ctx context.Context, rec Record) (int64, error) { return 0, nil },
	}
	got := processRow(context.Background(), zeroRows, EmployeeTarget{}, nil, employeeRow(2, validEmployeeFields...))
	if got.Imported || !strings.Contains(got.Message, "0 rows affected") {
		t.Fatalf("Message = %q, want zero-rows failure", got.Message)
	}

	failing := &fakeStore{
		insertFn: func(ctx context.Context, rec Record) (int64, error) {
			return 0, errors.New("unique violation")
		},
	}
	got = processRow(context.Background(), failing, EmployeeTarget{}, nil, employeeRow(2, validEmployeeFields...))
	if got.Imported || !strings.Contains(got.Message, "unique violation") {
		t.Fatalf("Message = %q, want insert failure with cause", got.Message)
	}
}

type fakeKeyCache struct {
	seen       map[string]bool
	remembered [][]string
}

func (c *fakeKeyCache) Seen(ctx context.Context, target, key string) bool {
	return c.seen[target+"/"+key]
}

func (c *fakeKeyCache) Remember(ctx context.Context, target string, keys []string) {
	c.remembered = append(c.remembered, keys)
}

func TestProcessRowCacheFastPath(t *testing.T) {
	t.Parallel()

	storageTouched := false
	store := &fakeStore{
		existsFn: func(ctx context.Context, key string) (bool, error) {
			storageTouched = true
			return false, nil
		},
	}
	cache := &fakeKeyCache{seen: map[string]bool{"employees/1": true}}

	got := processRow(context.Background(), store, EmployeeTarget{}, cache, employeeRow(2, validEmployeeFields...))

	if got.Imported {
		t.Fatal("expected duplicate rejection from cache")
	}
	if storageTouched {
		t.Fatal("cache hit must skip the storage lookup")
	}
}

func TestInventoryTargetParse(t *testing.T) {
	t.Parallel()

	rec, ferr := InventoryTarget{}.Parse([]string{"SKU-9", "Widget", "4", "19.99"})
	if ferr != nil {
		t.Fatalf("Parse() unexpected error = %v", ferr)
	}
	if rec.Key() != "SKU-9" {
		t.Fatalf("Key() = %s, want SKU-9", rec.Key())
	}

	_, ferr = InventoryTarget{}.Parse([]string{"SKU-9", "Widget", "4", "-1"})
	if ferr == nil || ferr.Code != CodeNegativeAmount {
		t.Fatalf("Parse() error = %v, want CodeNegativeAmount", ferr)
	}
}
