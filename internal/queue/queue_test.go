package queue

import (
	"testing"
	"time"
)

func TestQueueNames(t *testing.T) {
	work := WorkQueueNames()
	if len(work) != 2 {
		t.Fatalf("WorkQueueNames len = %d, want 2", len(work))
	}

	expected := map[string]struct{}{
		"imports.employees": {},
		"imports.inventory": {},
	}

	for _, name := range work {
		if _, ok := expected[name]; !ok {
			t.Fatalf("unexpected queue name: %s", name)
		}
	}

	dlq := DLQNames()
	if len(dlq) != 2 {
		t.Fatalf("DLQNames len = %d, want 2", len(dlq))
	}

	expectedDLQ := map[string]struct{}{
		"dlq.imports.employees": {},
		"dlq.imports.inventory": {},
	}

	for _, name := range dlq {
		if _, ok := expectedDLQ[name]; !ok {
			t.Fatalf("unexpected dlq name: %s", name)
		}
	}
}

func TestQueueName(t *testing.T) {
	if got := QueueName("employees"); got != "imports.employees" {
		t.Fatalf("QueueName = %s, want imports.employees", got)
	}
	if got := DLQName("inventory"); got != "dlq.imports.inventory" {
		t.Fatalf("DLQName = %s, want dlq.imports.inventory", got)
	}
}

func TestBatchEventValidate(t *testing.T) {
	event := BatchEvent{
		BatchID:        "b1",
		File:           "employees.csv",
		Target:         "employees",
		Status:         "ALL_SUCCEEDED",
		TotalAttempted: 3,
		Imported:       3,
		OccurredAt:     time.Now().UTC(),
	}
	if err := event.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}

	event.BatchID = ""
	if err := event.Validate(); err == nil {
		t.Fatal("expected error for empty batch id")
	}

	event.BatchID = "b1"
	event.Target = "orders"
	if err := event.Validate(); err == nil {
		t.Fatal("expected error for unknown target")
	}

	event.Target = "employees"
	event.Status = ""
	if err := event.Validate(); err == nil {
		t.Fatal("expected error for empty status")
	}

	event.Status = "PARTIAL_SUCCESS"
	event.Imported = 1
	event.Failed = 1
	if err := event.Validate(); err == nil {
		t.Fatal("expected error when counts do not cover the attempted lines")
	}

	// A read abort records one synthetic failure entry beyond the line
	// count; such events must still validate.
	event.Imported = 2
	event.Failed = 2
	if err := event.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error for read-abort counts: %v", err)
	}
}
