package importer

import (
	"testing"
)

func TestSummarizeStatusTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		total      int
		successful int
		failures   []string
		want       Status
	}{
		{name: "no lines", total: 0, successful: 0, want: StatusEmpty},
		{name: "all imported", total: 3, successful: 3, want: StatusAllSucceeded},
		{name: "mixed", total: 3, successful: 2, failures: []string{"Line 3: bad"}, want: StatusPartialSuccess},
		{name: "all rejected", total: 2, successful: 0, failures: []string{"Line 2: bad", "Line 3: bad"}, want: StatusAllFailed},
		{name: "single success", total: 1, successful: 1, want: StatusAllSucceeded},
		{name: "single failure", total: 1, successful: 0, failures: []string{"Line 2: bad"}, want: StatusAllFailed},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Summarize(tt.total, tt.successful, tt.failures)
			if got.Status != tt.want {
				t.Fatalf("Summarize(%d, %d, %d failures).Status = %s, want %s",
					tt.total, tt.successful, len(tt.failures), got.Status, tt.want)
			}
			if got.TotalAttempted != tt.total || got.Successful != tt.successful {
				t.Fatalf("Summarize() counts = (%d, %d), want (%d, %d)",
					got.TotalAttempted, got.Successful, tt.total, tt.successful)
			}
		})
	}
}

func TestStatusResultTaxonomy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status Status
		want   string
	}{
		{StatusAllSucceeded, "Success"},
		{StatusPartialSuccess, "PartialSuccess"},
		{StatusAllFailed, "Failure"},
		{StatusEmpty, "Failure"},
	}

	for _, tt := range tests {
		if got := tt.status.Result(); got != tt.want {
			t.Errorf("%s.Result() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestSummarizeEmptyMessage(t *testing.T) {
	t.Parallel()

	got := Summarize(0, 0, nil)
	if got.Message != "no records found" {
		t.Fatalf("Summarize().Message = %q, want %q", got.Message, "no records found")
	}
}

func TestSummarizePreservesFailureOrder(t *testing.T) {
	t.Parallel()

	failures := []string{"Line 2: first", "Line 4: second", "Line 5: third"}
	got := Summarize(5, 2, failures)

	if len(got.Failures) != 3 {
		t.Fatalf("len(Failures) = %d, want 3", len(got.Failures))
	}
	for i, want := range failures {
		if got.Failures[i] != want {
			t.Fatalf("Failures[%d] = %q, want %q", i, got.Failures[i], want)
		}
	}
}

func TestOutcomeMessages(t *testing.T) {
	t.Parallel()

	if got := imported(2, "Employee ID", "1"); got.Message != "Successfully imported Employee ID: 1" {
		t.Fatalf("imported message = %q", got.Message)
	}
	if got := rejected(3, "Email cannot be empty"); got.Message != "Line 3: Email cannot be empty. Skipping record." {
		t.Fatalf("rejected message = %q", got.Message)
	}
	if got := skipped(2); got.Message != "Line 2: SKIPPED (Empty Line)" {
		t.Fatalf("skipped message = %q", got.Message)
	}
}
