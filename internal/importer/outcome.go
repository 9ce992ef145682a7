package importer

import (
	"fmt"
	"time"
)

// Status classifies the overall outcome of one batch.
type Status string

const (
	StatusEmpty          Status = "EMPTY"
	StatusAllSucceeded   Status = "ALL_SUCCEEDED"
	StatusPartialSuccess Status = "PARTIAL_SUCCESS"
	StatusAllFailed      Status = "ALL_FAILED"
)

func (s Status) String() string { return string(s) }

// Result collapses the batch status into the three-value taxonomy surfaced
// to callers. An empty batch counts as a failure: nothing was imported.
func (s Status) Result() string {
	switch s {
	case StatusAllSucceeded:
		return "Success"
	case StatusPartialSuccess:
		return "PartialSuccess"
	default:
		return "Failure"
	}
}

// LineOutcome is the immutable result of processing one input line. Exactly
// one outcome exists per attempted line.
type LineOutcome struct {
	LineNumber int
	Key        string
	Imported   bool
	Message    string
}

// Imported builds the success outcome for one line.
func imported(lineNumber int, label, key string) LineOutcome {
	return LineOutcome{
		LineNumber: lineNumber,
		Key:        key,
		Imported:   true,
		Message:    fmt.Sprintf("Successfully imported %s: %s", label, key),
	}
}

// rejected builds a failure outcome carrying one reason; the reason is a
// sentence fragment without trailing punctuation.
func rejected(lineNumber int, reason string) LineOutcome {
	return LineOutcome{
		LineNumber: lineNumber,
		Message:    fmt.Sprintf("Line %d: %s. Skipping record.", lineNumber, reason),
	}
}

// skipped builds the outcome for a blank line. It counts as a failure in the
// summary but is distinguished by its message text.
func skipped(lineNumber int) LineOutcome {
	return LineOutcome{
		LineNumber: lineNumber,
		Message:    fmt.Sprintf("Line %d: SKIPPED (Empty Line)", lineNumber),
	}
}

// Summary aggregates all line outcomes of one batch. It is created once at
// the end of the batch and never mutated afterwards.
type Summary struct {
	BatchID        string
	File           string
	Target         string
	TotalAttempted int
	Successful     int
	Failures       []string
	Status         Status
	Message        string
	Duration       time.Duration
}

// Summarize folds the per-line counts into a classified summary.
// totalAttempted == successful + len(failures) holds by construction for
// every batch that read to the end; a read abort adds one synthetic
// failure entry on top of the attempted lines.
func Summarize(totalAttempted, successful int, failures []string) Summary {
	s := Summary{
		TotalAttempted: totalAttempted,
		Successful:     successful,
		Failures:       failures,
	}

	switch {
	case totalAttempted == 0:
		s.Status = StatusEmpty
		s.Message = "no records found"
	case len(failures) == 0:
		s.Status = StatusAllSucceeded
		s.Message = fmt.Sprintf("all %d records imported", successful)
	case successful > 0:
		s.Status = StatusPartialSuccess
		s.Message = fmt.Sprintf("%d of %d records imported", successful, totalAttempted)
	default:
		s.Status = StatusAllFailed
		s.Message = "no records imported"
	}
	return s
}
