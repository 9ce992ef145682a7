package queue

import (
	"fmt"
	"strings"
	"time"
)

// BatchEvent is the broker payload announcing a finished import batch.
// Downstream consumers (reporting, reconciliation) key on BatchID.
type BatchEvent struct {
	BatchID        string    `json:"batchId"`
	File           string    `json:"file"`
	Target         string    `json:"target"`
	Status         string    `json:"status"`
	TotalAttempted int       `json:"totalAttempted"`
	Imported       int       `json:"imported"`
	Failed         int       `json:"failed"`
	DurationMillis int64     `json:"durationMillis"`
	OccurredAt     time.Time `json:"occurredAt"`
}

func (e BatchEvent) Validate() error {
	if strings.TrimSpace(e.BatchID) == "" {
		return fmt.Errorf("batchId is required")
	}
	if !isSupportedTarget(e.Target) {
		return fmt.Errorf("invalid target %q", e.Target)
	}
	if strings.TrimSpace(e.Status) == "" {
		return fmt.Errorf("status is required")
	}
	if e.TotalAttempted < 0 || e.Imported < 0 || e.Failed < 0 {
		return fmt.Errorf("counts cannot be negative")
	}
	// Failed may exceed the attempted lines: a read abort records one
	// synthetic failure entry that is not a line.
	if e.Imported+e.Failed < e.TotalAttempted {
		return fmt.Errorf("counts do not add up: %d imported + %d failed < %d attempted",
			e.Imported, e.Failed, e.TotalAttempted)
	}
	return nil
}
