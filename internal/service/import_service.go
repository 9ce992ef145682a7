package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/keremavan/feed-engine/internal/importer"
	"github.com/keremavan/feed-engine/internal/observability"
	"github.com/keremavan/feed-engine/internal/queue"
)

// FileImporter runs one whole-file batch.
type FileImporter interface {
	ImportFile(ctx context.Context, path string) (importer.Summary, error)
}

// ImportService fronts the batch pipeline: it assigns batch ids, records
// metrics, and announces finished batches on the broker. Publish failures
// never fail a committed batch.
type ImportService struct {
	importers map[string]FileImporter
	publisher queue.Publisher
	metrics   *observability.Metrics
	workers   int
	logger    *zap.Logger
}

func NewImportService(
	importers map[string]FileImporter,
	publisher queue.Publisher,
	metrics *observability.Metrics,
	workers int,
	logger *zap.Logger,
) (*ImportService, error) {
	if len(importers) == 0 {
		return nil, fmt.Errorf("at least one import target is required")
	}
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ImportService{
		importers: importers,
		publisher: publisher,
		metrics:   metrics,
		workers:   workers,
		logger:    logger,
	}, nil
}

// Targets lists the supported import target names in stable order.
func (s *ImportService) Targets() []string {
	targets := make([]string, 0, len(s.importers))
	for name := range s.importers {
		targets = append(targets, name)
	}
	sort.Strings(targets)
	return targets
}

// ImportFile runs one file through the target's batch pipeline.
func (s *ImportService) ImportFile(ctx context.Context, target, path string) (importer.Summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	target = strings.ToLower(strings.TrimSpace(target))
	imp, ok := s.importers[target]
	if !ok {
		return importer.Summary{}, fmt.Errorf("unknown import target %q", target)
	}

	batchID := uuid.NewString()
	ctx = observability.WithBatchID(ctx, batchID)
	log := observability.WithContextLogger(s.logger, ctx)

	s.metrics.IncBatchInFlight(target)
	defer s.metrics.DecBatchInFlight(target)

	summary, err := imp.ImportFile(ctx, path)
	if err != nil {
		log.Error("batch did not run",
			zap.String("target", target),
			zap.String("file", path),
			zap.Error(err),
		)
		return importer.Summary{}, err
	}
	summary.BatchID = batchID

	s.metrics.IncBatch(target, summary.Status.String())
	s.metrics.ObserveBatchDuration(target, summary.Duration)
	if summary.Status == importer.StatusAllSucceeded {
		s.metrics.AddRowsImported(target, summary.Successful)
	}
	s.metrics.AddRowsRejected(target, len(summary.Failures))

	s.publishBatchEvent(ctx, log, summary)

	return summary, nil
}

// ScanTarget fans every feed file under dir out over the worker pool, each
// file as its own independent batch for the given target.
func (s *ImportService) ScanTarget(ctx context.Context, target, dir string) ([]importer.FileResult, error) {
	target = strings.ToLower(strings.TrimSpace(target))
	if _, ok := s.importers[target]; !ok {
		return nil, fmt.Errorf("unknown import target %q", target)
	}

	run := func(ctx context.Context, path string) (importer.Summary, error) {
		return s.ImportFile(ctx, target, path)
	}

	scanner, err := importer.NewScanner(run, s.workers, s.logger)
	if err != nil {
		return nil, err
	}
	return scanner.ScanDirectory(ctx, dir)
}

func (s *ImportService) publishBatchEvent(ctx context.Context, log *zap.Logger, summary importer.Summary) {
	if s.publisher == nil {
		return
	}

	event := queue.BatchEvent{
		BatchID:        summary.BatchID,
		File:           summary.File,
		Target:         summary.Target,
		Status:         summary.Status.String(),
		TotalAttempted: summary.TotalAttempted,
		Imported:       summary.Successful,
		Failed:         len(summary.Failures),
		DurationMillis: summary.Duration.Milliseconds(),
		OccurredAt:     time.Now().UTC(),
	}

	if err := s.publisher.Publish(ctx, queue.QueueName(summary.Target), event); err != nil {
		log.Error("failed to publish batch event",
			zap.String("target", summary.Target),
			zap.String("file", summary.File),
			zap.Error(err),
		)
	}
}
