package importer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/keremavan/feed-engine/internal/domain"
)

// KeyCache is an advisory fast path in front of the transactional duplicate
// check. Misses and cache failures fall through to storage; the unique key
// constraint remains the source of truth.
type KeyCache interface {
	Seen(ctx context.Context, target, key string) bool
	Remember(ctx context.Context, target string, keys []string)
}

// BatchImporter runs whole-file imports with all-or-nothing transactional
// semantics: any line failure rolls back every insert of the batch.
type BatchImporter struct {
	conn      Connector
	target    Target
	delimiter string
	cache     KeyCache
	logger    *zap.Logger
	open      func(path, delimiter string) (RowSource, error)
}

func NewBatchImporter(conn Connector, target Target, delimiter string, cache KeyCache, logger *zap.Logger) (*BatchImporter, error) {
	if conn == nil {
		return nil, fmt.Errorf("connector is required")
	}
	if target == nil {
		return nil, fmt.Errorf("target is required")
	}
	if delimiter == "" {
		delimiter = ","
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &BatchImporter{
		conn:      conn,
		target:    target,
		delimiter: delimiter,
		cache:     cache,
		logger:    logger,
		open:      OpenSource,
	}, nil
}

// ImportFile processes one feed file as one batch. It always returns a
// complete Summary for a batch that ran; an error is returned only for
// conditions that prevented the pipeline from running at all (no
// transaction, unreadable path).
func (b *BatchImporter) ImportFile(ctx context.Context, path string) (Summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	tx, err := b.conn.Begin(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: failed to begin import transaction: %v", domain.ErrStorage, err)
	}

	src, err := b.open(path, b.delimiter)
	if err != nil {
		_ = tx.Rollback()
		return Summary{}, err
	}
	defer src.Close()

	var (
		total     int
		succeeded int
		failures  []string
		imported  []string
		committed bool
	)
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for {
		row, ok := src.Next()
		if !ok {
			break
		}
		total++

		if row.Fields == nil {
			outcome := skipped(row.Number)
			failures = append(failures, outcome.Message)
			b.logger.Warn("line skipped", zap.String("file", path), zap.Int("line", row.Number))
			continue
		}

		outcome := processRow(ctx, tx, b.target, b.cache, row)
		if outcome.Imported {
			succeeded++
			imported = append(imported, outcome.Key)
			continue
		}
		failures = append(failures, outcome.Message)
		b.logger.Warn("line rejected",
			zap.String("file", path),
			zap.Int("line", row.Number),
			zap.String("reason", outcome.Message),
		)
	}

	// A hard read failure aborts the remaining lines but still flows
	// through the normal summary channel as one critical entry.
	if err := src.Err(); err != nil {
		failures = append(failures, fmt.Sprintf("Critical error reading file: %v", err))
		b.logger.Error("feed read aborted", zap.String("file", path), zap.Error(err))
	}

	if len(failures) == 0 {
		if err := tx.Commit(); err != nil {
			return Summary{}, fmt.Errorf("%w: failed to commit import transaction: %v", domain.ErrStorage, err)
		}
		committed = true
		if b.cache != nil && len(imported) > 0 {
			// Keys become advisory knowledge only once they are durable.
			b.cache.Remember(ctx, b.target.Name(), imported)
		}
	}

	summary := Summarize(total, succeeded, failures)
	summary.File = path
	summary.Target = b.target.Name()
	summary.Duration = time.Since(start)

	b.logger.Info("batch finished",
		zap.String("file", path),
		zap.String("target", b.target.Name()),
		zap.String("status", summary.Status.String()),
		zap.Int("attempted", summary.TotalAttempted),
		zap.Int("imported", summary.Successful),
		zap.Int("failed", len(summary.Failures)),
		zap.Duration("duration", summary.Duration),
	)

	return summary, nil
}
