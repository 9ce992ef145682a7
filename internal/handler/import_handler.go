package handler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/keremavan/feed-engine/internal/importer"
	"github.com/keremavan/feed-engine/internal/ratelimit"
)

type ImportService interface {
	Targets() []string
	ImportFile(ctx context.Context, target, path string) (importer.Summary, error)
	ScanTarget(ctx context.Context, target, dir string) ([]importer.FileResult, error)
}

type ImportHandler struct {
	service ImportService
	scanDir string
}

func NewImportHandler(service ImportService, scanDir string) (*ImportHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("import service is required")
	}
	return &ImportHandler{service: service, scanDir: scanDir}, nil
}

// RegisterImportRoutes wires the upload and scan endpoints; limiter may be
// nil to disable upload throttling.
func RegisterImportRoutes(router fiber.Router, service ImportService, limiter ratelimit.RateLimiter, scanDir string) error {
	h, err := NewImportHandler(service, scanDir)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Post("/imports/:target", rateLimitMiddleware(limiter), h.ImportFeed)
	v1.Post("/imports/:target/scan", h.ScanFeedDirectory)
	v1.Get("/imports/targets", h.ListTargets)

	return nil
}

type importSummaryResponse struct {
	BatchID        string   `json:"batchId"`
	File           string   `json:"file"`
	Target         string   `json:"target"`
	Status         string   `json:"status"`
	Message        string   `json:"message"`
	TotalAttempted int      `json:"totalAttempted"`
	Imported       int      `json:"imported"`
	Failed         int      `json:"failed"`
	Failures       []string `json:"failures,omitempty"`
	DurationMillis int64    `json:"durationMillis"`
}

type scanResultItem struct {
	File    string                 `json:"file"`
	Error   string                 `json:"error,omitempty"`
	Summary *importSummaryResponse `json:"summary,omitempty"`
}

func (h *ImportHandler) ImportFeed(c *fiber.Ctx) error {
	target := strings.TrimSpace(c.Params("target"))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "multipart file field is required")
	}

	tmpDir, err := os.MkdirTemp("", "feed-upload-*")
	if err != nil {
		return fmt.Errorf("failed to stage upload: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, filepath.Base(fileHeader.Filename))
	if err := c.SaveFile(fileHeader, path); err != nil {
		return fmt.Errorf("failed to save upload: %w", err)
	}

	summary, err := h.service.ImportFile(c.Context(), target, path)
	if err != nil {
		return toHTTPError(err)
	}

	resp := toImportSummaryResponse(summary)
	resp.File = fileHeader.Filename

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *ImportHandler) ScanFeedDirectory(c *fiber.Ctx) error {
	target := strings.TrimSpace(c.Params("target"))

	dir := strings.TrimSpace(c.Query("dir"))
	if dir == "" {
		dir = h.scanDir
	}
	if dir == "" {
		return fiber.NewError(fiber.StatusBadRequest, "no scan directory configured")
	}

	results, err := h.service.ScanTarget(c.Context(), target, dir)
	if err != nil {
		return toHTTPError(err)
	}

	items := make([]scanResultItem, 0, len(results))
	for _, res := range results {
		item := scanResultItem{File: res.File}
		if res.Err != nil {
			item.Error = res.Err.Error()
		} else {
			summary := toImportSummaryResponse(res.Summary)
			item.Summary = &summary
		}
		items = append(items, item)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"directory": dir,
		"files":     len(items),
		"results":   items,
	})
}

func (h *ImportHandler) ListTargets(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"targets": h.service.Targets(),
	})
}

func rateLimitMiddleware(limiter ratelimit.RateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}

		allowed, err := limiter.Allow(c.Context(), c.Params("target"))
		if err != nil {
			// A broken limiter must not block imports.
			return c.Next()
		}
		if !allowed {
			return fiber.NewError(fiber.StatusTooManyRequests, "import rate limit exceeded")
		}
		return c.Next()
	}
}

func toImportSummaryResponse(summary importer.Summary) importSummaryResponse {
	return importSummaryResponse{
		BatchID:        summary.BatchID,
		File:           summary.File,
		Target:         summary.Target,
		Status:         summary.Status.Result(),
		Message:        summary.Message,
		TotalAttempted: summary.TotalAttempted,
		Imported:       summary.Successful,
		Failed:         len(summary.Failures),
		Failures:       summary.Failures,
		DurationMillis: summary.Duration.Milliseconds(),
	}
}
