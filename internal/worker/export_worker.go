// Package worker renders export jobs consumed from the queue.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"gyeongbi/internal/amqp"
	"gyeongbi/internal/export"
	"gyeongbi/internal/ledger"
)

// ExportWorker projects the current ledger and renders one job's
// requested formats concurrently. File formats land in outputDir; the
// sheets format goes through the publisher when one is configured.
type ExportWorker struct {
	ledger    *ledger.Ledger
	renderers map[export.Format]export.Renderer
	publisher export.Publisher
	outputDir string
}

func NewExportWorker(l *ledger.Ledger, renderers []export.Renderer, publisher export.Publisher, outputDir string) *ExportWorker {
	byFormat := make(map[export.Format]export.Renderer, len(renderers))
	for _, r := range renderers {
		byFormat[r.Format()] = r
	}
	return &ExportWorker{
		ledger:    l,
		renderers: byFormat,
		publisher: publisher,
		outputDir: outputDir,
	}
}

// HandleExportJob processes one job. Unsupported formats are logged
// and skipped so a bad format name cannot wedge the queue; render and
// write failures are returned for redelivery.
func (w *ExportWorker) HandleExportJob(ctx context.Context, msg *amqp.ExportJobMessage) error {
	// The API process owns the list; re-read it so each job renders
	// the state at dispatch time, not at worker startup.
	w.ledger.Reload()
	records := w.ledger.Records(ctx)
	doc := export.Project(records, msg.Author, msg.CreatedDate, msg.StartDate, msg.EndDate)

	slog.InfoContext(ctx, "Rendering export job",
		"period", msg.StartDate+" ~ "+msg.EndDate,
		"rows", len(doc.Rows),
		"formats", msg.Formats)

	// The filename comes from the client; keep only the last path
	// element so it cannot point outside outputDir.
	filename := filepath.Base(msg.Filename)
	if filename == "." || filename == ".." || filename == "/" {
		filename = "expenses"
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, f := range msg.Formats {
		format := export.Format(f)
		if format == export.FormatSheets {
			if w.publisher == nil {
				slog.WarnContext(ctx, "Sheets target not configured, skipping format")
				continue
			}
			g.Go(func() error {
				if err := w.publisher.Publish(ctx, doc); err != nil {
					return fmt.Errorf("publish to sheets: %w", err)
				}
				return nil
			})
			continue
		}

		renderer, ok := w.renderers[format]
		if !ok {
			slog.WarnContext(ctx, "Unsupported export format, skipping",
				"format", f, "error", export.ErrUnsupportedFormat)
			continue
		}
		g.Go(func() error {
			body, err := renderer.Render(ctx, doc)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			path := filepath.Join(w.outputDir, fmt.Sprintf("%s.%s", filename, format))
			if err := os.WriteFile(path, body, 0644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			slog.InfoContext(ctx, "Export written", "path", path, "bytes", len(body))
			return nil
		})
	}
	return g.Wait()
}
