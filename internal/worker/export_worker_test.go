package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gyeongbi/internal/amqp"
	"gyeongbi/internal/core"
	"gyeongbi/internal/export"
	"gyeongbi/internal/ledger"
	"gyeongbi/internal/store/memory"
)

type stubPrices struct{}

func (stubPrices) PricePerLiter(ctx context.Context, fuel core.FuelType, override int64) int64 {
	return 1850
}

type fakeRenderer struct {
	format export.Format
	body   []byte
	err    error
}

func (f fakeRenderer) Format() export.Format { return f.format }
func (f fakeRenderer) Render(ctx context.Context, doc export.Document) ([]byte, error) {
	return f.body, f.err
}

type fakePublisher struct {
	published int
	lastDoc   export.Document
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, doc export.Document) error {
	f.published++
	f.lastDoc = doc
	return f.err
}

func seededLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	l := ledger.New(memory.NewStore(), stubPrices{})
	_, err := l.Confirm(context.Background(), ledger.Draft{
		Date:        "2024-03-10",
		Incidentals: core.IncidentalExpenses{Meals: 12000},
	})
	if err != nil {
		t.Fatalf("seed ledger: %v", err)
	}
	return l
}

func TestHandleExportJobWritesFiles(t *testing.T) {
	dir := t.TempDir()
	w := NewExportWorker(seededLedger(t),
		[]export.Renderer{fakeRenderer{format: export.FormatCSV, body: []byte("csv-out")}},
		nil, dir)

	msg := amqp.NewExportJobMessage("Kim", "2024-04-05", "2024-03-01", "2024-03-31", []string{"csv"}, "march")
	if err := w.HandleExportJob(context.Background(), msg); err != nil {
		t.Fatalf("HandleExportJob: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "march.csv"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "csv-out" {
		t.Errorf("output = %q", data)
	}
}

func TestHandleExportJobPublishesSheets(t *testing.T) {
	pub := &fakePublisher{}
	w := NewExportWorker(seededLedger(t), nil, pub, t.TempDir())

	msg := amqp.NewExportJobMessage("Kim", "2024-04-05", "2024-03-01", "2024-03-31", []string{"sheets"}, "")
	if err := w.HandleExportJob(context.Background(), msg); err != nil {
		t.Fatalf("HandleExportJob: %v", err)
	}
	if pub.published != 1 {
		t.Errorf("published = %d, want 1", pub.published)
	}
	if pub.lastDoc.Summary.TotalAmount != 12000 {
		t.Errorf("published total = %d, want 12000", pub.lastDoc.Summary.TotalAmount)
	}
}

func TestHandleExportJobSeesWritesFromAnotherProcess(t *testing.T) {
	kv := memory.NewStore()
	writer := ledger.New(kv, stubPrices{})
	ctx := context.Background()
	if _, err := writer.Confirm(ctx, ledger.Draft{
		Date:        "2024-03-10",
		Incidentals: core.IncidentalExpenses{Meals: 12000},
	}); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}

	// The worker holds its own Ledger over the shared store, the way
	// the worker binary does.
	pub := &fakePublisher{}
	w := NewExportWorker(ledger.New(kv, stubPrices{}), nil, pub, t.TempDir())

	msg := amqp.NewExportJobMessage("Kim", "2024-04-05", "2024-03-01", "2024-03-31", []string{"sheets"}, "")
	if err := w.HandleExportJob(ctx, msg); err != nil {
		t.Fatalf("first job: %v", err)
	}
	if len(pub.lastDoc.Rows) != 1 {
		t.Fatalf("first job rows = %d, want 1", len(pub.lastDoc.Rows))
	}

	writer.DeleteAll(ctx)
	if err := w.HandleExportJob(ctx, msg); err != nil {
		t.Fatalf("second job: %v", err)
	}
	if len(pub.lastDoc.Rows) != 0 {
		t.Errorf("second job rows = %d, want 0 after delete-all", len(pub.lastDoc.Rows))
	}
}

func TestHandleExportJobKeepsFileInOutputDir(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(dir, "out")
	if err := os.Mkdir(outside, 0755); err != nil {
		t.Fatal(err)
	}
	w := NewExportWorker(seededLedger(t),
		[]export.Renderer{fakeRenderer{format: export.FormatCSV, body: []byte("csv-out")}},
		nil, outside)

	msg := amqp.NewExportJobMessage("Kim", "2024-04-05", "2024-03-01", "2024-03-31", []string{"csv"}, "../../escape")
	if err := w.HandleExportJob(context.Background(), msg); err != nil {
		t.Fatalf("HandleExportJob: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outside, "escape.csv")); err != nil {
		t.Errorf("expected file inside output dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.csv")); !os.IsNotExist(err) {
		t.Errorf("file escaped output dir: %v", err)
	}
}

func TestHandleExportJobDefaultFilename(t *testing.T) {
	dir := t.TempDir()
	w := NewExportWorker(seededLedger(t),
		[]export.Renderer{fakeRenderer{format: export.FormatCSV, body: []byte("csv-out")}},
		nil, dir)

	msg := amqp.NewExportJobMessage("Kim", "2024-04-05", "2024-03-01", "2024-03-31", []string{"csv"}, "..")
	if err := w.HandleExportJob(context.Background(), msg); err != nil {
		t.Fatalf("HandleExportJob: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "expenses.csv")); err != nil {
		t.Errorf("expected fallback filename: %v", err)
	}
}

func TestHandleExportJobSkipsUnsupportedFormats(t *testing.T) {
	w := NewExportWorker(seededLedger(t), nil, nil, t.TempDir())

	msg := amqp.NewExportJobMessage("Kim", "2024-04-05", "2024-03-01", "2024-03-31", []string{"xlsx", "png", "sheets"}, "")
	if err := w.HandleExportJob(context.Background(), msg); err != nil {
		t.Fatalf("unsupported formats must not fail the job: %v", err)
	}
}

func TestHandleExportJobPropagatesRenderErrors(t *testing.T) {
	boom := errors.New("render blew up")
	w := NewExportWorker(seededLedger(t),
		[]export.Renderer{fakeRenderer{format: export.FormatPDF, err: boom}},
		nil, t.TempDir())

	msg := amqp.NewExportJobMessage("Kim", "2024-04-05", "2024-03-01", "2024-03-31", []string{"pdf"}, "")
	if err := w.HandleExportJob(context.Background(), msg); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want render error for redelivery", err)
	}
}
