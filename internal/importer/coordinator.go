package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"kpiawards/internal/model"
)

// Replacer bulk replacement of the record collection
type Replacer interface {
	ReplaceAll(ctx context.Context, recs []model.AwardRecord) error
}

// Coordinator runs a whole import: read, reconcile every row, replace the collection
type Coordinator struct {
	records    Replacer
	reconciler *Reconciler
	log        *zap.Logger
}

// NewCoordinator creates an import coordinator
func NewCoordinator(records Replacer, refs References, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{
		records:    records,
		reconciler: NewReconciler(refs, log),
		log:        log,
	}
}

// ImportOptions import options
type ImportOptions struct {
	FilePath         string
	OriginalFilename string       // name shown to the user; defaults to the base of FilePath
	Format           model.Format // derived from the file name when empty
}

// ProgressEvent import progress event
type ProgressEvent struct {
	Type      string      `json:"type"` // start/info/done/error
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Report import outcome
type Report struct {
	Filename string              `json:"filename"`
	Rows     int                 `json:"rows"`
	Records  []model.AwardRecord `json:"-"`
	Duration time.Duration       `json:"duration"`
}

// Import reads the file and imports it. progress may be nil.
func (c *Coordinator) Import(ctx context.Context, opts ImportOptions, progress func(ProgressEvent)) (*Report, error) {
	filename := opts.OriginalFilename
	if filename == "" {
		filename = filepath.Base(opts.FilePath)
	}

	format := opts.Format
	if format == "" {
		f, err := model.FormatOf(filename)
		if err != nil {
			c.fail(progress, err)
			return nil, err
		}
		format = f
	}

	send(progress, ProgressEvent{
		Type:    "start",
		Message: "Початок імпорту",
		Data:    map[string]string{"filename": filename},
	})

	rows, err := c.readFile(opts.FilePath, format)
	if err != nil {
		c.fail(progress, err)
		return nil, err
	}

	report, err := c.ImportRows(ctx, rows, progress)
	if err != nil {
		return nil, err
	}
	report.Filename = filename
	return report, nil
}

// ImportRows reconciles already read rows and replaces the collection
func (c *Coordinator) ImportRows(ctx context.Context, rows [][]string, progress func(ProgressEvent)) (*Report, error) {
	start := time.Now()

	send(progress, ProgressEvent{
		Type:    "info",
		Message: fmt.Sprintf("Знайдено рядків: %d", len(rows)),
		Data:    map[string]int{"rows": len(rows)},
	})

	recs, err := c.reconciler.Reconcile(ctx, rows)
	if err != nil {
		c.fail(progress, err)
		return nil, err
	}

	if err := c.records.ReplaceAll(ctx, recs); err != nil {
		err = fmt.Errorf("replace records: %w", err)
		c.fail(progress, err)
		return nil, err
	}

	report := &Report{
		Rows:     len(recs),
		Records:  recs,
		Duration: time.Since(start),
	}
	c.log.Info("import finished", zap.Int("records", len(recs)), zap.Duration("duration", report.Duration))

	send(progress, ProgressEvent{
		Type:    "done",
		Message: "Імпорт завершено",
		Data:    report,
	})
	return report, nil
}

func (c *Coordinator) readFile(path string, format model.Format) ([][]string, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRowsFrom(f, format)
}

func (c *Coordinator) fail(progress func(ProgressEvent), err error) {
	c.log.Error("import failed", zap.Error(err))
	send(progress, ProgressEvent{
		Type:    "error",
		Message: err.Error(),
	})
}

func send(progress func(ProgressEvent), event ProgressEvent) {
	if progress == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	progress(event)
}
