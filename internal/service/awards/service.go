package awards

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"kpiawards/internal/importer"
	"kpiawards/internal/model"
	"kpiawards/internal/service/query"
	"kpiawards/internal/service/validator"
)

// Records persistence of award records
type Records interface {
	Find(ctx context.Context, filter model.Filter) ([]model.AwardRecord, error)
	InsertOne(ctx context.Context, rec model.AwardRecord) error
	ReplaceAll(ctx context.Context, recs []model.AwardRecord) error
	Count(ctx context.Context) (int64, error)
}

// References read-only reference sequences
type References interface {
	List(ctx context.Context, kind model.ReferenceKind) ([]model.ReferenceEntry, error)
	Next(ctx context.Context, kind model.ReferenceKind, name string) (string, bool, error)
	Exists(ctx context.Context, kind model.ReferenceKind, name string) bool
}

// Service award registry operations on explicitly owned stores
type Service struct {
	records    Records
	references References
	importer   *importer.Coordinator
	log        *zap.Logger
	now        func() time.Time
}

// NewService creates the service
func NewService(records Records, references References, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		records:    records,
		references: references,
		importer:   importer.NewCoordinator(records, references, log),
		log:        log,
		now:        time.Now,
	}
}

// Insert validates and stores one manually entered record.
// An empty prediction is filled with the next award in sequence.
func (s *Service) Insert(ctx context.Context, rec model.AwardRecord) (model.AwardRecord, error) {
	rec = rec.Trimmed()
	if err := validator.Validate(rec); err != nil {
		return rec, err
	}

	if rec.Prog == "" {
		prog, err := s.Predict(ctx, rec.Gram, rec.StateGram)
		if err != nil {
			s.log.Error("award prediction failed", zap.String("teacher", rec.Teacher), zap.Error(err))
			return rec, fmt.Errorf("predict next award: %w", err)
		}
		rec.Prog = prog
	}

	if err := s.records.InsertOne(ctx, rec); err != nil {
		return rec, err
	}
	s.log.Info("record inserted", zap.String("teacher", rec.Teacher), zap.String("fac", rec.Fac))
	return rec, nil
}

// Search returns the records matching the non-empty search inputs
func (s *Service) Search(ctx context.Context, raw map[string]string) ([]model.AwardRecord, error) {
	return s.records.Find(ctx, query.BuildFilter(raw))
}

// Count number of stored records
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.records.Count(ctx)
}

// Import reconciles every row and only then replaces the whole collection
func (s *Service) Import(ctx context.Context, rows [][]string) ([]model.AwardRecord, error) {
	report, err := s.importer.ImportRows(ctx, rows, nil)
	if err != nil {
		return nil, err
	}
	return report.Records, nil
}

// ImportFile reads a spreadsheet and imports it; progress may be nil
func (s *Service) ImportFile(ctx context.Context, opts importer.ImportOptions, progress func(importer.ProgressEvent)) (*importer.Report, error) {
	return s.importer.Import(ctx, opts, progress)
}

// References lists one reference sequence
func (s *Service) References(ctx context.Context, kind model.ReferenceKind) ([]model.ReferenceEntry, error) {
	return s.references.List(ctx, kind)
}

// NextAward returns the award following name in its sequence
func (s *Service) NextAward(ctx context.Context, kind model.ReferenceKind, name string) (string, bool, error) {
	return s.references.Next(ctx, kind, name)
}

// Predict returns the next KPI award when known, else the next state award
func (s *Service) Predict(ctx context.Context, gram, stateGram string) (string, error) {
	return importer.Predict(ctx, s.references, gram, stateGram)
}

// Summaries renders the list view lines for recs
func (s *Service) Summaries(recs []model.AwardRecord) []string {
	now := s.now()
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = model.Summary(r, now)
	}
	return out
}
