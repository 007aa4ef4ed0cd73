package importer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"kpiawards/internal/model"
)

// spreadsheet columns; column 0 is the row index written by exports
const (
	colTeacher = iota + 1
	colFac
	colGram
	colStateGram
	colNum
	colYear
	colStateYear
	colProg
	columnCount
)

var (
	ErrUnknownFaculty    = errors.New("У КПІ не існує такого факультету/ННІ")
	ErrUnknownAward      = errors.New("У КПІ не існує такої нагороди")
	ErrUnknownStateAward = errors.New("Не існує такої державної нагороди")
)

// RowError a reconciliation failure pinned to a spreadsheet row (1-based, header is row 1)
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("рядок %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// References reference lookups needed to reconcile rows
type References interface {
	Next(ctx context.Context, kind model.ReferenceKind, name string) (string, bool, error)
	Exists(ctx context.Context, kind model.ReferenceKind, name string) bool
}

// Reconciler turns spreadsheet rows into award records checked against the references
type Reconciler struct {
	refs References
	log  *zap.Logger
}

// NewReconciler creates a reconciler
func NewReconciler(refs References, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{refs: refs, log: log}
}

// Reconcile converts all rows or fails on the first bad one
func (r *Reconciler) Reconcile(ctx context.Context, rows [][]string) ([]model.AwardRecord, error) {
	out := make([]model.AwardRecord, 0, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := r.ReconcileRow(ctx, row)
		if err != nil {
			r.log.Warn("import row rejected", zap.Int("row", i+2), zap.Error(err))
			return nil, &RowError{Row: i + 2, Err: err}
		}
		out = append(out, rec)
	}
	return out, nil
}

// ReconcileRow converts one row
func (r *Reconciler) ReconcileRow(ctx context.Context, row []string) (model.AwardRecord, error) {
	row = padRow(row, columnCount)
	cell := func(i int) string {
		v := strings.TrimSpace(row[i])
		if model.IsBlank(v) {
			return ""
		}
		return v
	}

	rec := model.AwardRecord{
		Teacher:   cell(colTeacher),
		Fac:       cell(colFac),
		Gram:      cell(colGram),
		StateGram: cell(colStateGram),
		Num:       cell(colNum),
		Year:      NormalizeYear(cell(colYear)),
		StateYear: NormalizeYear(cell(colStateYear)),
	}

	if !r.refs.Exists(ctx, model.KindFaculty, rec.Fac) {
		return rec, fmt.Errorf("%w: %s", ErrUnknownFaculty, rec.Fac)
	}
	if rec.Gram == "" && rec.StateGram == "" {
		return rec, fmt.Errorf("%w: %s", ErrUnknownAward, rec.Gram)
	}
	if rec.Gram != "" {
		name, ok := r.resolveAward(ctx, model.KindKPIAward, rec.Gram)
		if !ok {
			return rec, fmt.Errorf("%w: %s", ErrUnknownAward, rec.Gram)
		}
		rec.Gram = name
	}
	if rec.StateGram != "" {
		name, ok := r.resolveAward(ctx, model.KindStateAward, rec.StateGram)
		if !ok {
			return rec, fmt.Errorf("%w: %s", ErrUnknownStateAward, rec.StateGram)
		}
		rec.StateGram = name
	}

	prog, err := Predict(ctx, r.refs, rec.Gram, rec.StateGram)
	if err != nil {
		return rec, err
	}
	rec.Prog = prog
	return rec, nil
}

// resolveAward finds the reference spelling of an award name: the name as
// written, then with export backticks turned back into apostrophes, then with
// every quote character normalized.
func (r *Reconciler) resolveAward(ctx context.Context, kind model.ReferenceKind, name string) (string, bool) {
	candidates := []string{name, exportBackticks.Replace(name), NormalizeQuotes(name)}
	for i, c := range candidates {
		if i > 0 && c == candidates[i-1] {
			continue
		}
		if r.refs.Exists(ctx, kind, c) {
			return c, true
		}
	}
	return "", false
}

// Predict returns the KPI award following gram if there is one, else the
// state award following stateGram; "" when neither exists.
func Predict(ctx context.Context, refs References, gram, stateGram string) (string, error) {
	if gram != "" {
		next, ok, err := refs.Next(ctx, model.KindKPIAward, gram)
		if err != nil {
			return "", err
		}
		if ok {
			return next, nil
		}
	}
	if stateGram != "" {
		next, ok, err := refs.Next(ctx, model.KindStateAward, stateGram)
		if err != nil {
			return "", err
		}
		if ok {
			return next, nil
		}
	}
	return "", nil
}

var (
	importQuotes    = strings.NewReplacer("`", "'", `"`, "'")
	exportBackticks = strings.NewReplacer("`", "'")
)

// NormalizeQuotes rewrites every quote character in an award name to an apostrophe
func NormalizeQuotes(s string) string {
	return importQuotes.Replace(s)
}

// NormalizeYear turns float-looking years such as "2020.0" into "2020".
// Values that do not parse or do not fit an int64 are returned unchanged.
func NormalizeYear(s string) string {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return s
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return s
	}
	return strconv.FormatInt(int64(f), 10)
}
