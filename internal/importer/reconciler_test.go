package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kpiawards/internal/model"
	"kpiawards/internal/service/store"
)

func newReferences() *store.MemoryStore {
	s := store.NewMemoryStore()
	s.SetReferenceNames(model.KindFaculty, "ФІОТ", "ФЕЛ")
	s.SetReferenceNames(model.KindKPIAward, "Подяка", "Грамота 'КПІ'", "Почесний професор")
	s.SetReferenceNames(model.KindStateAward, "Орден", "Заслужений діяч")
	return s
}

func row(cells ...string) []string {
	return append([]string{"0"}, cells...)
}

func TestReconcileRow(t *testing.T) {
	t.Parallel()

	r := NewReconciler(newReferences(), nil)
	rec, err := r.ReconcileRow(context.Background(),
		row(" Іваненко ", "ФІОТ ", "Подяка", "nan", "12", "2020.0", "nan", "whatever"))
	require.NoError(t, err)

	assert.Equal(t, model.AwardRecord{
		Teacher: "Іваненко",
		Fac:     "ФІОТ",
		Gram:    "Подяка",
		Num:     "12",
		Year:    "2020",
		Prog:    "Грамота 'КПІ'",
	}, rec)
}

func TestReconcileRow_QuotesNormalizedBeforeLookup(t *testing.T) {
	t.Parallel()

	r := NewReconciler(newReferences(), nil)
	rec, err := r.ReconcileRow(context.Background(),
		row("Іваненко", "ФІОТ", "Грамота `КПІ`", "", "1", "2021", "", ""))
	require.NoError(t, err)
	assert.Equal(t, "Грамота 'КПІ'", rec.Gram)
	assert.Equal(t, "Почесний професор", rec.Prog)
}

func TestReconcileRow_ReferenceNameWithDoubleQuotes(t *testing.T) {
	t.Parallel()

	refs := newReferences()
	refs.SetReferenceNames(model.KindKPIAward, `Знак "Відмінник освіти"`, "Грамота 'КПІ'")
	refs.SetReferenceNames(model.KindStateAward, "Орден `Знак Пошани`")
	r := NewReconciler(refs, nil)
	ctx := context.Background()

	rec, err := r.ReconcileRow(ctx, row("A", "ФІОТ", `Знак "Відмінник освіти"`, "", "", "2020", "", ""))
	require.NoError(t, err)
	assert.Equal(t, `Знак "Відмінник освіти"`, rec.Gram)
	assert.Equal(t, "Грамота 'КПІ'", rec.Prog)

	rec, err = r.ReconcileRow(ctx, row("B", "ФІОТ", "", "Орден `Знак Пошани`", "", "", "2019", ""))
	require.NoError(t, err)
	assert.Equal(t, "Орден `Знак Пошани`", rec.StateGram)

	// double quotes still resolve to an apostrophe spelling
	rec, err = r.ReconcileRow(ctx, row("C", "ФІОТ", `Грамота "КПІ"`, "", "", "2021", "", ""))
	require.NoError(t, err)
	assert.Equal(t, "Грамота 'КПІ'", rec.Gram)
}

func TestReconcileRow_StateAward(t *testing.T) {
	t.Parallel()

	r := NewReconciler(newReferences(), nil)
	rec, err := r.ReconcileRow(context.Background(),
		row("Петренко", "ФЕЛ", "", "Орден", "3", "", "2018", ""))
	require.NoError(t, err)
	assert.Equal(t, "Заслужений діяч", rec.Prog)
	assert.Equal(t, "2018", rec.StateYear)
}

func TestReconcileRow_Errors(t *testing.T) {
	t.Parallel()

	r := NewReconciler(newReferences(), nil)
	ctx := context.Background()

	tests := []struct {
		name string
		row  []string
		want error
	}{
		{"unknown faculty", row("A", "ХТФ", "Подяка", "", "", "2020", "", ""), ErrUnknownFaculty},
		{"unknown kpi award", row("A", "ФІОТ", "Медаль", "", "", "2020", "", ""), ErrUnknownAward},
		{"no award at all", row("A", "ФІОТ", "", "", "", "2020", "", ""), ErrUnknownAward},
		{"unknown state award", row("A", "ФІОТ", "", "Хрест", "", "", "2020", ""), ErrUnknownStateAward},
		{"faculty checked first", row("A", "ХТФ", "Медаль", "Хрест", "", "", "", ""), ErrUnknownFaculty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.ReconcileRow(ctx, tt.row)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReconcileRow_PredictionAtEndOfSequence(t *testing.T) {
	t.Parallel()

	r := NewReconciler(newReferences(), nil)
	rec, err := r.ReconcileRow(context.Background(),
		row("A", "ФІОТ", "Почесний професор", "", "", "2020", "", "stale"))
	require.NoError(t, err)
	assert.Equal(t, "", rec.Prog)
}

func TestReconcile_ReportsRow(t *testing.T) {
	t.Parallel()

	r := NewReconciler(newReferences(), nil)
	_, err := r.Reconcile(context.Background(), [][]string{
		row("A", "ФІОТ", "Подяка", "", "", "2020", "", ""),
		row("B", "ХТФ", "Подяка", "", "", "2020", "", ""),
	})

	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 3, rowErr.Row)
	assert.ErrorIs(t, err, ErrUnknownFaculty)
	assert.Contains(t, err.Error(), "ХТФ")
}

func TestReconcile_StoreFailureFailsClosed(t *testing.T) {
	t.Parallel()

	refs := newReferences()
	refs.SetFailure(errors.New("connection refused"))

	r := NewReconciler(refs, nil)
	_, err := r.Reconcile(context.Background(), [][]string{
		row("A", "ФІОТ", "Подяка", "", "", "2020", "", ""),
	})
	assert.ErrorIs(t, err, ErrUnknownFaculty)
}

func TestNormalizeYear(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"2020.0": "2020",
		"2020":   "2020",
		"1999.7": "1999",
		"":       "",
		"nan":    "nan",
		"2020 р": "2020 р",
		"1e20":   "1e20",
		"-1e19":  "-1e19",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeYear(in), "NormalizeYear(%q)", in)
	}
}

func TestNormalizeQuotes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Орден 'За заслуги' 'III'", NormalizeQuotes("Орден `За заслуги` \"III\""))
}
