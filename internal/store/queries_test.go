package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"kpiawards/internal/model"
)

func TestFilterDocument(t *testing.T) {
	t.Parallel()

	got := filterDocument(model.Filter{"year": "2020", "fac": "F1"})
	assert.Equal(t, bson.D{{Key: "fac", Value: "F1"}, {Key: "year", Value: "2020"}}, got)

	assert.Empty(t, filterDocument(nil))
}

func TestDuplicateDocument(t *testing.T) {
	t.Parallel()

	got := duplicateDocument(model.AwardRecord{Teacher: "A", Fac: "F1", Gram: "Best", Year: "2020"})
	want := bson.D{
		{Key: "fac", Value: "F1"},
		{Key: "teacher", Value: "A"},
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "year", Value: "2020"}},
			bson.D{{Key: "year", Value: ""}},
			bson.D{{Key: "state_year", Value: "2020"}},
			bson.D{{Key: "state_year", Value: ""}},
		}},
	}
	assert.Equal(t, want, got)
}

func TestDuplicateDocument_BothYears(t *testing.T) {
	t.Parallel()

	got := duplicateDocument(model.AwardRecord{Teacher: "A", Fac: "F1", Year: "2020", StateYear: "2021"})
	or, ok := got[2].Value.(bson.A)
	if assert.True(t, ok) {
		assert.Len(t, or, 4)
	}
}

func TestDuplicateDocument_NoYears(t *testing.T) {
	t.Parallel()

	got := duplicateDocument(model.AwardRecord{Teacher: "A", Fac: "F1"})
	or, ok := got[2].Value.(bson.A)
	if assert.True(t, ok) {
		assert.Len(t, or, 4)
		assert.Contains(t, or, bson.D{{Key: "state_year", Value: ""}})
	}
}

func TestRecordDocuments(t *testing.T) {
	t.Parallel()

	recs := []model.AwardRecord{{Teacher: "A"}, {Teacher: "B"}}
	docs := recordDocuments(recs)
	assert.Len(t, docs, 2)
	assert.Equal(t, model.AwardRecord{Teacher: "B"}, docs[1])
}

func TestAwardRecordBSONFields(t *testing.T) {
	t.Parallel()

	raw, err := bson.Marshal(model.AwardRecord{Teacher: "A", Gram: "Best", Year: "2020"})
	assert.NoError(t, err)

	var m bson.M
	assert.NoError(t, bson.Unmarshal(raw, &m))
	for _, f := range model.Fields {
		assert.Contains(t, m, f)
	}
	assert.Equal(t, "", m["state_gram"])
}
