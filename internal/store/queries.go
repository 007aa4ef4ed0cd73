package store

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson"

	"kpiawards/internal/model"
	"kpiawards/internal/service/query"
)

// filterDocument converts an exact-match filter into a query document.
// Keys are sorted so the document is deterministic.
func filterDocument(f model.Filter) bson.D {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := bson.D{}
	for _, k := range keys {
		doc = append(doc, bson.E{Key: k, Value: f[k]})
	}
	return doc
}

// duplicateDocument matches records of the same teacher and faculty whose
// year or state_year equals either of the candidate's years, empty values included.
func duplicateDocument(rec model.AwardRecord) bson.D {
	years := query.DuplicateYears(rec)

	or := bson.A{}
	for _, field := range []string{model.FieldYear, model.FieldStateYear} {
		for _, y := range years {
			or = append(or, bson.D{{Key: field, Value: y}})
		}
	}

	return bson.D{
		{Key: model.FieldFac, Value: rec.Fac},
		{Key: model.FieldTeacher, Value: rec.Teacher},
		{Key: "$or", Value: or},
	}
}

// recordDocuments prepares records for InsertMany
func recordDocuments(recs []model.AwardRecord) []interface{} {
	docs := make([]interface{}, len(recs))
	for i := range recs {
		docs[i] = recs[i]
	}
	return docs
}
