package query

import (
	"strings"

	"kpiawards/internal/model"
)

var knownFields = func() map[string]struct{} {
	m := make(map[string]struct{}, len(model.Fields))
	for _, f := range model.Fields {
		m[f] = struct{}{}
	}
	return m
}()

// BuildFilter turns sparse search input into exact-match constraints.
// Only record fields with a non-empty trimmed value are kept.
func BuildFilter(raw map[string]string) model.Filter {
	filter := make(model.Filter)
	for k, v := range raw {
		if _, ok := knownFields[k]; !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		filter[k] = v
	}
	return filter
}

// Matches reports whether a record satisfies every constraint of the filter.
func Matches(f model.Filter, rec model.AwardRecord) bool {
	for k, v := range f {
		if rec.Get(k) != v {
			return false
		}
	}
	return true
}

// DuplicateYears returns the candidate values compared against the stored
// year and state_year: its year and its state_year, empty values included.
func DuplicateYears(candidate model.AwardRecord) []string {
	return []string{candidate.Year, candidate.StateYear}
}

// IsDuplicate reports whether an existing record blocks inserting the candidate:
// same teacher and faculty, and either stored year equal to either candidate year.
// Values compare verbatim, so an empty candidate year matches an empty stored one.
func IsDuplicate(existing, candidate model.AwardRecord) bool {
	if existing.Teacher != candidate.Teacher || existing.Fac != candidate.Fac {
		return false
	}
	for _, y := range DuplicateYears(candidate) {
		if existing.Year == y || existing.StateYear == y {
			return true
		}
	}
	return false
}
