package model

import "fmt"

// ReferenceKind names one of the reference sequences; the value is also the collection name.
type ReferenceKind string

const (
	KindFaculty    ReferenceKind = "facs"
	KindKPIAward   ReferenceKind = "kpi_awards"
	KindStateAward ReferenceKind = "state_awards"
)

// ReferenceKinds all known reference sequences
var ReferenceKinds = []ReferenceKind{KindFaculty, KindKPIAward, KindStateAward}

// ParseReferenceKind validates a kind coming from user input.
func ParseReferenceKind(s string) (ReferenceKind, error) {
	for _, k := range ReferenceKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown reference kind %q", s)
}

// ReferenceEntry one entry of an externally curated reference sequence
type ReferenceEntry struct {
	ID   int    `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// Filter exact-match constraints keyed by record field; empty matches everything
type Filter map[string]string
