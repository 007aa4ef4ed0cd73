package store

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"kpiawards/internal/model"
)

// ReferenceFile reference sequences for the in-memory backend, in award order:
//
//	facs = ["ФІОТ", "ФЕЛ"]
//	kpi_awards = ["Подяка", "Грамота"]
//	state_awards = ["Орден"]
type ReferenceFile struct {
	Facs        []string `toml:"facs"`
	KPIAwards   []string `toml:"kpi_awards"`
	StateAwards []string `toml:"state_awards"`
}

// LoadReferenceFile parses a reference file
func LoadReferenceFile(path string) (*ReferenceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ref ReferenceFile
	if err := toml.Unmarshal(data, &ref); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &ref, nil
}

// Seed replaces all three reference sequences
func (s *MemoryStore) Seed(ref *ReferenceFile) {
	s.SetReferenceNames(model.KindFaculty, ref.Facs...)
	s.SetReferenceNames(model.KindKPIAward, ref.KPIAwards...)
	s.SetReferenceNames(model.KindStateAward, ref.StateAwards...)
}
