package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"kpiawards/internal/model"
)

func TestLoadReferenceFileAndSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "references.toml")
	content := "facs = [\"ФІОТ\"]\nkpi_awards = [\"Подяка\", \"Грамота 'КПІ'\"]\nstate_awards = [\"Орден\"]\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ref, err := LoadReferenceFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	s := NewMemoryStore()
	s.Seed(ref)

	ctx := context.Background()
	next, ok, err := s.Next(ctx, model.KindKPIAward, "Подяка")
	if err != nil || !ok || next != "Грамота 'КПІ'" {
		t.Fatalf("unexpected next: %q %v %v", next, ok, err)
	}
	if !s.Exists(ctx, model.KindFaculty, "ФІОТ") {
		t.Fatalf("seeded faculty missing")
	}
}

func TestLoadReferenceFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "references.toml")
	if err := os.WriteFile(path, []byte("facs = ["), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadReferenceFile(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
