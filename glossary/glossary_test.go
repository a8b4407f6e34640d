package glossary

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeGlossary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glossary.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write glossary file: %v", err)
	}
	return path
}

func TestLoadObjectForm(t *testing.T) {
	path := writeGlossary(t, `{
		"Sabr": {"definition": "patience", "arabic": "صبر"},
		"Shukr": {"definition": "gratitude"}
	}`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !p.Available() {
		t.Fatal("provider should be available")
	}

	e, ok := p.Lookup("Sabr")
	if !ok {
		t.Fatal("Sabr should be present")
	}
	if e.Definition != "patience" || e.Arabic != "صبر" {
		t.Errorf("unexpected entry: %+v", e)
	}

	if _, ok := p.Lookup("Tawakkul"); ok {
		t.Error("Tawakkul should be absent")
	}
}

func TestLoadLegacyStringForm(t *testing.T) {
	path := writeGlossary(t, `{"Sabr": "patience", "Shukr": "gratitude"}`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	e, ok := p.Lookup("Shukr")
	if !ok || e.Definition != "gratitude" || e.Arabic != "" {
		t.Errorf("unexpected legacy entry: %+v ok=%v", e, ok)
	}
}

func TestWordsSortedAndCopied(t *testing.T) {
	path := writeGlossary(t, `{"Shukr": "b", "Sabr": "a", "Ihsan": "c"}`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	words := p.Words()
	if !sort.StringsAreSorted(words) {
		t.Errorf("words are not sorted: %v", words)
	}
	if len(words) != 3 || p.Len() != 3 {
		t.Errorf("expected 3 words, got %v", words)
	}

	words[0] = "mutated"
	if p.Words()[0] == "mutated" {
		t.Error("Words should return a copy")
	}
}

func TestLoadMissingFile(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if p.Available() {
		t.Error("provider should not be available")
	}
}

func TestLoadEmptyCatalogue(t *testing.T) {
	path := writeGlossary(t, `{}`)
	_, err := Load(path)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("empty catalogue should be unavailable, got %v", err)
	}
}

func TestReloadRecovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glossary.json")

	p, err := Load(path)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable before file exists, got %v", err)
	}

	if err := os.WriteFile(path, []byte(`{"Sabr": "patience"}`), 0o644); err != nil {
		t.Fatalf("failed to write glossary file: %v", err)
	}
	if err := p.Reload(); err != nil {
		t.Fatalf("Reload after file appears should succeed, got %v", err)
	}
	if !p.Available() || p.Len() != 1 {
		t.Error("provider should be available after reload")
	}
}

func TestReloadKeepsOldContentOnFailure(t *testing.T) {
	path := writeGlossary(t, `{"Sabr": "patience"}`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove glossary file: %v", err)
	}
	if err := p.Reload(); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if !p.Available() {
		t.Error("previously loaded content should survive a failed reload")
	}
}
