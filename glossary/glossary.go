package glossary

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
)

// ErrUnavailable signals that no glossary content could be loaded. It is a
// distinct condition from a single word being absent.
var ErrUnavailable = errors.New("glossary is not available")

// Entry holds the definition of a glossary word plus its optional Arabic form.
// The source JSON supports both the old format (bare definition string) and
// the new one (object with definition and arabic fields).
type Entry struct {
	Definition string `json:"definition"`
	Arabic     string `json:"arabic,omitempty"`
}

// UnmarshalJSON accepts either a plain string or the object form.
func (e *Entry) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		e.Definition = s
		e.Arabic = ""
		return nil
	}
	type plain Entry
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*e = Entry(p)
	return nil
}

// Provider is a read-only word catalogue loaded once at startup. It carries an
// explicit loaded/unavailable state instead of silently serving an empty map,
// and supports a single best-effort Reload for recovery.
type Provider struct {
	mu      sync.RWMutex
	path    string
	entries map[string]Entry
	words   []string
}

// Load reads the glossary JSON file at path. A missing, unreadable, or empty
// file yields ErrUnavailable-wrapped errors, but the Provider is still
// returned so callers can attempt Reload later.
func Load(path string) (*Provider, error) {
	p := &Provider{path: path}
	if err := p.Reload(); err != nil {
		return p, err
	}
	return p, nil
}

// Reload re-reads the source file, replacing the catalogue on success. On
// failure the previously loaded content, if any, is kept.
func (p *Provider) Reload() error {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var entries map[string]Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("%w: invalid glossary json: %v", ErrUnavailable, err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: glossary file is empty", ErrUnavailable)
	}

	words := make([]string, 0, len(entries))
	for w := range entries {
		words = append(words, w)
	}
	sort.Strings(words)

	p.mu.Lock()
	p.entries = entries
	p.words = words
	p.mu.Unlock()
	return nil
}

// Available reports whether a non-empty catalogue has been loaded.
func (p *Provider) Available() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries) > 0
}

// Lookup returns the entry for a word.
func (p *Provider) Lookup(word string) (Entry, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.entries[word]
	return e, ok
}

// Words returns the full word list in sorted order. The result is a copy.
func (p *Provider) Words() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, len(p.words))
	copy(out, p.words)
	return out
}

// Len returns the number of loaded words.
func (p *Provider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.words)
}
