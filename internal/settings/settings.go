// Package settings persists the ordered rule list and folder exclusions.
// Array position IS priority; the reorder mutators here are the only way
// order changes, so the index-encodes-priority invariant cannot be lost.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
)

// Document is the persisted shape of the organizer settings.
type Document struct {
	Rules      []models.Rule `yaml:"rules" json:"rules"`
	Exclusions []string      `yaml:"excluded_folders" json:"excluded_folders"`
}

// Store is a mutex-guarded settings document backed by a YAML file.
// Mutations validate, apply in memory, and persist atomically. Snapshot
// returns a deep copy, so a run in flight never observes a mid-run edit.
type Store struct {
	path string

	mu  sync.Mutex
	doc Document
}

// Open loads the settings file at path, or starts empty when it does not
// exist yet (the file is created on first mutation).
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("settings: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("settings: parse %s: %w", path, err)
	}
	return s, nil
}

// Snapshot returns an immutable deep copy of the current document.
func (s *Store) Snapshot() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.clone()
}

// AddRule validates and appends a rule at the lowest priority.
func (s *Store) AddRule(r models.Rule) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("%w: %s", apperr.ErrInvalidRule, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Rules = append(s.doc.Rules, r.Clone())
	return s.save()
}

// UpdateRule validates and replaces the rule at index.
func (s *Store) UpdateRule(index int, r models.Rule) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("%w: %s", apperr.ErrInvalidRule, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.doc.Rules) {
		return apperr.ErrNotFound
	}
	s.doc.Rules[index] = r.Clone()
	return s.save()
}

// RemoveRule deletes the rule at index; later rules shift up in priority.
func (s *Store) RemoveRule(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.doc.Rules) {
		return apperr.ErrNotFound
	}
	s.doc.Rules = append(s.doc.Rules[:index], s.doc.Rules[index+1:]...)
	return s.save()
}

// SwapRules exchanges the priority of two rules.
func (s *Store) SwapRules(i, j int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.doc.Rules)
	if i < 0 || i >= n || j < 0 || j >= n {
		return apperr.ErrNotFound
	}
	s.doc.Rules[i], s.doc.Rules[j] = s.doc.Rules[j], s.doc.Rules[i]
	return s.save()
}

// MoveRule relocates the rule at from to index to, shifting the others.
func (s *Store) MoveRule(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.doc.Rules)
	if from < 0 || from >= n || to < 0 || to >= n {
		return apperr.ErrNotFound
	}
	if from == to {
		return nil
	}
	r := s.doc.Rules[from]
	rest := append(s.doc.Rules[:from], s.doc.Rules[from+1:]...)
	s.doc.Rules = append(rest[:to], append([]models.Rule{r}, rest[to:]...)...)
	return s.save()
}

// SetRuleEnabled toggles the rule at index without changing its priority.
func (s *Store) SetRuleEnabled(index int, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.doc.Rules) {
		return apperr.ErrNotFound
	}
	s.doc.Rules[index].Enabled = enabled
	return s.save()
}

// SetExclusions replaces the excluded folder list. Blank entries are dropped.
func (s *Store) SetExclusions(folders []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(folders))
	for _, f := range folders {
		if f != "" {
			out = append(out, f)
		}
	}
	s.doc.Exclusions = out
	return s.save()
}

// save persists the document atomically: tmp file → fsync → rename.
// Caller must hold mu.
func (s *Store) save() error {
	data, err := yaml.Marshal(&s.doc)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("settings: mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".raido-settings-*")
	if err != nil {
		return fmt.Errorf("settings: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("settings: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("settings: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("settings: close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("settings: rename: %w", err)
	}
	success = true
	return nil
}

func (d Document) clone() Document {
	out := Document{
		Rules:      make([]models.Rule, len(d.Rules)),
		Exclusions: append([]string(nil), d.Exclusions...),
	}
	for i, r := range d.Rules {
		out.Rules[i] = r.Clone()
	}
	return out
}
