// Package models defines the domain types for Raido.
package models

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Rule describes one relocation rule. Criteria are pointers so that an
// unconfigured criterion is distinguishable from one set to the empty
// string (which validation rejects).
//
// Rules live in an ordered sequence; the index IS the priority (0 = highest).
type Rule struct {
	// Tag matches files carrying the normalized tag. A tag hit satisfies
	// the rule on its own, even when FileType or NamePattern would fail.
	Tag *string `yaml:"tag,omitempty" json:"tag,omitempty"`
	// FileType is a case-insensitive extension without the leading dot.
	FileType *string `yaml:"file_type,omitempty" json:"file_type,omitempty"`
	// NamePattern is a case-insensitive substring matched against the
	// file's base name (extension excluded).
	NamePattern *string `yaml:"name_pattern,omitempty" json:"name_pattern,omitempty"`
	// Folder is the destination folder, vault-relative.
	Folder  string `yaml:"folder" json:"folder"`
	Enabled bool   `yaml:"enabled" json:"enabled"`
}

// HasCriteria reports whether at least one matching criterion is configured.
// A rule without criteria can never match any file.
func (r Rule) HasCriteria() bool {
	return isSet(r.Tag) || isSet(r.FileType) || isSet(r.NamePattern)
}

// Validate checks that the rule is well-formed: non-empty destination,
// no explicitly-empty criterion, and at least one criterion configured.
func (r Rule) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Folder, validation.Required),
		validation.Field(&r.Tag, validation.NilOrNotEmpty),
		validation.Field(&r.FileType, validation.NilOrNotEmpty),
		validation.Field(&r.NamePattern, validation.NilOrNotEmpty),
	); err != nil {
		return err
	}
	if !r.HasCriteria() {
		return errors.New("rule: at least one of tag, file_type, name_pattern must be set")
	}
	return nil
}

// Clone returns a deep copy of the rule.
func (r Rule) Clone() Rule {
	out := r
	out.Tag = clonePtr(r.Tag)
	out.FileType = clonePtr(r.FileType)
	out.NamePattern = clonePtr(r.NamePattern)
	return out
}

func isSet(s *string) bool {
	return s != nil && *s != ""
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
