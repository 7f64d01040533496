package models

import (
	"path"
	"strings"
)

// FileRecord is a read-only projection of one vault file, taken as part of
// a run snapshot. Paths are vault-relative and forward-slash separated.
type FileRecord struct {
	Path   string   `json:"path"`
	Name   string   `json:"name"`           // final path segment, extension included
	Base   string   `json:"base"`           // Name minus extension
	Ext    string   `json:"ext"`            // extension without leading dot
	Parent string   `json:"parent"`         // parent folder, "" at vault root
	Tags   []string `json:"tags,omitempty"` // normalized tags, sorted
}

// NewFileRecord derives the name/base/ext/parent fields from a
// vault-relative path.
func NewFileRecord(relPath string) FileRecord {
	name := path.Base(relPath)
	ext := strings.TrimPrefix(path.Ext(name), ".")
	base := strings.TrimSuffix(name, path.Ext(name))
	parent := path.Dir(relPath)
	if parent == "." {
		parent = ""
	}
	return FileRecord{
		Path:   relPath,
		Name:   name,
		Base:   base,
		Ext:    ext,
		Parent: parent,
	}
}

// TagBearing reports whether tag metadata is meaningful for this file type.
func (f FileRecord) TagBearing() bool {
	switch strings.ToLower(f.Ext) {
	case "md", "markdown":
		return true
	}
	return false
}

// HasTag reports membership of a normalized tag in the file's tag set.
func (f FileRecord) HasTag(normalized string) bool {
	for _, t := range f.Tags {
		if t == normalized {
			return true
		}
	}
	return false
}

// VaultSnapshot is a single consistent view of the vault, taken once at the
// start of a run. Folders carries every directory path so destination
// collisions with folders are decided against the same view as files.
type VaultSnapshot struct {
	Files   []FileRecord
	Folders map[string]struct{}
}

// PathSet returns every occupied path in the snapshot: all file paths plus
// all folder paths. Planners extend the returned set with destinations
// claimed during the run.
func (s *VaultSnapshot) PathSet() map[string]struct{} {
	out := make(map[string]struct{}, len(s.Files)+len(s.Folders))
	for i := range s.Files {
		out[s.Files[i].Path] = struct{}{}
	}
	for p := range s.Folders {
		out[p] = struct{}{}
	}
	return out
}
