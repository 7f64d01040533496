// Package storage defines the vault file-system abstraction.
package storage

import "github.com/starford/raido/internal/models"

// Provider is the interface for vault file operations.
type Provider interface {
	// Snapshot walks the vault once and returns every file record plus the
	// set of folder paths (all vault-relative).
	Snapshot() (*models.VaultSnapshot, error)
	// Read returns the raw bytes of the file at path (relative to vault root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to vault root).
	Write(path string, content []byte) error
	// Exists reports whether a file or folder exists at path.
	Exists(path string) bool
	// CreateFolder creates the folder at path, parents included. Creating a
	// folder that already exists is not an error.
	CreateFolder(path string) error
	// Move renames oldPath to newPath (both relative to vault root). The
	// destination's parent folder must already exist.
	Move(oldPath, newPath string) error
}
