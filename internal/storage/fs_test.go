package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/raido/internal/apperr"
)

func tempVault(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempVault(t)
	content := []byte("# Hello\nWorld\n")
	if err := s.Write("note.md", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("note.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestSnapshot(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("a.md", []byte("a"))
	_ = s.Write("sub/b.md", []byte("b"))
	_ = s.Write("sub/img.png", []byte{0x89})
	_ = s.Write(".obsidian/workspace.json", []byte("{}"))

	snap, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Files) != 3 {
		t.Fatalf("len(files) = %d, want 3 (hidden dirs skipped)", len(snap.Files))
	}
	// WalkDir is lexical, so order is stable.
	if snap.Files[0].Path != "a.md" || snap.Files[1].Path != "sub/b.md" || snap.Files[2].Path != "sub/img.png" {
		t.Errorf("files = %v", snap.Files)
	}
	if _, ok := snap.Folders["sub"]; !ok {
		t.Errorf("folders missing sub: %v", snap.Folders)
	}
	if _, ok := snap.Folders[".obsidian"]; ok {
		t.Errorf("hidden folder should be skipped")
	}
}

func TestSnapshotFileRecordFields(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("Docs/Report.PDF", []byte("pdf"))

	snap, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Files) != 1 {
		t.Fatalf("len(files) = %d, want 1", len(snap.Files))
	}
	f := snap.Files[0]
	if f.Name != "Report.PDF" || f.Base != "Report" || f.Ext != "PDF" || f.Parent != "Docs" {
		t.Errorf("record = %+v", f)
	}
}

func TestMoveRequiresExistingFolder(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("old.md", []byte("data"))

	if err := s.Move("old.md", "sub/new.md"); err == nil {
		t.Fatal("expected move into missing folder to fail")
	}
	if err := s.CreateFolder("sub"); err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if err := s.Move("old.md", "sub/new.md"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	got, err := s.Read("sub/new.md")
	if err != nil {
		t.Fatalf("Read after move: %v", err)
	}
	if string(got) != "data" {
		t.Errorf("content = %q", got)
	}
	if _, err := s.Read("old.md"); err == nil {
		t.Error("old path should not exist")
	}
}

func TestMoveRefusesToClobber(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("a.md", []byte("a"))
	_ = s.Write("b.md", []byte("b"))

	err := s.Move("a.md", "b.md")
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Fatalf("Move onto existing file = %v, want ErrAlreadyExists", err)
	}
	got, _ := s.Read("b.md")
	if string(got) != "b" {
		t.Errorf("destination overwritten: %q", got)
	}
}

func TestCreateFolderIdempotent(t *testing.T) {
	s := tempVault(t)
	if err := s.CreateFolder("Archive"); err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if err := s.CreateFolder("Archive"); err != nil {
		t.Errorf("CreateFolder on existing folder: %v", err)
	}
}

func TestExists(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("x.md", []byte("x"))
	if !s.Exists("x.md") {
		t.Error("Exists(x.md) = false")
	}
	if s.Exists("missing.md") {
		t.Error("Exists(missing.md) = true")
	}
	if s.Exists("../outside") {
		t.Error("Exists outside root = true")
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempVault(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.md",
		"/etc/shadow",
	}
	for _, p := range cases {
		if _, err := s.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
		if err := s.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
		if err := s.Move(p, "dest.md"); err == nil {
			t.Errorf("expected error for move from %q", p)
		}
	}
}

func TestAtomicWriteNoLeftoverTemp(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("atomic.md", []byte("original content"))
	if err := s.Write("atomic.md", []byte("updated content")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read("atomic.md")
	if string(got) != "updated content" {
		t.Errorf("expected updated content, got %q", got)
	}
	matches, _ := filepath.Glob(filepath.Join(s.root, ".raido-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS("/tmp/raido-does-not-exist-" + t.Name())
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "raido-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	_, err := NewFS(f.Name())
	if err == nil {
		t.Error("expected error when root is a file")
	}
}
