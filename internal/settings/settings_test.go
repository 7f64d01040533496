package settings

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
)

func strPtr(s string) *string { return &s }

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "settings.yaml"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func rule(folder, fileType string) models.Rule {
	return models.Rule{FileType: strPtr(fileType), Folder: folder, Enabled: true}
}

func TestAddRulePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AddRule(rule("Images", "png")); err != nil {
		t.Fatalf("AddRule: %v", err)
	}
	if err := s.SetExclusions([]string{"Templates", ""}); err != nil {
		t.Fatalf("SetExclusions: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	doc := reopened.Snapshot()
	if len(doc.Rules) != 1 || doc.Rules[0].Folder != "Images" {
		t.Errorf("rules = %+v", doc.Rules)
	}
	if len(doc.Exclusions) != 1 || doc.Exclusions[0] != "Templates" {
		t.Errorf("exclusions = %v (blank entries must be dropped)", doc.Exclusions)
	}
}

func TestAddRuleRejectsInvalid(t *testing.T) {
	s := testStore(t)
	err := s.AddRule(models.Rule{Folder: "Out", Enabled: true}) // no criteria
	if !errors.Is(err, apperr.ErrInvalidRule) {
		t.Errorf("err = %v, want ErrInvalidRule", err)
	}
	err = s.AddRule(models.Rule{FileType: strPtr("png"), Folder: "", Enabled: true})
	if !errors.Is(err, apperr.ErrInvalidRule) {
		t.Errorf("err = %v, want ErrInvalidRule for empty folder", err)
	}
	empty := ""
	err = s.AddRule(models.Rule{Tag: &empty, FileType: strPtr("png"), Folder: "Out", Enabled: true})
	if !errors.Is(err, apperr.ErrInvalidRule) {
		t.Errorf("err = %v, want ErrInvalidRule for explicitly empty criterion", err)
	}
}

func TestSwapAdjacentSwapsPriority(t *testing.T) {
	s := testStore(t)
	_ = s.AddRule(rule("A", "a"))
	_ = s.AddRule(rule("B", "b"))

	if err := s.SwapRules(0, 1); err != nil {
		t.Fatalf("SwapRules: %v", err)
	}
	doc := s.Snapshot()
	if doc.Rules[0].Folder != "B" || doc.Rules[1].Folder != "A" {
		t.Errorf("rules = %+v, want B before A", doc.Rules)
	}
}

func TestMoveRule(t *testing.T) {
	s := testStore(t)
	for _, f := range []string{"A", "B", "C", "D"} {
		_ = s.AddRule(rule(f, "x"))
	}
	if err := s.MoveRule(3, 0); err != nil {
		t.Fatalf("MoveRule: %v", err)
	}
	doc := s.Snapshot()
	got := []string{doc.Rules[0].Folder, doc.Rules[1].Folder, doc.Rules[2].Folder, doc.Rules[3].Folder}
	want := []string{"D", "A", "B", "C"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestRemoveRuleShiftsPriority(t *testing.T) {
	s := testStore(t)
	_ = s.AddRule(rule("A", "a"))
	_ = s.AddRule(rule("B", "b"))
	_ = s.AddRule(rule("C", "c"))

	if err := s.RemoveRule(1); err != nil {
		t.Fatalf("RemoveRule: %v", err)
	}
	doc := s.Snapshot()
	if len(doc.Rules) != 2 || doc.Rules[0].Folder != "A" || doc.Rules[1].Folder != "C" {
		t.Errorf("rules = %+v", doc.Rules)
	}
}

func TestSetRuleEnabled(t *testing.T) {
	s := testStore(t)
	_ = s.AddRule(rule("A", "a"))
	if err := s.SetRuleEnabled(0, false); err != nil {
		t.Fatalf("SetRuleEnabled: %v", err)
	}
	if s.Snapshot().Rules[0].Enabled {
		t.Error("rule should be disabled")
	}
}

func TestIndexOutOfRange(t *testing.T) {
	s := testStore(t)
	_ = s.AddRule(rule("A", "a"))
	for _, err := range []error{
		s.RemoveRule(5),
		s.SwapRules(0, 5),
		s.MoveRule(-1, 0),
		s.SetRuleEnabled(1, true),
		s.UpdateRule(2, rule("B", "b")),
	} {
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	}
}

func TestSnapshotIsIsolatedFromMutation(t *testing.T) {
	s := testStore(t)
	_ = s.AddRule(rule("A", "a"))

	snap := s.Snapshot()
	_ = s.SetRuleEnabled(0, false)
	_ = s.SetExclusions([]string{"New"})

	if !snap.Rules[0].Enabled {
		t.Error("snapshot must not observe later edits")
	}
	if len(snap.Exclusions) != 0 {
		t.Error("snapshot exclusions must not observe later edits")
	}

	// Mutating the snapshot must not leak back either.
	*snap.Rules[0].FileType = "zzz"
	if *s.Snapshot().Rules[0].FileType == "zzz" {
		t.Error("snapshot shares pointers with the store")
	}
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	s := testStore(t)
	doc := s.Snapshot()
	if len(doc.Rules) != 0 || len(doc.Exclusions) != 0 {
		t.Errorf("doc = %+v, want empty", doc)
	}
}
