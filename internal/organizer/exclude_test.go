package organizer

import "testing"

func TestExcluded_PrefixWithSeparator(t *testing.T) {
	ex := []string{"Templates", "Daily/Archive"}

	cases := []struct {
		path string
		want bool
	}{
		{"Templates/todo.md", true},
		{"Templates/sub/todo.md", true},
		{`Templates\todo.md`, true},
		{"Templates", false},          // the folder itself, not a file under it
		{"TemplatesOld/todo.md", false}, // prefix must be followed by a separator
		{"Daily/Archive/x.md", true},
		{"Daily/x.md", false},
		{"note.md", false},
	}
	for _, c := range cases {
		if got := Excluded(c.path, ex); got != c.want {
			t.Errorf("Excluded(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestExcluded_ToleratesTrailingSeparatorsAndBlanks(t *testing.T) {
	ex := []string{"Templates/", "  ", ""}
	if !Excluded("Templates/todo.md", ex) {
		t.Error("trailing separator on the prefix must not defeat the match")
	}
	if Excluded("anything.md", ex) {
		t.Error("blank prefixes must exclude nothing")
	}
}

func TestExcluded_OrderIrrelevant(t *testing.T) {
	a := []string{"A", "B"}
	b := []string{"B", "A"}
	for _, p := range []string{"A/x.md", "B/y.md", "C/z.md"} {
		if Excluded(p, a) != Excluded(p, b) {
			t.Errorf("exclusion of %q depends on list order", p)
		}
	}
}
