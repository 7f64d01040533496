package parser

import "testing"

func TestTags_FrontmatterAndInline(t *testing.T) {
	input := []byte("---\ntitle: Hello\ntags:\n  - alpha\n  - project/work\n---\nBody #beta and #alpha again.\n")
	tags := Tags(input)
	if len(tags) != 3 {
		t.Fatalf("tags = %v, want 3 entries", tags)
	}
	if tags[0] != "alpha" || tags[1] != "project/work" || tags[2] != "beta" {
		t.Errorf("tags = %v, want [alpha project/work beta]", tags)
	}
}

func TestTags_NoFrontmatter(t *testing.T) {
	tags := Tags([]byte("Just text with #one tag.\n"))
	if len(tags) != 1 || tags[0] != "one" {
		t.Errorf("tags = %v, want [one]", tags)
	}
}

func TestTags_ScalarFrontmatterTag(t *testing.T) {
	tags := Tags([]byte("---\ntags: solo\n---\nbody\n"))
	if len(tags) != 1 || tags[0] != "solo" {
		t.Errorf("tags = %v, want [solo]", tags)
	}
}

func TestTags_InvalidYAMLFallsBackToBodyScan(t *testing.T) {
	input := []byte("---\n: invalid: yaml: {{{\n---\nBody #rescued\n")
	tags := Tags(input)
	if len(tags) != 1 || tags[0] != "rescued" {
		t.Errorf("tags = %v, want [rescued]", tags)
	}
}

func TestTags_NoClosingDelimiter(t *testing.T) {
	tags := Tags([]byte("---\ntags:\n  - lost\nno closing delim #found\n"))
	if len(tags) != 1 || tags[0] != "found" {
		t.Errorf("tags = %v, want [found]", tags)
	}
}

func TestTags_HashInWordNotATag(t *testing.T) {
	tags := Tags([]byte("c#sharp is not a tag, neither is foo#bar, but #real is\n"))
	if len(tags) != 1 || tags[0] != "real" {
		t.Errorf("tags = %v, want [real]", tags)
	}
}
