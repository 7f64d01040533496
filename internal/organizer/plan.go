package organizer

import (
	"path"
	"sort"
	"time"
)

// SkipReason classifies why a planned or attempted move did not happen.
type SkipReason string

const (
	// SkipDestinationConflict: the destination was already occupied by a
	// file, a folder, or a move planned earlier in the same run.
	SkipDestinationConflict SkipReason = "destination_conflict"
	// SkipFolderCreateFailed: the destination folder could not be created;
	// every move targeting it is voided.
	SkipFolderCreateFailed SkipReason = "folder_create_failed"
	// SkipMoveFailed: the underlying rename failed for this file.
	SkipMoveFailed SkipReason = "move_failed"
)

// MoveOp is one planned relocation. Checksum is filled in after execution
// with the digest of the moved file's content.
type MoveOp struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	RuleFolder  string `json:"rule_folder"`
	Checksum    string `json:"checksum,omitempty"`
}

// Skip records a file that matched a rule but was not moved.
type Skip struct {
	Source      string     `json:"source"`
	Destination string     `json:"destination,omitempty"`
	Reason      SkipReason `json:"reason"`
	Detail      string     `json:"detail,omitempty"`
}

// Plan is the ordered set of proposed moves computed before any are
// executed. Produced fresh per run, never persisted.
type Plan struct {
	Moves []MoveOp `json:"moves"`
	Skips []Skip   `json:"skips,omitempty"`
}

// Folders returns the distinct destination rule folders of the plan, sorted.
func (p *Plan) Folders() []string {
	seen := make(map[string]struct{}, len(p.Moves))
	var out []string
	for _, m := range p.Moves {
		if _, ok := seen[m.RuleFolder]; ok {
			continue
		}
		seen[m.RuleFolder] = struct{}{}
		out = append(out, m.RuleFolder)
	}
	sort.Strings(out)
	return out
}

// RunResult is the sole artifact a run hands to logging and notification.
type RunResult struct {
	ID         int64     `json:"id,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	MovedCount int       `json:"moved_count"`
	Moves      []MoveOp  `json:"moves"`
	Skips      []Skip    `json:"skips,omitempty"`
}

// GroupByFolder groups executed moves by destination folder, file names
// sorted within each folder. This is the shape the activity log consumes.
func (r *RunResult) GroupByFolder() map[string][]string {
	out := make(map[string][]string)
	for _, m := range r.Moves {
		out[m.RuleFolder] = append(out[m.RuleFolder], path.Base(m.Destination))
	}
	for _, names := range out {
		sort.Strings(names)
	}
	return out
}
