package organizer

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/starford/raido/internal/models"
)

// BuildPlan computes the move plan for one run. It is pure over its inputs:
// given the same snapshot, rule sequence, and exclusion list it produces a
// byte-identical plan (files are processed in sorted path order and the
// claimed-destination set grows deterministically).
//
// Per file: excluded files are never evaluated; rules are walked in index
// order (index = priority); reaching a rule whose folder equals the file's
// current parent stops evaluation (already organized, idempotent re-runs
// move nothing); the first matching rule claims the destination or records
// a conflict skip; either way evaluation stops. Disabled rules and rules
// failing validation are skipped, never fatal.
func BuildPlan(snap *models.VaultSnapshot, rules []models.Rule, exclusions []string, logger *slog.Logger) Plan {
	if logger == nil {
		logger = slog.Default()
	}

	// Surface misconfigured rules once per run; they are simply inert below.
	for i, r := range rules {
		if !r.Enabled {
			continue
		}
		if err := r.Validate(); err != nil {
			logger.Warn("planner: skipping invalid rule",
				slog.Int("index", i),
				slog.String("error", err.Error()))
		}
	}

	files := make([]models.FileRecord, len(snap.Files))
	copy(files, snap.Files)
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	occupied := snap.PathSet()

	var plan Plan
	for _, f := range files {
		if Excluded(f.Path, exclusions) {
			continue
		}
		for _, r := range rules {
			if !r.Enabled {
				continue
			}
			folder := ruleFolder(r)
			if folder == "" || !r.HasCriteria() {
				continue
			}
			if f.Parent == folder {
				// Already under this rule's umbrella; lower-priority rules
				// are not consulted.
				break
			}
			if !Match(f, r) {
				continue
			}
			dest := folder + "/" + f.Name
			if _, taken := occupied[dest]; taken {
				plan.Skips = append(plan.Skips, Skip{
					Source:      f.Path,
					Destination: dest,
					Reason:      SkipDestinationConflict,
				})
				logger.Debug("planner: destination occupied",
					slog.String("source", f.Path),
					slog.String("destination", dest))
				break
			}
			occupied[dest] = struct{}{}
			plan.Moves = append(plan.Moves, MoveOp{
				Source:      f.Path,
				Destination: dest,
				RuleFolder:  folder,
			})
			break
		}
	}
	return plan
}

// ruleFolder returns the rule's destination folder normalized for path
// comparison (trimmed, no trailing separator), or "" for an unusable rule.
func ruleFolder(r models.Rule) string {
	return strings.TrimRight(strings.TrimSpace(r.Folder), `/\`)
}
