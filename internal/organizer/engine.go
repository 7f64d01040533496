package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/starford/raido/internal/checksum"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/parser"
	"github.com/starford/raido/internal/storage"
)

// ActivityLog records completed runs for post-hoc inspection.
type ActivityLog interface {
	RecordRun(res *RunResult) (int64, error)
}

// Notifier receives fire-and-forget run events. RunCompleted is only
// invoked when at least one file moved.
type Notifier interface {
	RunStarted()
	FileMoved(source, destination string)
	RunCompleted(movedCount int)
}

// Engine is the single entry point for organization runs. Every trigger
// (timer, startup, vault change, manual) calls Run; behavior is identical
// regardless of why it was invoked. Runs are serialized: planning depends
// on a strictly sequential view of claimed destinations.
type Engine struct {
	store    storage.Provider
	activity ActivityLog
	notifier Notifier
	logger   *slog.Logger

	mu sync.Mutex // one run at a time
}

// New creates an Engine. activity and notifier may be nil.
func New(store storage.Provider, activity ActivityLog, notifier Notifier, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: store, activity: activity, notifier: notifier, logger: logger}
}

// Preview computes the plan a run would execute, without touching the vault.
func (e *Engine) Preview(ctx context.Context, rules []models.Rule, exclusions []string) (*Plan, error) {
	snap, err := e.snapshot(ctx, rules)
	if err != nil {
		return nil, err
	}
	plan := BuildPlan(snap, rules, exclusions, e.logger)
	return &plan, nil
}

// Run performs one full organization pass: snapshot, plan, create
// destination folders, execute moves, record and notify. Individual
// failures are contained at file or folder granularity; Run always returns
// a RunResult (possibly with MovedCount = 0) unless the vault itself could
// not be read. A concurrent caller blocks until the active run finishes.
func (e *Engine) Run(ctx context.Context, rules []models.Rule, exclusions []string) (*RunResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	started := time.Now().UTC()
	if e.notifier != nil {
		e.notifier.RunStarted()
	}

	snap, err := e.snapshot(ctx, rules)
	if err != nil {
		return nil, fmt.Errorf("organizer: snapshot: %w", err)
	}

	plan := BuildPlan(snap, rules, exclusions, e.logger)
	result := e.execute(ctx, plan)
	result.StartedAt = started
	result.FinishedAt = time.Now().UTC()

	e.logger.Info("organizer: run finished",
		slog.Int("moved", result.MovedCount),
		slog.Int("skipped", len(result.Skips)),
		slog.Duration("took", result.FinishedAt.Sub(result.StartedAt)))

	if e.activity != nil {
		id, recErr := e.activity.RecordRun(result)
		if recErr != nil {
			e.logger.Warn("organizer: record run failed", slog.String("error", recErr.Error()))
		} else {
			result.ID = id
		}
	}
	if e.notifier != nil && result.MovedCount > 0 {
		e.notifier.RunCompleted(result.MovedCount)
	}
	return result, nil
}

// snapshot takes the single consistent vault view for this run and reads
// tag metadata for tag-bearing files when any enabled rule uses a tag
// criterion. Unreadable metadata fails closed: the file is treated as
// having no tags for this run.
func (e *Engine) snapshot(ctx context.Context, rules []models.Rule) (*models.VaultSnapshot, error) {
	snap, err := e.store.Snapshot()
	if err != nil {
		return nil, err
	}
	if !anyTagRule(rules) {
		return snap, nil
	}
	for i := range snap.Files {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		f := &snap.Files[i]
		if !f.TagBearing() {
			continue
		}
		data, readErr := e.store.Read(f.Path)
		if readErr != nil {
			e.logger.Warn("organizer: tag read failed",
				slog.String("path", f.Path),
				slog.String("error", readErr.Error()))
			continue
		}
		f.Tags = normalizeTags(parser.Tags(data))
	}
	return snap, nil
}

// execute creates destination folders and performs the planned moves.
// Folder-creation failure voids only that folder's moves; per-file move
// failure skips only that file. Cancellation is honored between moves.
func (e *Engine) execute(ctx context.Context, plan Plan) *RunResult {
	result := &RunResult{
		Moves: []MoveOp{},
		Skips: append([]Skip{}, plan.Skips...),
	}

	voided := make(map[string]string)
	for _, folder := range plan.Folders() {
		if err := e.store.CreateFolder(folder); err != nil {
			voided[folder] = err.Error()
			e.logger.Warn("organizer: create folder failed",
				slog.String("folder", folder),
				slog.String("error", err.Error()))
		}
	}

	for _, m := range plan.Moves {
		if ctx.Err() != nil {
			e.logger.Info("organizer: run cancelled", slog.Int("moved_so_far", result.MovedCount))
			break
		}
		if detail, ok := voided[m.RuleFolder]; ok {
			result.Skips = append(result.Skips, Skip{
				Source:      m.Source,
				Destination: m.Destination,
				Reason:      SkipFolderCreateFailed,
				Detail:      detail,
			})
			continue
		}
		if err := e.store.Move(m.Source, m.Destination); err != nil {
			result.Skips = append(result.Skips, Skip{
				Source:      m.Source,
				Destination: m.Destination,
				Reason:      SkipMoveFailed,
				Detail:      err.Error(),
			})
			e.logger.Warn("organizer: move failed",
				slog.String("source", m.Source),
				slog.String("destination", m.Destination),
				slog.String("error", err.Error()))
			continue
		}
		if data, readErr := e.store.Read(m.Destination); readErr == nil {
			m.Checksum = checksum.Sum(data)
		}
		result.Moves = append(result.Moves, m)
		result.MovedCount++
		e.logger.Debug("organizer: moved",
			slog.String("source", m.Source),
			slog.String("destination", m.Destination))
		if e.notifier != nil {
			e.notifier.FileMoved(m.Source, m.Destination)
		}
	}
	return result
}

func anyTagRule(rules []models.Rule) bool {
	for _, r := range rules {
		if r.Enabled && r.Tag != nil && *r.Tag != "" {
			return true
		}
	}
	return false
}

// normalizeTags maps raw tags to normalized form, deduplicates (distinct
// raw tags can normalize to the same string), and sorts for determinism.
func normalizeTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	var out []string
	for _, t := range raw {
		n := NormalizeTag(t)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
