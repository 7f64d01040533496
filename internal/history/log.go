package history

import (
	"time"

	"github.com/starford/raido/internal/organizer"
)

// RunLog defines the interface for activity-log operations. Consumers
// should depend on this interface rather than the concrete *DB type to
// facilitate testing with mocks.
type RunLog interface {
	RecordRun(res *organizer.RunResult) (int64, error)
	ListRuns(limit int) ([]RunRow, error)
	RunMoves(runID int64) ([]MoveRow, error)
	LastRunAt() (time.Time, error)
	Close() error
}

// Verify *DB satisfies RunLog and the engine's ActivityLog at compile time.
var (
	_ RunLog                = (*DB)(nil)
	_ organizer.ActivityLog = (*DB)(nil)
)
