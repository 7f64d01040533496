package history

import (
	"os"
	"testing"
	"time"

	"github.com/starford/raido/internal/organizer"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "raido-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleResult() *organizer.RunResult {
	now := time.Now().UTC().Truncate(time.Second)
	return &organizer.RunResult{
		StartedAt:  now.Add(-time.Second),
		FinishedAt: now,
		MovedCount: 2,
		Moves: []organizer.MoveOp{
			{Source: "b.md", Destination: "Notes/b.md", RuleFolder: "Notes", Checksum: "cs1"},
			{Source: "p.png", Destination: "Images/p.png", RuleFolder: "Images", Checksum: "cs2"},
		},
		Skips: []organizer.Skip{
			{Source: "x.md", Destination: "Notes/x.md", Reason: organizer.SkipDestinationConflict},
		},
	}
}

func TestRecordAndListRuns(t *testing.T) {
	db := testDB(t)

	id, err := db.RecordRun(sampleResult())
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero run id")
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("len(runs) = %d, want 1", len(runs))
	}
	if runs[0].MovedCount != 2 || runs[0].SkippedCount != 1 {
		t.Errorf("run row = %+v", runs[0])
	}
}

func TestRunMovesGroupedByFolder(t *testing.T) {
	db := testDB(t)
	id, err := db.RecordRun(sampleResult())
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	moves, err := db.RunMoves(id)
	if err != nil {
		t.Fatalf("RunMoves: %v", err)
	}
	if len(moves) != 2 {
		t.Fatalf("len(moves) = %d, want 2", len(moves))
	}
	// Ordered by rule_folder: Images before Notes.
	if moves[0].RuleFolder != "Images" || moves[1].RuleFolder != "Notes" {
		t.Errorf("moves = %+v", moves)
	}
	if moves[0].Checksum != "cs2" {
		t.Errorf("checksum = %q", moves[0].Checksum)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	db := testDB(t)
	for i := 0; i < 3; i++ {
		if _, err := db.RecordRun(sampleResult()); err != nil {
			t.Fatal(err)
		}
	}
	runs, err := db.ListRuns(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].ID <= runs[1].ID {
		t.Errorf("runs = %+v, want 2 rows newest first", runs)
	}
}

func TestLastRunAt(t *testing.T) {
	db := testDB(t)

	ts, err := db.LastRunAt()
	if err != nil {
		t.Fatalf("LastRunAt: %v", err)
	}
	if !ts.IsZero() {
		t.Errorf("expected zero time before any run, got %v", ts)
	}

	res := sampleResult()
	if _, err := db.RecordRun(res); err != nil {
		t.Fatal(err)
	}
	ts, err = db.LastRunAt()
	if err != nil {
		t.Fatalf("LastRunAt: %v", err)
	}
	if !ts.Equal(res.FinishedAt) {
		t.Errorf("LastRunAt = %v, want %v", ts, res.FinishedAt)
	}
}

func TestRecordRunEmptyResult(t *testing.T) {
	db := testDB(t)
	res := &organizer.RunResult{StartedAt: time.Now(), FinishedAt: time.Now()}
	id, err := db.RecordRun(res)
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	moves, err := db.RunMoves(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != 0 {
		t.Errorf("moves = %+v, want none", moves)
	}
}
