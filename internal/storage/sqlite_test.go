package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndTopRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{GameID: "snake", Score: 4, Length: 5, Moves: 120, GridH: 20, GridW: 40, EndReason: "snake: out of bounds"},
		{GameID: "snake", Score: 9, Length: 10, Moves: 300, GridH: 20, GridW: 40},
		{GameID: "snake", Score: 4, Length: 7, Moves: 90, GridH: 20, GridW: 40, Player: "alice"},
		{GameID: "other", Score: 50, Length: 51},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("snake", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("len(TopRuns()) = %d, expected 3", len(top))
	}

	tests := []struct {
		score  int
		length int
		player string
	}{
		{9, 10, "local"},
		{4, 7, "alice"},
		{4, 5, "local"},
	}
	for i, tc := range tests {
		r := top[i]
		if r.Score != tc.score || r.Length != tc.length || r.Player != tc.player {
			t.Errorf("run %d = %d/%d/%s, expected %d/%d/%s",
				i, r.Score, r.Length, r.Player, tc.score, tc.length, tc.player)
		}
	}

	if top[2].Moves != 120 || top[2].EndReason != "snake: out of bounds" {
		t.Errorf("run details not round-tripped: %+v", top[2])
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{GameID: "snake", Score: (i + 1) * 10})
	}

	top, err := store.TopRuns("snake", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("len(TopRuns()) = %d, expected 3", len(top))
	}
	if top[0].Score != 50 || top[1].Score != 40 || top[2].Score != 30 {
		t.Errorf("Scores not in expected order: %v", top)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("snake")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() = %d, expected 0 for an empty table", high)
	}

	for _, score := range []int{3, 12, 7} {
		store.SaveRun(Run{GameID: "snake", Score: score})
	}

	high, err = store.HighScore("snake")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 12 {
		t.Errorf("HighScore() = %d, expected 12", high)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GameStats("snake")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v, expected zero runs", empty)
	}

	store.SaveRun(Run{GameID: "snake", Score: 2, Length: 3})
	store.SaveRun(Run{GameID: "snake", Score: 6, Length: 7})

	stats, err := store.GameStats("snake")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.HighScore != 6 || stats.MaxLength != 7 || stats.AvgScore != 4 {
		t.Errorf("stats = %+v, expected 2 runs, high 6, max length 7, avg 4", stats)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{GameID: "snake", Score: 1})
	store.SaveRun(Run{GameID: "other", Score: 2})

	if err := store.ClearRuns("snake"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	if runs, _ := store.TopRuns("snake", 10); len(runs) != 0 {
		t.Errorf("len(TopRuns()) = %d after clear, expected 0", len(runs))
	}
	if runs, _ := store.TopRuns("other", 10); len(runs) != 1 {
		t.Error("clearing one game must not touch another")
	}
}
