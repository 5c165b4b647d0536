package storage

import (
	"fmt"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	records := []MatchRecord{
		{MatchID: "m1", Node: "alice", Role: "defend", RoundOne: 1000, RoundTwo: 2500, TickRate: 500, Won: true},
		{MatchID: "m1", Node: "bob", Role: "attack", RoundOne: 1000, RoundTwo: 2500, TickRate: 500, Won: false},
	}
	for _, r := range records {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	got, err := store.ResultsByMatch("m1")
	if err != nil {
		t.Fatalf("ResultsByMatch() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(got))
	}
	if got[0].Node != "alice" || !got[0].Won || got[0].RoundTwo != 2500 {
		t.Errorf("first record = %+v", got[0])
	}
	if got[1].Won {
		t.Error("second record should be a loss")
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}
	if s := got[0].Seconds(got[0].RoundTwo); s != 5 {
		t.Errorf("Seconds() = %v, expected 5", s)
	}
}

func TestStoreDuplicateRejected(t *testing.T) {
	store := openTestStore(t)
	r := MatchRecord{MatchID: "m1", Node: "alice", Role: "defend"}

	if _, err := store.SaveResult(r); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if _, err := store.SaveResult(r); err == nil {
		t.Error("saving the same node's record twice should fail")
	}
}

func TestStoreRecentResultsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 25; i++ {
		r := MatchRecord{MatchID: fmt.Sprintf("m%02d", i), Node: "n", Role: "attack"}
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	got, err := store.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("Expected 10 records, got %d", len(got))
	}
	if got[0].MatchID != "m24" {
		t.Errorf("newest record = %s, expected m24", got[0].MatchID)
	}

	got, err = store.RecentResults(0)
	if err != nil {
		t.Fatalf("RecentResults(0) failed: %v", err)
	}
	if len(got) != 20 {
		t.Errorf("default limit returned %d, expected 20", len(got))
	}
}

func TestStoreNodeStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.NodeStats("")
	if err != nil {
		t.Fatalf("NodeStats() on empty ledger failed: %v", err)
	}
	if stats.Played != 0 || stats.Won != 0 {
		t.Errorf("empty stats = %+v", stats)
	}

	for i, won := range []bool{true, false, true} {
		r := MatchRecord{MatchID: fmt.Sprintf("m%d", i), Node: "alice", Role: "defend", Won: won}
		if _, err := store.SaveResult(r); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.SaveResult(MatchRecord{MatchID: "x", Node: "bob", Role: "attack", Won: true}); err != nil {
		t.Fatal(err)
	}

	stats, err = store.NodeStats("alice")
	if err != nil {
		t.Fatalf("NodeStats() failed: %v", err)
	}
	if stats.Played != 3 || stats.Won != 2 {
		t.Errorf("alice stats = %+v, expected 3 played 2 won", stats)
	}

	stats, err = store.NodeStats("")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Played != 4 || stats.Won != 3 {
		t.Errorf("total stats = %+v, expected 4 played 3 won", stats)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
