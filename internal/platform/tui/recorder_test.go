package tui

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-dodgeball/internal/games/dodgeball"
	"github.com/vovakirdan/tui-dodgeball/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecorderNumbersGames(t *testing.T) {
	store := openTestStore(t)
	rec := NewRecorder(store, "alice", 500, nil)

	rec.Save(dodgeball.Result{MatchID: "m", FinalRole: dodgeball.RoleAttack, RoundOneDuration: 1000, RoundTwoDuration: 400, Won: true})
	rec.Save(dodgeball.Result{MatchID: "m", FinalRole: dodgeball.RoleAttack, RoundOneDuration: 10, RoundTwoDuration: 20})

	if rec.Games() != 2 {
		t.Errorf("Games() = %d, expected 2", rec.Games())
	}

	first, err := store.ResultsByMatch("m/1")
	if err != nil {
		t.Fatalf("ResultsByMatch() failed: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 record for m/1, got %d", len(first))
	}
	r := first[0]
	if r.Node != "alice" || r.Role != "attack" || !r.Won || r.RoundOne != 1000 || r.TickRate != 500 {
		t.Errorf("record = %+v", r)
	}
	if got := r.Seconds(r.RoundOne); got != 2 {
		t.Errorf("Seconds() = %v, expected 2", got)
	}

	second, err := store.ResultsByMatch("m/2")
	if err != nil {
		t.Fatalf("ResultsByMatch() failed: %v", err)
	}
	if len(second) != 1 || second[0].Won {
		t.Errorf("second game records = %+v", second)
	}
}

func TestRecorderWithoutStore(t *testing.T) {
	rec := NewRecorder(nil, "bob", 500, nil)
	rec.Save(dodgeball.Result{MatchID: "m"})
	if rec.Games() != 1 {
		t.Errorf("Games() = %d, expected 1", rec.Games())
	}
}
