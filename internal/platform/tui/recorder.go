package tui

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/vovakirdan/tui-dodgeball/internal/games/dodgeball"
	"github.com/vovakirdan/tui-dodgeball/internal/storage"
)

// Recorder appends a node's finished games to the history ledger.
// Its Save method is meant to be a node's OnFinish hook.
//
// A pairing can play several games after resets; each gets the suffix
// "/n" so both nodes of the pairing agree on the ledger key without talking.
type Recorder struct {
	store    *storage.Store
	node     string
	tickRate int
	log      *zap.SugaredLogger
	games    atomic.Int64
}

// NewRecorder creates a recorder. A nil store makes Save a no-op.
func NewRecorder(store *storage.Store, node string, tickRate int, log *zap.SugaredLogger) *Recorder {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Recorder{store: store, node: node, tickRate: tickRate, log: log}
}

// Save writes r to the ledger. Failures are logged, never returned:
// the game has already ended and nothing depends on the record.
func (rec *Recorder) Save(r dodgeball.Result) {
	n := rec.games.Add(1)
	if rec.store == nil {
		return
	}

	record := storage.MatchRecord{
		MatchID:  fmt.Sprintf("%s/%d", r.MatchID, n),
		Node:     rec.node,
		Role:     r.FinalRole.String(),
		RoundOne: int64(r.RoundOneDuration),
		RoundTwo: int64(r.RoundTwoDuration),
		TickRate: rec.tickRate,
		Won:      r.Won,
	}
	if _, err := rec.store.SaveResult(record); err != nil {
		rec.log.Warnw("cannot save match result", "match", record.MatchID, "error", err)
		return
	}
	rec.log.Infow("match result saved", "match", record.MatchID, "won", r.Won)
}

// Games returns how many finished games the recorder has seen.
func (rec *Recorder) Games() int64 {
	return rec.games.Load()
}
