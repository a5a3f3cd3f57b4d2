package search

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/haru-chess/chesscore/internal/eval"
	"github.com/haru-chess/chesscore/internal/position"
	"github.com/haru-chess/chesscore/internal/tt"
)

// SearchInfo reports one completed iterative-deepening search, in the
// shape a host (CLI, tests) reads back after calling Engine.Search.
// SessionID disambiguates concurrent logs across multiple engines
// sharing one process, the way the teacher's UCI layer tags games.
type SearchInfo struct {
	SessionID uuid.UUID
	Depth     int
	Score     int32
	Nodes     uint64
	Time      time.Duration
	BestMove  position.Move
	PV        []position.Move
}

// Engine drives iterative deepening over a position, owning the TT,
// move orderer, and evaluator for repeated searches (spec §4.7,
// "Iterative deepening driver").
type Engine struct {
	pos       *position.Position
	tt        *tt.Table
	evaluator *eval.Evaluator
	sessionID uuid.UUID
}

// NewEngine returns an Engine over pos, backed by its own TT.
func NewEngine(pos *position.Position, evaluator *eval.Evaluator) *Engine {
	return &Engine{
		pos:       pos,
		tt:        tt.New(),
		evaluator: evaluator,
		sessionID: uuid.New(),
	}
}

// Search runs iterative deepening from depth 1 to maxDepth, stopping
// early once the score crosses the near-mate threshold
// (|score| >= Checkmate-100) or ctx is done, and returns the last
// completed iteration's info (spec §4.7, §4.13/§5: ctx carries an
// optional deadline, polled at the top of every Negamax call).
func (e *Engine) Search(ctx context.Context, maxDepth int) SearchInfo {
	start := time.Now()
	e.tt.NewSearch()

	s := NewSearcher(e.pos, e.tt, e.evaluator)
	s.orderer.Clear()

	var info SearchInfo
	for depth := 1; depth <= maxDepth; depth++ {
		score := s.Negamax(ctx, depth, 0, -int32(Infinity), int32(Infinity))
		if ctx.Err() != nil {
			break
		}

		entry, ok := e.tt.Probe(e.pos.Hash)
		var best position.Move
		if ok {
			best = entry.BestMove
		}

		info = SearchInfo{
			SessionID: e.sessionID,
			Depth:     depth,
			Score:     score,
			Nodes:     s.Nodes(),
			Time:      time.Since(start),
			BestMove:  best,
			PV:        e.PV(depth),
		}

		if score >= Checkmate-100 || score <= -(Checkmate-100) {
			break
		}
	}
	return info
}

// PV walks the TT chain from the current position, following each
// stored best move and making it on a scratch copy, up to maxLen moves
// (spec §4.12: PV extraction from the TT rather than a dedicated PV
// table, matching this package's TT-only ordering design).
func (e *Engine) PV(maxLen int) []position.Move {
	pv := make([]position.Move, 0, maxLen)
	scratch := e.pos.Clone()
	seen := make(map[uint64]bool)

	for len(pv) < maxLen {
		entry, ok := e.tt.Probe(scratch.Hash)
		if !ok || entry.BestMove.IsNone() || seen[scratch.Hash] {
			break
		}
		seen[scratch.Hash] = true

		var ml position.MoveList
		scratch.GenerateLegalMoves(&ml)
		if !ml.Contains(entry.BestMove) {
			break
		}

		scratch.MakeMove(entry.BestMove)
		pv = append(pv, entry.BestMove)
	}
	return pv
}
