// Package search implements alpha-beta search over a position.Position,
// following the structure of the teacher's engine package (a Searcher
// wrapping per-search mutable state, node counting, a stop flag) but
// simplified to the single-threaded, TT-and-ordering-only algorithm
// spec §4.7 describes — no aspiration windows, no Lazy-SMP workers, no
// pruning heuristics beyond TT/killers/history.
package search

import (
	"context"

	"github.com/haru-chess/chesscore/internal/eval"
	"github.com/haru-chess/chesscore/internal/position"
	"github.com/haru-chess/chesscore/internal/tt"
)

// Search score constants (spec §4.7).
const (
	Infinity  = 30000
	Checkmate = 29000
	Stalemate = 0
)

// Searcher runs alpha-beta search with TT and move ordering over one
// *position.Position, grounded on the teacher's Searcher/Worker split
// but collapsed into a single type since there is no concurrency here.
type Searcher struct {
	pos       *position.Position
	tt        *tt.Table
	orderer   *Orderer
	evaluator *eval.Evaluator
	nodes     uint64
	stop      *bool
}

// NewSearcher builds a Searcher over pos, sharing tt and an evaluator
// across repeated calls (both outlive a single search, per spec §5:
// "the TT is treated as owned by a single search at a time").
func NewSearcher(pos *position.Position, table *tt.Table, evaluator *eval.Evaluator) *Searcher {
	return &Searcher{
		pos:       pos,
		tt:        table,
		orderer:   NewOrderer(),
		evaluator: evaluator,
	}
}

// Nodes returns the number of nodes visited by the most recent search.
func (s *Searcher) Nodes() uint64 { return s.nodes }

// SetStopFlag installs a pointer the caller can flip mid-search to abort
// cooperatively; negamax polls it at the top of every call (spec §5:
// "An implementation may thread an atomic stop flag polled at the top of
// negamax to abort"). A nil flag (the default) disables the check.
func (s *Searcher) SetStopFlag(stop *bool) { s.stop = stop }

func (s *Searcher) stopped(ctx context.Context) bool {
	if s.stop != nil && *s.stop {
		return true
	}
	return ctx.Err() != nil
}

// mateScore returns the signed mate score for being checkmated at ply,
// adjusted so shorter mates dominate longer ones at the same node (spec
// §4.7: "Mate scores are adjusted by ply").
func mateScore(ply int) int32 {
	return int32(-(Checkmate - ply))
}

// Negamax implements the 7-step algorithm of spec §4.7. depth is plies
// remaining; ply is distance from the search root (used for killer
// indexing and mate-score adjustment); alpha/beta are the search window
// in the negamax (single-sign) convention. ctx is polled at the top of
// every call (spec §4.13/§5: "an optional context.Context deadline
// polled at the top of negamax"); a cancelled ctx aborts the search the
// same way the cooperative stop flag does.
func (s *Searcher) Negamax(ctx context.Context, depth, ply int, alpha, beta int32) int32 {
	s.nodes++
	if s.stopped(ctx) {
		return 0
	}

	origAlpha := alpha
	hash := s.pos.Hash

	// Step 1: probe TT, capturing the best move for ordering even when
	// no cutoff applies.
	var ttMove position.Move
	if entry, ok := s.tt.Probe(hash); ok {
		ttMove = entry.BestMove
		if int(entry.Depth) >= depth {
			switch entry.Flag {
			case tt.Exact:
				return adjustFromTT(entry.Score, ply)
			case tt.Alpha:
				score := adjustFromTT(entry.Score, ply)
				if score <= alpha {
					return score
				}
				if score < beta {
					beta = score
				}
			case tt.Beta:
				score := adjustFromTT(entry.Score, ply)
				if score >= beta {
					return score
				}
				if score > alpha {
					alpha = score
				}
			}
		}
	}

	// Step 2: terminal check via short-circuited legality probing.
	mover := s.pos.Turn
	if !s.pos.HasLegalMove() {
		if s.pos.InCheck(mover) {
			return mateScore(ply)
		}
		return Stalemate
	}

	// Step 3: leaf evaluation.
	if depth == 0 {
		score := int32(s.evaluator.Evaluate(s.pos, mover))
		s.tt.Store(hash, 0, score, tt.Exact, position.NoMove)
		return score
	}

	// Step 4: generate, score, and sort pseudo-legal moves.
	var ml position.MoveList
	s.pos.GenerateMoves(&ml)
	s.orderer.ScoreMoves(s.pos, &ml, ply, ttMove)
	Sort(&ml)

	best := -int32(Infinity)
	bestMove := position.NoMove

	// Step 5: make/unmake with own-king legality filtering.
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		undo := s.pos.MakeMove(m)
		if s.pos.InCheck(mover) {
			s.pos.UnmakeMove(m, undo)
			continue
		}

		score := -s.Negamax(ctx, depth-1, ply+1, -beta, -alpha)
		s.pos.UnmakeMove(m, undo)

		if score > best {
			best = score
			bestMove = m
		}
		if best > alpha {
			alpha = best
		}

		// Step 6: fail-high cutoff.
		if alpha >= beta {
			if m.IsQuiet() {
				s.orderer.UpdateKillers(m, ply)
				s.orderer.UpdateHistory(m, depth)
			}
			s.tt.Store(hash, depth, adjustToTT(best, ply), tt.Beta, bestMove)
			return best
		}
	}

	// Step 7: store the final bound.
	flag := tt.Alpha
	if best > origAlpha {
		flag = tt.Exact
	}
	s.tt.Store(hash, depth, adjustToTT(best, ply), flag, bestMove)
	return best
}

// adjustFromTT converts a stored mate score back to the current node's
// ply distance (spec §4.7).
func adjustFromTT(score int32, ply int) int32 {
	if score > Checkmate-64 {
		return score - int32(ply)
	}
	if score < -(Checkmate - 64) {
		return score + int32(ply)
	}
	return score
}

// adjustToTT converts a ply-relative mate score to a ply-independent one
// for TT storage (spec §4.7).
func adjustToTT(score int32, ply int) int32 {
	if score > Checkmate-64 {
		return score + int32(ply)
	}
	if score < -(Checkmate - 64) {
		return score - int32(ply)
	}
	return score
}
