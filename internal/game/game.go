// Package game wraps position.Position with the host-facing state
// machine spec §6 describes: a two-step pending-promotion protocol over
// apply_move/commit_promotion, an undo stack, and the terminal-state
// queries a UI or CLI needs. It is the one layer in this module allowed
// to allocate per-move (an undo-history slice), the way the teacher's
// Game/GameState types sit above its allocation-free board package.
package game

import (
	"fmt"

	"github.com/haru-chess/chesscore/internal/position"
)

// ApplyResult is the outcome of ApplyMove (spec §6: "{Ok, NeedPromotion,
// Illegal}").
type ApplyResult int

const (
	Illegal ApplyResult = iota
	Ok
	NeedPromotion
)

func (r ApplyResult) String() string {
	switch r {
	case Ok:
		return "Ok"
	case NeedPromotion:
		return "NeedPromotion"
	default:
		return "Illegal"
	}
}

type undoRecord struct {
	move position.Move
	undo position.UndoInfo
}

// Game layers the pending-promotion state machine and undo history over
// a *position.Position.
type Game struct {
	pos     *position.Position
	history []undoRecord
	pending *struct {
		from, to position.Square
	}
}

// New starts a fresh game from the standard starting position.
func New() *Game {
	return &Game{pos: position.NewStartingPosition()}
}

// FromFEN starts a game from an arbitrary FEN string.
func FromFEN(fen string) (*Game, error) {
	pos, err := position.LoadFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Game{pos: pos}, nil
}

// Position exposes the underlying position for read-only queries
// (search, evaluation, FEN export) that don't go through the pending
// promotion protocol.
func (g *Game) Position() *position.Position { return g.pos }

// PendingPromotion reports whether ApplyMove is waiting on a
// CommitPromotion call.
func (g *Game) PendingPromotion() bool { return g.pending != nil }

// findLegalMoves returns every legal move from `from` to `to`, which may
// be more than one only when the move is a promotion (one per piece
// choice).
func (g *Game) findLegalMoves(from, to position.Square) []position.Move {
	var ml position.MoveList
	g.pos.GenerateLegalMoves(&ml)
	var matches []position.Move
	for i := 0; i < ml.Len(); i++ {
		if m := ml.Get(i); m.From == from && m.To == to {
			matches = append(matches, m)
		}
	}
	return matches
}

// ApplyMove attempts the move from->to (spec §6, §9 "Pending promotion
// state machine"). If the squares name a legal, non-promoting move it is
// applied immediately and Ok is returned. If they name a pawn reaching
// the back rank, NeedPromotion is returned and the pending choice is
// recorded; the caller must follow up with CommitPromotion before any
// other ApplyMove or Undo. Any other input returns Illegal.
func (g *Game) ApplyMove(from, to position.Square) (ApplyResult, error) {
	if g.pending != nil {
		return Illegal, fmt.Errorf("%w: commit or resolve the pending promotion first", position.ErrPromotionNotNeeded)
	}

	matches := g.findLegalMoves(from, to)
	if len(matches) == 0 {
		return Illegal, fmt.Errorf("%w: %s%s", position.ErrMoveIllegal, from, to)
	}
	if matches[0].IsPromotion() {
		g.pending = &struct{ from, to position.Square }{from, to}
		return NeedPromotion, nil
	}

	undo := g.pos.MakeMove(matches[0])
	g.history = append(g.history, undoRecord{move: matches[0], undo: undo})
	return Ok, nil
}

// CommitPromotion completes a pending promotion with the chosen piece
// type (spec §6: "choice ∈ {Q,R,B,N}").
func (g *Game) CommitPromotion(choice position.PieceType) error {
	if g.pending == nil {
		return position.ErrNoPromotionPending
	}
	matches := g.findLegalMoves(g.pending.from, g.pending.to)
	for _, m := range matches {
		if m.Promotion() == choice {
			undo := g.pos.MakeMove(m)
			g.history = append(g.history, undoRecord{move: m, undo: undo})
			g.pending = nil
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not a legal promotion choice here", position.ErrMoveIllegal, choice)
}

// Undo reverts the most recently applied move. It is invalid while a
// promotion is pending (spec §9: "No other apply_move or undo is valid
// while promotion is pending").
func (g *Game) Undo() error {
	if g.pending != nil {
		return fmt.Errorf("%w: resolve the pending promotion before undoing", position.ErrPromotionNotNeeded)
	}
	if len(g.history) == 0 {
		return fmt.Errorf("%w: no move to undo", position.ErrMoveIllegal)
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.pos.UnmakeMove(last.move, last.undo)
	return nil
}

// InCheck, IsCheckmate, IsStalemate, GameOver, Result, and Hash forward
// directly to the underlying position (spec §6).
func (g *Game) InCheck(c position.Color) bool    { return g.pos.InCheck(c) }
func (g *Game) IsCheckmate(c position.Color) bool { return g.pos.IsCheckmate(c) }
func (g *Game) IsStalemate(c position.Color) bool { return g.pos.IsStalemate(c) }
func (g *Game) GameOver() bool                    { return g.pos.GameOver() }
func (g *Game) Result() position.Result           { return g.pos.ComputeResult() }
func (g *Game) Hash() uint64                      { return g.pos.Hash }

// LegalMoves returns every legal move in the current position.
func (g *Game) LegalMoves() []position.Move {
	var ml position.MoveList
	g.pos.GenerateLegalMoves(&ml)
	return append([]position.Move(nil), ml.Slice()...)
}

// LegalMovesFrom returns the destination squares reachable from sq.
func (g *Game) LegalMovesFrom(sq position.Square) []position.Square {
	return g.pos.LegalMovesFrom(sq)
}
