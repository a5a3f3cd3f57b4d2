package position

// UndoInfo holds what Make captured about the pre-move state so Unmake
// can restore it exactly (spec §4.4: "Saved state is captured by the
// caller immediately before make" — here MakeMove captures it itself
// and hands it back, which is the idiom the teacher's board.MakeMove /
// UnmakeMove pair uses).
type UndoInfo struct {
	EPTarget       Square
	Castling       [4]bool
	HalfmoveClock  int
	FullmoveNumber int
	Hash           uint64
}

func epCaptureSquare(to Square, mover Color) Square {
	if mover == White {
		return Square(int(to) - 8)
	}
	return Square(int(to) + 8)
}

func castlingRookSquares(kingFrom, kingTo Square) (rookFrom, rookTo Square) {
	rank := kingFrom.Rank()
	if kingTo.File() == 6 {
		return NewSquare(7, rank), NewSquare(5, rank)
	}
	return NewSquare(0, rank), NewSquare(3, rank)
}

// revokeRightsFor clears any castling right made impossible by a piece
// arriving at or leaving a corner or king home square (spec §4.4 step 8).
func (p *Position) revokeRightsFor(sq Square, mover Piece) {
	switch sq {
	case NewSquare(0, 0):
		p.clearCastling(CastleWQ)
	case NewSquare(7, 0):
		p.clearCastling(CastleWK)
	case NewSquare(0, 7):
		p.clearCastling(CastleBQ)
	case NewSquare(7, 7):
		p.clearCastling(CastleBK)
	}
	if mover.Type() == King {
		if mover.Color() == White {
			p.clearCastling(CastleWK)
			p.clearCastling(CastleWQ)
		} else {
			p.clearCastling(CastleBK)
			p.clearCastling(CastleBQ)
		}
	}
}

func (p *Position) clearCastling(right int) {
	if p.Castling[right] {
		p.Castling[right] = false
		p.Hash ^= ZobristCastleKey(right)
	}
}

// MakeMove applies m to the position in place, maintaining the Zobrist
// hash incrementally by mirroring every state change with an XOR update
// (spec §4.4, steps 1-10). It does not check legality: m is assumed
// pseudo-legal (from GenerateMoves); the caller checks
// InCheck(mover-that-just-moved) afterward and calls UnmakeMove to back
// out illegal moves (spec §4.3, "Legality is enforced during search").
func (p *Position) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		EPTarget:       p.EPTarget,
		Castling:       p.Castling,
		HalfmoveClock:  p.HalfmoveClock,
		FullmoveNumber: p.FullmoveNumber,
		Hash:           p.Hash,
	}

	mover := p.Turn

	// Step 1: retire the old en passant file key.
	if p.EPTarget != NoSquare {
		p.Hash ^= ZobristEPKey(p.EPTarget.File())
	}

	// Steps 2-3: remove whatever is captured, en passant or direct.
	if m.IsEnPassant() {
		capSq := epCaptureSquare(m.To, mover)
		captured := p.removePiece(capSq)
		p.Hash ^= ZobristPieceKey(captured, capSq)
	} else if m.IsCapture() {
		captured := p.removePiece(m.To)
		p.Hash ^= ZobristPieceKey(captured, m.To)
	}

	// Step 4: relocate the rook for castling.
	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(m.From, m.To)
		rook := p.Squares[rookFrom]
		p.relocatePiece(rookFrom, rookTo)
		p.Hash ^= ZobristPieceKey(rook, rookFrom)
		p.Hash ^= ZobristPieceKey(rook, rookTo)
	}

	// Step 5: move the piece itself, promoting if required.
	moving := p.Squares[m.From]
	p.Hash ^= ZobristPieceKey(moving, m.From)
	placed := moving
	if m.IsPromotion() {
		p.removePiece(m.From)
		placed = NewPiece(m.Promotion(), mover)
		p.setPiece(placed, m.To)
	} else {
		p.relocatePiece(m.From, m.To)
	}
	p.Hash ^= ZobristPieceKey(placed, m.To)
	// Step 6 (king-square cache) happens inside relocatePiece.

	// Step 7: record a new en passant target for a two-square pawn push.
	p.EPTarget = NoSquare
	if moving.Type() == Pawn {
		delta := m.To.Rank() - m.From.Rank()
		if delta == 2 || delta == -2 {
			mid := NewSquare(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
			p.EPTarget = mid
			p.Hash ^= ZobristEPKey(mid.File())
		}
	}

	// Step 8: revoke castling rights made impossible by this move.
	p.revokeRightsFor(m.From, moving)
	p.revokeRightsFor(m.To, moving)

	// Step 9: halfmove clock and fullmove number.
	if moving.Type() == Pawn || m.IsCapture() {
		p.HalfmoveClock = 0
	} else {
		p.HalfmoveClock++
	}
	if mover == Black {
		p.FullmoveNumber++
	}

	// Step 10: flip side to move.
	p.Turn = p.Turn.Other()
	p.Hash ^= ZobristSideKey()

	return undo
}

// UnmakeMove reverses the effect of the MakeMove call that returned undo.
// m must be the exact move that was made; undo must be the value
// MakeMove returned for it.
func (p *Position) UnmakeMove(m Move, undo UndoInfo) {
	p.Turn = p.Turn.Other()
	mover := p.Turn

	if m.IsPromotion() {
		p.removePiece(m.To)
		p.setPiece(NewPiece(Pawn, mover), m.From)
	} else {
		p.relocatePiece(m.To, m.From)
	}

	if m.IsCastling() {
		rookFrom, rookTo := castlingRookSquares(m.From, m.To)
		p.relocatePiece(rookTo, rookFrom)
	}

	if m.IsEnPassant() {
		capSq := epCaptureSquare(m.To, mover)
		p.setPiece(m.Captured, capSq)
	} else if m.IsCapture() {
		p.setPiece(m.Captured, m.To)
	}

	p.EPTarget = undo.EPTarget
	p.Castling = undo.Castling
	p.HalfmoveClock = undo.HalfmoveClock
	p.FullmoveNumber = undo.FullmoveNumber
	p.Hash = undo.Hash
}
