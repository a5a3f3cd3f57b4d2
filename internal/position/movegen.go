package position

// promotionTypes lists the four promotion choices in the order spec
// §4.3 enumerates them.
var promotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// GenerateMoves appends every pseudo-legal move for the side to move
// into ml (spec §4.3). Pseudo-legal: a move may still leave the mover's
// own king in check; GenerateLegalMoves filters those out.
func (p *Position) GenerateMoves(ml *MoveList) {
	us := p.Turn
	for _, from := range p.PieceSquares(us) {
		switch p.Squares[from].Type() {
		case Pawn:
			p.genPawnMoves(ml, from, us)
		case Knight:
			p.genStepMoves(ml, from, us, knightAttacks[from])
		case King:
			p.genStepMoves(ml, from, us, kingAttacks[from])
			p.genCastling(ml, from, us)
		case Bishop:
			p.genSliderMoves(ml, from, us, diagonalDirs[:])
		case Rook:
			p.genSliderMoves(ml, from, us, orthogonalDirs[:])
		case Queen:
			p.genSliderMoves(ml, from, us, orthogonalDirs[:])
			p.genSliderMoves(ml, from, us, diagonalDirs[:])
		}
	}
}

func (p *Position) genStepMoves(ml *MoveList, from Square, us Color, targets []Square) {
	for _, to := range targets {
		target := p.Squares[to]
		if target.IsEmpty() {
			ml.Add(NewMove(from, to, Empty))
		} else if target.Color() != us {
			ml.Add(NewMove(from, to, target))
		}
	}
}

func (p *Position) genSliderMoves(ml *MoveList, from Square, us Color, dirs []int) {
	for _, dir := range dirs {
		for _, to := range rayAttacks[dir][from] {
			target := p.Squares[to]
			if target.IsEmpty() {
				ml.Add(NewMove(from, to, Empty))
				continue
			}
			if target.Color() != us {
				ml.Add(NewMove(from, to, target))
			}
			break
		}
	}
}

func (p *Position) genPawnMoves(ml *MoveList, from Square, us Color) {
	forward := 1
	startRank := 1
	promoRank := 7
	if us == Black {
		forward = -1
		startRank = 6
		promoRank = 0
	}

	file, rank := from.File(), from.Rank()

	// Single push.
	oneRank := rank + forward
	if oneRank >= 0 && oneRank <= 7 {
		one := NewSquare(file, oneRank)
		if p.Squares[one].IsEmpty() {
			p.addPawnMove(ml, from, one, Empty, promoRank)

			// Double push from the starting rank.
			if rank == startRank {
				two := NewSquare(file, rank+2*forward)
				if p.Squares[two].IsEmpty() {
					ml.Add(NewMove(from, two, Empty))
				}
			}
		}
	}

	// Diagonal captures, including en passant.
	for _, df := range [2]int{-1, 1} {
		nf := file + df
		nr := rank + forward
		if !on(nf, nr) {
			continue
		}
		to := NewSquare(nf, nr)
		target := p.Squares[to]
		if !target.IsEmpty() && target.Color() != us {
			p.addPawnMove(ml, from, to, target, promoRank)
		} else if to == p.EPTarget && p.EPTarget != NoSquare {
			captured := NewPiece(Pawn, us.Other())
			ml.Add(NewEnPassantMove(from, to, captured))
		}
	}
}

func (p *Position) addPawnMove(ml *MoveList, from, to Square, captured Piece, promoRank int) {
	if to.Rank() == promoRank {
		for _, pt := range promotionTypes {
			ml.Add(NewPromotionMove(from, to, captured, pt))
		}
		return
	}
	ml.Add(NewMove(from, to, captured))
}

// genCastling appends castling moves for the king on from, per spec
// §4.3: the right must be set, the intervening squares empty, and the
// king's start/pass-through/destination squares not attacked.
func (p *Position) genCastling(ml *MoveList, from Square, us Color) {
	if p.InCheck(us) {
		return
	}
	rank := from.Rank()
	them := us.Other()

	kingRight, queenRight := CastleWK, CastleWQ
	if us == Black {
		kingRight, queenRight = CastleBK, CastleBQ
	}

	if p.Castling[kingRight] {
		f1, g1 := NewSquare(5, rank), NewSquare(6, rank)
		if p.Squares[f1].IsEmpty() && p.Squares[g1].IsEmpty() &&
			!p.IsAttacked(f1, them) && !p.IsAttacked(g1, them) {
			ml.Add(NewCastlingMove(from, g1))
		}
	}
	if p.Castling[queenRight] {
		b1, c1, d1 := NewSquare(1, rank), NewSquare(2, rank), NewSquare(3, rank)
		if p.Squares[b1].IsEmpty() && p.Squares[c1].IsEmpty() && p.Squares[d1].IsEmpty() &&
			!p.IsAttacked(d1, them) && !p.IsAttacked(c1, them) {
			ml.Add(NewCastlingMove(from, c1))
		}
	}
}

// GenerateLegalMoves returns only the pseudo-legal moves that do not
// leave the mover's own king in check, by making and unmaking each one
// (spec §4.3, "legality is enforced during search"; spec §4.11 reuses
// this for perft).
func (p *Position) GenerateLegalMoves(ml *MoveList) {
	var pseudo MoveList
	p.GenerateMoves(&pseudo)
	mover := p.Turn
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		undo := p.MakeMove(m)
		if !p.InCheck(mover) {
			ml.Add(m)
		}
		p.UnmakeMove(m, undo)
	}
}

// HasLegalMove reports whether the side to move has at least one legal
// reply, short-circuiting on the first one found (spec §4.7 step 2,
// "short-circuiting on the first legal one").
func (p *Position) HasLegalMove() bool {
	var pseudo MoveList
	p.GenerateMoves(&pseudo)
	mover := p.Turn
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		undo := p.MakeMove(m)
		ok := !p.InCheck(mover)
		p.UnmakeMove(m, undo)
		if ok {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether color c is checkmated: in check with no
// legal reply. c must be the side to move.
func (p *Position) IsCheckmate(c Color) bool {
	return p.Turn == c && p.InCheck(c) && !p.HasLegalMove()
}

// IsStalemate reports whether color c is stalemated: not in check but
// with no legal move. c must be the side to move.
func (p *Position) IsStalemate(c Color) bool {
	return p.Turn == c && !p.InCheck(c) && !p.HasLegalMove()
}

// IsFiftyMoveDraw reports whether the halfmove clock has reached 100
// (fifty full moves without a pawn move or capture), spec §3.
func (p *Position) IsFiftyMoveDraw() bool {
	return p.HalfmoveClock >= 100
}

// GameOver reports whether the game has concluded by checkmate,
// stalemate, or the fifty-move rule.
func (p *Position) GameOver() bool {
	return p.IsCheckmate(p.Turn) || p.IsStalemate(p.Turn) || p.IsFiftyMoveDraw()
}

// Result describes the outcome of a finished game.
type Result int

const (
	Ongoing Result = iota
	WhiteWin
	BlackWin
	Draw
)

// ComputeResult classifies the position per spec §6 ("result()").
func (p *Position) ComputeResult() Result {
	if p.IsCheckmate(p.Turn) {
		if p.Turn == White {
			return BlackWin
		}
		return WhiteWin
	}
	if p.IsStalemate(p.Turn) || p.IsFiftyMoveDraw() {
		return Draw
	}
	return Ongoing
}

// Perft counts the leaf positions reachable by exactly depth plies of
// strictly legal moves (spec §4.11).
func (p *Position) Perft(depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var ml MoveList
	p.GenerateLegalMoves(&ml)
	if depth == 1 {
		return uint64(ml.Len())
	}
	var nodes uint64
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		undo := p.MakeMove(m)
		nodes += p.Perft(depth - 1)
		p.UnmakeMove(m, undo)
	}
	return nodes
}

// PerftDivide returns, for each legal first move, the perft count of
// its subtree at depth-1 (spec §4.11, §6).
func (p *Position) PerftDivide(depth int) map[string]uint64 {
	out := make(map[string]uint64)
	var ml MoveList
	p.GenerateLegalMoves(&ml)
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		undo := p.MakeMove(m)
		out[m.String()] = p.Perft(depth - 1)
		p.UnmakeMove(m, undo)
	}
	return out
}

// LegalMovesFrom returns the destination squares of every legal move
// originating at from (spec §6, "legal_moves_from").
func (p *Position) LegalMovesFrom(from Square) []Square {
	var ml MoveList
	p.GenerateLegalMoves(&ml)
	var out []Square
	for i := 0; i < ml.Len(); i++ {
		if m := ml.Get(i); m.From == from {
			out = append(out, m.To)
		}
	}
	return out
}
