package position

import "fmt"

// Castling right indices, matching the FEN letter order K Q k q.
const (
	CastleWK = 0
	CastleWQ = 1
	CastleBK = 2
	CastleBQ = 3
)

// pieceListCapacity bounds the dense per-side occupied-square list.
// A side never has more than its original 16 pieces (a promotion
// replaces a pawn), so 16 is exactly the maximum.
const pieceListCapacity = 16

// pieceList is the dense list of occupied squares for one color
// (spec §3: "two dense lists of occupied squares per side with
// counters"). Order is unspecified by the spec and is not preserved
// across removals (Remove does a swap-pop).
type pieceList struct {
	squares [pieceListCapacity]Square
	count   int
}

func (pl *pieceList) add(sq Square) {
	pl.squares[pl.count] = sq
	pl.count++
}

func (pl *pieceList) remove(sq Square) {
	for i := 0; i < pl.count; i++ {
		if pl.squares[i] == sq {
			pl.count--
			pl.squares[i] = pl.squares[pl.count]
			return
		}
	}
}

func (pl *pieceList) replace(oldSq, newSq Square) {
	for i := 0; i < pl.count; i++ {
		if pl.squares[i] == oldSq {
			pl.squares[i] = newSq
			return
		}
	}
}

// Position is a complete, mutable chess position (spec §3). All state is
// owned directly by the struct: no pointers into shared storage, no
// separate bitboard layer. Zero value is not a valid position; use
// NewStartingPosition or LoadFEN.
type Position struct {
	Squares        [64]Piece
	pieces         [2]pieceList
	KingSquare     [2]Square
	Turn           Color
	Castling       [4]bool
	EPTarget       Square
	HalfmoveClock  int
	FullmoveNumber int
	Hash           uint64
}

// NewStartingPosition returns the standard chess starting position.
func NewStartingPosition() *Position {
	pos, err := LoadFEN(StartFEN)
	if err != nil {
		panic("position: starting FEN failed to parse: " + err.Error())
	}
	return pos
}

// PieceAt returns the piece occupying sq, or Empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.Squares[sq]
}

// PieceSquares returns the (unordered) occupied squares for color c.
// The returned slice aliases Position state and must not be retained
// across a Make/Unmake call.
func (p *Position) PieceSquares(c Color) []Square {
	pl := &p.pieces[c.Index()]
	return pl.squares[:pl.count]
}

// setPiece places piece on sq, updating the square array, piece list,
// and king-square cache. It does not touch Hash; callers that need hash
// consistency XOR the key themselves (see MakeMove) so that setup code
// (FEN loading) can place many pieces before computing one full hash.
func (p *Position) setPiece(piece Piece, sq Square) {
	p.Squares[sq] = piece
	p.pieces[piece.Color().Index()].add(sq)
	if piece.Type() == King {
		p.KingSquare[piece.Color().Index()] = sq
	}
}

// removePiece clears sq and returns what was there (Empty if nothing).
func (p *Position) removePiece(sq Square) Piece {
	piece := p.Squares[sq]
	if piece.IsEmpty() {
		return Empty
	}
	p.Squares[sq] = Empty
	p.pieces[piece.Color().Index()].remove(sq)
	return piece
}

// relocatePiece moves whatever occupies from to to, preserving identity
// in the piece list and king-square cache (used for the non-capturing
// half of Make and for Unmake). to must be empty.
func (p *Position) relocatePiece(from, to Square) {
	piece := p.Squares[from]
	p.Squares[from] = Empty
	p.Squares[to] = piece
	p.pieces[piece.Color().Index()].replace(from, to)
	if piece.Type() == King {
		p.KingSquare[piece.Color().Index()] = to
	}
}

// ComputeHash recomputes the Zobrist hash from scratch. Used by setup
// code and by the hash-consistency property test (spec §8.1:
// "P.hash == full_recompute(P)").
func (p *Position) ComputeHash() uint64 {
	var h uint64
	for sq := Square(0); sq < 64; sq++ {
		if piece := p.Squares[sq]; !piece.IsEmpty() {
			h ^= ZobristPieceKey(piece, sq)
		}
	}
	for i, set := range p.Castling {
		if set {
			h ^= ZobristCastleKey(i)
		}
	}
	if p.EPTarget != NoSquare {
		h ^= ZobristEPKey(p.EPTarget.File())
	}
	if p.Turn == Black {
		h ^= ZobristSideKey()
	}
	return h
}

// recomputeDerived rebuilds piece lists, king squares, and the hash from
// Squares alone. Called once after FEN parsing; Make/Unmake maintain
// these incrementally afterward (spec §4.1).
func (p *Position) recomputeDerived() error {
	p.pieces[0] = pieceList{}
	p.pieces[1] = pieceList{}
	p.KingSquare[0] = NoSquare
	p.KingSquare[1] = NoSquare

	for sq := Square(0); sq < 64; sq++ {
		piece := p.Squares[sq]
		if piece.IsEmpty() {
			continue
		}
		idx := piece.Color().Index()
		p.pieces[idx].add(sq)
		if piece.Type() == King {
			if p.KingSquare[idx] != NoSquare {
				return fmt.Errorf("%w: color %s has more than one king", ErrInvalidFEN, piece.Color())
			}
			p.KingSquare[idx] = sq
		}
	}
	if p.KingSquare[0] == NoSquare || p.KingSquare[1] == NoSquare {
		return fmt.Errorf("%w: both sides must have exactly one king", ErrInvalidFEN)
	}
	p.Hash = p.ComputeHash()
	return nil
}

// String renders an ASCII board diagram, for debugging and t.Logf output.
func (p *Position) String() string {
	s := "\n"
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d  ", rank+1)
		for file := 0; file < 8; file++ {
			s += p.Squares[NewSquare(file, rank)].String() + " "
		}
		s += "\n"
	}
	s += "   a b c d e f g h\n"
	s += fmt.Sprintf("turn=%s castling=%s ep=%s halfmove=%d fullmove=%d hash=%016x\n",
		p.Turn, castlingString(p.Castling), p.EPTarget, p.HalfmoveClock, p.FullmoveNumber, p.Hash)
	return s
}

func castlingString(c [4]bool) string {
	letters := "KQkq"
	s := ""
	for i, set := range c {
		if set {
			s += string(letters[i])
		}
	}
	if s == "" {
		return "-"
	}
	return s
}

// Clone returns a deep copy of the position. Make/Unmake never need
// this (they mutate in place) — it exists for callers that want to
// explore a move without threading undo state, e.g. tests.
func (p *Position) Clone() *Position {
	c := *p
	return &c
}
