package position

import "fmt"

// Move flag bits, per spec §3 ("Move encoding (FastMove)"):
// bit0 = capture, bit1 = en-passant capture, bit2 = castling,
// bits 3-5 = promotion piece type (0 = none, else 2..5).
const (
	FlagCapture   uint8 = 1 << 0
	FlagEnPassant uint8 = 1 << 1
	FlagCastling  uint8 = 1 << 2
)

const promoShift = 3
const promoMask = 0x7 << promoShift

// Move is the fixed-size move record used throughout generation, search,
// and ordering. Captured carries the piece taken (if any), which is all
// Unmake needs to restore the board without a separate undo stack entry
// for "what stood here" (spec §3/§4.4).
type Move struct {
	From     Square
	To       Square
	Flags    uint8
	Captured Piece
	Score    int16
}

// NoMove has both squares set to NoSquare and is used as a "none"
// sentinel in ordering and TT best-move slots.
var NoMove = Move{From: NoSquare, To: NoSquare}

// NewMove builds a quiet or capturing move (no promotion, no special flag).
func NewMove(from, to Square, captured Piece) Move {
	m := Move{From: from, To: to, Captured: captured}
	if !captured.IsEmpty() {
		m.Flags |= FlagCapture
	}
	return m
}

// NewEnPassantMove builds an en passant capture. captured is always the
// opposing pawn taken on the ep-capture square (to ± 8).
func NewEnPassantMove(from, to Square, captured Piece) Move {
	return Move{From: from, To: to, Captured: captured, Flags: FlagCapture | FlagEnPassant}
}

// NewCastlingMove builds a castling move (encodes only the king's leg).
func NewCastlingMove(from, to Square) Move {
	return Move{From: from, To: to, Flags: FlagCastling}
}

// NewPromotionMove builds a promotion move, optionally a capturing one.
// promo must be one of Knight, Bishop, Rook, Queen.
func NewPromotionMove(from, to Square, captured Piece, promo PieceType) Move {
	m := Move{From: from, To: to, Captured: captured, Flags: uint8(promo) << promoShift}
	if !captured.IsEmpty() {
		m.Flags |= FlagCapture
	}
	return m
}

// IsCapture reports whether the move captures a piece (including en passant).
func (m Move) IsCapture() bool { return m.Flags&FlagCapture != 0 }

// IsEnPassant reports whether the move is an en passant capture.
func (m Move) IsEnPassant() bool { return m.Flags&FlagEnPassant != 0 }

// IsCastling reports whether the move is a castling move.
func (m Move) IsCastling() bool { return m.Flags&FlagCastling != 0 }

// Promotion returns the promotion piece type, or NoPieceType if this is
// not a promotion.
func (m Move) Promotion() PieceType {
	return PieceType((m.Flags & promoMask) >> promoShift)
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool { return m.Promotion() != NoPieceType }

// IsQuiet reports whether the move is neither a capture nor a promotion —
// the class of move tracked by killers and history (spec §4.6).
func (m Move) IsQuiet() bool { return !m.IsCapture() && !m.IsPromotion() }

// IsNone reports whether this is the NoMove sentinel.
func (m Move) IsNone() bool { return m.From == NoSquare && m.To == NoSquare }

// Equal compares the squares and promotion of two moves (Score and
// Captured are ordering/unmake bookkeeping, not move identity).
func (m Move) Equal(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion() == o.Promotion() &&
		m.IsEnPassant() == o.IsEnPassant() && m.IsCastling() == o.IsCastling()
}

// String renders the move in UCI notation: "<from><to>[promo]" lowercased,
// e.g. "e7e8q" (spec §6).
func (m Move) String() string {
	if m.IsNone() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(m.Promotion().Char())
	}
	return s
}

// ParseUCIPromotion maps a UCI promotion letter to a PieceType.
func ParseUCIPromotion(c byte) (PieceType, error) {
	switch c {
	case 'n':
		return Knight, nil
	case 'b':
		return Bishop, nil
	case 'r':
		return Rook, nil
	case 'q':
		return Queen, nil
	default:
		return NoPieceType, fmt.Errorf("invalid promotion letter %q", c)
	}
}

// MoveListCapacity is the fixed capacity of a MoveList (spec §3: "a
// fixed-capacity array (≥256) with a count").
const MoveListCapacity = 256

// MoveList is a fixed-capacity, non-allocating buffer of moves. Move
// generation appends into a caller-owned MoveList; nothing in this
// package heap-allocates a slice of moves.
type MoveList struct {
	moves [MoveListCapacity]Move
	count int
}

// Len returns the number of moves currently in the list.
func (ml *MoveList) Len() int { return ml.count }

// Add appends a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move { return ml.moves[i] }

// Set replaces the move at index i.
func (ml *MoveList) Set(i int, m Move) { ml.moves[i] = m }

// Swap exchanges the moves at i and j.
func (ml *MoveList) Swap(i, j int) { ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i] }

// Clear empties the list without reallocating the backing array.
func (ml *MoveList) Clear() { ml.count = 0 }

// Contains reports whether m (by From/To/Promotion identity) is present.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i].Equal(m) {
			return true
		}
	}
	return false
}

// Slice returns the occupied prefix of the backing array. The returned
// slice aliases the MoveList's storage and is only valid until the next
// mutation.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
