// Package features extracts the fixed-length input vector the neural
// net evaluator consumes from a position (spec §4.8). The layout mirrors
// the teacher's HalfKP indexing style (internal/nnue/features.go) but
// flattened: instead of a king-relative sparse feature set, every square
// gets one slot per piece plane, plus castling/side/en-passant slots.
package features

import "github.com/haru-chess/chesscore/internal/position"

// Size is the full input vector length: 12 piece planes x 64 squares,
// plus 4 castling rights, 1 side-to-move flag, 8 en-passant file bits.
const Size = 12*64 + 4 + 1 + 8

const (
	offPieces   = 0
	offCastling = 12 * 64
	offSide     = offCastling + 4
	offEP       = offSide + 1
)

// planeIndex returns the 0-11 plane for a piece relative to perspective:
// the perspective's own six piece types first, then the opponent's six,
// each in spec §4.8's {P, N, B, R, Q, K} order. For White's perspective
// this is exactly the named {WP..WK, BP..BK} layout; for Black's
// perspective "own" and "opponent" swap, which is what makes a
// color-symmetric position extract to the same vector from either side.
func planeIndex(p position.Piece, perspective position.Color) int {
	idx := int(p.Type()) - 1
	if p.Color() != perspective {
		idx += 6
	}
	return idx
}

// Extract fills and returns a Size-length vector for pos from
// perspective's point of view (spec §4.8). From Black's perspective,
// every occupied square is mirrored vertically and the castling-rights
// order is swapped to {BK, BQ, WK, WQ}, so a color-symmetric position
// always yields an identical feature vector regardless of which side is
// asked to move.
func Extract(pos *position.Position, perspective position.Color) []float32 {
	vec := make([]float32, Size)

	mirror := perspective == position.Black
	for sq := position.Square(0); sq < 64; sq++ {
		p := pos.Squares[sq]
		if p.IsEmpty() {
			continue
		}
		targetSq := sq
		if mirror {
			targetSq = sq.Mirror()
		}
		vec[offPieces+planeIndex(p, perspective)*64+int(targetSq)] = 1
	}

	// Castling rights: {WK, WQ, BK, BQ} normally, {BK, BQ, WK, WQ} mirrored.
	rights := [4]bool{
		pos.Castling[position.CastleWK],
		pos.Castling[position.CastleWQ],
		pos.Castling[position.CastleBK],
		pos.Castling[position.CastleBQ],
	}
	order := [4]int{0, 1, 2, 3}
	if mirror {
		order = [4]int{2, 3, 0, 1}
	}
	for slot, right := range order {
		if rights[right] {
			vec[offCastling+slot] = 1
		}
	}

	if pos.Turn == perspective {
		vec[offSide] = 1
	}

	if pos.EPTarget != position.NoSquare {
		file := pos.EPTarget.File()
		vec[offEP+file] = 1
	}

	return vec
}
