package position

import "strings"

// SAN renders m in Standard Algebraic Notation against pos, the position
// m is played from (SPEC_FULL §4.14), grounded on the teacher's
// board/san.go ToSAN: piece letter, disambiguation, capture/promotion
// markers, then a check/mate suffix computed by playing m on a scratch
// clone.
func (m Move) SAN(pos *Position) string {
	if m.IsNone() {
		return "-"
	}
	if m.IsCastling() {
		if m.To > m.From {
			return "O-O"
		}
		return "O-O-O"
	}

	piece := pos.Squares[m.From]
	pt := piece.Type()

	var sb strings.Builder
	if pt != Pawn {
		sb.WriteByte(upperChar(pt))
		sb.WriteString(sanDisambiguation(pos, m, pt))
	}

	if m.IsCapture() {
		if pt == Pawn {
			sb.WriteByte('a' + byte(m.From.File()))
		}
		sb.WriteByte('x')
	}

	sb.WriteString(m.To.String())

	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte(upperChar(m.Promotion()))
	}

	scratch := pos.Clone()
	scratch.MakeMove(m)
	mover := piece.Color().Other()
	if scratch.IsCheckmate(mover) {
		sb.WriteByte('#')
	} else if scratch.InCheck(mover) {
		sb.WriteByte('+')
	}

	return sb.String()
}

func upperChar(pt PieceType) byte {
	return pt.Char() - ('a' - 'A')
}

// sanDisambiguation returns the file, rank, or full-square qualifier
// needed to distinguish m from any other legal move by a same-type piece
// landing on the same square (teacher's getDisambiguation, adapted).
func sanDisambiguation(pos *Position, m Move, pt PieceType) string {
	var ml MoveList
	pos.GenerateLegalMoves(&ml)

	var candidates []Square
	for i := 0; i < ml.Len(); i++ {
		cm := ml.Get(i)
		if cm.To != m.To || cm.From == m.From {
			continue
		}
		if pos.Squares[cm.From].Type() != pt {
			continue
		}
		candidates = append(candidates, cm.From)
	}
	if len(candidates) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range candidates {
		if sq.File() == m.From.File() {
			sameFile = true
		}
		if sq.Rank() == m.From.Rank() {
			sameRank = true
		}
	}

	if !sameFile {
		return string(rune('a' + m.From.File()))
	}
	if !sameRank {
		return string(rune('1' + m.From.Rank()))
	}
	return m.From.String()
}
