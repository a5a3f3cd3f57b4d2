package position

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN for the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// LoadFEN parses a standard six-field FEN string into a new Position
// (spec §4.1, §6). Unspecified trailing fields default to no castling
// rights, no en passant target, and clocks 0/1, matching spec wording
// ("all unspecified fields default").
func LoadFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: %q needs at least placement and side-to-move fields", ErrInvalidFEN, fen)
	}

	pos := &Position{EPTarget: NoSquare, FullmoveNumber: 1}

	if err := parsePlacement(pos, fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		pos.Turn = White
	case "b":
		pos.Turn = Black
	default:
		return nil, fmt.Errorf("%w: side to move %q must be w or b", ErrInvalidFEN, fields[1])
	}

	if len(fields) > 2 && fields[2] != "-" {
		if err := parseCastling(pos, fields[2]); err != nil {
			return nil, err
		}
	}

	if len(fields) > 3 && fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: en passant square %q: %v", ErrInvalidFEN, fields[3], err)
		}
		pos.EPTarget = sq
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("%w: halfmove clock %q: %v", ErrInvalidFEN, fields[4], err)
		}
		pos.HalfmoveClock = n
	}

	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("%w: fullmove number %q: %v", ErrInvalidFEN, fields[5], err)
		}
		pos.FullmoveNumber = n
	}

	if err := pos.recomputeDerived(); err != nil {
		return nil, err
	}
	return pos, nil
}

// MustLoadFEN is LoadFEN for callers (mainly tests) that already know
// the FEN is well-formed; it resets to the starting position on error,
// matching the "safe default" behavior spec §7 requires of FEN parsing.
func MustLoadFEN(fen string) *Position {
	pos, err := LoadFEN(fen)
	if err != nil {
		return NewStartingPosition()
	}
	return pos
}

func parsePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: piece placement needs 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if file > 7 {
				return fmt.Errorf("%w: rank %d has too many squares", ErrInvalidFEN, rank+1)
			}
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece, ok := PieceFromChar(byte(ch))
			if !ok {
				return fmt.Errorf("%w: unrecognized piece character %q", ErrInvalidFEN, ch)
			}
			pos.setPiece(piece, NewSquare(file, rank))
			file++
		}
		if file != 8 {
			return fmt.Errorf("%w: rank %d covers %d squares, want 8", ErrInvalidFEN, rank+1, file)
		}
	}
	return nil
}

func parseCastling(pos *Position, field string) error {
	for _, ch := range field {
		switch ch {
		case 'K':
			pos.Castling[CastleWK] = true
		case 'Q':
			pos.Castling[CastleWQ] = true
		case 'k':
			pos.Castling[CastleBK] = true
		case 'q':
			pos.Castling[CastleBQ] = true
		default:
			return fmt.Errorf("%w: castling field has unexpected character %q", ErrInvalidFEN, ch)
		}
	}
	return nil
}

// ToFEN renders the position back to standard FEN notation.
func (p *Position) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.Squares[NewSquare(file, rank)]
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.Turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(castlingString(p.Castling))

	sb.WriteByte(' ')
	sb.WriteString(p.EPTarget.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullmoveNumber))

	return sb.String()
}
