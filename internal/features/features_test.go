package features

import (
	"testing"

	"github.com/haru-chess/chesscore/internal/position"
)

func TestExtractLengthAndOnehot(t *testing.T) {
	pos := position.NewStartingPosition()
	vec := Extract(pos, position.White)
	if len(vec) != Size {
		t.Fatalf("expected vector length %d, got %d", Size, len(vec))
	}

	var ones int
	for _, v := range vec {
		if v == 1 {
			ones++
		} else if v != 0 {
			t.Errorf("expected only 0/1 entries, found %v", v)
		}
	}
	// 32 pieces + 4 castling rights + 1 side-to-move; no ep target at start.
	if want := 32 + 4 + 1; ones != want {
		t.Errorf("expected %d set bits, got %d", want, ones)
	}
}

func TestExtractSideToMove(t *testing.T) {
	pos := position.NewStartingPosition()
	white := Extract(pos, position.White)
	black := Extract(pos, position.Black)
	if white[offSide] != 1 {
		t.Error("expected side-to-move bit set for White's own perspective when White is to move")
	}
	if black[offSide] != 0 {
		t.Error("expected side-to-move bit clear for Black's perspective when White is to move")
	}
}

func TestExtractColorSymmetricPositionsMatch(t *testing.T) {
	// P: White king e1, White pawn e2, Black king e8, White to move.
	// P': P with every square mirrored vertically and every piece's color
	// swapped, Black to move. Extracting P from White's perspective must
	// equal extracting P' from Black's perspective (spec §4.8).
	p := position.MustLoadFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	pMirrored := position.MustLoadFEN("4k3/4p3/8/8/8/8/8/4K3 b - - 0 1")

	vp := Extract(p, position.White)
	vpm := Extract(pMirrored, position.Black)

	for i := range vp {
		if vp[i] != vpm[i] {
			t.Fatalf("mismatch at offset %d: original=%v mirrored=%v", i, vp[i], vpm[i])
		}
	}
}

func TestExtractEnPassantFile(t *testing.T) {
	pos := position.MustLoadFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	vec := Extract(pos, position.White)
	for file := 0; file < 8; file++ {
		want := float32(0)
		if file == 3 { // d-file
			want = 1
		}
		if got := vec[offEP+file]; got != want {
			t.Errorf("ep file %d: got %v want %v", file, got, want)
		}
	}
}
