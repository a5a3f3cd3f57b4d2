package position

import "testing"

func TestNewStartingPosition(t *testing.T) {
	pos := NewStartingPosition()
	if pos.Turn != White {
		t.Errorf("expected White to move, got %s", pos.Turn)
	}
	if pos.KingSquare[White.Index()] != NewSquare(4, 0) {
		t.Errorf("expected white king on e1, got %s", pos.KingSquare[White.Index()])
	}
	if pos.KingSquare[Black.Index()] != NewSquare(4, 7) {
		t.Errorf("expected black king on e8, got %s", pos.KingSquare[Black.Index()])
	}
	for _, right := range pos.Castling {
		if !right {
			t.Errorf("expected all castling rights set at game start, got %v", pos.Castling)
		}
	}
}

func TestHashConsistency(t *testing.T) {
	pos := NewStartingPosition()
	if pos.Hash != pos.ComputeHash() {
		t.Fatalf("initial hash mismatch: incremental=%x recomputed=%x", pos.Hash, pos.ComputeHash())
	}

	var ml MoveList
	pos.GenerateLegalMoves(&ml)
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		undo := pos.MakeMove(m)
		if pos.Hash != pos.ComputeHash() {
			t.Errorf("hash mismatch after %s: incremental=%x recomputed=%x", m, pos.Hash, pos.ComputeHash())
		}
		pos.UnmakeMove(m, undo)
		if pos.Hash != pos.ComputeHash() {
			t.Errorf("hash mismatch after unmaking %s: incremental=%x recomputed=%x", m, pos.Hash, pos.ComputeHash())
		}
	}
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	pos := NewStartingPosition()
	before := *pos

	var ml MoveList
	pos.GenerateLegalMoves(&ml)
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		undo := pos.MakeMove(m)
		pos.UnmakeMove(m, undo)
		if *pos != before {
			t.Fatalf("position did not round-trip through make/unmake of %s", m)
		}
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"8/8/8/4k3/8/8/4K3/8 w - - 0 1",
		"4k2r/8/8/8/8/8/8/R3K3 w Qk - 0 1",
	}
	for _, fen := range fens {
		pos, err := LoadFEN(fen)
		if err != nil {
			t.Fatalf("LoadFEN(%q): %v", fen, err)
		}
		if got := pos.ToFEN(); got != fen {
			t.Errorf("round trip mismatch: want %q got %q", fen, got)
		}
	}
}

func TestLoadFENInvalid(t *testing.T) {
	_, err := LoadFEN("not a fen")
	if err == nil {
		t.Fatal("expected an error for a malformed FEN")
	}
}

func TestMustLoadFENFallsBackToStart(t *testing.T) {
	pos := MustLoadFEN("garbage")
	if pos.ToFEN() != StartFEN {
		t.Errorf("expected fallback to the starting position, got %q", pos.ToFEN())
	}
}
