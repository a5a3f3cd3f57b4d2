package search

import (
	"context"
	"testing"

	"github.com/haru-chess/chesscore/internal/eval"
	"github.com/haru-chess/chesscore/internal/position"
)

func TestEngineFindsBackRankMateInOne(t *testing.T) {
	pos := position.MustLoadFEN("6k1/5ppp/8/8/8/8/8/R6K w - - 0 1")
	e := NewEngine(pos, eval.NewMaterialEvaluator())
	info := e.Search(context.Background(), 3)

	want := position.NewMove(position.NewSquare(0, 0), position.NewSquare(0, 7), position.Empty)
	if !info.BestMove.Equal(want) {
		t.Errorf("expected best move %s, got %s", want, info.BestMove)
	}
	if info.Score < Checkmate-10 {
		t.Errorf("expected a near-immediate mate score, got %d", info.Score)
	}
}

func TestEngineSessionIDStableAcrossSearches(t *testing.T) {
	pos := position.NewStartingPosition()
	e := NewEngine(pos, eval.NewMaterialEvaluator())

	first := e.Search(context.Background(), 1)
	second := e.Search(context.Background(), 1)
	if first.SessionID != second.SessionID {
		t.Error("expected the same engine's searches to share one session id")
	}
}

func TestEngineNodesAccumulatePerDepth(t *testing.T) {
	pos := position.NewStartingPosition()
	e := NewEngine(pos, eval.NewMaterialEvaluator())
	info := e.Search(context.Background(), 2)
	if info.Nodes == 0 {
		t.Error("expected a non-zero node count after searching")
	}
	if info.Depth != 2 {
		t.Errorf("expected the final iteration to report depth 2, got %d", info.Depth)
	}
}

func TestEnginePVStartsWithBestMove(t *testing.T) {
	pos := position.MustLoadFEN("6k1/5ppp/8/8/8/8/8/R6K w - - 0 1")
	e := NewEngine(pos, eval.NewMaterialEvaluator())
	info := e.Search(context.Background(), 3)

	if len(info.PV) == 0 {
		t.Fatal("expected a non-empty principal variation")
	}
	if !info.PV[0].Equal(info.BestMove) {
		t.Errorf("expected the PV's first move to match the reported best move, got %s vs %s", info.PV[0], info.BestMove)
	}
}

func TestEngineSearchIsDeterministic(t *testing.T) {
	fen := "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3"

	pos1 := position.MustLoadFEN(fen)
	e1 := NewEngine(pos1, eval.NewMaterialEvaluator())
	info1 := e1.Search(context.Background(), 3)

	pos2 := position.MustLoadFEN(fen)
	e2 := NewEngine(pos2, eval.NewMaterialEvaluator())
	info2 := e2.Search(context.Background(), 3)

	if info1.BestMove != info2.BestMove || info1.Score != info2.Score || info1.Nodes != info2.Nodes {
		t.Errorf("expected identical searches from the same position to be deterministic, got %+v vs %+v", info1, info2)
	}
}
