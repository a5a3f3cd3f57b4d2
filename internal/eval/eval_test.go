package eval

import (
	"math"
	"testing"

	"github.com/haru-chess/chesscore/internal/nnet"
	"github.com/haru-chess/chesscore/internal/position"
)

func TestMaterialEvaluatorStartingPositionIsBalanced(t *testing.T) {
	e := NewMaterialEvaluator()
	pos := position.NewStartingPosition()
	if got := e.Evaluate(pos, position.White); got != 0 {
		t.Errorf("expected a balanced starting position, got %d", got)
	}
	if got := e.Evaluate(pos, position.Black); got != 0 {
		t.Errorf("expected a balanced starting position from Black's view too, got %d", got)
	}
}

func TestMaterialEvaluatorUpOneQueen(t *testing.T) {
	e := NewMaterialEvaluator()
	// White has an extra queen versus the bare kings.
	pos := position.MustLoadFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	if got := e.Evaluate(pos, position.White); got != 900 {
		t.Errorf("expected +900 from White's perspective, got %d", got)
	}
	if got := e.Evaluate(pos, position.Black); got != -900 {
		t.Errorf("expected -900 from Black's perspective, got %d", got)
	}
}

func TestHasNetFalseWithoutNet(t *testing.T) {
	e := NewMaterialEvaluator()
	if e.HasNet() {
		t.Error("expected HasNet to be false with no net attached")
	}
}

func TestHasNetFalseForUninitializedNet(t *testing.T) {
	e := NewNetEvaluator(nnet.New())
	if e.HasNet() {
		t.Error("expected HasNet to be false for an uninitialized net")
	}
}

func TestEvaluateFallsBackToMaterialWithUninitializedNet(t *testing.T) {
	e := NewNetEvaluator(nnet.New())
	pos := position.MustLoadFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	if got := e.Evaluate(pos, position.White); got != 900 {
		t.Errorf("expected material fallback score 900, got %d", got)
	}
}

func TestEvaluateUsesAttachedNet(t *testing.T) {
	net := nnet.New()
	// 781 inputs -> 1 output, small net so Forward is cheap and deterministic.
	if err := net.Initialize([]int{781, 1}, nnet.Sigmoid, 3); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	e := NewNetEvaluator(net)
	if !e.HasNet() {
		t.Fatal("expected HasNet to be true for an initialized net")
	}
	pos := position.NewStartingPosition()
	got := e.Evaluate(pos, position.White)
	if got < 0 || got > 1 {
		t.Errorf("expected a truncated sigmoid output in [0,1], got %d", got)
	}
}

func TestSetNetDetach(t *testing.T) {
	net := nnet.New()
	if err := net.Initialize([]int{781, 1}, nnet.Sigmoid, 3); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	e := NewNetEvaluator(net)
	e.SetNet(nil)
	if e.HasNet() {
		t.Error("expected HasNet to be false after detaching")
	}
}

func TestTrainingTargetClampsAndCenters(t *testing.T) {
	if got := TrainingTarget(0); math.Abs(float64(got)-0.5) > 1e-6 {
		t.Errorf("expected TrainingTarget(0) ~= 0.5, got %v", got)
	}
	if got := TrainingTarget(100000); got > 0.99 {
		t.Errorf("expected TrainingTarget to clamp at 0.99, got %v", got)
	}
	if got := TrainingTarget(-100000); got < 0.01 {
		t.Errorf("expected TrainingTarget to clamp at 0.01, got %v", got)
	}
}

func TestTrainingTargetMonotonic(t *testing.T) {
	low := TrainingTarget(-200)
	mid := TrainingTarget(0)
	high := TrainingTarget(200)
	if !(low < mid && mid < high) {
		t.Errorf("expected monotonically increasing targets, got %v %v %v", low, mid, high)
	}
}
