// Package eval implements the position evaluator (spec §4.10), composed
// the way the teacher's nnue.Evaluator composes a network with a
// position: optionally backed by a trained net, falling back to plain
// material counting when no net is enabled.
package eval

import (
	"log"
	"math"

	"github.com/haru-chess/chesscore/internal/features"
	"github.com/haru-chess/chesscore/internal/nnet"
	"github.com/haru-chess/chesscore/internal/position"
)

// pieceValues mirrors spec §4.10: {P=100, N=320, B=330, R=500, Q=900,
// K=0}, indexed by PieceType (NoPieceType=0 unused).
var pieceValues = [7]int{0, 100, 320, 330, 500, 900, 0}

// Evaluator scores a position from a requested side's perspective. It wraps an
// optional *nnet.Network; when absent (or uninitialized) Evaluate falls
// back to material counting.
type Evaluator struct {
	net *nnet.Network
}

// NewMaterialEvaluator returns an Evaluator with no net attached.
func NewMaterialEvaluator() *Evaluator {
	return &Evaluator{}
}

// NewNetEvaluator returns an Evaluator backed by net. net may be nil or
// uninitialized, in which case Evaluate falls back to material scoring.
func NewNetEvaluator(net *nnet.Network) *Evaluator {
	return &Evaluator{net: net}
}

// SetNet attaches (or detaches, with nil) the net backing this evaluator.
func (e *Evaluator) SetNet(net *nnet.Network) {
	e.net = net
}

// HasNet reports whether an initialized net is currently attached.
func (e *Evaluator) HasNet() bool {
	return e.net != nil && e.net.Initialized()
}

// Evaluate returns a score for pos from perspective's point of view
// (spec §4.10). With an initialized net attached, the feature vector
// from perspective is run through the forward pass and the [0,1] output
// is truncated directly to an integer, per spec — centipawn calibration
// is a concern for a layer above this package. Otherwise it returns the
// material balance, from perspective's point of view.
func (e *Evaluator) Evaluate(pos *position.Position, perspective position.Color) int {
	if e.HasNet() {
		vec := features.Extract(pos, perspective)
		out, err := e.net.Forward(vec)
		if err != nil {
			log.Printf("Warning: net forward pass failed, falling back to material score: %v", err)
			return materialScore(pos, perspective)
		}
		return int(out)
	}
	return materialScore(pos, perspective)
}

func materialScore(pos *position.Position, perspective position.Color) int {
	var white, black int
	for _, sq := range pos.PieceSquares(position.White) {
		white += pieceValues[pos.Squares[sq].Type()]
	}
	for _, sq := range pos.PieceSquares(position.Black) {
		black += pieceValues[pos.Squares[sq].Type()]
	}
	score := white - black
	if perspective == position.Black {
		score = -score
	}
	return score
}

// TrainingTarget computes the training target for a position whose
// material score (centipawns, from the training color's perspective) is
// m: clamp(sigmoid(m/600), 0.01, 0.99) (spec §4.9 "Score mapping").
func TrainingTarget(materialCentipawns int) float32 {
	x := float64(materialCentipawns) / 600.0
	s := 1.0 / (1.0 + math.Exp(-x))
	if s < 0.01 {
		s = 0.01
	}
	if s > 0.99 {
		s = 0.99
	}
	return float32(s)
}
