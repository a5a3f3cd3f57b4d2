package search

import "github.com/haru-chess/chesscore/internal/position"

// MaxPly bounds the killer table and the ply argument passed through
// negamax (spec §3, "Killer moves: [MAX_PLY=64][2] pairs").
const MaxPly = 64

// Move ordering score constants (spec §4.6).
const (
	scoreTTMove       = 30000
	scoreQueenPromo   = 20000
	scoreOtherPromo   = 9000
	scoreCaptureBase  = 10000
	scoreKiller1      = 8000
	scoreKiller2      = 7500
	historyCap        = 7000
	castlingTiebreak  = 50
)

// historyMax is the decay threshold for the history table (spec §3,
// "accumulated score, halved when any entry exceeds HISTORY_MAX"),
// matching original_source/src/agent.h's HISTORY_MAX=400000. This is
// distinct from historyCap, the ordering-score ceiling applied to
// hist/10 when a move is scored (original_source/src/agent.cpp:246).
const historyMax = 400000

// mvvLvaValue gives each piece type's value for MVV-LVA scoring (spec
// §4.6): {P=100, N=300, B=300, R=500, Q=900, K=10000}. Indexed by
// PieceType (NoPieceType=0 unused).
var mvvLvaValue = [7]int{0, 100, 300, 300, 500, 900, 10000}

// mvvLva returns 10*value[victim] - value[attacker] (spec §4.6).
func mvvLva(victim, attacker position.PieceType) int {
	return 10*mvvLvaValue[victim] - mvvLvaValue[attacker]
}

// Orderer holds the killer and history tables used to score and sort
// moves for one search (spec §4.6). It is reset at the start of each
// iterative-deepening driver call (spec §4.7, "Killer and history
// tables are cleared at the start of the iterative-deepening driver").
type Orderer struct {
	killers [MaxPly][2]position.Move
	history [64][64]int32
}

// NewOrderer returns a freshly cleared Orderer.
func NewOrderer() *Orderer {
	return &Orderer{}
}

// Clear resets killers and history for a new iterative-deepening search.
func (o *Orderer) Clear() {
	for i := range o.killers {
		o.killers[i][0] = position.NoMove
		o.killers[i][1] = position.NoMove
	}
	for i := range o.history {
		for j := range o.history[i] {
			o.history[i][j] = 0
		}
	}
}

// ScoreWithAttacker computes the ordering score for move m at ply
// against ttMove (spec §4.6), given the moving piece's type (read from
// the board before Make, since a capture's From square is empty once
// the move has been made).
func (o *Orderer) ScoreWithAttacker(m position.Move, ply int, ttMove position.Move, attacker position.PieceType) int16 {
	if m.Equal(ttMove) {
		return scoreTTMove
	}

	var s int
	switch {
	case m.IsPromotion() && m.Promotion() == position.Queen:
		s = scoreQueenPromo
		if m.IsCapture() {
			victim := captureVictim(m)
			s += mvvLva(victim, position.Queen)
		}
	case m.IsPromotion():
		s = scoreOtherPromo + 10*int(m.Promotion())
		if m.IsCapture() {
			s += mvvLva(captureVictim(m), m.Promotion())
		}
	case m.IsCapture():
		s = scoreCaptureBase + mvvLva(captureVictim(m), attacker)
	case ply < MaxPly && m.Equal(o.killers[ply][0]):
		s = scoreKiller1
	case ply < MaxPly && m.Equal(o.killers[ply][1]):
		s = scoreKiller2
	default:
		h := int(o.history[m.From][m.To]) / 10
		if h > historyCap {
			h = historyCap
		}
		s = h
	}

	if m.IsCastling() {
		s += castlingTiebreak
	}
	return int16(s)
}

func captureVictim(m position.Move) position.PieceType {
	if m.IsEnPassant() {
		return position.Pawn
	}
	return m.Captured.Type()
}

// ScoreMoves fills ml's Score field for every move in ml, using the
// moving piece's type (read from pos before any move is made) as the
// MVV-LVA attacker.
func (o *Orderer) ScoreMoves(pos *position.Position, ml *position.MoveList, ply int, ttMove position.Move) {
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		attacker := pos.Squares[m.From].Type()
		m.Score = o.ScoreWithAttacker(m, ply, ttMove, attacker)
		ml.Set(i, m)
	}
}

// Sort orders ml descending by Score. An insertion sort is used for
// small lists (<10 moves), matching the teacher's "good enough for ~40
// moves" selection sort in spirit (spec §4.6 permits either).
func Sort(ml *position.MoveList) {
	n := ml.Len()
	if n < 10 {
		for i := 1; i < n; i++ {
			m := ml.Get(i)
			j := i - 1
			for j >= 0 && ml.Get(j).Score < m.Score {
				ml.Set(j+1, ml.Get(j))
				j--
			}
			ml.Set(j+1, m)
		}
		return
	}
	for i := 0; i < n-1; i++ {
		best := i
		for j := i + 1; j < n; j++ {
			if ml.Get(j).Score > ml.Get(best).Score {
				best = j
			}
		}
		if best != i {
			ml.Swap(i, best)
		}
	}
}

// UpdateKillers records m as a killer at ply, shifting the previous
// first killer into the second slot (spec §4.7 step 6). Only called for
// quiet, non-promotion moves.
func (o *Orderer) UpdateKillers(m position.Move, ply int) {
	if ply >= MaxPly || m.Equal(o.killers[ply][0]) {
		return
	}
	o.killers[ply][1] = o.killers[ply][0]
	o.killers[ply][0] = m
}

// UpdateHistory adds depth^2 to the history score for a quiet move that
// caused a fail-high (spec §4.7 step 6), halving the entry whenever it
// exceeds historyMax (spec §3; original_source/src/agent.cpp:191-194).
func (o *Orderer) UpdateHistory(m position.Move, depth int) {
	o.history[m.From][m.To] += int32(depth * depth)
	if o.history[m.From][m.To] > historyMax {
		o.history[m.From][m.To] /= 2
	}
}
