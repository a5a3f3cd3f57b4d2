package search

import (
	"testing"

	"github.com/haru-chess/chesscore/internal/position"
)

func sq(file, rank int) position.Square { return position.NewSquare(file, rank) }

func TestScoreWithAttackerTTMoveWins(t *testing.T) {
	o := NewOrderer()
	tt := position.NewMove(sq(4, 1), sq(4, 3), position.Empty)
	other := position.NewMove(sq(1, 0), sq(2, 2), position.Empty)

	if got := o.ScoreWithAttacker(tt, 0, tt, position.Pawn); got != scoreTTMove {
		t.Errorf("expected the TT move to score %d, got %d", scoreTTMove, got)
	}
	if got := o.ScoreWithAttacker(other, 0, tt, position.Knight); got == scoreTTMove {
		t.Error("expected a non-TT move not to score as the TT move")
	}
}

func TestScoreOrderingCategories(t *testing.T) {
	o := NewOrderer()
	noTT := position.NoMove

	queenPromo := position.NewPromotionMove(sq(0, 6), sq(0, 7), position.Empty, position.Queen)
	knightPromo := position.NewPromotionMove(sq(1, 6), sq(1, 7), position.Empty, position.Knight)
	capture := position.NewMove(sq(3, 3), sq(4, 4), position.NewPiece(position.Pawn, position.Black))
	quiet := position.NewMove(sq(1, 1), sq(1, 3), position.Empty)

	qp := o.ScoreWithAttacker(queenPromo, 5, noTT, position.Pawn)
	np := o.ScoreWithAttacker(knightPromo, 5, noTT, position.Pawn)
	cap := o.ScoreWithAttacker(capture, 5, noTT, position.Pawn)
	qt := o.ScoreWithAttacker(quiet, 5, noTT, position.Pawn)

	if !(qp > cap && cap > np && np > qt) {
		t.Errorf("expected queen-promo > capture > other-promo > quiet, got %d %d %d %d", qp, cap, np, qt)
	}
}

func TestScoreKillersRankBetweenCapturesAndHistory(t *testing.T) {
	o := NewOrderer()
	noTT := position.NoMove
	killer1 := position.NewMove(sq(1, 1), sq(1, 3), position.Empty)
	killer2 := position.NewMove(sq(2, 1), sq(2, 3), position.Empty)
	other := position.NewMove(sq(6, 1), sq(6, 3), position.Empty)

	// The newest killer takes slot 1, so killer1 is recorded last.
	o.UpdateKillers(killer2, 2)
	o.UpdateKillers(killer1, 2)

	s1 := o.ScoreWithAttacker(killer1, 2, noTT, position.Pawn)
	s2 := o.ScoreWithAttacker(killer2, 2, noTT, position.Pawn)
	sOther := o.ScoreWithAttacker(other, 2, noTT, position.Pawn)

	if s1 != scoreKiller1 {
		t.Errorf("expected first killer to score %d, got %d", scoreKiller1, s1)
	}
	if s2 != scoreKiller2 {
		t.Errorf("expected second killer to score %d, got %d", scoreKiller2, s2)
	}
	if sOther >= s2 {
		t.Errorf("expected a non-killer quiet move to score below the second killer slot, got %d >= %d", sOther, s2)
	}
}

func TestUpdateKillersShiftsSlots(t *testing.T) {
	o := NewOrderer()
	a := position.NewMove(sq(1, 1), sq(1, 3), position.Empty)
	b := position.NewMove(sq(2, 1), sq(2, 3), position.Empty)

	o.UpdateKillers(a, 0)
	o.UpdateKillers(b, 0)

	noTT := position.NoMove
	if got := o.ScoreWithAttacker(a, 0, noTT, position.Pawn); got != scoreKiller2 {
		t.Errorf("expected the displaced killer to move to slot 2, got %d", got)
	}
	if got := o.ScoreWithAttacker(b, 0, noTT, position.Pawn); got != scoreKiller1 {
		t.Errorf("expected the newest killer in slot 1, got %d", got)
	}
}

func TestUpdateHistoryAccumulatesAndCaps(t *testing.T) {
	o := NewOrderer()
	m := position.NewMove(sq(1, 1), sq(1, 3), position.Empty)
	noTT := position.NoMove

	// 100 * 30^2 = 90000 raw, well under historyMax so no halving kicks
	// in; 90000/10 = 9000 exceeds historyCap and must clamp to it.
	for i := 0; i < 100; i++ {
		o.UpdateHistory(m, 30)
	}
	got := o.ScoreWithAttacker(m, 10, noTT, position.Pawn)
	if got != historyCap {
		t.Errorf("expected history score to cap at %d, got %d", historyCap, got)
	}
}

func TestUpdateHistoryHalvesPastMax(t *testing.T) {
	o := NewOrderer()
	m := position.NewMove(sq(1, 1), sq(1, 3), position.Empty)

	// depth=200 -> 40000 per call; the 10th call reaches historyMax
	// (400000) without exceeding it, and the 11th call crosses it and
	// must halve the entry back down immediately.
	for i := 0; i < 10; i++ {
		o.UpdateHistory(m, 200)
	}
	if o.history[m.From][m.To] != 400000 {
		t.Fatalf("expected 10*40000=400000 before crossing historyMax, got %d", o.history[m.From][m.To])
	}

	o.UpdateHistory(m, 200)
	if o.history[m.From][m.To] != 220000 {
		t.Errorf("expected (400000+40000)/2=220000 after crossing historyMax, got %d", o.history[m.From][m.To])
	}
}

func TestClearResetsKillersAndHistory(t *testing.T) {
	o := NewOrderer()
	m := position.NewMove(sq(1, 1), sq(1, 3), position.Empty)
	o.UpdateKillers(m, 3)
	o.UpdateHistory(m, 5)

	o.Clear()

	noTT := position.NoMove
	got := o.ScoreWithAttacker(m, 3, noTT, position.Pawn)
	if got != 0 {
		t.Errorf("expected a cleared orderer to score a quiet move 0, got %d", got)
	}
}

func TestMVVLVAPrefersCapturingHighValueWithLowValueAttacker(t *testing.T) {
	o := NewOrderer()
	noTT := position.NoMove
	queenTakesQueen := position.NewMove(sq(3, 3), sq(4, 4), position.NewPiece(position.Queen, position.Black))
	pawnTakesQueen := position.NewMove(sq(3, 3), sq(4, 4), position.NewPiece(position.Queen, position.Black))

	a := o.ScoreWithAttacker(queenTakesQueen, 0, noTT, position.Queen)
	b := o.ScoreWithAttacker(pawnTakesQueen, 0, noTT, position.Pawn)
	if b <= a {
		t.Errorf("expected a pawn capturing a queen to outscore a queen capturing a queen, got pawn=%d queen=%d", b, a)
	}
}

func TestSortOrdersDescendingSmallAndLargeLists(t *testing.T) {
	for _, n := range []int{5, 20} {
		var ml position.MoveList
		for i := 0; i < n; i++ {
			m := position.NewMove(sq(0, 0), sq(1, 1), position.Empty)
			m.Score = int16((i * 37) % 101)
			ml.Add(m)
		}
		Sort(&ml)
		for i := 1; i < ml.Len(); i++ {
			if ml.Get(i).Score > ml.Get(i-1).Score {
				t.Fatalf("list of %d: not sorted descending at index %d: %d > %d", n, i, ml.Get(i).Score, ml.Get(i-1).Score)
			}
		}
	}
}

func TestCastlingTiebreak(t *testing.T) {
	o := NewOrderer()
	noTT := position.NoMove
	castle := position.NewCastlingMove(sq(4, 0), sq(6, 0))
	quiet := position.NewMove(sq(1, 1), sq(1, 3), position.Empty)

	cs := o.ScoreWithAttacker(castle, 10, noTT, position.King)
	qs := o.ScoreWithAttacker(quiet, 10, noTT, position.Pawn)
	if cs != qs+castlingTiebreak {
		t.Errorf("expected castling to score exactly %d above an equally-ranked quiet move, got castle=%d quiet=%d", castlingTiebreak, cs, qs)
	}
}
