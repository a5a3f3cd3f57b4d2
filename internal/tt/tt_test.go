package tt

import (
	"testing"

	"github.com/haru-chess/chesscore/internal/position"
)

func TestProbeMiss(t *testing.T) {
	table := New()
	if _, ok := table.Probe(12345); ok {
		t.Fatal("expected a miss on an empty table")
	}
}

func TestStoreThenProbe(t *testing.T) {
	table := New()
	best := position.NewMove(position.NewSquare(4, 1), position.NewSquare(4, 3), position.Empty)
	table.Store(42, 5, 100, Exact, best)

	e, ok := table.Probe(42)
	if !ok {
		t.Fatal("expected a hit after Store")
	}
	if e.Score != 100 || e.Depth != 5 || e.Flag != Exact || !e.BestMove.Equal(best) {
		t.Errorf("unexpected entry: %+v", e)
	}
}

func TestProbeRejectsKeyCollision(t *testing.T) {
	table := New()
	best := position.NewMove(position.NewSquare(4, 1), position.NewSquare(4, 3), position.Empty)
	table.Store(42, 5, 100, Exact, best)

	// A different 64-bit key that happens to land in the same bucket
	// (same low 20 bits) must not be confused with the stored entry.
	colliding := uint64(42) + Size
	if _, ok := table.Probe(colliding); ok {
		t.Fatal("expected a colliding key to miss, full-key check should reject it")
	}
}

func TestStoreReplacesShallowerSameAgeEntry(t *testing.T) {
	table := New()
	shallow := position.NewMove(position.NewSquare(4, 1), position.NewSquare(4, 3), position.Empty)
	deep := position.NewMove(position.NewSquare(3, 1), position.NewSquare(3, 3), position.Empty)

	table.Store(7, 3, 10, Alpha, shallow)
	table.Store(7, 8, 20, Beta, deep)

	e, ok := table.Probe(7)
	if !ok {
		t.Fatal("expected a hit")
	}
	if e.Depth != 8 || !e.BestMove.Equal(deep) {
		t.Errorf("expected the deeper store to replace the shallower one, got depth=%d move=%v", e.Depth, e.BestMove)
	}
}

func TestStoreDoesNotReplaceDeeperSameAgeEntry(t *testing.T) {
	table := New()
	deep := position.NewMove(position.NewSquare(4, 1), position.NewSquare(4, 3), position.Empty)
	shallow := position.NewMove(position.NewSquare(3, 1), position.NewSquare(3, 3), position.Empty)

	table.Store(9, 8, 20, Exact, deep)
	// A different key in the same bucket: a matching key would always
	// overwrite, so the depth rule only applies to a colliding key.
	table.Store(9+Size, 2, 5, Alpha, shallow)

	e, ok := table.Probe(9)
	if !ok {
		t.Fatal("expected a hit")
	}
	if e.Depth != 8 || !e.BestMove.Equal(deep) {
		t.Errorf("expected the shallower same-age store to be rejected, got depth=%d move=%v", e.Depth, e.BestMove)
	}
}

func TestNewSearchAgeAllowsShallowerOverwrite(t *testing.T) {
	table := New()
	deep := position.NewMove(position.NewSquare(4, 1), position.NewSquare(4, 3), position.Empty)
	shallow := position.NewMove(position.NewSquare(3, 1), position.NewSquare(3, 3), position.Empty)

	table.Store(9, 8, 20, Exact, deep)
	table.NewSearch()
	table.Store(9, 2, 5, Alpha, shallow)

	e, ok := table.Probe(9)
	if !ok {
		t.Fatal("expected a hit")
	}
	if e.Depth != 2 || !e.BestMove.Equal(shallow) || e.Age != 1 {
		t.Errorf("expected a new-age store to overwrite regardless of depth, got %+v", e)
	}
}

func TestClearResetsEverything(t *testing.T) {
	table := New()
	best := position.NewMove(position.NewSquare(4, 1), position.NewSquare(4, 3), position.Empty)
	table.Store(42, 5, 100, Exact, best)
	table.NewSearch()

	table.Clear()

	if _, ok := table.Probe(42); ok {
		t.Fatal("expected Clear to wipe stored entries")
	}
	table.Store(42, 1, 0, Exact, best)
	e, _ := table.Probe(42)
	if e.Age != 0 {
		t.Errorf("expected Clear to reset age to 0, got %d", e.Age)
	}
}
