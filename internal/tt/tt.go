// Package tt implements the transposition table (spec §4.5). Unlike the
// teacher's sharded, atomic-aged table built for Lazy-SMP, this table is
// a fixed single-bucket array owned exclusively by one search at a time
// (spec §5: "the TT is treated as owned by a single search at a time").
package tt

import "github.com/haru-chess/chesscore/internal/position"

// Flag identifies the kind of bound an entry stores.
type Flag uint8

const (
	Exact Flag = iota
	Alpha      // upper bound: true score <= entry.Score
	Beta       // lower bound: true score >= entry.Score
)

// Size is the fixed bucket count, a power of 2 so hash%Size reduces to a
// mask (spec §4.5: "hash mod TT_SIZE").
const Size = 1 << 20

const mask = Size - 1

// Entry is one transposition table bucket.
type Entry struct {
	Key      uint64
	BestMove position.Move
	Score    int32
	Depth    int8
	Flag     Flag
	Age      uint8
	valid    bool
}

// Table is a fixed-size, single-owner transposition table.
type Table struct {
	entries [Size]Entry
	age     uint8
}

// New returns an empty table at age 0.
func New() *Table {
	return &Table{}
}

// NewSearch increments the age counter for a fresh top-level search
// (spec §4.7, "increment TT age" at the start of iterative deepening).
func (t *Table) NewSearch() {
	t.age++
}

// Clear resets every bucket and the age counter.
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = Entry{}
	}
	t.age = 0
}

// Probe returns the entry for hash and true only when the full 64-bit
// key matches (spec §4.5, "protecting against index collisions").
func (t *Table) Probe(hash uint64) (Entry, bool) {
	e := &t.entries[hash&mask]
	if e.valid && e.Key == hash {
		return *e, true
	}
	return Entry{}, false
}

// Store saves (hash, depth, score, flag, best) using the replacement
// policy from spec §4.5: overwrite when the bucket is empty, the keys
// match, the stored age differs from the current age, or the stored
// depth is no deeper than the incoming depth.
func (t *Table) Store(hash uint64, depth int, score int32, flag Flag, best position.Move) {
	e := &t.entries[hash&mask]
	if !e.valid || e.Key == hash || e.Age != t.age || e.Depth <= int8(depth) {
		e.Key = hash
		e.BestMove = best
		e.Score = score
		e.Depth = int8(depth)
		e.Flag = flag
		e.Age = t.age
		e.valid = true
	}
}
