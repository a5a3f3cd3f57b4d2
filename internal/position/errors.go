package position

import "errors"

// Sentinel error kinds, per spec §7. Callers compare with errors.Is;
// operations wrap these with fmt.Errorf("...: %w", ...) for context,
// matching the teacher's ParseFEN/LoadWeights error style.
var (
	ErrInvalidFEN          = errors.New("invalid FEN")
	ErrSquareOutOfRange    = errors.New("square out of range")
	ErrMoveIllegal         = errors.New("illegal move")
	ErrPromotionNotNeeded  = errors.New("promotion not expected")
	ErrNoPromotionPending  = errors.New("no promotion pending")
)
