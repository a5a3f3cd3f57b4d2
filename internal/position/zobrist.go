package position

// Zobrist hash keys for position hashing.
// Keys are generated once at process start from a fixed seed so hashes
// are reproducible across runs and processes (spec §3, "Zobrist key
// tables").
var (
	zobristPiece   [12][64]uint64 // [pieceIndex 0-11][square]
	zobristEP      [8]uint64      // one per en passant file
	zobristCastle  [4]uint64      // one per right: WK, WQ, BK, BQ
	zobristSide    uint64
)

func init() {
	initZobrist()
}

// prng is a simple xorshift64* generator used only to build the Zobrist
// key tables deterministically.
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for pi := 0; pi < 12; pi++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[pi][sq] = rng.next()
		}
	}
	for file := 0; file < 8; file++ {
		zobristEP[file] = rng.next()
	}
	for i := 0; i < 4; i++ {
		zobristCastle[i] = rng.next()
	}
	zobristSide = rng.next()
}

// pieceIndex maps a Piece to 0-11: white P,N,B,R,Q,K then black P,N,B,R,Q,K.
func pieceIndex(p Piece) int {
	idx := int(p.Type()) - 1
	if p.Color() == Black {
		idx += 6
	}
	return idx
}

// ZobristPieceKey returns the key for a piece occupying a square.
func ZobristPieceKey(p Piece, sq Square) uint64 {
	return zobristPiece[pieceIndex(p)][sq]
}

// ZobristEPKey returns the key for an en passant file (0-7).
func ZobristEPKey(file int) uint64 {
	return zobristEP[file]
}

// ZobristCastleKey returns the key for one of the four castling rights,
// indexed CastleWK, CastleWQ, CastleBK, CastleBQ.
func ZobristCastleKey(right int) uint64 {
	return zobristCastle[right]
}

// ZobristSideKey returns the key XORed in when it is Black to move.
func ZobristSideKey() uint64 {
	return zobristSide
}
