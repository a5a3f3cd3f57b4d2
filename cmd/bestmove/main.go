// Command bestmove drives one iterative-deepening search from a FEN and
// prints the result, grounded on the flag/log-based shape of the
// teacher's cmd/chessplay-uci entry point (minus the UCI protocol loop,
// which this module's Non-goals exclude).
package main

import (
	"context"
	"flag"
	"log"

	"github.com/haru-chess/chesscore/internal/eval"
	"github.com/haru-chess/chesscore/internal/nnet"
	"github.com/haru-chess/chesscore/internal/position"
	"github.com/haru-chess/chesscore/internal/search"
)

func main() {
	fen := flag.String("fen", position.StartFEN, "FEN string (defaults to the starting position)")
	depth := flag.Int("depth", 6, "maximum search depth")
	netPath := flag.String("net", "", "optional NNWB v1 weights file; falls back to material evaluation")
	moveTime := flag.Duration("movetime", 0, "optional wall-clock deadline for the search (0 disables it)")
	flag.Parse()

	pos, err := position.LoadFEN(*fen)
	if err != nil {
		log.Fatalf("LoadFEN error: %v", err)
	}

	evaluator := eval.NewMaterialEvaluator()
	if *netPath != "" {
		net := nnetLoad(*netPath)
		evaluator = eval.NewNetEvaluator(net)
	}

	ctx := context.Background()
	if *moveTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *moveTime)
		defer cancel()
	}

	engine := search.NewEngine(pos, evaluator)
	info := engine.Search(ctx, *depth)

	log.Printf("depth=%d score=%d nodes=%d time=%s bestmove=%s pv=%v",
		info.Depth, info.Score, info.Nodes, info.Time, info.BestMove, info.PV)
}

func nnetLoad(path string) *nnet.Network {
	net := nnet.New()
	if err := net.Load(path); err != nil {
		log.Fatalf("failed to load net weights from %s: %v", path, err)
	}
	return net
}
