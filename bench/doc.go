// Package bench holds benchmarks that cut across packages: move
// generation, perft, evaluation and search on the usual test positions,
// with goosemg runs alongside as a speed baseline.
package bench

// Positions benchmarked throughout the package.
const (
	FENStart     = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	FENKiwipete  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	FENPos6      = "r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10"
	FENEnPassant = "k7/8/8/3pP3/8/8/8/7K w - d6 0 2"
)
