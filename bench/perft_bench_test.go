package bench

import (
	"testing"

	goosemg "github.com/Oliverans/GooseEngineMG/goosemg"

	"chessbot/movegen"
)

func benchPerft(b *testing.B, fen string, depth int) {
	pos := mustFEN(b, fen)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = movegen.Perft(&pos, depth)
	}
}

func BenchmarkPerft_Initial_D4(b *testing.B) {
	benchPerft(b, FENStart, 4)
}

func BenchmarkPerft_Kiwipete_D3(b *testing.B) {
	benchPerft(b, FENKiwipete, 3)
}

func BenchmarkGooseMGPerft_Kiwipete_D3(b *testing.B) {
	board, err := goosemg.ParseFEN(FENKiwipete)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = goosemg.Perft(board, 3)
	}
}
