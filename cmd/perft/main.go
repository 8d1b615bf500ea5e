package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	goosemg "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"

	"chessbot/movegen"
	"chessbot/position"
)

func main() {
	fen := flag.String("fen", position.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	verify := flag.Bool("verify", false, "Compare the root divide against dragontoothmg and the total against goosemg")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	pos, err := position.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *verify {
		if mismatches := verifyAgainstOracles(&pos, *fen, *depth); mismatches > 0 {
			fmt.Fprintf(os.Stderr, "%d mismatches\n", mismatches)
			os.Exit(1)
		}
		fmt.Println("ok")
		return
	}

	if *divide {
		div := movegen.PerftDivide(&pos, *depth)
		type kv struct {
			m string
			n uint64
		}
		arr := make([]kv, 0, len(div))
		var sum uint64
		for m, n := range div {
			arr = append(arr, kv{m.String(), n})
			sum += n
		}
		sort.Slice(arr, func(i, j int) bool { return arr[i].m < arr[j].m })
		for _, x := range arr {
			fmt.Printf("%s: %d\n", x.m, x.n)
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += movegen.Perft(&pos, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}

// verifyAgainstOracles prints every disagreement with the two reference
// generators and returns how many there were.
func verifyAgainstOracles(pos *position.Position, fen string, depth int) int {
	mismatches := 0

	ours := make(map[string]uint64)
	var total uint64
	for m, n := range movegen.PerftDivide(pos, depth) {
		ours[m.String()] = n
		total += n
	}

	board := dragontoothmg.ParseFen(fen)
	theirs := make(map[string]uint64)
	for _, m := range board.GenerateLegalMoves() {
		unapply := board.Apply(m)
		theirs[m.String()] = dragonPerft(&board, depth-1)
		unapply()
	}
	for m, want := range theirs {
		got, ok := ours[m]
		switch {
		case !ok:
			fmt.Printf("%s: missing (dragontoothmg %d)\n", m, want)
			mismatches++
		case got != want:
			fmt.Printf("%s: %d, dragontoothmg %d\n", m, got, want)
			mismatches++
		}
	}
	for m, got := range ours {
		if _, ok := theirs[m]; !ok {
			fmt.Printf("%s: %d, not generated by dragontoothmg\n", m, got)
			mismatches++
		}
	}

	gb, err := goosemg.ParseFEN(fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "goosemg ParseFEN error: %v\n", err)
		return mismatches + 1
	}
	if want := goosemg.Perft(gb, depth); want != total {
		fmt.Printf("Total: %d, goosemg %d\n", total, want)
		mismatches++
	}
	return mismatches
}

func dragonPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.GenerateLegalMoves() {
		unapply := b.Apply(m)
		nodes += dragonPerft(b, depth-1)
		unapply()
	}
	return nodes
}
