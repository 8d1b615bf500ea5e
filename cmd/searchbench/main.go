package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"chessbot/engine"
	"chessbot/notation"
	"chessbot/position"
)

func main() {
	// --- Flags ---
	depthFlag := flag.Int("depth", 6, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	timeFlag := flag.Duration("time", 250*time.Second, "time limit per search")
	statsFlag := flag.Bool("stats", false, "print cut statistics after each search")
	verbose := flag.Bool("v", false, "log search iterations to stderr")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// --- Optional CPU profiling setup ---
	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fen := position.FENStartPos
	if *fenFlag != "" {
		fen = *fenFlag
	}
	pos, err := position.ParseFEN(fen)
	if err != nil {
		log.Fatalf("bad FEN: %v", err)
	}

	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d\n", fen, *depthFlag, *repeatFlag)

	startAll := time.Now()
	var totalNodes uint64
	for i := 0; i < *repeatFlag; i++ {
		// fresh tables for every run
		s := engine.New(engine.WithMaxDepth(*depthFlag), engine.WithLogger(logger))

		iterStart := time.Now()
		res := s.BestMove(context.Background(), pos, timeFlag.Seconds())
		iterElapsed := time.Since(iterStart)
		totalNodes += res.Nodes

		pv, err := notation.Line(&pos, res.PV)
		if err != nil {
			pv = fmt.Sprintf("%v (%v)", res.PV, err)
		}
		fmt.Printf("iteration %d: bestmove %v score %d depth %d nodes %d time=%v\n",
			i+1, res.Move, res.Score, res.Depth, res.Nodes, iterElapsed)
		fmt.Printf("  pv %s\n", pv)
		if *statsFlag {
			res.Stats.Dump(os.Stdout)
		}
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v nodes: %d nps: %.0f\n", totalElapsed, totalNodes, float64(totalNodes)/totalElapsed.Seconds())

	// --- Optional heap profile at the end ---
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
	}
}
