package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
)

// run executes a command and prints its combined output. Returns exit code.
func run(name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "error running %s: %v\n", name, err)
	return 1
}

type perftRun struct {
	label string
	fen   string
	depth string
}

var perftRuns = []perftRun{
	{"Initial", "", "3"},
	{"Initial", "", "4"},
	{"Initial", "", "5"},
	{"Kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", "3"},
	{"Pos3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", "5"},
}

func perftArgs(r perftRun, extra ...string) []string {
	args := []string{"run", "./cmd/perft", "-depth", r.depth, "-label", r.label}
	if r.fen != "" {
		args = append(args, "-fen", r.fen)
	}
	return append(args, extra...)
}

// Runs every benchmark in bench/, then perft and search throughput.
// Usage: go run ./cmd/benchrun [-verify] [-searchdepth N]
func main() {
	verify := flag.Bool("verify", false, "also cross-check every perft run against the reference generators")
	searchDepth := flag.String("searchdepth", "6", "depth for the searchbench run (0 skips it)")
	flag.Parse()

	// Format: BenchmarkName  Iterations  ns/op  B/op  allocs/op
	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	if code := run("go", "test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s"); code != 0 {
		os.Exit(code)
	}

	fmt.Println("\nPerft Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	for _, r := range perftRuns {
		run("go", perftArgs(r)...)
	}

	if *verify {
		fmt.Println("\nPerft cross-check:")
		failed := 0
		for _, r := range perftRuns {
			fmt.Printf("%s depth %s: ", r.label, r.depth)
			if run("go", perftArgs(r, "-verify")...) != 0 {
				failed++
			}
		}
		if failed > 0 {
			os.Exit(1)
		}
	}

	if *searchDepth != "0" {
		fmt.Println("\nSearch:")
		run("go", "run", "./cmd/searchbench", "-depth", *searchDepth, "-stats")
	}
}
