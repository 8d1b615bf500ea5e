package engine

import (
	"fmt"
	"io"
)

// CutStatistics collects counts for each pruning/cutoff mechanism of one
// BestMove call.
type CutStatistics struct {
	TTCutoffs        uint64
	NullMoveCutoffs  uint64
	BetaCutoffs      uint64
	LMRResearches    uint64
	SEESkips         uint64
	QStandPatCutoffs uint64
	QFutilityPrunes  uint64
	QBetaCutoffs     uint64
	AspirationFails  uint64
}

// Dump writes the counters as UCI "info string" lines.
func (cs CutStatistics) Dump(w io.Writer) {
	fmt.Fprintln(w, "info string Cut statistics:")
	fmt.Fprintf(w, "info string   TT cutoffs: %d\n", cs.TTCutoffs)
	fmt.Fprintf(w, "info string   Null-move cutoffs: %d\n", cs.NullMoveCutoffs)
	fmt.Fprintf(w, "info string   Beta cutoffs: %d\n", cs.BetaCutoffs)
	fmt.Fprintf(w, "info string   LMR re-searches: %d\n", cs.LMRResearches)
	fmt.Fprintf(w, "info string   Losing captures skipped: %d\n", cs.SEESkips)
	fmt.Fprintf(w, "info string   QStandPat cutoffs: %d\n", cs.QStandPatCutoffs)
	fmt.Fprintf(w, "info string   QFutility prunes: %d\n", cs.QFutilityPrunes)
	fmt.Fprintf(w, "info string   QBeta cutoffs: %d\n", cs.QBetaCutoffs)
	fmt.Fprintf(w, "info string   Aspiration re-searches: %d\n", cs.AspirationFails)
}
