package engine

// RepetitionTable counts how often each position hash occurs on the
// current line, game history included.
type RepetitionTable struct {
	counts map[uint64]int
	stack  []uint64
}

func NewRepetitionTable() *RepetitionTable {
	return &RepetitionTable{counts: make(map[uint64]int)}
}

// Push records hash as reached.
func (rt *RepetitionTable) Push(hash uint64) {
	rt.counts[hash]++
	rt.stack = append(rt.stack, hash)
}

// Pop undoes the matching Push. Popping a hash that is not on top of the
// stack only adjusts its count.
func (rt *RepetitionTable) Pop(hash uint64) {
	if n := rt.counts[hash]; n > 1 {
		rt.counts[hash] = n - 1
	} else {
		delete(rt.counts, hash)
	}
	if len(rt.stack) > 0 && rt.stack[len(rt.stack)-1] == hash {
		rt.stack = rt.stack[:len(rt.stack)-1]
	}
}

func (rt *RepetitionTable) Count(hash uint64) int {
	return rt.counts[hash]
}

// IsRepetition reports a threefold occurrence.
func (rt *RepetitionTable) IsRepetition(hash uint64) bool {
	return rt.counts[hash] >= 3
}

// Len is the number of positions currently pushed.
func (rt *RepetitionTable) Len() int {
	return len(rt.stack)
}

func (rt *RepetitionTable) Clear() {
	clear(rt.counts)
	rt.stack = rt.stack[:0]
}
