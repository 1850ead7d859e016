package enum

import "slices"

// transitionTable lists, per source state, the states it may move to.
// A state missing from the table is terminal.
type transitionTable[S ~string] map[S][]S

func (t transitionTable[S]) allows(from, to S) bool {
	return slices.Contains(t[from], to)
}

// predecessors returns, sorted, every state that may move to to
func (t transitionTable[S]) predecessors(to S) []S {
	var from []S
	for s, next := range t {
		if slices.Contains(next, to) {
			from = append(from, s)
		}
	}
	slices.Sort(from)
	return from
}
