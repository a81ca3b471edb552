package dpll

import (
	"math/rand"
	"sort"

	"github.com/go-satellite/satellite/pkg/clauseindex"
	"github.com/go-satellite/satellite/pkg/cnf"
)

// Chooser picks the literal to branch on next. Any function of this shape
// is acceptable for correctness; only performance depends on the choice.
// Spec.md describes choosers as a function of "CNF → Literal"; this
// realizes that over the indexed search's live view (*clauseindex.Index)
// rather than the static input formula, since that is the state the
// indexed driver actually branches over.
type Chooser func(idx *clauseindex.Index) cnf.Literal

func sortLiterals(lits []cnf.Literal) {
	sort.Slice(lits, func(i, j int) bool {
		if lits[i].Var != lits[j].Var {
			return lits[i].Var < lits[j].Var
		}
		return !lits[i].Negated && lits[j].Negated
	})
}

func sortedActiveClauses(idx *clauseindex.Index) []clauseindex.ClauseID {
	ids := idx.ActiveClauses()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// FirstLit picks the first live literal of the first active clause, by
// ascending clause id.
func FirstLit(idx *clauseindex.Index) cnf.Literal {
	ids := sortedActiveClauses(idx)
	lits := idx.LiveLiteralsOrdered(ids[0])
	return lits[0]
}

// LastLit picks the last live literal of the last active clause, by
// ascending clause id.
func LastLit(idx *clauseindex.Index) cnf.Literal {
	ids := sortedActiveClauses(idx)
	lits := idx.LiveLiteralsOrdered(ids[len(ids)-1])
	return lits[len(lits)-1]
}

// CommonLit counts every live literal occurrence across active clauses and
// returns the most frequent, breaking ties by variable name (and preferring
// the positive polarity) for determinism.
func CommonLit(idx *clauseindex.Index) cnf.Literal {
	counts := make(map[cnf.Literal]int)
	for _, id := range idx.ActiveClauses() {
		for _, lit := range idx.LiveLiterals(id) {
			counts[lit]++
		}
	}
	lits := make([]cnf.Literal, 0, len(counts))
	for lit := range counts {
		lits = append(lits, lit)
	}
	sortLiterals(lits)
	best := lits[0]
	for _, lit := range lits[1:] {
		if counts[lit] > counts[best] {
			best = lit
		}
	}
	return best
}

// NewRandomChooser returns a Chooser that picks a random live literal from
// a random active clause, using rng. Pass a seeded *rand.Rand for
// reproducible runs.
func NewRandomChooser(rng *rand.Rand) Chooser {
	return func(idx *clauseindex.Index) cnf.Literal {
		ids := sortedActiveClauses(idx)
		id := ids[rng.Intn(len(ids))]
		lits := idx.LiveLiteralsOrdered(id)
		return lits[rng.Intn(len(lits))]
	}
}
