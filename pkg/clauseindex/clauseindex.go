// Package clauseindex maintains the mutable, incrementally-updated view of
// a CNF formula that the DPLL driver searches over: a set of active
// (not-yet-satisfied) clauses, each itself a layered set of unassigned
// ("live") literals, plus secondary indices mapping each literal to the
// clauses it appears in and each live-literal count to the clauses
// currently of that size. The secondary indices let the two queries DPLL's
// inner loop repeats — "give me a unit clause" and "give me every clause
// containing literal ℓ" — be answered in O(output size) instead of by
// scanning the whole formula, and let backtracking restore prior state
// exactly without rebuilding it.
package clauseindex

import (
	"github.com/go-satellite/satellite/pkg/cnf"
	"github.com/go-satellite/satellite/pkg/layered"
)

// ClauseID identifies a clause by its position in the input CNF.
type ClauseID int

type clauseRecord struct {
	id       ClauseID
	literals []cnf.Literal // fixed, original order; never mutated
	live     *layered.Set[cnf.Literal]
}

func (c *clauseRecord) count() int {
	return c.live.Len()
}

// Index is the mutable per-solve view of a CNF formula described above.
// An Index is owned by exactly one solver instance; it is never read or
// written from more than one goroutine.
type Index struct {
	clauses []*clauseRecord
	active  *layered.Set[ClauseID]
	byLit   map[cnf.Literal][]ClauseID
	byCount map[int]map[ClauseID]struct{}
}

// New builds an Index over f. The clause index never mutates f.
func New(f cnf.CNF) *Index {
	idx := &Index{
		clauses: make([]*clauseRecord, len(f.Clauses)),
		byLit:   make(map[cnf.Literal][]ClauseID),
		byCount: make(map[int]map[ClauseID]struct{}),
	}
	ids := make([]ClauseID, len(f.Clauses))
	for i, c := range f.Clauses {
		id := ClauseID(i)
		ids[i] = id
		rec := &clauseRecord{
			id:       id,
			literals: c.Literals,
			live:     layered.NewRemoveSet(c.Literals),
		}
		idx.clauses[i] = rec
		for _, l := range c.Literals {
			idx.byLit[l] = append(idx.byLit[l], id)
		}
		idx.bucket(rec.count())[id] = struct{}{}
	}
	idx.active = layered.NewRemoveSet(ids)
	return idx
}

func (idx *Index) bucket(k int) map[ClauseID]struct{} {
	b, ok := idx.byCount[k]
	if !ok {
		b = make(map[ClauseID]struct{})
		idx.byCount[k] = b
	}
	return b
}

func (idx *Index) moveCount(id ClauseID, from, to int) {
	if from == to {
		return
	}
	delete(idx.byCount[from], id)
	idx.bucket(to)[id] = struct{}{}
}

// NumClauses returns the number of clauses in the original formula.
func (idx *Index) NumClauses() int {
	return len(idx.clauses)
}

// Literals returns clause id's original literals, unaffected by
// propagation.
func (idx *Index) Literals(id ClauseID) []cnf.Literal {
	return idx.clauses[id].literals
}

// LiveLiterals returns clause id's currently-unassigned literals, in
// unspecified order.
func (idx *Index) LiveLiterals(id ClauseID) []cnf.Literal {
	return idx.clauses[id].live.Items()
}

// LiveLiteralsOrdered returns clause id's currently-unassigned literals in
// their original clause order. Choosers that need a deterministic "first"
// or "last" literal (e.g. dpll.FirstLit, dpll.LastLit) use this instead of
// LiveLiterals, whose order follows layered.Set's unspecified map
// iteration.
func (idx *Index) LiveLiteralsOrdered(id ClauseID) []cnf.Literal {
	rec := idx.clauses[id]
	out := make([]cnf.Literal, 0, rec.count())
	for _, l := range rec.literals {
		if rec.live.Contains(l) {
			out = append(out, l)
		}
	}
	return out
}

// Count returns clause id's current live-literal count.
func (idx *Index) Count(id ClauseID) int {
	return idx.clauses[id].count()
}

// IsActive reports whether clause id has not yet been determined satisfied.
func (idx *Index) IsActive(id ClauseID) bool {
	return idx.active.Contains(id)
}

// ActiveCount returns the number of currently-active clauses.
func (idx *Index) ActiveCount() int {
	return idx.active.Len()
}

// ActiveClauses returns the ids of every currently-active clause, in
// unspecified order.
func (idx *Index) ActiveClauses() []ClauseID {
	return idx.active.Items()
}

// Satisfy marks clause id inactive (it has been determined satisfied by
// the partial model). It is a no-op if the clause is already inactive.
func (idx *Index) Satisfy(id ClauseID) {
	idx.active.Modify([]ClauseID{id})
}

// RemoveLiteral removes lit from clause id's live-literal set (its negation
// has been forced true by the partial model) and keeps by_count in sync.
// It is a no-op if lit is not currently live in the clause.
func (idx *Index) RemoveLiteral(id ClauseID, lit cnf.Literal) {
	rec := idx.clauses[id]
	before := rec.count()
	changed := rec.live.Modify([]cnf.Literal{lit})
	if len(changed) > 0 {
		idx.moveCount(id, before, rec.count())
	}
}

// WithLit returns with_lit(ℓ): the active clauses in which ℓ appears among
// the clause's original literals. Per spec.md §4.4 this does not by itself
// guarantee ℓ is still live in the returned clauses — callers that need
// that stronger guarantee (as dpll does) must check LiveLiterals or rely on
// having removed ℓ's negation consistently.
func (idx *Index) WithLit(lit cnf.Literal) []ClauseID {
	var out []ClauseID
	for _, id := range idx.byLit[lit] {
		if idx.active.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}

// WithCount returns with_count(k): the active clauses whose current
// live-literal count is exactly k.
func (idx *Index) WithCount(k int) []ClauseID {
	var out []ClauseID
	for id := range idx.byCount[k] {
		if idx.active.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}

// PushLayer opens a new layer on active_clauses and on every clause's
// live-literal set.
func (idx *Index) PushLayer() {
	idx.active.PushLayer()
	for _, rec := range idx.clauses {
		rec.live.PushLayer()
	}
}

// PopLayer closes the current layer on active_clauses and on every
// clause's live-literal set, restoring exactly the prior state (including
// by_count) and fixing up by_count for any clause whose live count changed
// as a result.
func (idx *Index) PopLayer() error {
	for _, rec := range idx.clauses {
		before := rec.count()
		if err := rec.live.PopLayer(); err != nil {
			return err
		}
		idx.moveCount(rec.id, before, rec.count())
	}
	return idx.active.PopLayer()
}
