package dpll

import (
	"github.com/sirupsen/logrus"

	"github.com/go-satellite/satellite/pkg/cnf"
)

// SearchPosition is a read-only snapshot of the search handed to a Tracer
// at each branch point.
type SearchPosition interface {
	// Branch is the literal about to be assumed true on this branch.
	Branch() cnf.Literal
	// Depth is the current branch depth (number of layers pushed so far).
	Depth() int
	// ActiveClauses is the number of clauses not yet determined satisfied.
	ActiveClauses() int
	// Assignments is the partial model accumulated so far.
	Assignments() map[string]bool
}

// Tracer observes the search as it branches. It exists for diagnostics;
// the search's correctness does not depend on it.
type Tracer interface {
	Trace(p SearchPosition)
}

// DefaultTracer discards every notification.
type DefaultTracer struct{}

func (DefaultTracer) Trace(SearchPosition) {}

// LoggingTracer logs one structured entry per branch point via logrus.
type LoggingTracer struct {
	Logger *logrus.Logger
}

func (t LoggingTracer) Trace(p SearchPosition) {
	logger := t.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger.WithFields(logrus.Fields{
		"branch":         p.Branch().String(),
		"depth":          p.Depth(),
		"active_clauses": p.ActiveClauses(),
	}).Debug("dpll: branching")
}

type searchPosition struct {
	branch cnf.Literal
	s      *Solver
}

func (p searchPosition) Branch() cnf.Literal          { return p.branch }
func (p searchPosition) Depth() int                   { return p.s.assign.Depth() }
func (p searchPosition) ActiveClauses() int           { return p.s.idx.ActiveCount() }
func (p searchPosition) Assignments() map[string]bool { return p.s.assign.Model() }

func (s *Solver) position(branch cnf.Literal) SearchPosition {
	return searchPosition{branch: branch, s: s}
}
