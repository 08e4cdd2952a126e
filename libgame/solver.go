package libgame

import (
	"context"

	"github.com/2x3systems/edgegame/edgegame"
	"github.com/2x3systems/edgegame/libgame/memo"
	"github.com/pkg/errors"
)

// SolverOpts specifies optional solver behavior.
type SolverOpts struct {

	// DisableEarlyExit makes the solver try every distinct move even after finding one that scores every vertex.
	// The solved values are unchanged; only the work done differs.
	DisableEarlyExit bool

	// OnProgress, if set, is called each time the shallowest solved depth advances or gains another solved position.
	OnProgress func(Progress)
}

// SolverStats counts how positions were resolved.
type SolverStats struct {
	MemoHits int64 // positions answered by the memo table
	TreeHits int64 // positions answered by the tree base case
	Expanded int64 // positions solved by trying their moves
}

// Solver computes optimal net score differentials, memoizing every solved position by canonical signature.
//
// A Solver is not safe for concurrent use.  Recursion depth is bounded by the starting edge count.
type Solver struct {
	memo     edgegame.MemoTable
	opts     SolverOpts
	progress progressTracker
	stats    SolverStats
}

// NewSolver returns a Solver that reads and extends the given memo table (a new table if nil).
func NewSolver(table edgegame.MemoTable, opts SolverOpts) *Solver {
	if table == nil {
		table = memo.NewTable()
	}
	return &Solver{
		memo: table,
		opts: opts,
		progress: progressTracker{
			onProgress: opts.OnProgress,
		},
	}
}

// Memo returns the table this solver reads and extends.
func (s *Solver) Memo() edgegame.MemoTable {
	return s.memo
}

func (s *Solver) Stats() SolverStats {
	return s.stats
}

// NetScore returns the first mover's points minus the second mover's points under optimal play from X.
func (s *Solver) NetScore(ctx context.Context, X *Graph) (int, error) {
	if X == nil {
		return 0, edgegame.ErrNilGraph
	}
	s.progress.reset(X.NumEdges())
	return s.netScore(ctx, X, 0)
}

// Solve returns the full outcome of optimal play from X.
func (s *Solver) Solve(ctx context.Context, X *Graph) (edgegame.Outcome, error) {
	net, err := s.NetScore(ctx, X)
	if err != nil {
		return edgegame.Outcome{}, err
	}
	return edgegame.NewOutcome(X.NumVertices(), net), nil
}

func (s *Solver) netScore(ctx context.Context, X *Graph, depth int) (int, error) {
	sig := X.Signature()
	if net, ok := s.memo.Get(sig); ok {
		s.stats.MemoHits++
		return net, nil
	}

	Nv := X.NumVertices()
	if X.IsTree() {
		s.stats.TreeHits++
		s.memo.Put(sig, Nv)
		return Nv, nil
	}

	if err := ctx.Err(); err != nil {
		return 0, errors.Wrapf(err, "solve stopped at depth %d", depth)
	}

	best := -Nv
	edges := X.Edges()
	tried := make(map[edgegame.Edge]struct{}, len(edges))
	for ei, e := range edges {
		if _, dupe := tried[e]; dupe {
			continue
		}
		tried[e] = struct{}{}

		Xi, points := X.WithoutEdge(ei)
		childNet, err := s.netScore(ctx, Xi, depth+1)
		if err != nil {
			return 0, err
		}

		// Scoring keeps the move; otherwise the opponent moves next.
		sign := -1
		if points > 0 {
			sign = 1
		}
		if net := points + sign*childNet; net > best {
			best = net
			if best == Nv && !s.opts.DisableEarlyExit {
				break
			}
		}
	}

	s.stats.Expanded++
	s.progress.track(depth)
	s.memo.Put(sig, best)
	return best, nil
}
