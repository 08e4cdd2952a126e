package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/2x3systems/edgegame/config"
	"github.com/2x3systems/edgegame/edgegame"
	"github.com/2x3systems/edgegame/libgame"
	"github.com/2x3systems/edgegame/libgame/memo"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// run executes the given command, writing the result line to out.
func run(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	if len(args) > 0 && args[0] == "script" {
		if len(args) != 2 {
			return errors.Wrap(edgegame.ErrBadGeneratorParam, "script takes a single .py pathname")
		}
		return runScript(args[1], out)
	}

	edges, err := readEdges(cfg, args)
	if err != nil {
		return err
	}
	X := libgame.NewGraph(edges)
	klog.V(2).Infof("solving %v", X)

	sctx := edgegame.NewStoreContext()
	defer func() {
		sctx.Close()
		<-sctx.Done()
	}()

	table := memo.NewTable()
	store := loadMemo(ctx, sctx, cfg.Store, table)

	solver := libgame.NewSolver(table, libgame.SolverOpts{
		DisableEarlyExit: !cfg.Solver.EarlyExit,
	})
	outcome, solveErr := solver.Solve(ctx, X)
	if solveErr == nil {
		fmt.Fprintln(out, outcome.String())
	}

	stats := solver.Stats()
	klog.Infof("memo hits: %d, tree hits: %d, expanded: %d, memo size: %d", stats.MemoHits, stats.TreeHits, stats.Expanded, table.Len())

	// The table only ever holds fully solved positions, so it is safe to save even after an interrupted solve.
	if store != nil && cfg.Solver.SaveMemo {
		if err := store.Flush(context.Background(), table); err != nil {
			klog.Errorf("failed to save memo: %v", err)
		} else {
			klog.Infof("saved %d solved positions to %s", table.Len(), store.Desc())
		}
	}

	return solveErr
}

// loadMemo opens the configured store and loads it into table.
// Failures are logged and the solve proceeds with whatever was loaded.
func loadMemo(ctx context.Context, sctx edgegame.StoreContext, opts edgegame.StoreOpts, table edgegame.MemoTable) edgegame.MemoStore {
	store, err := memo.Open(sctx, opts)
	if err != nil {
		klog.Errorf("failed to open memo store: %v", err)
		return nil
	}
	n, err := store.Load(ctx, table)
	if err != nil {
		klog.Errorf("failed to load memo from %s (%d entries loaded): %v", store.Desc(), n, err)
	} else {
		klog.Infof("loaded %d solved positions from %s", n, store.Desc())
	}
	return store
}

// readEdges resolves the command line into a starting edge list.
func readEdges(cfg *config.Config, args []string) (edgegame.EdgeList, error) {
	if len(args) == 0 {
		return libgame.LoadEdgeList(cfg.App.InputPathname)
	}

	cmd, params := args[0], args[1:]
	switch cmd {
	case "file":
		switch len(params) {
		case 0:
			return libgame.LoadEdgeList(cfg.App.InputPathname)
		case 1:
			return libgame.LoadEdgeList(params[0])
		}
		return nil, errors.Wrap(edgegame.ErrBadGeneratorParam, "file takes at most one pathname")
	case "expr":
		if len(params) != 1 {
			return nil, errors.Wrap(edgegame.ErrBadGeneratorParam, "expr takes a single expression")
		}
		return libgame.ParseEdgeRuns(params[0])
	}

	if _, known := libgame.Generators[cmd]; !known {
		return nil, errors.Wrapf(edgegame.ErrUnknownGenerator, "%q", cmd)
	}
	ints := make([]int, len(params))
	for i, param := range params {
		n, err := strconv.Atoi(param)
		if err != nil {
			return nil, errors.Wrapf(edgegame.ErrBadGeneratorParam, "%s: %q is not an integer", cmd, param)
		}
		ints[i] = n
	}
	return libgame.Generate(cmd, ints...)
}
