package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/2x3systems/edgegame/config"
	"github.com/2x3systems/edgegame/edgegame"
	"github.com/plan-systems/klog"
)

const usage = `usage: edgegame [flags] <command> [args]

commands:
  complete N              complete graph on N vertices
  wheel N                 wheel graph on N vertices (hub plus N-1 rim)
  cycle N LOOPS           N-cycle with LOOPS loops per vertex
  hanging-tree SPOKES L   star with SPOKES spokes, L loops per spoke tip
  grid M N                M x N dots-and-boxes board
  file [PATH]             "a,b" edge list file (default %s)
  expr EXPR               edge runs, e.g. "0-1-2-0,3-3"
  script FILE.py          run a gpython script with the edgegame module

flags:
`

func main() {
	os.Exit(mainWithExit())
}

func mainWithExit() int {
	klog.InitFlags(nil)
	flag.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})
	defer klog.Flush()

	cfg, err := config.Load()
	if err != nil {
		klog.Errorf("config: %v", err)
		return 2
	}
	flag.Set("v", strconv.Itoa(cfg.App.LogVerbosity))

	var (
		storeKind   = string(cfg.Store.Kind)
		noEarlyExit = !cfg.Solver.EarlyExit
	)
	flag.StringVar(&cfg.Store.Pathname, "memo", cfg.Store.Pathname, "memo text file or badger dir")
	flag.StringVar(&storeKind, "store", storeKind, "memo store: text, badger, redis or none")
	flag.StringVar(&cfg.Store.RedisURL, "redis-url", cfg.Store.RedisURL, "redis URL for the redis store")
	flag.StringVar(&cfg.Store.RedisKey, "redis-key", cfg.Store.RedisKey, "redis hash holding the memo")
	flag.BoolVar(&cfg.Solver.SaveMemo, "save-memo", cfg.Solver.SaveMemo, "save the memo table after solving")
	flag.BoolVar(&cfg.Store.SkipMalformed, "skip-malformed", cfg.Store.SkipMalformed, "skip malformed memo records instead of stopping the load")
	flag.BoolVar(&noEarlyExit, "no-early-exit", noEarlyExit, "try every move even after one scores every vertex")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage, edgegame.DefaultInputPathname)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg.Store.Kind = edgegame.StoreKind(storeKind)
	cfg.Solver.EarlyExit = !noEarlyExit
	if err = cfg.Validate(); err != nil {
		klog.Errorf("%v", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err = run(ctx, cfg, flag.Args(), os.Stdout); err != nil {
		klog.Errorf("%v", err)
		return 1
	}
	return 0
}
