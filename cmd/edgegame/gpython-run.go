package main

import (
	"fmt"
	"io"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/pkg/errors"

	_ "github.com/2x3systems/edgegame/pyedge"
	_ "github.com/go-python/gpython/stdlib"
)

func runScript(pathname string, out io.Writer) error {
	ctx := py.NewContext(py.DefaultContextOpts())

	startTime := time.Now()
	fmt.Fprintf(out, "<<<>>>   executing '%s'   <<<>>>\n", pathname)

	_, err := py.RunFile(ctx, pathname, py.CompileOpts{}, nil)
	if err == nil {
		fmt.Fprintf(out, "<<<>>>   execution complete: %v   <<<>>>\n", time.Since(startTime))
	}

	ctx.Close()
	<-ctx.Done()

	if err != nil {
		py.TracebackDump(err)
		return errors.Wrapf(err, "script %q", pathname)
	}
	return nil
}
