package libgame

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/2x3systems/edgegame/edgegame"
	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
)

// EdgeLine is one line of an edge list file: "a,b"
type EdgeLine struct {
	A *VtxRef `@@ ","`
	B *VtxRef `@@`
}

type VtxRef struct {
	Neg bool  `@"-"?`
	ID  int64 `@Int`
}

func (ref *VtxRef) Value() int {
	if ref.Neg {
		return -int(ref.ID)
	}
	return int(ref.ID)
}

// EdgeRunsExpr is a compact edge expression, e.g. "0-1-2-0,3-3" (a triangle plus a loop on 3).
type EdgeRunsExpr struct {
	Runs []*VtxRun `(@@ ("," @@)*)?`
}

// VtxRun is a walk of vertices, each consecutive pair forming an edge.
type VtxRun struct {
	Start int64   `@Int`
	Steps []int64 `("-" @Int)*`
}

var (
	parseEdgeLine    = participle.MustBuild[EdgeLine]()
	parseEdgeRunExpr = participle.MustBuild[EdgeRunsExpr]()
)

// ReadEdgeList reads "a,b" lines, skipping blank lines and lines starting with '#'.
// The name is used to annotate errors.
func ReadEdgeList(r io.Reader, name string) (edgegame.EdgeList, error) {
	var edges edgegame.EdgeList

	scanner := bufio.NewScanner(r)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		ast, err := parseEdgeLine.ParseString(name, line)
		if err != nil {
			return nil, errors.Wrapf(edgegame.ErrBadEdgeInput, "%s:%d: %v", name, lineNum, err)
		}
		edges = append(edges, edgegame.NewEdge(ast.A.Value(), ast.B.Value()))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	return edges, nil
}

// LoadEdgeList reads an edge list file (see ReadEdgeList).
func LoadEdgeList(pathname string) (edgegame.EdgeList, error) {
	file, err := os.Open(pathname)
	if err != nil {
		return nil, errors.Wrapf(edgegame.ErrBadEdgeInput, "%v", err)
	}
	defer file.Close()
	return ReadEdgeList(file, pathname)
}

// ParseEdgeRuns parses an edge run expression into edges, in order of appearance.
func ParseEdgeRuns(expr string) (edgegame.EdgeList, error) {
	ast, err := parseEdgeRunExpr.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrapf(edgegame.ErrBadEdgeInput, "%q: %v", expr, err)
	}

	var edges edgegame.EdgeList
	for ri, run := range ast.Runs {
		if len(run.Steps) == 0 {
			return nil, errors.Wrapf(edgegame.ErrBadEdgeInput, "%q: run %d has no edges", expr, ri+1)
		}
		onVtx := run.Start
		for _, nextVtx := range run.Steps {
			edges = append(edges, edgegame.NewEdge(int(onVtx), int(nextVtx)))
			onVtx = nextVtx
		}
	}
	return edges, nil
}
