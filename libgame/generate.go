package libgame

import (
	"sort"

	"github.com/2x3systems/edgegame/edgegame"
	"github.com/pkg/errors"
)

// Generator names accepted by Generate
const (
	GenComplete    = "complete"
	GenWheel       = "wheel"
	GenCycle       = "cycle"
	GenHangingTree = "hanging-tree"
	GenGrid        = "grid"
)

// Generators lists each generator name with the number of int params it takes.
var Generators = map[string]int{
	GenComplete:    1,
	GenWheel:       1,
	GenCycle:       2,
	GenHangingTree: 2,
	GenGrid:        2,
}

// Generate returns the edges of the named graph family for the given params.
func Generate(name string, params ...int) (edgegame.EdgeList, error) {
	numParams, known := Generators[name]
	if !known {
		return nil, errors.Wrapf(edgegame.ErrUnknownGenerator, "%q", name)
	}
	if len(params) != numParams {
		return nil, errors.Wrapf(edgegame.ErrBadGeneratorParam, "%s takes %d param(s), got %d", name, numParams, len(params))
	}

	switch name {
	case GenComplete:
		return Complete(params[0])
	case GenWheel:
		return Wheel(params[0])
	case GenCycle:
		return Cycle(params[0], params[1])
	case GenHangingTree:
		return HangingTree(params[0], params[1])
	default:
		return Grid(params[0], params[1])
	}
}

// Complete returns the complete graph on n vertices 0..n-1.
func Complete(n int) (edgegame.EdgeList, error) {
	if n < 2 {
		return nil, errors.Wrapf(edgegame.ErrBadGeneratorParam, "complete graph needs at least 2 vertices, got %d", n)
	}
	edges := make(edgegame.EdgeList, 0, n*(n-1)/2)
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, edgegame.Edge{A: i, B: j})
		}
	}
	return edges, nil
}

// Wheel returns the wheel graph on n vertices: hub n-1 joined to every rim vertex 0..n-2, which form a cycle.
func Wheel(n int) (edgegame.EdgeList, error) {
	if n < 4 {
		return nil, errors.Wrapf(edgegame.ErrBadGeneratorParam, "wheel graph needs at least 4 vertices, got %d", n)
	}
	hub, rim := n-1, n-1
	edges := make(edgegame.EdgeList, 0, 2*rim)
	for i := 0; i < rim; i++ {
		edges = append(edges, edgegame.NewEdge(i, (i+1)%rim))
		edges = append(edges, edgegame.NewEdge(i, hub))
	}
	return sortEdges(edges), nil
}

// Cycle returns the n-cycle 0..n-1 with the given number of loops on every vertex.
// A 1-cycle is a single loop and a 2-cycle is a double edge.
func Cycle(n, loops int) (edgegame.EdgeList, error) {
	if n < 1 || loops < 0 {
		return nil, errors.Wrapf(edgegame.ErrBadGeneratorParam, "cycle(%d, %d)", n, loops)
	}
	edges := make(edgegame.EdgeList, 0, n*(1+loops))
	for i := 0; i < n; i++ {
		edges = append(edges, edgegame.NewEdge(i, (i+1)%n))
		for j := 0; j < loops; j++ {
			edges = append(edges, edgegame.Edge{A: i, B: i})
		}
	}
	return sortEdges(edges), nil
}

// HangingTree returns a star with root 0 and the given number of spokes, each spoke tip carrying the given number of loops.
func HangingTree(spokes, loops int) (edgegame.EdgeList, error) {
	if spokes < 1 || loops < 0 {
		return nil, errors.Wrapf(edgegame.ErrBadGeneratorParam, "hanging-tree(%d, %d)", spokes, loops)
	}
	edges := make(edgegame.EdgeList, 0, spokes*(1+loops))
	for spoke := 1; spoke <= spokes; spoke++ {
		edges = append(edges, edgegame.Edge{A: 0, B: spoke})
		for j := 0; j < loops; j++ {
			edges = append(edges, edgegame.Edge{A: spoke, B: spoke})
		}
	}
	return sortEdges(edges), nil
}

// Grid returns the m x n dots-and-boxes board as a graph: each box is a vertex, adjacent boxes share an edge and
// each border side is a loop.
func Grid(m, n int) (edgegame.EdgeList, error) {
	if m < 1 || n < 1 {
		return nil, errors.Wrapf(edgegame.ErrBadGeneratorParam, "grid(%d, %d)", m, n)
	}
	edges := make(edgegame.EdgeList, 0, 2*m*n+m+n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			v := i*n + j
			if i == 0 {
				edges = append(edges, edgegame.Edge{A: v, B: v})
			}
			if i == m-1 {
				edges = append(edges, edgegame.Edge{A: v, B: v})
			} else {
				edges = append(edges, edgegame.Edge{A: v, B: v + n})
			}
			if j == 0 {
				edges = append(edges, edgegame.Edge{A: v, B: v})
			}
			if j == n-1 {
				edges = append(edges, edgegame.Edge{A: v, B: v})
			} else {
				edges = append(edges, edgegame.Edge{A: v, B: v + 1})
			}
		}
	}
	return sortEdges(edges), nil
}

func sortEdges(edges edgegame.EdgeList) edgegame.EdgeList {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges
}
