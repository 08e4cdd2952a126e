package libgame

import "github.com/2x3systems/edgegame/edgegame"

// isTree reports if X collapses entirely under repeated leaf removal.
//
// Each round, every vertex with exactly one remaining adjacency entry is an end, and every edge touching an end is
// removed.  A loop contributes once to its vertex's remaining count, so a vertex holding only a loop is an end.
// Forests therefore qualify, as does the empty graph.
func isTree(X *Graph) bool {
	Ne, Nv := X.NumEdges(), X.NumVertices()
	switch {
	case Ne > Nv:
		return false
	case Ne == 1:
		return true
	}
	return len(pareLeaves(X.edges)) == 0
}

// pareLeaves returns the edges that survive leaf pruning.
func pareLeaves(edges edgegame.EdgeList) edgegame.EdgeList {
	remain := make(map[int]int, len(edges)+1)
	for _, e := range edges {
		remain[e.A]++
		if !e.IsLoop() {
			remain[e.B]++
		}
	}

	edges = append(edgegame.EdgeList(nil), edges...)
	for ends := collectEnds(remain); len(ends) > 0; ends = collectEnds(remain) {
		kept := edges[:0]
		for _, e := range edges {
			if ends[e.A] || ends[e.B] {
				decRemain(remain, e.A)
				if !e.IsLoop() {
					decRemain(remain, e.B)
				}
			} else {
				kept = append(kept, e)
			}
		}
		edges = kept
	}
	return edges
}

func collectEnds(remain map[int]int) map[int]bool {
	var ends map[int]bool
	for v, n := range remain {
		if n == 1 {
			if ends == nil {
				ends = make(map[int]bool)
			}
			ends[v] = true
		}
	}
	return ends
}

func decRemain(remain map[int]int, v int) {
	if n := remain[v] - 1; n > 0 {
		remain[v] = n
	} else {
		delete(remain, v)
	}
}
