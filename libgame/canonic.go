package libgame

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/2x3systems/edgegame/edgegame"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/pkg/errors"
)

// Labeling is the canonical relabeling of a graph.
//
// Two graphs with equal signatures are isomorphic.  The converse holds for the common game families
// (complete, cycle, path, star, wheel, hanging tree) but is not guaranteed in general; grids are a known exception.
type Labeling struct {
	CanonicIDs    []int             // canonical ID of each vertex, indexed like Graph.Vtx()
	Edges         edgegame.EdgeList // canonical edges (CanonicIDs applied), sorted by A then B
	Signature     string            // Edges rendered as "a-b|a-b|..."
	NumCategories int               // number of vertex categories in the final refinement
	Rounds        int               // refinement rounds performed
}

// partition assigns each vertex index a dense category rank.
type partition struct {
	category      []int
	numCategories int
}

const unassigned = -1

// Canonize computes the canonical labeling of X.
//
// Vertices are first ranked by (degree, -loops) and then repeatedly re-ranked by their prior category plus the count of
// neighbors in each prior category, until the ranking stops changing.  Vertices still sharing a category are then
// numbered greedily, preferring vertices adjacent to the lowest already-numbered vertex.
func Canonize(X *Graph) *Labeling {
	nbrs := X.neighborIndexes()

	P, rounds := refinePartition(X, nbrs)
	cid := assignCanonicIDs(nbrs, P)

	lab := &Labeling{
		CanonicIDs:    cid,
		NumCategories: P.numCategories,
		Rounds:        rounds,
	}
	lab.Edges = canonicEdges(nbrs, cid, X.NumEdges())
	lab.Signature = FormatSignature(lab.Edges)
	return lab
}

// neighborIndexes returns the adjacency of each vertex as vertex indexes.
func (X *Graph) neighborIndexes() [][]int32 {
	nbrs := make([][]int32, len(X.vtx))
	for vi := range X.vtx {
		v := &X.vtx[vi]
		adj := make([]int32, len(v.Adj))
		for j, n := range v.Adj {
			adj[j] = X.vtxIndex(n)
		}
		nbrs[vi] = adj
	}
	return nbrs
}

func refinePartition(X *Graph, nbrs [][]int32) (P partition, rounds int) {
	Nv := len(X.vtx)

	keys := make([][]int, Nv)
	for vi := range X.vtx {
		v := &X.vtx[vi]
		keys[vi] = []int{v.Degree(), -v.NumLoops()}
	}
	P = rankKeys(keys)
	rounds = 1

	var prior []int
	for {
		switch {
		case P.numCategories <= 1, P.numCategories == Nv, rounds >= Nv:
			return P, rounds
		case prior != nil && equalInts(prior, P.category):
			return P, rounds
		}
		prior = P.category
		P = rankKeys(categoryKeys(nbrs, P))
		rounds++
	}
}

// categoryKeys returns the refinement key of each vertex: its category followed by its neighbor count in each
// category, highest category first.
func categoryKeys(nbrs [][]int32, P partition) [][]int {
	Nc := P.numCategories
	keys := make([][]int, len(nbrs))
	counts := make([]int, Nc)
	for vi, adj := range nbrs {
		for i := range counts {
			counts[i] = 0
		}
		for _, ni := range adj {
			counts[P.category[ni]]++
		}
		key := make([]int, 1+Nc)
		key[0] = P.category[vi]
		for c := 0; c < Nc; c++ {
			key[1+c] = counts[Nc-1-c]
		}
		keys[vi] = key
	}
	return keys
}

// rankKeys assigns each distinct key its rank in ascending lexicographic order.
func rankKeys(keys [][]int) partition {
	ranks := redblacktree.Tree{
		Comparator: func(A, B interface{}) int {
			return compareKeys(A.([]int), B.([]int))
		},
	}
	for _, key := range keys {
		ranks.Put(key, 0)
	}
	for rank, key := range ranks.Keys() {
		ranks.Put(key, rank)
	}

	P := partition{
		category:      make([]int, len(keys)),
		numCategories: ranks.Size(),
	}
	for vi, key := range keys {
		rank, _ := ranks.Get(key)
		P.category[vi] = rank.(int)
	}
	return P
}

func compareKeys(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if d := a[i] - b[i]; d != 0 {
			if d < 0 {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// assignCanonicIDs returns a bijection from vertex index to 0..Nv-1 that respects category order.
func assignCanonicIDs(nbrs [][]int32, P partition) []int {
	Nv := len(nbrs)
	cid := make([]int, Nv)

	if P.numCategories == Nv {
		copy(cid, P.category)
		return cid
	}

	for vi := range cid {
		cid[vi] = unassigned
	}

	// Vertex indexes ascend with raw ID, so each group is in raw ID order.
	groups := make([][]int32, P.numCategories)
	for vi, c := range P.category {
		groups[c] = append(groups[c], int32(vi))
	}

	nextID := 0
	for _, group := range groups {
		for len(group) > 0 {
			pick := pickNextVertex(group, nbrs, cid)
			cid[group[pick]] = nextID
			nextID++
			group = append(group[:pick], group[pick+1:]...)
		}
	}

	if nextID != Nv {
		panic(fmt.Sprintf("canonic ID assignment covered %d of %d vertices", nextID, Nv))
	}
	return cid
}

// pickNextVertex returns the position in group of the vertex adjacent to the lowest assigned canonic ID, or the
// first vertex in group if none has an assigned neighbor.
func pickNextVertex(group []int32, nbrs [][]int32, cid []int) int {
	if len(group) == 1 {
		return 0
	}

	best := 0
	bestMin := len(cid)
	for i, vi := range group {
		minAssigned := len(cid)
		for _, ni := range nbrs[vi] {
			if id := cid[ni]; id != unassigned && id < minAssigned {
				minAssigned = id
			}
		}
		if minAssigned < bestMin {
			best = i
			bestMin = minAssigned
		}
	}
	return best
}

// canonicEdges emits each edge once, from the endpoint with the lower canonic ID, then sorts.
func canonicEdges(nbrs [][]int32, cid []int, numEdges int) edgegame.EdgeList {
	edges := make(edgegame.EdgeList, 0, numEdges)
	for vi, adj := range nbrs {
		for _, ni := range adj {
			if cid[vi] <= cid[ni] {
				edges = append(edges, edgegame.Edge{A: cid[vi], B: cid[ni]})
			}
		}
	}
	return sortEdges(edges)
}

// FormatSignature renders canonical edges as "a-b|a-b|...".
func FormatSignature(edges edgegame.EdgeList) string {
	buf := make([]byte, 0, 6*len(edges))
	for i, e := range edges {
		if i > 0 {
			buf = append(buf, '|')
		}
		buf = e.AppendTo(buf)
	}
	return string(buf)
}

// ParseSignature is the inverse of FormatSignature.
func ParseSignature(sig string) (edgegame.EdgeList, error) {
	if sig == "" {
		return nil, nil
	}
	parts := strings.Split(sig, "|")
	edges := make(edgegame.EdgeList, len(parts))
	for i, part := range parts {
		sep := strings.IndexByte(part, '-')
		if sep <= 0 {
			return nil, errors.Wrapf(edgegame.ErrMalformedRecord, "signature edge %q", part)
		}
		a, errA := strconv.Atoi(part[:sep])
		b, errB := strconv.Atoi(part[sep+1:])
		if errA != nil || errB != nil || a < 0 || a > b {
			return nil, errors.Wrapf(edgegame.ErrMalformedRecord, "signature edge %q", part)
		}
		edges[i] = edgegame.Edge{A: a, B: b}
	}
	return edges, nil
}
