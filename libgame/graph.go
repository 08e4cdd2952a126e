package libgame

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/2x3systems/edgegame/edgegame"
)

type treeStatus byte

const (
	treeUnknown treeStatus = iota
	treeNo
	treeYes
)

// Graph is an immutable game position: a multiset of undirected edges.
//
// The vertex set is derived from the edge endpoints, so a vertex whose last edge is removed leaves the graph.
// A Graph's signature and tree status are computed on first use and cached, so a Graph must be owned by one goroutine
// at a time.  Children are always new Graphs, so a parent may be shared by any number of sibling branches.
type Graph struct {
	edges edgegame.EdgeList // normalized, in input order
	vtx   []Vertex          // sorted by raw ID
	index map[int]int32     // raw ID -> index into vtx

	tree     treeStatus
	labeling *Labeling
}

// NewGraph returns a new Graph holding a normalized copy of the given edges.
func NewGraph(edges edgegame.EdgeList) *Graph {
	return newGraph(edges.Normalize())
}

// newGraph takes ownership of the given (already normalized) edges.
func newGraph(edges edgegame.EdgeList) *Graph {
	X := &Graph{
		edges: edges,
		index: make(map[int]int32, len(edges)+1),
	}

	// Collect and order the vertex IDs so that vertex indexes are deterministic.
	ids := make([]int, 0, len(edges)+1)
	for _, e := range edges {
		if _, exists := X.index[e.A]; !exists {
			X.index[e.A] = -1
			ids = append(ids, e.A)
		}
		if _, exists := X.index[e.B]; !exists {
			X.index[e.B] = -1
			ids = append(ids, e.B)
		}
	}
	sort.Ints(ids)

	X.vtx = make([]Vertex, len(ids))
	for i, id := range ids {
		X.vtx[i].ID = id
		X.index[id] = int32(i)
	}
	for _, e := range edges {
		va := &X.vtx[X.index[e.A]]
		va.addNeighbor(e.B)
		if !e.IsLoop() {
			vb := &X.vtx[X.index[e.B]]
			vb.addNeighbor(e.A)
		}
	}

	return X
}

// Edges returns this graph's edges.  The caller must not modify the returned slice.
func (X *Graph) Edges() edgegame.EdgeList {
	return X.edges
}

// Vtx returns this graph's vertices in ascending raw ID order.  The caller must not modify the returned slice.
func (X *Graph) Vtx() []Vertex {
	return X.vtx
}

func (X *Graph) NumEdges() int {
	return len(X.edges)
}

func (X *Graph) NumVertices() int {
	return len(X.vtx)
}

func (X *Graph) ContainsVertex(id int) bool {
	_, exists := X.index[id]
	return exists
}

// Vertex returns the vertex with the given raw ID, or nil if there is none.
func (X *Graph) Vertex(id int) *Vertex {
	vi, exists := X.index[id]
	if !exists {
		return nil
	}
	return &X.vtx[vi]
}

// Degree returns the degree of the given vertex (0 if it is not in this graph).
func (X *Graph) Degree(id int) int {
	if v := X.Vertex(id); v != nil {
		return v.Degree()
	}
	return 0
}

// vtxIndex returns the index of the given raw vertex ID, which must be present.
func (X *Graph) vtxIndex(id int) int32 {
	vi, exists := X.index[id]
	if !exists {
		panic(fmt.Sprintf("vertex %d referenced but not present in graph", id))
	}
	return vi
}

// WithoutEdge returns the position reached by removing the edge at index ei, along with the number of points
// awarded for that move: one for each endpoint left isolated (at most one for a loop).
func (X *Graph) WithoutEdge(ei int) (Xi *Graph, points int) {
	e := X.edges[ei]

	// An endpoint becomes isolated exactly when this edge is its only adjacency entry.
	if X.vtx[X.vtxIndex(e.A)].Degree() == 1 {
		points++
	}
	if !e.IsLoop() && X.vtx[X.vtxIndex(e.B)].Degree() == 1 {
		points++
	}

	edges := make(edgegame.EdgeList, 0, len(X.edges)-1)
	edges = append(edges, X.edges[:ei]...)
	edges = append(edges, X.edges[ei+1:]...)
	return newGraph(edges), points
}

// Signature returns this graph's canonical signature.
func (X *Graph) Signature() string {
	return X.Labeling().Signature
}

// Labeling returns this graph's canonical labeling, computing it on first use.
func (X *Graph) Labeling() *Labeling {
	if X.labeling == nil {
		X.labeling = Canonize(X)
	}
	return X.labeling
}

// CanonicID returns the canonical ID assigned to the given raw vertex ID.
func (X *Graph) CanonicID(id int) (int, bool) {
	vi, exists := X.index[id]
	if !exists {
		return -1, false
	}
	return X.Labeling().CanonicIDs[vi], true
}

// IsTree reports if every connected component of this graph collapses under leaf pruning.
func (X *Graph) IsTree() bool {
	if X.tree == treeUnknown {
		X.tree = treeNo
		if isTree(X) {
			X.tree = treeYes
		}
	}
	return X.tree == treeYes
}

func (X *Graph) WriteAsString(out io.Writer) {
	fmt.Fprintf(out, "v=%d,e=%d,", X.NumVertices(), X.NumEdges())
	var buf [48]byte
	for i, e := range X.edges {
		if i > 0 {
			out.Write([]byte{' '})
		}
		out.Write(e.AppendTo(buf[:0]))
	}
}

func (X *Graph) String() string {
	b := strings.Builder{}
	b.Grow(16 + 8*len(X.edges))
	X.WriteAsString(&b)
	return b.String()
}
