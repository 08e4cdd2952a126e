package libgame

import (
	"math/rand"
	"testing"

	"github.com/2x3systems/edgegame/edgegame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func edges(pairs ...int) edgegame.EdgeList {
	out := make(edgegame.EdgeList, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, edgegame.Edge{A: pairs[i], B: pairs[i+1]})
	}
	return out
}

func pathEdges(n int) edgegame.EdgeList {
	out := make(edgegame.EdgeList, 0, n-1)
	for i := 0; i < n-1; i++ {
		out = append(out, edgegame.Edge{A: i, B: i + 1})
	}
	return out
}

func starEdges(spokes int) edgegame.EdgeList {
	out := make(edgegame.EdgeList, 0, spokes)
	for i := 1; i <= spokes; i++ {
		out = append(out, edgegame.Edge{A: 0, B: i})
	}
	return out
}

// relabel maps every vertex through a random permutation (spread out and shifted) and shuffles edge order.
func relabel(src edgegame.EdgeList, rng *rand.Rand) edgegame.EdgeList {
	maxID := 0
	for _, e := range src {
		if e.A > maxID {
			maxID = e.A
		}
		if e.B > maxID {
			maxID = e.B
		}
	}
	perm := rng.Perm(maxID + 1)
	out := make(edgegame.EdgeList, len(src))
	for i, e := range src {
		a, b := 5*perm[e.A]-7, 5*perm[e.B]-7
		if rng.Intn(2) == 0 {
			a, b = b, a
		}
		out[i] = edgegame.Edge{A: a, B: b}
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func TestNewGraphNormalizes(t *testing.T) {
	X := NewGraph(edges(3, 1, 2, 2, 1, 3, 7, 3))

	assert.Equal(t, edges(1, 3, 2, 2, 1, 3, 3, 7), X.Edges())
	assert.Equal(t, 4, X.NumEdges())
	assert.Equal(t, 4, X.NumVertices())

	ids := make([]int, 0, 4)
	for _, v := range X.Vtx() {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []int{1, 2, 3, 7}, ids)

	assert.True(t, X.ContainsVertex(7))
	assert.False(t, X.ContainsVertex(0))
	assert.Nil(t, X.Vertex(0))

	// A loop appears once in its own adjacency
	v2 := X.Vertex(2)
	require.NotNil(t, v2)
	assert.Equal(t, []int{2}, v2.Adj)
	assert.Equal(t, 1, v2.Degree())
	assert.Equal(t, 1, v2.NumLoops())

	assert.Equal(t, 3, X.Degree(3))
	assert.Equal(t, 2, X.Degree(1))
	assert.Equal(t, 0, X.Degree(42))
}

func TestWithoutEdge(t *testing.T) {
	X := NewGraph(edges(0, 1, 0, 1, 1, 2, 3, 3))

	// Removing one of a double edge isolates nothing and leaves the other
	X1, points := X.WithoutEdge(0)
	assert.Equal(t, 0, points)
	assert.Equal(t, edges(0, 1, 1, 2, 3, 3), X1.Edges())
	assert.Equal(t, 4, X1.NumVertices())

	// Removing the only edge on 2 isolates 2
	X2, points := X.WithoutEdge(2)
	assert.Equal(t, 1, points)
	assert.False(t, X2.ContainsVertex(2))

	// Removing a lone loop isolates its vertex once
	X3, points := X.WithoutEdge(3)
	assert.Equal(t, 1, points)
	assert.False(t, X3.ContainsVertex(3))

	// The parent is untouched
	assert.Equal(t, 4, X.NumEdges())

	// A lone edge isolates both ends
	Xe, points := NewGraph(edges(4, 9)).WithoutEdge(0)
	assert.Equal(t, 2, points)
	assert.Equal(t, 0, Xe.NumVertices())
}

func TestGraphString(t *testing.T) {
	X := NewGraph(edges(1, 0, 2, 2))
	assert.Equal(t, "v=3,e=2,0-1 2-2", X.String())
}
