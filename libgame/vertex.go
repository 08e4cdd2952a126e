package libgame

// Vertex is a graph vertex identified by its raw (caller assigned) ID.
type Vertex struct {
	ID  int   // raw vertex ID, unique within its graph but not necessarily contiguous
	Adj []int // neighbor raw IDs; multi-edges repeat and a loop appears once
}

// Degree is the number of adjacency entries, counting a loop once.
func (v *Vertex) Degree() int {
	return len(v.Adj)
}

// NumLoops returns the number of loops on this vertex.
func (v *Vertex) NumLoops() int {
	loops := 0
	for _, n := range v.Adj {
		if n == v.ID {
			loops++
		}
	}
	return loops
}

func (v *Vertex) addNeighbor(n int) {
	v.Adj = append(v.Adj, n)
}
