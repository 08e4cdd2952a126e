package edgegame

import (
	"context"
	"strconv"
)

const (

	// DefaultMemoPathname is where the text memo table lives when no other path is given.
	DefaultMemoPathname = "net_scores.txt"

	// DefaultInputPathname is the edge list read when no generator is given.
	DefaultInputPathname = "game_input.txt"

	// DefaultRedisKey is the redis hash holding solved signatures.
	DefaultRedisKey = "edgegame:memo"
)

// Edge is an undirected edge between two raw vertex IDs, normalized so that A <= B.
// A == B denotes a loop.
type Edge struct {
	A int
	B int
}

// NewEdge returns the normalized edge connecting va and vb.
func NewEdge(va, vb int) Edge {
	if va > vb {
		va, vb = vb, va
	}
	return Edge{A: va, B: vb}
}

func (e Edge) IsLoop() bool {
	return e.A == e.B
}

// Other returns the endpoint of e that is opposite of v.
func (e Edge) Other(v int) int {
	if e.A == v {
		return e.B
	}
	return e.A
}

func (e Edge) String() string {
	var buf [48]byte
	return string(e.AppendTo(buf[:0]))
}

// AppendTo appends "A-B" to the given buffer.
func (e Edge) AppendTo(buf []byte) []byte {
	buf = strconv.AppendInt(buf, int64(e.A), 10)
	buf = append(buf, '-')
	buf = strconv.AppendInt(buf, int64(e.B), 10)
	return buf
}

// EdgeList is an ordered sequence of edges, possibly with repeats (multi-edges).
type EdgeList []Edge

// Normalize returns a copy of the list with every edge in A <= B form.
func (edges EdgeList) Normalize() EdgeList {
	out := make(EdgeList, len(edges))
	for i, e := range edges {
		out[i] = NewEdge(e.A, e.B)
	}
	return out
}

// NumVertices returns the number of distinct endpoints referenced by the list.
func (edges EdgeList) NumVertices() int {
	seen := make(map[int]struct{}, 2*len(edges))
	for _, e := range edges {
		seen[e.A] = struct{}{}
		seen[e.B] = struct{}{}
	}
	return len(seen)
}

// MemoTable maps a canonical signature to a solved net score differential.
//
// A signature, once put, is never put again with a different value.
type MemoTable interface {

	// Get returns the solved value for the given signature, if present.
	Get(signature string) (netScore int, ok bool)

	// Put records the solved value for the given signature.
	// Putting a different value for an existing signature is an invariant violation.
	Put(signature string, netScore int)

	// Len returns the number of solved signatures.
	Len() int

	// Range calls fn for each entry until fn returns false.
	Range(fn func(signature string, netScore int) bool)
}

// MemoStore persists a MemoTable between runs.
type MemoStore interface {

	// Load reads all persisted entries into dst and returns how many were added.
	// On error, entries read before the failure remain in dst.
	Load(ctx context.Context, dst MemoTable) (int, error)

	// Flush replaces the persisted entries with the contents of src.
	Flush(ctx context.Context, src MemoTable) error

	// Desc returns a short human readable description of this store.
	Desc() string

	// Close releases this store's resources.
	Close() error
}

// StoreKind names a MemoStore backend.
type StoreKind string

const (
	StoreNone   StoreKind = "none"
	StoreText   StoreKind = "text"
	StoreBadger StoreKind = "badger"
	StoreRedis  StoreKind = "redis"
)

// StoreOpts specifies params for opening a MemoStore
type StoreOpts struct {
	Kind          StoreKind // backend to open (defaults to StoreText)
	Pathname      string    // text file or badger dir; omit badger dir for an in-memory db
	RedisURL      string    // redis://host:port/db
	RedisKey      string    // hash key holding the memo (defaults to DefaultRedisKey)
	ReadOnly      bool      // Flush is rejected
	SkipMalformed bool      // skip (and log) malformed records rather than aborting Load
}

// StoreContext is a container for open MemoStore instances.
type StoreContext interface {

	// Attaches the given store to this context.
	AttachStore(store MemoStore)

	// Detaches the given store from this context.
	DetachStore(store MemoStore)

	// Closes all attached stores then closes.
	Close()

	// Signals when Close() completed and all attached stores have been closed
	Done() <-chan struct{}
}
