package memo

import (
	"fmt"
	"sort"

	"github.com/2x3systems/edgegame/edgegame"
	"github.com/pkg/errors"
)

// Table is an in-memory edgegame.MemoTable.  It is not safe for concurrent use.
type Table struct {
	entries map[string]int
}

func NewTable() *Table {
	return &Table{
		entries: make(map[string]int),
	}
}

func (tbl *Table) Get(signature string) (int, bool) {
	net, ok := tbl.entries[signature]
	return net, ok
}

// Put records a solved value; re-putting a signature with a different value panics.
func (tbl *Table) Put(signature string, netScore int) {
	if prev, exists := tbl.entries[signature]; exists && prev != netScore {
		panic(fmt.Sprintf("memo conflict for %q: have %d, put %d", signature, prev, netScore))
	}
	tbl.entries[signature] = netScore
}

func (tbl *Table) Len() int {
	return len(tbl.entries)
}

func (tbl *Table) Range(fn func(signature string, netScore int) bool) {
	for sig, net := range tbl.entries {
		if !fn(sig, net) {
			return
		}
	}
}

// Merge adds an entry to dst, reporting whether it was new.
// Unlike Put, a conflicting value is returned as ErrMemoConflict rather than panicking.
func Merge(dst edgegame.MemoTable, signature string, netScore int) (added bool, err error) {
	if prev, exists := dst.Get(signature); exists {
		if prev != netScore {
			return false, errors.Wrapf(edgegame.ErrMemoConflict, "%q: have %d, got %d", signature, prev, netScore)
		}
		return false, nil
	}
	dst.Put(signature, netScore)
	return true, nil
}

// SortedSignatures returns the signatures held by src in ascending order.
func SortedSignatures(src edgegame.MemoTable) []string {
	sigs := make([]string, 0, src.Len())
	src.Range(func(sig string, _ int) bool {
		sigs = append(sigs, sig)
		return true
	})
	sort.Strings(sigs)
	return sigs
}
