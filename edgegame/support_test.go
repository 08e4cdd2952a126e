package edgegame

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	ctx    StoreContext
	closed atomic.Int32
}

func (store *fakeStore) Load(context.Context, MemoTable) (int, error) { return 0, nil }
func (store *fakeStore) Flush(context.Context, MemoTable) error { return nil }
func (store *fakeStore) Desc() string { return "fake" }

func (store *fakeStore) Close() error {
	store.closed.Add(1)
	store.ctx.DetachStore(store)
	return nil
}

func TestStoreContextClosesAttached(t *testing.T) {
	ctx := NewStoreContext()

	stores := []*fakeStore{{ctx: ctx}, {ctx: ctx}, {ctx: ctx}}
	for _, store := range stores {
		ctx.AttachStore(store)
	}

	// A store closed by its owner detaches and is not closed again
	require.NoError(t, stores[0].Close())

	ctx.Close()
	ctx.Close()

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("store context never finished closing")
	}
	for _, store := range stores {
		require.Equal(t, int32(1), store.closed.Load())
	}
}

func TestStoreContextEmpty(t *testing.T) {
	ctx := NewStoreContext()
	ctx.Close()

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("store context never finished closing")
	}
}
