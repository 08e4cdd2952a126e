package memo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/2x3systems/edgegame/edgegame"
	"github.com/2x3systems/edgegame/libgame"
	"github.com/2x3systems/edgegame/libgame/memo"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solveInto solves the given graph family, extending table.
func solveInto(t *testing.T, table edgegame.MemoTable, name string, params ...int) int {
	t.Helper()
	src, err := libgame.Generate(name, params...)
	require.NoError(t, err)
	net, err := libgame.NewSolver(table, libgame.SolverOpts{}).NetScore(context.Background(), libgame.NewGraph(src))
	require.NoError(t, err)
	return net
}

func tableEntries(table edgegame.MemoTable) map[string]int {
	entries := make(map[string]int, table.Len())
	table.Range(func(sig string, net int) bool {
		entries[sig] = net
		return true
	})
	return entries
}

// exerciseStore checks that a store round trips a solved table and that a reloaded table reproduces the solve.
func exerciseStore(t *testing.T, reopen func() edgegame.MemoStore) {
	ctx := context.Background()

	store := reopen()
	empty := memo.NewTable()
	n, err := store.Load(ctx, empty)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	solved := memo.NewTable()
	want := solveInto(t, solved, libgame.GenWheel, 5)
	require.NoError(t, store.Flush(ctx, solved))
	require.NoError(t, store.Close())

	store = reopen()
	defer store.Close()

	loaded := memo.NewTable()
	n, err = store.Load(ctx, loaded)
	require.NoError(t, err)
	require.Equal(t, solved.Len(), n)
	require.Equal(t, tableEntries(solved), tableEntries(loaded))

	// Solving against the reloaded table is a pure memo hit
	solver := libgame.NewSolver(loaded, libgame.SolverOpts{})
	src, _ := libgame.Wheel(5)
	got, err := solver.NetScore(ctx, libgame.NewGraph(src))
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, int64(1), solver.Stats().MemoHits)

	// Loading into a table that already holds the entries adds nothing
	n, err = store.Load(ctx, loaded)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	// A smaller flush replaces everything previously stored
	small := memo.NewTable()
	small.Put("0-1", 2)
	require.NoError(t, store.Flush(ctx, small))
	replaced := memo.NewTable()
	n, err = store.Load(ctx, replaced)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, map[string]int{"0-1": 2}, tableEntries(replaced))

	// A conflicting entry in the destination is reported
	conflicted := memo.NewTable()
	conflicted.Put("0-1", -2)
	_, err = store.Load(ctx, conflicted)
	require.ErrorIs(t, err, edgegame.ErrMemoConflict)
}

func TestTextStore(t *testing.T) {
	pathname := filepath.Join(t.TempDir(), "memo", edgegame.DefaultMemoPathname)
	exerciseStore(t, func() edgegame.MemoStore {
		store, err := memo.Open(nil, edgegame.StoreOpts{Kind: edgegame.StoreText, Pathname: pathname})
		require.NoError(t, err)
		return store
	})

	buf, err := os.ReadFile(pathname)
	require.NoError(t, err)
	assert.Equal(t, "0-1,2\n", string(buf))
}

func TestTextStoreMalformed(t *testing.T) {
	ctx := context.Background()
	pathname := filepath.Join(t.TempDir(), edgegame.DefaultMemoPathname)
	lines := "0-1,2\nnot a record\n0-1|0-2|1-2,-3\n0-0,one\n\n0-0,1\n"
	require.NoError(t, os.WriteFile(pathname, []byte(lines), 0o644))

	strict, err := memo.OpenTextStore(nil, edgegame.StoreOpts{Pathname: pathname})
	require.NoError(t, err)
	table := memo.NewTable()
	n, err := strict.Load(ctx, table)
	require.ErrorIs(t, err, edgegame.ErrMalformedRecord)
	assert.Contains(t, err.Error(), ":2")
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, table.Len())

	lenient, err := memo.OpenTextStore(nil, edgegame.StoreOpts{Pathname: pathname, SkipMalformed: true})
	require.NoError(t, err)
	table = memo.NewTable()
	n, err = lenient.Load(ctx, table)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, map[string]int{"0-1": 2, "0-1|0-2|1-2": -3, "0-0": 1}, tableEntries(table))
}

func TestTextStoreReadOnly(t *testing.T) {
	pathname := filepath.Join(t.TempDir(), edgegame.DefaultMemoPathname)
	store, err := memo.Open(nil, edgegame.StoreOpts{Pathname: pathname, ReadOnly: true})
	require.NoError(t, err)

	err = store.Flush(context.Background(), memo.NewTable())
	require.ErrorIs(t, err, edgegame.ErrStoreReadOnly)
	_, err = os.Stat(pathname)
	require.True(t, os.IsNotExist(err))
}

func TestBadgerStore(t *testing.T) {
	dir := t.TempDir()
	exerciseStore(t, func() edgegame.MemoStore {
		store, err := memo.Open(nil, edgegame.StoreOpts{Kind: edgegame.StoreBadger, Pathname: dir})
		require.NoError(t, err)
		return store
	})
}

func TestBadgerStoreInMemory(t *testing.T) {
	ctx := context.Background()
	store, err := memo.OpenBadgerStore(nil, edgegame.StoreOpts{})
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, "badger:(in-memory)", store.Desc())

	solved := memo.NewTable()
	solveInto(t, solved, libgame.GenComplete, 4)
	require.NoError(t, store.Flush(ctx, solved))

	loaded := memo.NewTable()
	n, err := store.Load(ctx, loaded)
	require.NoError(t, err)
	assert.Equal(t, solved.Len(), n)
	assert.Equal(t, tableEntries(solved), tableEntries(loaded))

	_, err = memo.OpenBadgerStore(nil, edgegame.StoreOpts{ReadOnly: true})
	assert.ErrorIs(t, err, edgegame.ErrBadStoreParam)
}

func TestRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	opts := edgegame.StoreOpts{
		Kind:     edgegame.StoreRedis,
		RedisURL: "redis://" + mr.Addr(),
	}
	exerciseStore(t, func() edgegame.MemoStore {
		store, err := memo.Open(nil, opts)
		require.NoError(t, err)
		return store
	})

	assert.Equal(t, "2", mr.HGet(edgegame.DefaultRedisKey, "0-1"))
}

func TestRedisStoreMalformed(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	mr.HSet("scores", "0-1", "2", "0-0", "x", "bad", "1")

	opts := edgegame.StoreOpts{RedisURL: "redis://" + mr.Addr(), RedisKey: "scores"}
	store, err := memo.OpenRedisStore(nil, opts)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Load(context.Background(), memo.NewTable())
	require.ErrorIs(t, err, edgegame.ErrMalformedRecord)

	opts.SkipMalformed = true
	lenient, err := memo.OpenRedisStore(nil, opts)
	require.NoError(t, err)
	defer lenient.Close()

	table := memo.NewTable()
	n, err := lenient.Load(context.Background(), table)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, map[string]int{"0-1": 2}, tableEntries(table))
}

func TestOpen(t *testing.T) {
	_, err := memo.Open(nil, edgegame.StoreOpts{Kind: "sqlite"})
	assert.ErrorIs(t, err, edgegame.ErrUnknownStore)

	_, err = memo.Open(nil, edgegame.StoreOpts{Kind: edgegame.StoreRedis})
	assert.ErrorIs(t, err, edgegame.ErrBadStoreParam)

	_, err = memo.Open(nil, edgegame.StoreOpts{Kind: edgegame.StoreRedis, RedisURL: "http://nope"})
	assert.ErrorIs(t, err, edgegame.ErrBadStoreParam)

	store, err := memo.Open(nil, edgegame.StoreOpts{Kind: edgegame.StoreNone})
	require.NoError(t, err)
	n, err := store.Load(context.Background(), memo.NewTable())
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.NoError(t, store.Flush(context.Background(), memo.NewTable()))
}

func TestStoreContextClosesStores(t *testing.T) {
	sctx := edgegame.NewStoreContext()

	store, err := memo.Open(sctx, edgegame.StoreOpts{Kind: edgegame.StoreBadger})
	require.NoError(t, err)

	sctx.Close()
	<-sctx.Done()

	_, err = store.Load(context.Background(), memo.NewTable())
	assert.ErrorIs(t, err, edgegame.ErrStoreClosed)
}
