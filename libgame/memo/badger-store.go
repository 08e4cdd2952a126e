package memo

import (
	"context"
	"runtime"

	"github.com/2x3systems/edgegame/edgegame"
	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

/***

Badger memo format:

	gMemoPrefix, signature (UTF-8)   => Record (protobuf)

All memo entries live under gMemoPrefix so that the db can carry other state later on.

***/

var gMemoPrefix = []byte{0x00, 'm', '/'}

type badgerStore struct {
	ctx  edgegame.StoreContext
	opts edgegame.StoreOpts
	db   *badger.DB
}

// OpenBadgerStore opens (or creates) a badger db at opts.Pathname, or an in-memory db if no path is given.
func OpenBadgerStore(ctx edgegame.StoreContext, opts edgegame.StoreOpts) (edgegame.MemoStore, error) {
	dbOpts := badger.DefaultOptions(opts.Pathname)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.Pathname) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(edgegame.ErrBadStoreParam, "Pathname must be specified for a read-only badger store")
		}
		dbOpts.InMemory = true
	}

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "open badger memo %q", opts.Pathname)
	}

	store := &badgerStore{
		ctx:  ctx,
		opts: opts,
		db:   db,
	}
	if ctx != nil {
		ctx.AttachStore(store)
	}
	return store, nil
}

func (store *badgerStore) Desc() string {
	if store.opts.Pathname == "" {
		return "badger:(in-memory)"
	}
	return "badger:" + store.opts.Pathname
}

func (store *badgerStore) Load(ctx context.Context, dst edgegame.MemoTable) (int, error) {
	if store.db == nil {
		return 0, edgegame.ErrStoreClosed
	}

	added := 0
	err := store.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: true,
			PrefetchSize:   300,
			Prefix:         gMemoPrefix,
		})
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			sig := string(item.Key()[len(gMemoPrefix):])

			err := item.Value(func(val []byte) error {
				rec, err := decodeRecord(val)
				if err != nil {
					return err
				}
				isNew, err := Merge(dst, sig, int(rec.NetScore))
				if isNew {
					added++
				}
				return err
			})
			if err != nil {
				err = errors.Wrapf(err, "memo key %q", sig)
				if !store.opts.SkipMalformed {
					return err
				}
				klog.Warningf("skipping record: %v", err)
			}
		}
		return nil
	})
	return added, err
}

// Flush writes every entry of src and deletes any stored entry src does not hold.
func (store *badgerStore) Flush(ctx context.Context, src edgegame.MemoTable) error {
	if store.db == nil {
		return edgegame.ErrStoreClosed
	}
	if store.opts.ReadOnly {
		return edgegame.ErrStoreReadOnly
	}

	wb := store.db.NewWriteBatch()
	defer wb.Cancel()

	// Drop stale entries
	err := store.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			Prefix: gMemoPrefix,
		})
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().KeyCopy(nil)
			if _, keep := src.Get(string(key[len(gMemoPrefix):])); !keep {
				if err := wb.Delete(key); err != nil {
					return err
				}
			}
		}
		return nil
	})

	src.Range(func(sig string, net int) bool {
		if err != nil {
			return false
		}
		if err = ctx.Err(); err != nil {
			return false
		}
		var rec *Record
		var val []byte
		if rec, err = NewRecord(sig, net); err != nil {
			return false
		}
		if val, err = encodeRecord(rec); err != nil {
			return false
		}
		key := make([]byte, 0, len(gMemoPrefix)+len(sig))
		key = append(append(key, gMemoPrefix...), sig...)
		err = wb.Set(key, val)
		return err == nil
	})

	if err == nil {
		err = wb.Flush()
	}
	if err != nil {
		return errors.Wrapf(err, "flush %s", store.Desc())
	}
	return nil
}

func (store *badgerStore) Close() error {
	var err error
	if store.db != nil {
		err = store.db.Close()
		store.db = nil
	}
	if store.ctx != nil {
		store.ctx.DetachStore(store)
		store.ctx = nil
	}
	return err
}
