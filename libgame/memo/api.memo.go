package memo

import (
	"context"

	"github.com/2x3systems/edgegame/edgegame"
	"github.com/pkg/errors"
)

// Open opens the MemoStore named by opts.Kind (a text store if unspecified) and attaches it to ctx (if non-nil).
func Open(ctx edgegame.StoreContext, opts edgegame.StoreOpts) (edgegame.MemoStore, error) {
	switch opts.Kind {
	case "", edgegame.StoreText:
		return OpenTextStore(ctx, opts)
	case edgegame.StoreBadger:
		return OpenBadgerStore(ctx, opts)
	case edgegame.StoreRedis:
		return OpenRedisStore(ctx, opts)
	case edgegame.StoreNone:
		return nopStore{}, nil
	}
	return nil, errors.Wrapf(edgegame.ErrUnknownStore, "%q", opts.Kind)
}

// nopStore persists nothing.
type nopStore struct{}

func (nopStore) Load(ctx context.Context, dst edgegame.MemoTable) (int, error) { return 0, nil }
func (nopStore) Flush(ctx context.Context, src edgegame.MemoTable) error { return nil }
func (nopStore) Desc() string { return "none" }
func (nopStore) Close() error { return nil }
