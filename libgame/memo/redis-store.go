package memo

import (
	"context"
	"strconv"
	"time"

	"github.com/2x3systems/edgegame/edgegame"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/redis/go-redis/v9"
)

// hsetChunk bounds the number of fields sent per HSET.
const hsetChunk = 4096

// redisStore persists a memo table as a single redis hash of signature => value.
type redisStore struct {
	ctx    edgegame.StoreContext
	opts   edgegame.StoreOpts
	client *redis.Client
}

// OpenRedisStore connects to opts.RedisURL and verifies the connection.
func OpenRedisStore(ctx edgegame.StoreContext, opts edgegame.StoreOpts) (edgegame.MemoStore, error) {
	if opts.RedisURL == "" {
		return nil, errors.Wrap(edgegame.ErrBadStoreParam, "RedisURL must be specified for a redis store")
	}
	if opts.RedisKey == "" {
		opts.RedisKey = edgegame.DefaultRedisKey
	}

	clientOpts, err := redis.ParseURL(opts.RedisURL)
	if err != nil {
		return nil, errors.Wrapf(edgegame.ErrBadStoreParam, "RedisURL %q: %v", opts.RedisURL, err)
	}
	client := redis.NewClient(clientOpts)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "connect to %q", clientOpts.Addr)
	}

	store := &redisStore{
		ctx:    ctx,
		opts:   opts,
		client: client,
	}
	if ctx != nil {
		ctx.AttachStore(store)
	}
	return store, nil
}

func (store *redisStore) Desc() string {
	return "redis:" + store.client.Options().Addr + "/" + store.opts.RedisKey
}

func (store *redisStore) Load(ctx context.Context, dst edgegame.MemoTable) (int, error) {
	entries, err := store.client.HGetAll(ctx, store.opts.RedisKey).Result()
	if err != nil {
		return 0, errors.Wrapf(err, "load %s", store.Desc())
	}

	added := 0
	for sig, val := range entries {
		net, err := strconv.Atoi(val)
		if err != nil {
			err = errors.Wrapf(edgegame.ErrMalformedRecord, "value %q", val)
		} else if _, _, err = SignatureSize(sig); err == nil {
			var isNew bool
			isNew, err = Merge(dst, sig, net)
			if isNew {
				added++
			}
		}
		if err != nil {
			err = errors.Wrapf(err, "field %q", sig)
			if !store.opts.SkipMalformed {
				return added, err
			}
			klog.Warningf("skipping record: %v", err)
		}
	}
	return added, nil
}

// Flush replaces the hash with the contents of src in a single MULTI/EXEC transaction.
func (store *redisStore) Flush(ctx context.Context, src edgegame.MemoTable) error {
	if store.opts.ReadOnly {
		return edgegame.ErrStoreReadOnly
	}

	key := store.opts.RedisKey
	_, err := store.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)

		fields := make([]interface{}, 0, 2*hsetChunk)
		src.Range(func(sig string, net int) bool {
			fields = append(fields, sig, strconv.Itoa(net))
			if len(fields) >= 2*hsetChunk {
				pipe.HSet(ctx, key, fields...)
				fields = make([]interface{}, 0, 2*hsetChunk)
			}
			return true
		})
		if len(fields) > 0 {
			pipe.HSet(ctx, key, fields...)
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "flush %s", store.Desc())
	}
	return nil
}

func (store *redisStore) Close() error {
	var err error
	if store.client != nil {
		err = store.client.Close()
	}
	if store.ctx != nil {
		store.ctx.DetachStore(store)
		store.ctx = nil
	}
	return err
}
