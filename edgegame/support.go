package edgegame

import "sync"

func NewStoreContext() StoreContext {
	ctx := &storeContext{
		openStores: make(map[MemoStore]struct{}),
		closing:    make(chan struct{}),
		closed:     make(chan struct{}),
	}
	ctx.openCount.Add(1)
	go func() {
		<-ctx.closing
		ctx.openCount.Done()
		ctx.openCount.Wait()
		close(ctx.closed)
	}()
	return ctx
}

type storeContext struct {
	mu         sync.Mutex
	openCount  sync.WaitGroup
	openStores map[MemoStore]struct{}
	closeOnce  sync.Once
	closing    chan struct{}
	closed     chan struct{}
}

func (ctx *storeContext) AttachStore(store MemoStore) {
	ctx.openCount.Add(1)
	ctx.mu.Lock()
	ctx.openStores[store] = struct{}{}
	ctx.mu.Unlock()
}

func (ctx *storeContext) DetachStore(store MemoStore) {
	ctx.mu.Lock()
	if _, exists := ctx.openStores[store]; exists {
		delete(ctx.openStores, store)
		ctx.openCount.Done()
	}
	ctx.mu.Unlock()
}

func (ctx *storeContext) Done() <-chan struct{} {
	return ctx.closed
}

func (ctx *storeContext) Close() {
	ctx.closeOnce.Do(func() {
		close(ctx.closing)

		// Stores detach themselves as they close, so snapshot first.
		ctx.mu.Lock()
		stores := make([]MemoStore, 0, len(ctx.openStores))
		for store := range ctx.openStores {
			stores = append(stores, store)
		}
		ctx.mu.Unlock()

		for _, store := range stores {
			go store.Close()
		}
	})
}
