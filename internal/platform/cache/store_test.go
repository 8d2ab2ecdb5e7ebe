package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_CollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "scoreboard:all", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("db down")
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err == nil {
		t.Fatalf("expected first load to fail")
	}
	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if v != "ok" || calls.Load() != 2 {
		t.Fatalf("unexpected value=%v calls=%d", v, calls.Load())
	}
}

func TestStore_ExpiresEntries(t *testing.T) {
	store := NewStore(time.Second)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", 1)
	if _, ok := store.Get(context.Background(), "k"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(2 * time.Second)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected entry to expire")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted, len=%d", store.Len())
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	store := NewStore(0)
	ctx := context.Background()
	store.Set(ctx, "scoreboard:teams", 1)
	store.Set(ctx, "scoreboard:players", 2)
	store.Set(ctx, "principal:abc", 3)

	store.DeletePrefix(ctx, "scoreboard:")

	if _, ok := store.Get(ctx, "scoreboard:teams"); ok {
		t.Fatalf("expected scoreboard:teams to be removed")
	}
	if _, ok := store.Get(ctx, "principal:abc"); !ok {
		t.Fatalf("expected unrelated key to survive")
	}
}

func TestStore_GetOrLoad_InvalidationDropsInFlightResult(t *testing.T) {
	store := NewStore(time.Minute)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan any, 1)
	go func() {
		v, _ := store.GetOrLoad(ctx, "scoreboard:players", func(context.Context) (any, error) {
			close(started)
			<-release
			return "old", nil
		})
		done <- v
	}()

	<-started
	store.DeletePrefix(ctx, "scoreboard:")

	fresh, err := store.GetOrLoad(ctx, "scoreboard:players", func(context.Context) (any, error) {
		return "new", nil
	})
	if err != nil || fresh != "new" {
		t.Fatalf("expected a fresh load after invalidation, got value=%v err=%v", fresh, err)
	}

	close(release)
	if v := <-done; v != "old" {
		t.Fatalf("expected in-flight caller to get its own result, got %v", v)
	}

	got, ok := store.Get(ctx, "scoreboard:players")
	if !ok || got != "new" {
		t.Fatalf("expected stale load to be discarded, cached=%v ok=%v", got, ok)
	}
}

func TestLoad_Typed(t *testing.T) {
	store := NewStore(time.Minute)
	ctx := context.Background()

	got, err := Load(ctx, store, "n", func(context.Context) (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Fatalf("unexpected load result=%d err=%v", got, err)
	}

	store.Set(ctx, "s", "text")
	if _, err := Load(ctx, store, "s", func(context.Context) (int, error) { return 0, nil }); err == nil {
		t.Fatalf("expected type mismatch error")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
