package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_LoadDeduplicatesConcurrentCallers(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) ([]string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return []string{"team-a", "team-b"}, nil
	}

	const workers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	failures := make(chan string, workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			teams, err := Load(context.Background(), store, "teams:all", loader)
			if err != nil || len(teams) != 2 {
				failures <- "unexpected load result"
			}
		}()
	}
	close(start)
	wg.Wait()
	close(failures)
	for msg := range failures {
		t.Fatal(msg)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "teams:all", 3)
	if _, ok := store.Get(context.Background(), "teams:all"); !ok {
		t.Fatalf("expected fresh entry")
	}
	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "teams:all"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	store.Set(ctx, "teams:all", 1)
	store.Set(ctx, "teams:id:t1", 2)
	store.Set(ctx, "matches:all", 3)

	store.DeletePrefix(ctx, "teams:")

	if _, ok := store.Get(ctx, "teams:id:t1"); ok {
		t.Fatalf("expected teams entries removed")
	}
	if _, ok := store.Get(ctx, "matches:all"); !ok {
		t.Fatalf("expected unrelated entry kept")
	}
}

func TestLoad_TypeMismatch(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	store.Set(context.Background(), "k", "text")
	_, err := Load(context.Background(), store, "k", func(context.Context) (int, error) { return 1, nil })
	if err == nil {
		t.Fatalf("expected type mismatch error")
	}
}
