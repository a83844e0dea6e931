package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestWorkersDrainQueue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := New(8, nil)

	var mu sync.Mutex
	var ran []string
	done := make(chan struct{}, 3)
	for _, name := range []string{"a", "b", "c"} {
		name := name
		if !svc.Enqueue("test", func(ctx context.Context) error {
			mu.Lock()
			ran = append(ran, name)
			mu.Unlock()
			done <- struct{}{}
			return nil
		}) {
			t.Fatalf("enqueue %s rejected", name)
		}
	}

	svc.Start(ctx, 2)
	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for jobs")
		}
	}
	cancel()
	svc.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(ran) != 3 {
		t.Fatalf("expected 3 jobs to run, got %v", ran)
	}
}

func TestEnqueueDropsWhenFull(t *testing.T) {
	svc := New(1, nil)
	noop := func(ctx context.Context) error { return nil }
	if !svc.Enqueue("first", noop) {
		t.Fatal("first enqueue should fit")
	}
	if svc.Enqueue("second", noop) {
		t.Fatal("second enqueue should be dropped")
	}
}

func TestRunNowReturnsError(t *testing.T) {
	svc := New(1, nil)
	want := errors.New("smtp down")
	err := svc.RunNow(context.Background(), "mail", func(ctx context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}
