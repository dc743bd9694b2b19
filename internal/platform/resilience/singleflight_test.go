package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight[[]byte]
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			out, err, _ := g.Do("/segments/8428538/all_efforts", func() ([]byte, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return []byte("[]"), nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if string(out) != "[]" {
				t.Errorf("unexpected payload %q", out)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_DoesNotRetainResults(t *testing.T) {
	var g SingleFlight[int]
	calls := 0
	errBoom := errors.New("boom")

	_, err, _ := g.Do("k", func() (int, error) { calls++; return 0, errBoom })
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected boom, got %v", err)
	}
	v, err, shared := g.Do("k", func() (int, error) { calls++; return 7, nil })
	if err != nil || v != 7 || shared {
		t.Fatalf("expected fresh call, got v=%d err=%v shared=%v", v, err, shared)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestSingleFlight_DoContextCancelledCallerDoesNotFailOthers(t *testing.T) {
	var g SingleFlight[string]
	release := make(chan struct{})
	var runs int32

	fn := func() (string, error) {
		atomic.AddInt32(&runs, 1)
		<-release
		return "ok", nil
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	cancelFirst()
	if _, err, _ := g.DoContext(firstCtx, "k", fn); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected first caller to see its own cancellation, got %v", err)
	}

	// The first call is still in flight until release closes, so this one joins it.
	time.AfterFunc(20*time.Millisecond, func() { close(release) })
	got, err, shared := g.DoContext(context.Background(), "k", func() (string, error) {
		t.Errorf("expected to join the running call")
		return "", nil
	})

	if err != nil || got != "ok" || !shared {
		t.Fatalf("expected live caller to get shared result, got v=%q err=%v shared=%v", got, err, shared)
	}
	if n := atomic.LoadInt32(&runs); n != 1 {
		t.Fatalf("expected one execution, got %d", n)
	}
}
