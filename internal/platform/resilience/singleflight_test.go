package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	var sf SingleFlight
	var executions atomic.Int32

	const workers = 24
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			value, err, _ := sf.Do("settle:l1:3", func() (any, error) {
				executions.Add(1)
				time.Sleep(15 * time.Millisecond)
				return "done", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if got, _ := value.(string); got != "done" {
				t.Errorf("unexpected value: %v", value)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("expected a single execution, got %d", got)
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	var sf SingleFlight
	var executions atomic.Int32

	var wg sync.WaitGroup
	for _, key := range []string{"settle:l1:1", "settle:l1:2", "settle:l2:1"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			_, _, _ = sf.Do(key, func() (any, error) {
				executions.Add(1)
				return nil, nil
			})
		}(key)
	}
	wg.Wait()

	if got := executions.Load(); got != 3 {
		t.Fatalf("expected one execution per key, got %d", got)
	}
}
