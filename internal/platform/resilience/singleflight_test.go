package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestSingleFlightCollapsesConcurrentCalls(t *testing.T) {
	var flight SingleFlight
	var executions atomic.Int32

	release := make(chan struct{})
	var wg sync.WaitGroup
	results := make([]any, 10)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			value, err, _ := flight.Do("key", func() (any, error) {
				executions.Add(1)
				<-release
				return "loaded", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[slot] = value
		}(i)
	}

	close(release)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("expected single execution, got %d", got)
	}
	for i, value := range results {
		if value != "loaded" {
			t.Fatalf("caller %d got %v", i, value)
		}
	}
}

func TestSingleFlightSequentialCallsRunSeparately(t *testing.T) {
	var flight SingleFlight
	var executions atomic.Int32

	for i := 0; i < 3; i++ {
		_, _, shared := flight.Do("key", func() (any, error) {
			executions.Add(1)
			return nil, nil
		})
		if shared {
			t.Fatalf("sequential call %d should not be shared", i)
		}
	}

	if got := executions.Load(); got != 3 {
		t.Fatalf("expected 3 executions, got %d", got)
	}
}
