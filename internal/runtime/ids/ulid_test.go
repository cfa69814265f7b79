package ids

import (
	"sync"
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestMessageIDSequentialOrdering(t *testing.T) {
	const total = 100
	generated := make([]string, total)
	for i := 0; i < total; i++ {
		generated[i] = MessageID()
	}

	for i := 0; i < total; i++ {
		if len(generated[i]) != 26 {
			t.Fatalf("expected ULID length 26, got %d", len(generated[i]))
		}
		if _, err := ulid.Parse(generated[i]); err != nil {
			t.Fatalf("expected valid ULID, got %v", err)
		}
	}

	for i := 1; i < total; i++ {
		if generated[i-1] >= generated[i] {
			t.Fatalf("expected IDs to be strictly increasing, %s >= %s", generated[i-1], generated[i])
		}
	}
}

func TestMessageIDConcurrentUniqueness(t *testing.T) {
	const goroutines = 10
	const perGoroutine = 20

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]struct{})
	)

	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				id := MessageID()
				mu.Lock()
				if _, ok := seen[id]; ok {
					t.Errorf("duplicate message ID generated: %s", id)
				} else {
					seen[id] = struct{}{}
				}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	if len(seen) != goroutines*perGoroutine {
		t.Fatalf("expected %d unique IDs, got %d", goroutines*perGoroutine, len(seen))
	}
}
