package service_test

import (
	"sync"
	"testing"

	"github.com/msomdec/inkpost/internal/service"
)

func TestTokenBucket_BurstThenDeny(t *testing.T) {
	tb := service.NewTokenBucket(1, 3)

	for i := 0; i < 3; i++ {
		if !tb.Allow("203.0.113.7") {
			t.Fatalf("attempt %d should be allowed within the burst", i+1)
		}
	}
	if tb.Allow("203.0.113.7") {
		t.Fatal("attempt beyond the burst should be denied")
	}
}

func TestTokenBucket_ClientsAreIndependent(t *testing.T) {
	tb := service.NewTokenBucket(1, 1)

	if !tb.Allow("198.51.100.1") {
		t.Fatal("first client's first attempt should be allowed")
	}
	if tb.Allow("198.51.100.1") {
		t.Fatal("first client's second attempt should be denied")
	}
	if !tb.Allow("198.51.100.2") {
		t.Fatal("second client should have its own bucket")
	}
	if got := tb.Len(); got != 2 {
		t.Fatalf("expected 2 tracked clients, got %d", got)
	}
}

func TestTokenBucket_ConcurrentCallersShareOneBudget(t *testing.T) {
	tb := service.NewTokenBucket(0, 50)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tb.Allow("shared") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 50 {
		t.Fatalf("expected exactly 50 allowed attempts, got %d", allowed)
	}
}
