package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

func breakerService() *GeminiService {
	return &GeminiService{
		logger:            zap.NewNop(),
		MaxRetries:        1,
		BaseDelay:         time.Millisecond,
		MaxDelay:          time.Millisecond,
		RequestTimeout:    time.Second,
		circuitBreakerMax: 5,
	}
}

func TestCompleteShortCircuitsWhenBreakerOpen(t *testing.T) {
	s := breakerService()
	s.consecutiveErrors.Store(5)

	_, err := s.Complete(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "circuit breaker open") {
		t.Fatalf("err = %v, want circuit breaker open", err)
	}
	if _, open := s.CircuitBreakerStatus(); !open {
		t.Fatal("breaker should report open")
	}

	s.ResetCircuitBreaker()
	if n, open := s.CircuitBreakerStatus(); n != 0 || open {
		t.Fatalf("after reset: errors=%d open=%v", n, open)
	}
}

func TestEmbeddingShortCircuitsWhenBreakerOpen(t *testing.T) {
	s := breakerService()
	s.consecutiveErrors.Store(5)

	_, err := s.GenerateEmbedding(context.Background(), "some text")
	if err == nil || !strings.Contains(err.Error(), "circuit breaker open") {
		t.Fatalf("err = %v, want circuit breaker open", err)
	}
}

func TestBreakerCounterIsSafeForConcurrentUse(t *testing.T) {
	s := breakerService()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				s.consecutiveErrors.Add(1)
				s.CircuitBreakerStatus()
				s.ResetCircuitBreaker()
			}
		}()
	}
	wg.Wait()

	s.ResetCircuitBreaker()
	if n, open := s.CircuitBreakerStatus(); n != 0 || open {
		t.Fatalf("final state: errors=%d open=%v", n, open)
	}
}
