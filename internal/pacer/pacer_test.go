package pacer

import (
	"context"
	"testing"
	"time"
)

func TestPacerFirstWaitIsImmediate(t *testing.T) {
	t.Parallel()

	p := New(500 * time.Millisecond)

	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first wait should be immediate, took %v", elapsed)
	}
}

func TestPacerEnforcesInterval(t *testing.T) {
	t.Parallel()

	interval := 100 * time.Millisecond
	p := New(interval)

	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < interval-10*time.Millisecond {
		t.Errorf("second wait returned after %v, want at least %v", elapsed, interval)
	}
}

func TestPacerZeroIntervalNeverBlocks(t *testing.T) {
	t.Parallel()

	p := New(0)

	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("zero-interval pacer blocked for %v", elapsed)
	}
}

func TestPacerRespectsCancellation(t *testing.T) {
	t.Parallel()

	p := New(10 * time.Second)

	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := p.Wait(ctx)
	if err == nil {
		t.Fatal("expected context error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancelled wait took %v", elapsed)
	}
}
