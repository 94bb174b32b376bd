package parallel

import (
	"context"
	"sync/atomic"
	"testing"
)

func TestProcessRunsSequentiallyBelowThreshold(t *testing.T) {
	items := []int{1, 2, 3}
	var goroutineCalls int32

	results := Process(context.Background(), items, Options{ActivationThreshold: 10}, func(_ context.Context, n int) (int, error) {
		atomic.AddInt32(&goroutineCalls, 1)
		return n * 2, nil
	})

	for i, r := range results {
		if r.Value != items[i]*2 {
			t.Errorf("index %d: expected %d, got %d", i, items[i]*2, r.Value)
		}
	}
}

func TestProcessPreservesOrderAboveThreshold(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	results := Process(context.Background(), items, Options{ActivationThreshold: 4, MaxWorkers: 8}, func(_ context.Context, n int) (int, error) {
		return n * n, nil
	})

	if len(results) != len(items) {
		t.Fatalf("expected %d results, got %d", len(items), len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Fatalf("result out of order: want index %d, got %d", i, r.Index)
		}
		if r.Value != i*i {
			t.Errorf("index %d: expected %d, got %d", i, i*i, r.Value)
		}
	}
}

func TestProcessChunksConcatenatesInOrder(t *testing.T) {
	items := make([]int, 20)
	for i := range items {
		items[i] = i
	}

	out, err := ProcessChunks(context.Background(), items, Options{ChunkSize: 5, ActivationThreshold: 2}, func(_ context.Context, chunk []int) ([]int, error) {
		doubled := make([]int, len(chunk))
		for i, v := range chunk {
			doubled[i] = v * 2
		}
		return doubled, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(items) {
		t.Fatalf("expected %d results, got %d", len(items), len(out))
	}
	for i, v := range out {
		if v != i*2 {
			t.Errorf("index %d: expected %d, got %d", i, i*2, v)
		}
	}
}
