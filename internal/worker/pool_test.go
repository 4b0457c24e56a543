package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingJob struct {
	counter *atomic.Int64
}

type countingResult struct{}

func (countingResult) GetError() error { return nil }

func (j *countingJob) Execute(ctx context.Context) Result {
	j.counter.Add(1)
	return countingResult{}
}

type blockingJob struct{}

func (blockingJob) Execute(ctx context.Context) Result {
	<-ctx.Done()
	return countingResult{}
}

func TestPool_RunsAllJobs(t *testing.T) {
	var counter atomic.Int64

	pool := NewPool(context.Background(), 4)
	pool.Start()

	const jobs = 50
	go func() {
		for i := 0; i < jobs; i++ {
			pool.Submit(&countingJob{counter: &counter})
		}
		pool.Finish()
	}()

	results := pool.Wait()
	if len(results) != jobs {
		t.Errorf("got %d results, want %d", len(results), jobs)
	}
	if counter.Load() != jobs {
		t.Errorf("executed %d jobs, want %d", counter.Load(), jobs)
	}
}

func TestPool_ManyMoreJobsThanWorkers(t *testing.T) {
	// Submission and draining run concurrently, so a batch far larger than
	// the channel buffers must still complete.
	var counter atomic.Int64

	pool := NewPool(context.Background(), 2)
	pool.Start()

	const jobs = 500
	go func() {
		for i := 0; i < jobs; i++ {
			pool.Submit(&countingJob{counter: &counter})
		}
		pool.Finish()
	}()

	done := make(chan []Result, 1)
	go func() { done <- pool.Wait() }()

	select {
	case results := <-done:
		if len(results) != jobs {
			t.Errorf("got %d results, want %d", len(results), jobs)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("pool did not drain; likely deadlocked")
	}
}

func TestPool_MinimumOneWorker(t *testing.T) {
	var counter atomic.Int64

	pool := NewPool(context.Background(), 0)
	pool.Start()

	go func() {
		pool.Submit(&countingJob{counter: &counter})
		pool.Finish()
	}()

	if results := pool.Wait(); len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
}

func TestPool_ShutdownCancelsWork(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()

	pool.Submit(blockingJob{})
	pool.Submit(blockingJob{})

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Shutdown did not unblock the workers")
	}
}

func TestPool_ParentContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	pool := NewPool(ctx, 2)
	pool.Start()

	pool.Submit(blockingJob{})
	cancel()
	pool.Finish()

	done := make(chan struct{})
	go func() {
		pool.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("cancelling the parent context did not stop the pool")
	}
}
