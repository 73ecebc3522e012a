package alerts

import (
	"context"
	"log"
	"sync"
	"time"
)

const regenerateTimeout = 30 * time.Second

// Regenerator runs alert regeneration off the request path. A sale that
// commits enqueues its account here and moves on; regeneration failures
// are logged and never reach the sale's response.
//
// Requests for an account already waiting in the queue are coalesced,
// which is safe because regeneration always reads the latest data and is
// idempotent.
type Regenerator struct {
	gen  *Generator
	jobs chan string

	mu      sync.Mutex
	pending map[string]bool

	wg sync.WaitGroup
}

// NewRegenerator starts workers goroutines consuming the queue.
func NewRegenerator(gen *Generator, workers, queueSize int) *Regenerator {
	r := &Regenerator{
		gen:     gen,
		jobs:    make(chan string, queueSize),
		pending: make(map[string]bool),
	}
	for i := 0; i < workers; i++ {
		r.wg.Add(1)
		go r.run()
	}
	return r
}

// Enqueue schedules a regeneration for the account. Never blocks: if the
// queue is full the request is dropped and the next sale will retry.
func (r *Regenerator) Enqueue(userID string) {
	r.mu.Lock()
	if r.pending[userID] {
		r.mu.Unlock()
		return
	}
	r.pending[userID] = true
	r.mu.Unlock()

	select {
	case r.jobs <- userID:
	default:
		r.mu.Lock()
		delete(r.pending, userID)
		r.mu.Unlock()
		log.Printf("[ALERTS] regeneration queue full, dropping refresh for account %s", userID)
	}
}

func (r *Regenerator) run() {
	defer r.wg.Done()
	for userID := range r.jobs {
		// Clear the mark before running so a sale landing mid-run queues
		// a fresh pass over the newer data.
		r.mu.Lock()
		delete(r.pending, userID)
		r.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), regenerateTimeout)
		if _, err := r.gen.Regenerate(ctx, userID); err != nil {
			log.Printf("[ALERTS] background regeneration failed for account %s: %v", userID, err)
		}
		cancel()
	}
}

// Close drains queued jobs and waits for the workers to finish.
func (r *Regenerator) Close() {
	close(r.jobs)
	r.wg.Wait()
}
