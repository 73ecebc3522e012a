package alerts

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"app/models"
)

// countingStore counts ReplaceAlerts calls across goroutines.
type countingStore struct {
	mu    sync.Mutex
	calls int
}

func (s *countingStore) ReplaceAlerts(ctx context.Context, userID string, types []string, alerts []models.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return nil
}

func (s *countingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestRegeneratorRunsEnqueuedJobs(t *testing.T) {
	store := &countingStore{}
	src := &fakeSource{
		products: []models.Product{
			{ID: "p1", UserID: "u1", Name: "Milk", Stock: 1, CreatedAt: testNow.AddDate(0, 0, -60)},
		},
		items: steadySales("p1", 28),
	}
	g := newTestGenerator(src, store)

	r := NewRegenerator(g, 2, 16)
	r.Enqueue("u1")
	r.Close()

	assert.Equal(t, 1, store.count())
}

func TestRegeneratorCoalescesPendingAccounts(t *testing.T) {
	store := &countingStore{}
	g := newTestGenerator(&fakeSource{}, store)

	// No workers yet: everything queued stays pending, so duplicates for
	// the same account must collapse to one job.
	r := &Regenerator{
		gen:     g,
		jobs:    make(chan string, 16),
		pending: make(map[string]bool),
	}
	r.Enqueue("u1")
	r.Enqueue("u1")
	r.Enqueue("u1")
	r.Enqueue("u2")

	assert.Len(t, r.jobs, 2)

	r.wg.Add(1)
	go r.run()
	r.Close()

	assert.Equal(t, 2, store.count())
}

func TestRegeneratorDropsWhenQueueFull(t *testing.T) {
	store := &countingStore{}
	g := newTestGenerator(&fakeSource{}, store)

	r := &Regenerator{
		gen:     g,
		jobs:    make(chan string, 1),
		pending: make(map[string]bool),
	}
	r.Enqueue("u1")
	r.Enqueue("u2") // queue full: dropped, not blocked

	assert.Len(t, r.jobs, 1)
	// The dropped account is not stuck pending; a later enqueue works.
	r.mu.Lock()
	assert.False(t, r.pending["u2"])
	r.mu.Unlock()
}

func TestRegeneratorCloseDrains(t *testing.T) {
	store := &countingStore{}
	g := newTestGenerator(&fakeSource{}, store)

	r := NewRegenerator(g, 1, 16)
	for i := 0; i < 5; i++ {
		r.Enqueue("account-" + string(rune('a'+i)))
	}

	done := make(chan struct{})
	go func() {
		r.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not drain the queue")
	}
	assert.Equal(t, 5, store.count())
}
