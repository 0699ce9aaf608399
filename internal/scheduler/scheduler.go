package scheduler

import (
	"context"
	"log"
	"sync"
	"time"
)

// TickFunc runs one scheduled step for a key. Returning true stops that
// key's timer.
type TickFunc func() (done bool)

type entry struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// Scheduler runs at most one repeating task per key. Keys are independent:
// a room's timer never blocks or observes another room's.
type Scheduler struct {
	interval time.Duration
	mu       sync.Mutex
	running  map[string]*entry
}

func New(interval time.Duration) *Scheduler {
	return &Scheduler{
		interval: interval,
		running:  make(map[string]*entry),
	}
}

// Start begins a repeating task for the key, cancelling any predecessor
// first so a key never has two live timers.
func (s *Scheduler) Start(key string, tick TickFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	e := &entry{ctx: ctx, cancel: cancel}

	s.mu.Lock()
	if old, ok := s.running[key]; ok {
		old.cancel()
	}
	s.running[key] = e
	s.mu.Unlock()

	go s.run(key, e, tick)
}

func (s *Scheduler) run(key string, e *entry, tick TickFunc) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer s.clear(key, e)

	for {
		select {
		case <-e.ctx.Done():
			return
		case <-ticker.C:
			if tick() {
				log.Printf("[Sched] task for %s finished", key)
				return
			}
		}
	}
}

// clear removes the entry only if it is still the current one; a successor
// started for the same key must not be torn down by its predecessor's exit.
func (s *Scheduler) clear(key string, e *entry) {
	e.cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.running[key]; ok && cur == e {
		delete(s.running, key)
	}
}

// Stop cancels the key's timer if one exists. Stopping an absent timer is a
// no-op.
func (s *Scheduler) Stop(key string) {
	s.mu.Lock()
	e, ok := s.running[key]
	if ok {
		delete(s.running, key)
	}
	s.mu.Unlock()
	if ok {
		e.cancel()
	}
}

// Active reports whether the key currently has a timer.
func (s *Scheduler) Active(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.running[key]
	return ok
}
