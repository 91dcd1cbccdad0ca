package events

import (
	"context"
	"log"
	"sync"

	"github.com/waste3d/honeyhive/services/economy-service/internal/domain"
)

// MemoryBus is an in-process Bus for single-instance runs and tests. A slow
// subscriber loses events instead of blocking publishers.
type MemoryBus struct {
	mu   sync.Mutex
	subs map[string]map[*memorySubscription]struct{}
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[string]map[*memorySubscription]struct{})}
}

func (b *MemoryBus) Publish(_ context.Context, ev domain.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs[ev.UserID] {
		select {
		case sub.events <- ev:
		default:
			log.Printf("subscriber for %s is full, dropping %s", ev.UserID, ev.Kind)
		}
	}
	return nil
}

func (b *MemoryBus) Subscribe(ctx context.Context, userID string) (Subscription, error) {
	sub := &memorySubscription{bus: b, userID: userID, events: make(chan domain.Event, subscriptionBuffer)}

	b.mu.Lock()
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[*memorySubscription]struct{})
	}
	b.subs[userID][sub] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		sub.Close()
	}()
	return sub, nil
}

// Subscribers reports how many live subscriptions a user has.
func (b *MemoryBus) Subscribers(userID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[userID])
}

type memorySubscription struct {
	bus    *MemoryBus
	userID string
	events chan domain.Event
	once   sync.Once
}

func (s *memorySubscription) Events() <-chan domain.Event {
	return s.events
}

func (s *memorySubscription) Close() error {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs[s.userID], s)
		if len(s.bus.subs[s.userID]) == 0 {
			delete(s.bus.subs, s.userID)
		}
		s.bus.mu.Unlock()
		close(s.events)
	})
	return nil
}
