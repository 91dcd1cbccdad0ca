package events

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/waste3d/honeyhive/services/economy-service/internal/domain"
)

// RedisBus fans events out over redis pub/sub, one channel per user, so every
// economy-service replica sees every change.
type RedisBus struct {
	client *redis.Client
}

func NewRedisBus(client *redis.Client) *RedisBus {
	return &RedisBus{client: client}
}

func (b *RedisBus) Publish(ctx context.Context, ev domain.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, channelFor(ev.UserID), data).Err()
}

func (b *RedisBus) Subscribe(ctx context.Context, userID string) (Subscription, error) {
	ps := b.client.Subscribe(ctx, channelFor(userID))
	// Wait for the subscribe confirmation so nothing published after we
	// return can be missed.
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &redisSubscription{ps: ps, cancel: cancel, events: make(chan domain.Event, subscriptionBuffer)}
	go sub.pump(ctx)
	return sub, nil
}

type redisSubscription struct {
	ps     *redis.PubSub
	cancel context.CancelFunc
	events chan domain.Event
	once   sync.Once
}

func (s *redisSubscription) Events() <-chan domain.Event {
	return s.events
}

func (s *redisSubscription) Close() error {
	var err error
	s.once.Do(func() {
		s.cancel()
		err = s.ps.Close()
	})
	return err
}

func (s *redisSubscription) pump(ctx context.Context) {
	defer close(s.events)
	defer s.Close()

	msgs := s.ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			var ev domain.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("dropping malformed event on %s: %v", msg.Channel, err)
				continue
			}
			select {
			case s.events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}
