package events

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/waste3d/honeyhive/services/economy-service/internal/domain"
)

func receive(t *testing.T, sub Subscription) domain.Event {
	t.Helper()
	select {
	case ev, ok := <-sub.Events():
		if !ok {
			t.Fatal("subscription closed early")
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return domain.Event{}
}

func testBus(t *testing.T, bus Bus) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := bus.Subscribe(ctx, "u1")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	jar := &domain.JarProgress{FillPercent: 40, PollenInCycle: 120}
	if err := bus.Publish(ctx, domain.Event{Kind: domain.EventGiftClaimed, UserID: "u2"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := bus.Publish(ctx, domain.Event{Kind: domain.EventJarProgressChanged, UserID: "u1", Jar: jar}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	ev := receive(t, sub)
	if ev.Kind != domain.EventJarProgressChanged || ev.Jar == nil || ev.Jar.FillPercent != 40 {
		t.Errorf("unexpected event %+v", ev)
	}

	sub.Close()
	select {
	case _, ok := <-sub.Events():
		if ok {
			t.Error("received event after Close")
		}
	case <-time.After(2 * time.Second):
		t.Error("events channel not closed after Close")
	}
}

func TestMemoryBus(t *testing.T) {
	bus := NewMemoryBus()
	testBus(t, bus)
	if n := bus.Subscribers("u1"); n != 0 {
		t.Errorf("%d subscribers left after Close", n)
	}
}

func TestMemoryBusClosesOnContextCancel(t *testing.T) {
	bus := NewMemoryBus()
	ctx, cancel := context.WithCancel(context.Background())
	sub, _ := bus.Subscribe(ctx, "u1")
	cancel()

	select {
	case _, ok := <-sub.Events():
		if ok {
			t.Error("unexpected event")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("subscription outlived its context")
	}
}

func TestRedisBus(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	testBus(t, NewRedisBus(client))
}

func TestRedisBusSkipsMalformedPayloads(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	bus := NewRedisBus(client)
	sub, err := bus.Subscribe(ctx, "u1")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Close()

	mr.Publish(channelFor("u1"), "{not json")
	bus.Publish(ctx, domain.Event{Kind: domain.EventGiftCreated, UserID: "u1"})

	if ev := receive(t, sub); ev.Kind != domain.EventGiftCreated {
		t.Errorf("unexpected event %+v", ev)
	}
}
