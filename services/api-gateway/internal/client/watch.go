package client

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"github.com/waste3d/honeyhive/services/economy-service/pkg/economypb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Unsubscribe stops a subscription and waits for its callback to return, so it
// must not be called from inside that callback. Calling it twice is safe.
type Unsubscribe func()

type GiftEvent struct {
	Kind string
	Gift *Gift
}

// SubscribeToJarProgress calls cb with every jar change the economy pushes for
// userID. Full jars seen this way trigger gift generation.
func (t *JarTracker) SubscribeToJarProgress(ctx context.Context, userID string, cb func(JarProgress)) (Unsubscribe, error) {
	return t.watch(ctx, userID, []string{economypb.KindJarProgressChanged}, func(ctx context.Context, ev *economypb.Event) {
		jar := jarFromPB(ev.Jar)
		t.Observe(ctx, userID, jar)
		cb(jar)
	})
}

// SubscribeToGifts calls cb when a gift is created or claimed for userID.
func (t *JarTracker) SubscribeToGifts(ctx context.Context, userID string, cb func(GiftEvent)) (Unsubscribe, error) {
	kinds := []string{economypb.KindGiftCreated, economypb.KindGiftClaimed}
	return t.watch(ctx, userID, kinds, func(_ context.Context, ev *economypb.Event) {
		gift := giftFromPB(ev.Gift)
		t.mu.Lock()
		v := t.view(userID)
		switch ev.Kind {
		case economypb.KindGiftCreated:
			v.gift = gift
		case economypb.KindGiftClaimed:
			if gift == nil || (v.gift != nil && v.gift.ID == gift.ID) {
				v.gift = nil
			}
		}
		t.mu.Unlock()
		cb(GiftEvent{Kind: ev.Kind, Gift: gift})
	})
}

func (t *JarTracker) watch(ctx context.Context, userID string, kinds []string, handle func(context.Context, *economypb.Event)) (Unsubscribe, error) {
	ctx, cancel := context.WithCancel(ctx)
	stream, err := t.api.Watch(ctx, &economypb.WatchRequest{UserId: userID, Kinds: kinds})
	if err != nil {
		cancel()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			ev, err := stream.Recv()
			if err != nil {
				if !isStreamEnd(ctx, err) {
					log.Printf("event stream for %s ended: %v", userID, err)
				}
				return
			}
			handle(ctx, ev)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}, nil
}

func isStreamEnd(ctx context.Context, err error) bool {
	return errors.Is(err, io.EOF) || ctx.Err() != nil || status.Code(err) == codes.Canceled
}
