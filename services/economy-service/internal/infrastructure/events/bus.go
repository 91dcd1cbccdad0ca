package events

import (
	"context"

	"github.com/waste3d/honeyhive/services/economy-service/internal/domain"
)

// Subscription delivers one user's events until Close is called or the
// context it was opened with ends. Events is closed afterwards.
type Subscription interface {
	Events() <-chan domain.Event
	Close() error
}

type Bus interface {
	Publish(ctx context.Context, ev domain.Event) error
	Subscribe(ctx context.Context, userID string) (Subscription, error)
}

const subscriptionBuffer = 16

func channelFor(userID string) string {
	return "economy:events:" + userID
}
