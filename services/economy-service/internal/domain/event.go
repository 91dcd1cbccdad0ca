package domain

import "time"

type EventKind string

const (
	EventJarProgressChanged EventKind = "jar_progress_changed"
	EventGiftCreated        EventKind = "gift_created"
	EventGiftClaimed        EventKind = "gift_claimed"
)

// Event is a row-level change notification pushed to a user's subscribers.
type Event struct {
	Kind   EventKind    `json:"kind"`
	UserID string       `json:"user_id"`
	Jar    *JarProgress `json:"jar,omitempty"`
	Gift   *MysteryGift `json:"gift,omitempty"`
	At     time.Time    `json:"at"`
}
