package events

import (
	"context"
	"time"
)

const (
	TypeUserRegistered  = "user_registered"
	TypeRatingSubmitted = "rating_submitted"
	TypeStoreCreated    = "store_created"
)

// Event is the JSON payload written for every domain change worth
// announcing to downstream consumers.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	UserID     uint      `json:"userId,omitempty"`
	StoreID    uint      `json:"storeId,omitempty"`
	Role       string    `json:"role,omitempty"`
	Value      int       `json:"value,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, key string, ev Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
