package testutil

import (
	"context"
	"sync"
	"testing"

	"store-rating/events"
	"store-rating/infra"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	// ValidName is exactly twenty characters long.
	ValidName     = "Abcdefghij Klmnopqrs"
	ValidPassword = "Passw0rd!"
	ValidAddress  = "221B Baker Street, London"
	JWTSecret     = "test-jwt-secret"
)

// NewTestDB returns a migrated in-memory sqlite database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := infra.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// NewTokenDB returns a migrated in-memory token blacklist database.
func NewTokenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := infra.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, infra.MigrateTokenDB(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// RecordingPublisher keeps every published event in memory.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *RecordingPublisher) Publish(_ context.Context, _ string, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *RecordingPublisher) Close() error { return nil }

func (p *RecordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

// OfType filters the recorded events by type.
func (p *RecordingPublisher) OfType(typ string) []events.Event {
	var out []events.Event
	for _, ev := range p.Events() {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}
