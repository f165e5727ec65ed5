package services

import (
	"context"
	"strconv"
	"time"

	"store-rating/events"

	"go.uber.org/zap"
)

const publishTimeout = 3 * time.Second

// publish is best effort: the write it announces is already committed.
func publish(ctx context.Context, publisher events.Publisher, log *zap.Logger, ev events.Event) {
	if publisher == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	key := strconv.FormatUint(uint64(ev.UserID), 10)
	if err := publisher.Publish(ctx, key, ev); err != nil {
		log.Warn("publish event failed", zap.String("type", ev.Type), zap.Error(err))
	}
}
