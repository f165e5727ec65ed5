package jobs

import (
	"context"
	"time"

	"store-rating/repositories"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const cleanupTimeout = 30 * time.Second

// TokenCleanup purges expired entries from the token blacklist.
type TokenCleanup struct {
	repo repositories.ITokenRepository
	log  *zap.Logger
}

func NewTokenCleanup(repo repositories.ITokenRepository, log *zap.Logger) *TokenCleanup {
	return &TokenCleanup{repo: repo, log: log}
}

func (j *TokenCleanup) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	removed, err := j.repo.CleanExpiredTokens(ctx)
	if err != nil {
		j.log.Error("token cleanup failed", zap.Error(err))
		return
	}
	j.log.Info("token cleanup finished", zap.Int64("removed", removed))
}

// Schedule starts a cron scheduler running job on spec. Stop the returned
// scheduler on shutdown.
func Schedule(spec string, job cron.Job) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddJob(spec, job); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
