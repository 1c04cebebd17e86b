package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// TokenSweeper periodically deletes expired rows from the revocation
// ledger.  A failed sweep is logged and retried on the next tick.
type TokenSweeper struct {
	tokens   TokenStore
	interval time.Duration
	log      *logrus.Logger
	now      func() time.Time
}

func NewTokenSweeper(tokens TokenStore, interval time.Duration, log *logrus.Logger) *TokenSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &TokenSweeper{tokens: tokens, interval: interval, log: orDiscard(log), now: time.Now}
}

// SweepOnce removes every ledger row that expired before now.
func (s *TokenSweeper) SweepOnce(ctx context.Context) (int64, error) {
	return s.tokens.DeleteExpired(ctx, s.now().UTC())
}

// Run sweeps on every tick until ctx is cancelled.
func (s *TokenSweeper) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	entry := s.log.WithField("component", "token_sweeper")
	entry.WithField("interval", s.interval.String()).Info("token sweeper started")
	for {
		select {
		case <-ctx.Done():
			entry.Info("token sweeper stopped")
			return
		case <-t.C:
			n, err := s.SweepOnce(ctx)
			if err != nil {
				entry.WithError(err).Warn("token sweep failed")
				continue
			}
			if n > 0 {
				entry.WithField("deleted", n).Info("expired revoked tokens removed")
			}
		}
	}
}
