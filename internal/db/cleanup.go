package db

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultCleanupInterval = 1 * time.Hour
)

type CleanupService struct {
	revokedTokens *RevokedTokenRepository
	interval      time.Duration
}

func NewCleanupService(revokedTokens *RevokedTokenRepository, interval time.Duration) *CleanupService {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	return &CleanupService{
		revokedTokens: revokedTokens,
		interval:      interval,
	}
}

func (s *CleanupService) Start(ctx context.Context) {
	slog.Info("starting token cleanup service", "component", "cleanup", "interval", s.interval)

	s.runCleanup(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("stopping token cleanup service", "component", "cleanup")
			return
		case <-ticker.C:
			s.runCleanup(ctx)
		}
	}
}

func (s *CleanupService) runCleanup(ctx context.Context) {
	deleted, err := s.revokedTokens.DeleteExpired(ctx)
	if err != nil {
		slog.Error("error deleting expired revoked tokens", "component", "cleanup", "error", err)
	} else if deleted > 0 {
		slog.Info("deleted expired revoked tokens", "component", "cleanup", "count", deleted)
	}
}
