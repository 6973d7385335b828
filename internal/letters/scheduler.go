package letters

import (
	"context"
	"time"
)

// StartScheduler reveals due letters every interval until ctx is done, so
// a letter opens on its day even when nobody loads the page. A
// non-positive interval disables the job.
func (s *Service) StartScheduler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		s.log.Info().Msg("reveal scheduler disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", interval).Msg("reveal scheduler started")

	s.runRevealCheck(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("reveal scheduler stopped")
			return
		case <-ticker.C:
			s.runRevealCheck(ctx)
		}
	}
}

func (s *Service) runRevealCheck(ctx context.Context) {
	opened, err := s.RevealPending(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.log.Error().Err(err).Msg("reveal check failed")
		}
		return
	}
	if opened > 0 {
		s.log.Info().Int("opened", opened).Msg("reveal check")
	}
}
