package preferences

import (
	"context"
	"math"
	"sync"

	"github.com/rs/zerolog"
)

// ClampVolume keeps v within [0, 1]. NaN falls back to DefaultVolume.
func ClampVolume(v float64) float64 {
	if math.IsNaN(v) {
		return DefaultVolume
	}
	return math.Max(0, math.Min(1, v))
}

// Service holds the preferences in memory and writes every change through.
type Service struct {
	repo Repository
	log  zerolog.Logger

	mu      sync.Mutex
	current Preferences
	loaded  bool
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		log:     log.With().Str("service", "preferences").Logger(),
		current: Defaults(),
	}
}

// Load reads the saved preferences; the server calls it once at start.
func (s *Service) Load(ctx context.Context) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Service) load(ctx context.Context) (Preferences, error) {
	p, err := s.repo.Load(ctx)
	if err != nil {
		return Preferences{}, err
	}
	s.current, s.loaded = p, true
	return p, nil
}

func (s *Service) Get(ctx context.Context) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return s.load(ctx)
	}
	return s.current, nil
}

func (s *Service) Update(ctx context.Context, patch Patch) (Preferences, error) {
	return s.mutate(ctx, func(p Preferences) Preferences {
		if patch.SoundEnabled != nil {
			p.SoundEnabled = *patch.SoundEnabled
		}
		if patch.Volume != nil {
			p.Volume = ClampVolume(*patch.Volume)
		}
		if patch.VolumeVisible != nil {
			p.VolumeVisible = *patch.VolumeVisible
		}
		return p
	})
}

func (s *Service) ToggleVolumeVisibility(ctx context.Context) (Preferences, error) {
	return s.mutate(ctx, func(p Preferences) Preferences {
		p.VolumeVisible = !p.VolumeVisible
		return p
	})
}

func (s *Service) mutate(ctx context.Context, fn func(Preferences) Preferences) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.current
	if !s.loaded {
		p, err := s.load(ctx)
		if err != nil {
			return Preferences{}, err
		}
		current = p
	}
	next := fn(current)
	if err := s.repo.Save(ctx, next); err != nil {
		s.log.Error().Err(err).Msg("save failed")
		return Preferences{}, err
	}
	s.current = next
	return next, nil
}
