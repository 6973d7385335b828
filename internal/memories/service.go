package memories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taiwoajasa245/memories-api/internal/collection"
)

var (
	ErrEmptyTitle       = errors.New("title is required")
	ErrEmptyDescription = errors.New("description is required")
	ErrMissingDate      = errors.New("date is required")
	ErrDuplicateID      = errors.New("duplicate memory id")
)

type Service struct {
	repo Repository
	log  zerolog.Logger
	now  func() time.Time
	mu   sync.Mutex
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("service", "memories").Logger(),
		now:  time.Now,
	}
}

// Timeline orders memories newest first. Memories on the same day keep
// their insertion order.
func Timeline(memories []Memory) []Memory {
	out := collection.Clone(memories)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}

func (s *Service) List(ctx context.Context) ([]Memory, error) {
	memories, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Timeline(memories), nil
}

func (s *Service) Create(ctx context.Context, req MemoryRequest) ([]Memory, error) {
	m := Memory{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Date:        req.Date,
		ImageURL:    strings.TrimSpace(req.ImageURL),
	}
	if err := validate(m); err != nil {
		return nil, err
	}
	return s.mutate(ctx, func(ms []Memory) []Memory {
		out, created := collection.Create(ms, s.now(), func(id string) Memory {
			m.ID = id
			return m
		})
		s.log.Info().Str("id", created.ID).Msg("memory added")
		return out
	})
}

// Update patches one memory. An unknown id changes nothing.
func (s *Service) Update(ctx context.Context, id string, patch MemoryPatch) ([]Memory, error) {
	var invalid error
	out, err := s.mutate(ctx, func(ms []Memory) []Memory {
		return collection.Update(ms, id, func(m Memory) Memory {
			if patch.Title != nil {
				m.Title = strings.TrimSpace(*patch.Title)
			}
			if patch.Description != nil {
				m.Description = *patch.Description
			}
			if patch.Date != nil {
				m.Date = *patch.Date
			}
			if patch.ImageURL != nil {
				m.ImageURL = strings.TrimSpace(*patch.ImageURL)
			}
			invalid = validate(m)
			return m
		})
	}, func() error { return invalid })
	return out, err
}

func (s *Service) Delete(ctx context.Context, id string) ([]Memory, error) {
	return s.mutate(ctx, func(ms []Memory) []Memory {
		return collection.Delete(ms, id)
	})
}

func (s *Service) Replace(ctx context.Context, memories []Memory) ([]Memory, error) {
	for _, m := range memories {
		if err := validate(m); err != nil {
			return nil, fmt.Errorf("memory %s: %w", m.ID, err)
		}
	}
	if id, dup := collection.Duplicate(memories); dup {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	next := collection.Clone(memories)
	return s.mutate(ctx, func([]Memory) []Memory { return next })
}

// mutate saves fn's result unless one of the checks fails afterwards.
func (s *Service) mutate(ctx context.Context, fn func([]Memory) []Memory, checks ...func() error) ([]Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	next := fn(current)
	for _, check := range checks {
		if err := check(); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Save(ctx, next); err != nil {
		s.log.Error().Err(err).Msg("save failed")
		return nil, err
	}
	return Timeline(next), nil
}

func validate(m Memory) error {
	switch {
	case collection.Blank(m.Title):
		return ErrEmptyTitle
	case collection.Blank(m.Description):
		return ErrEmptyDescription
	case m.Date.IsZero():
		return ErrMissingDate
	}
	return nil
}
