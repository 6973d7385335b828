package gallery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taiwoajasa245/memories-api/internal/collection"
	"github.com/taiwoajasa245/memories-api/pkg/date"
)

var (
	ErrMissingID   = errors.New("photo id is required")
	ErrDuplicateID = errors.New("duplicate photo id")
	ErrEmptyURL    = errors.New("url is required")
)

type Service struct {
	repo Repository
	loc  *time.Location
	log  zerolog.Logger
	now  func() time.Time
	mu   sync.Mutex
}

func NewService(repo Repository, loc *time.Location, log zerolog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo: repo,
		loc:  loc,
		log:  log.With().Str("service", "gallery").Logger(),
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]Photo, error) {
	return s.repo.List(ctx)
}

// ReplaceAll stores photos as the whole gallery.
func (s *Service) ReplaceAll(ctx context.Context, photos []Photo) error {
	for _, p := range photos {
		if strings.TrimSpace(p.ID) == "" {
			return ErrMissingID
		}
	}
	if id, dup := collection.Duplicate(photos); dup {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.ReplaceAll(ctx, photos); err != nil {
		s.log.Error().Err(err).Int("photos", len(photos)).Msg("replace failed")
		return err
	}
	s.log.Info().Int("photos", len(photos)).Msg("gallery replaced")
	return nil
}

// Delete removes one photo; an unknown id is not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("delete failed")
		return err
	}
	return nil
}

// Add stores one new photo ahead of the others. Date defaults to today.
func (s *Service) Add(ctx context.Context, req PhotoRequest) ([]Photo, Photo, error) {
	if collection.Blank(req.URL) {
		return nil, Photo{}, ErrEmptyURL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	photos, err := s.repo.List(ctx)
	if err != nil {
		return nil, Photo{}, err
	}
	p := Photo{
		ID:      collection.NewID(photos, s.now()),
		URL:     strings.TrimSpace(req.URL),
		Caption: req.Caption,
		Date:    strings.TrimSpace(req.Date),
	}
	if p.Date == "" {
		p.Date = date.Of(s.now(), s.loc).String()
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		s.log.Error().Err(err).Msg("insert failed")
		return nil, Photo{}, err
	}
	s.log.Info().Str("id", p.ID).Msg("photo added")

	photos, err = s.repo.List(ctx)
	return photos, p, err
}

// Update patches one photo. An unknown id changes nothing.
func (s *Service) Update(ctx context.Context, id string, patch PhotoPatch) ([]Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	photos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := collection.Find(photos, id)
	if !ok {
		return photos, nil
	}
	if patch.URL != nil {
		p.URL = strings.TrimSpace(*patch.URL)
	}
	if patch.Caption != nil {
		p.Caption = *patch.Caption
	}
	if patch.Date != nil {
		p.Date = strings.TrimSpace(*patch.Date)
	}
	if collection.Blank(p.URL) {
		return nil, ErrEmptyURL
	}
	if _, err := s.repo.Update(ctx, p); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("update failed")
		return nil, err
	}
	return s.repo.List(ctx)
}

// Remove deletes one photo and returns the rest.
func (s *Service) Remove(ctx context.Context, id string) ([]Photo, error) {
	if err := s.Delete(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}
