package playlist

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taiwoajasa245/memories-api/internal/collection"
)

var (
	ErrEmptyTitle  = errors.New("title is required")
	ErrEmptyArtist = errors.New("artist is required")
	ErrInvalidLink = errors.New("link must be an http(s) URL")
	ErrDuplicateID = errors.New("duplicate song id")
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
		log:  log.With().Str("service", "playlist").Logger(),
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]Song, error) {
	return s.repo.Load(ctx)
}

func (s *Service) Add(ctx context.Context, req SongRequest) ([]Song, error) {
	song := Song{
		Title:  strings.TrimSpace(req.Title),
		Artist: strings.TrimSpace(req.Artist),
		Link:   strings.TrimSpace(req.Link),
		Note:   req.Note,
	}
	if err := validate(song); err != nil {
		return nil, err
	}
	return s.mutate(ctx, func(songs []Song) ([]Song, error) {
		out, added := collection.Create(songs, s.now(), func(id string) Song {
			song.ID = id
			return song
		})
		s.log.Info().Str("id", added.ID).Str("title", added.Title).Msg("song added")
		return out, nil
	})
}

func (s *Service) Update(ctx context.Context, id string, patch SongPatch) ([]Song, error) {
	return s.mutate(ctx, func(songs []Song) ([]Song, error) {
		existing, ok := collection.Find(songs, id)
		if !ok {
			return songs, nil
		}
		if patch.Title != nil {
			existing.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Artist != nil {
			existing.Artist = strings.TrimSpace(*patch.Artist)
		}
		if patch.Link != nil {
			existing.Link = strings.TrimSpace(*patch.Link)
		}
		if patch.Note != nil {
			existing.Note = *patch.Note
		}
		if err := validate(existing); err != nil {
			return nil, err
		}
		return collection.Update(songs, id, func(Song) Song { return existing }), nil
	})
}

func (s *Service) Delete(ctx context.Context, id string) ([]Song, error) {
	return s.mutate(ctx, func(songs []Song) ([]Song, error) {
		return collection.Delete(songs, id), nil
	})
}

func (s *Service) Replace(ctx context.Context, songs []Song) ([]Song, error) {
	for _, song := range songs {
		if err := validate(song); err != nil {
			return nil, fmt.Errorf("song %s: %w", song.ID, err)
		}
	}
	if id, dup := collection.Duplicate(songs); dup {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	next := collection.Clone(songs)
	return s.mutate(ctx, func([]Song) ([]Song, error) { return next, nil })
}

func (s *Service) mutate(ctx context.Context, fn func([]Song) ([]Song, error)) ([]Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, next); err != nil {
		s.log.Error().Err(err).Msg("save failed")
		return nil, err
	}
	return next, nil
}

func validate(song Song) error {
	if collection.Blank(song.Title) {
		return ErrEmptyTitle
	}
	if collection.Blank(song.Artist) {
		return ErrEmptyArtist
	}
	if song.Link == "" {
		return nil
	}
	u, err := url.ParseRequestURI(song.Link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidLink, song.Link)
	}
	return nil
}
