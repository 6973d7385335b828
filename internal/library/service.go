package library

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taiwoajasa245/memories-api/internal/collection"
)

var (
	ErrEmptyTitle   = errors.New("title is required")
	ErrUnknownShelf = errors.New("unknown shelf")
	ErrDuplicateID  = errors.New("duplicate item id")
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
		log:  log.With().Str("service", "library").Logger(),
		now:  time.Now,
	}
}

func (s *Service) GetLibrary(ctx context.Context) (LibraryData, error) {
	return s.repo.Load(ctx)
}

func (s *Service) ReplaceLibrary(ctx context.Context, data LibraryData) (LibraryData, error) {
	if data.Books == nil {
		data.Books = []LibraryItem{}
	}
	if data.Movies == nil {
		data.Movies = []LibraryItem{}
	}
	for _, shelf := range []Shelf{Books, Movies} {
		if id, dup := collection.Duplicate(data.Items(shelf)); dup {
			return LibraryData{}, fmt.Errorf("%w: %s in %s", ErrDuplicateID, id, shelf)
		}
	}
	return s.mutate(ctx, func(LibraryData) LibraryData { return data })
}

func (s *Service) AddItem(ctx context.Context, shelf Shelf, title string) (LibraryData, error) {
	if !shelf.Valid() {
		return LibraryData{}, ErrUnknownShelf
	}
	if collection.Blank(title) {
		return LibraryData{}, ErrEmptyTitle
	}
	return s.mutate(ctx, func(d LibraryData) LibraryData {
		items, item := collection.Create(d.Items(shelf), s.now(), func(id string) LibraryItem {
			return LibraryItem{ID: id, Title: title}
		})
		s.log.Info().Str("shelf", string(shelf)).Str("id", item.ID).Msg("item added")
		return d.With(shelf, items)
	})
}

func (s *Service) EditItem(ctx context.Context, shelf Shelf, id, title string) (LibraryData, error) {
	if !shelf.Valid() {
		return LibraryData{}, ErrUnknownShelf
	}
	if collection.Blank(title) {
		return LibraryData{}, ErrEmptyTitle
	}
	return s.mutate(ctx, func(d LibraryData) LibraryData {
		return d.With(shelf, collection.Update(d.Items(shelf), id, func(it LibraryItem) LibraryItem {
			it.Title = title
			return it
		}))
	})
}

func (s *Service) ToggleItem(ctx context.Context, shelf Shelf, id string) (LibraryData, error) {
	if !shelf.Valid() {
		return LibraryData{}, ErrUnknownShelf
	}
	return s.mutate(ctx, func(d LibraryData) LibraryData {
		return d.With(shelf, collection.ToggleCompleted(d.Items(shelf), id))
	})
}

func (s *Service) DeleteItem(ctx context.Context, shelf Shelf, id string) (LibraryData, error) {
	if !shelf.Valid() {
		return LibraryData{}, ErrUnknownShelf
	}
	return s.mutate(ctx, func(d LibraryData) LibraryData {
		return d.With(shelf, collection.Delete(d.Items(shelf), id))
	})
}

func (s *Service) mutate(ctx context.Context, fn func(LibraryData) LibraryData) (LibraryData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Load(ctx)
	if err != nil {
		return LibraryData{}, err
	}
	next := fn(current)
	if err := s.repo.Save(ctx, next); err != nil {
		s.log.Error().Err(err).Msg("save failed")
		return LibraryData{}, err
	}
	return next, nil
}
