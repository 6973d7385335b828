package adventures

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
	ErrEmptyText   = errors.New("text is required")
	ErrUnknownList = errors.New("unknown list")
	ErrDuplicateID = errors.New("duplicate item id")
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
		log:  log.With().Str("service", "adventures").Logger(),
		now:  time.Now,
	}
}

func (s *Service) GetLists(ctx context.Context) (ListData, error) {
	return s.repo.Load(ctx)
}

// ReplaceLists saves data as the whole document.
func (s *Service) ReplaceLists(ctx context.Context, data ListData) (ListData, error) {
	normalize(&data)
	for _, name := range []ListName{Dates, Bucket, Travel} {
		if id, dup := collection.Duplicate(data.Items(name)); dup {
			return ListData{}, fmt.Errorf("%w: %s in %s", ErrDuplicateID, id, name)
		}
	}
	return s.mutate(ctx, func(ListData) (ListData, error) { return data, nil })
}

func (s *Service) AddItem(ctx context.Context, list ListName, text string) (ListData, error) {
	if !list.Valid() {
		return ListData{}, ErrUnknownList
	}
	if collection.Blank(text) {
		return ListData{}, ErrEmptyText
	}
	return s.mutate(ctx, func(d ListData) (ListData, error) {
		items, item := collection.Create(d.Items(list), s.now(), func(id string) ListItem {
			return ListItem{ID: id, Text: text}
		})
		s.log.Info().Str("list", string(list)).Str("id", item.ID).Msg("item added")
		return d.With(list, items), nil
	})
}

func (s *Service) EditItem(ctx context.Context, list ListName, id, text string) (ListData, error) {
	if !list.Valid() {
		return ListData{}, ErrUnknownList
	}
	if collection.Blank(text) {
		return ListData{}, ErrEmptyText
	}
	return s.mutate(ctx, func(d ListData) (ListData, error) {
		return d.With(list, collection.Update(d.Items(list), id, func(it ListItem) ListItem {
			it.Text = text
			return it
		})), nil
	})
}

func (s *Service) ToggleItem(ctx context.Context, list ListName, id string) (ListData, error) {
	if !list.Valid() {
		return ListData{}, ErrUnknownList
	}
	return s.mutate(ctx, func(d ListData) (ListData, error) {
		return d.With(list, collection.ToggleCompleted(d.Items(list), id)), nil
	})
}

func (s *Service) DeleteItem(ctx context.Context, list ListName, id string) (ListData, error) {
	if !list.Valid() {
		return ListData{}, ErrUnknownList
	}
	return s.mutate(ctx, func(d ListData) (ListData, error) {
		return d.With(list, collection.Delete(d.Items(list), id)), nil
	})
}

// SetDateCount stores the dates counter; negative values become 0.
func (s *Service) SetDateCount(ctx context.Context, count int) (ListData, error) {
	if count < 0 {
		count = 0
	}
	return s.mutate(ctx, func(d ListData) (ListData, error) {
		d.Dates.Count = count
		return d, nil
	})
}

func (s *Service) mutate(ctx context.Context, fn func(ListData) (ListData, error)) (ListData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Load(ctx)
	if err != nil {
		return ListData{}, err
	}
	next, err := fn(current)
	if err != nil {
		return ListData{}, err
	}
	if err := s.repo.Save(ctx, next); err != nil {
		s.log.Error().Err(err).Msg("save failed")
		return ListData{}, err
	}
	return next, nil
}
