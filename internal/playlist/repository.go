package playlist

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taiwoajasa245/memories-api/internal/document"
)

const DocumentKey = "playlist"

type Repository interface {
	Load(ctx context.Context) ([]Song, error)
	Save(ctx context.Context, songs []Song) error
}

func NewRepository(backend document.Backend, log zerolog.Logger) Repository {
	return document.NewStore(backend, document.Schema[[]Song]{
		Key:     DocumentKey,
		Default: func() []Song { return []Song{} },
		Normalize: func(s *[]Song) {
			if *s == nil {
				*s = []Song{}
			}
		},
	}, log)
}
