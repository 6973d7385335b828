package memories

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taiwoajasa245/memories-api/internal/document"
)

const DocumentKey = "memories"

type Repository interface {
	Load(ctx context.Context) ([]Memory, error)
	Save(ctx context.Context, memories []Memory) error
}

func NewRepository(backend document.Backend, log zerolog.Logger) Repository {
	return document.NewStore(backend, document.Schema[[]Memory]{
		Key:     DocumentKey,
		Default: func() []Memory { return []Memory{} },
		Normalize: func(m *[]Memory) {
			if *m == nil {
				*m = []Memory{}
			}
		},
	}, log)
}
