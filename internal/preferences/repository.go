package preferences

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taiwoajasa245/memories-api/internal/document"
)

const DocumentKey = "preferences"

type Repository interface {
	Load(ctx context.Context) (Preferences, error)
	Save(ctx context.Context, p Preferences) error
}

func NewRepository(backend document.Backend, log zerolog.Logger) Repository {
	return document.NewStore(backend, document.Schema[Preferences]{
		Key:     DocumentKey,
		Default: Defaults,
		Normalize: func(p *Preferences) {
			p.Volume = ClampVolume(p.Volume)
		},
	}, log)
}
