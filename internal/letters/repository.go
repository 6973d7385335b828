package letters

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taiwoajasa245/memories-api/internal/document"
)

const DocumentKey = "love_letters"

type Repository interface {
	Load(ctx context.Context) ([]Letter, error)
	Save(ctx context.Context, letters []Letter) error
}

func NewRepository(backend document.Backend, log zerolog.Logger) Repository {
	return document.NewStore(backend, Schema(), log)
}

func Schema() document.Schema[[]Letter] {
	return document.Schema[[]Letter]{
		Key:       DocumentKey,
		Default:   func() []Letter { return []Letter{} },
		Normalize: normalize,
	}
}

// normalize repairs letters saved by older clients, which stored an empty
// string for a missing reveal date.
func normalize(letters *[]Letter) {
	if *letters == nil {
		*letters = []Letter{}
	}
	for i := range *letters {
		l := &(*letters)[i]
		if !hasDate(l.RevealDate) {
			l.RevealDate = nil
		}
		if l.RevealImmediately {
			l.Revealed = true
			l.RevealDate = nil
		}
	}
}
