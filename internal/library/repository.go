package library

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taiwoajasa245/memories-api/internal/document"
)

const DocumentKey = "couple_library"

type Repository interface {
	Load(ctx context.Context) (LibraryData, error)
	Save(ctx context.Context, data LibraryData) error
}

func NewRepository(backend document.Backend, log zerolog.Logger) Repository {
	return document.NewStore(backend, document.Schema[LibraryData]{
		Key:     DocumentKey,
		Default: func() LibraryData { return LibraryData{} },
		Normalize: func(d *LibraryData) {
			if d.Books == nil {
				d.Books = []LibraryItem{}
			}
			if d.Movies == nil {
				d.Movies = []LibraryItem{}
			}
		},
	}, log)
}
