package document

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Migration rewrites a document from version i to version i+1.
type Migration func(raw json.RawMessage) (json.RawMessage, error)

// Schema describes the current shape of the document stored under Key.
// Version equals len(Migrations): a document written at version v has
// Migrations[v:] applied on load.
type Schema[T any] struct {
	Key        string
	Migrations []Migration
	Default    func() T
	// Normalize fills fields an older or partial document left empty.
	Normalize func(*T)
}

func (s Schema[T]) Version() int {
	return len(s.Migrations)
}

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// unwrap splits stored bytes into version and payload. Documents written
// before versioning have no envelope and count as version 0.
func unwrap(body []byte) (int, json.RawMessage) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &probe); err == nil && len(probe) == 2 {
			_, hasVersion := probe["version"]
			data, hasData := probe["data"]
			if hasVersion && hasData {
				var v int
				if err := json.Unmarshal(probe["version"], &v); err == nil {
					return v, data
				}
			}
		}
	}
	return 0, trimmed
}

// Decode migrates stored bytes to the current version and decodes them.
func (s Schema[T]) Decode(body []byte) (T, error) {
	version, raw := unwrap(body)
	if version > s.Version() {
		var zero T
		return zero, fmt.Errorf("%s: stored version %d is newer than %d", s.Key, version, s.Version())
	}
	for i := version; i < s.Version(); i++ {
		next, err := s.Migrations[i](raw)
		if err != nil {
			var zero T
			return zero, fmt.Errorf("%s: migration %d: %w", s.Key, i+1, err)
		}
		raw = next
	}

	doc := s.Default()
	if len(bytes.TrimSpace(raw)) > 0 && !bytes.Equal(raw, []byte("null")) {
		if err := json.Unmarshal(raw, &doc); err != nil {
			var zero T
			return zero, fmt.Errorf("%s: %w", s.Key, err)
		}
	}
	if s.Normalize != nil {
		s.Normalize(&doc)
	}
	return doc, nil
}

// Encode wraps doc in a versioned envelope.
func (s Schema[T]) Encode(doc T) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Key, err)
	}
	return json.Marshal(envelope{Version: s.Version(), Data: data})
}

// Store binds a Schema to a Backend.
type Store[T any] struct {
	backend Backend
	schema  Schema[T]
	log     zerolog.Logger
}

func NewStore[T any](backend Backend, schema Schema[T], log zerolog.Logger) *Store[T] {
	return &Store[T]{
		backend: backend,
		schema:  schema,
		log:     log.With().Str("document", schema.Key).Logger(),
	}
}

// Load returns the saved document or the default shape. A document that
// cannot be decoded is logged and treated as not saved yet.
func (s *Store[T]) Load(ctx context.Context) (T, error) {
	body, err := s.backend.Get(ctx, s.schema.Key)
	if errors.Is(err, ErrNotFound) {
		return s.fresh(), nil
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to load %s: %w", s.schema.Key, err)
	}

	doc, err := s.schema.Decode(body)
	if err != nil {
		s.log.Warn().Err(err).Msg("unreadable document, using defaults")
		return s.fresh(), nil
	}
	return doc, nil
}

// Save overwrites the whole document.
func (s *Store[T]) Save(ctx context.Context, doc T) error {
	body, err := s.schema.Encode(doc)
	if err != nil {
		return err
	}
	if err := s.backend.Put(ctx, s.schema.Key, body); err != nil {
		return fmt.Errorf("failed to save %s: %w", s.schema.Key, err)
	}
	s.log.Debug().Int("bytes", len(body)).Msg("document saved")
	return nil
}

func (s *Store[T]) fresh() T {
	doc := s.schema.Default()
	if s.schema.Normalize != nil {
		s.schema.Normalize(&doc)
	}
	return doc
}
