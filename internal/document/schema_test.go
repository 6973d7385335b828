package document

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shelf struct {
	Books  []string `json:"books"`
	Movies []string `json:"movies"`
}

// v0 stored {"bookList": [...]}; v1 renamed it to "books".
func renameBookList(raw json.RawMessage) (json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	if old, ok := m["bookList"]; ok {
		if _, exists := m["books"]; !exists {
			m["books"] = old
		}
		delete(m, "bookList")
	}
	return json.Marshal(m)
}

func shelfSchema() Schema[shelf] {
	return Schema[shelf]{
		Key:        "shelf",
		Migrations: []Migration{renameBookList},
		Default:    func() shelf { return shelf{} },
		Normalize: func(s *shelf) {
			if s.Books == nil {
				s.Books = []string{}
			}
			if s.Movies == nil {
				s.Movies = []string{}
			}
		},
	}
}

type memBackend struct {
	docs map[string][]byte
	err  error
	gets int
}

func newMemBackend() *memBackend {
	return &memBackend{docs: map[string][]byte{}}
}

func (m *memBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.gets++
	if m.err != nil {
		return nil, m.err
	}
	body, ok := m.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return body, nil
}

func (m *memBackend) Put(_ context.Context, key string, body []byte) error {
	if m.err != nil {
		return m.err
	}
	m.docs[key] = body
	return nil
}

func TestDecodeLegacyDocument(t *testing.T) {
	doc, err := shelfSchema().Decode([]byte(`{"bookList":["Dune"]}`))

	require.NoError(t, err)
	assert.Equal(t, []string{"Dune"}, doc.Books)
	assert.Equal(t, []string{}, doc.Movies)
}

func TestDecodeCurrentEnvelopeSkipsMigrations(t *testing.T) {
	doc, err := shelfSchema().Decode([]byte(`{"version":1,"data":{"books":["Emma"],"bookList":["ignored"]}}`))

	require.NoError(t, err)
	assert.Equal(t, []string{"Emma"}, doc.Books)
}

func TestDecodeNewerVersionFails(t *testing.T) {
	_, err := shelfSchema().Decode([]byte(`{"version":7,"data":{}}`))
	assert.Error(t, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	s := shelfSchema()
	body, err := s.Encode(shelf{Books: []string{"Dune"}, Movies: []string{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"data":{"books":["Dune"],"movies":[]}}`, string(body))

	doc, err := s.Decode(body)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune"}, doc.Books)
}

func TestStoreLoadMissingReturnsDefault(t *testing.T) {
	store := NewStore(newMemBackend(), shelfSchema(), zerolog.Nop())

	doc, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, shelf{Books: []string{}, Movies: []string{}}, doc)
}

func TestStoreLoadCorruptReturnsDefaultAndLogs(t *testing.T) {
	backend := newMemBackend()
	backend.docs["shelf"] = []byte(`{"books": [1, 2`)
	var logs bytes.Buffer
	store := NewStore(backend, shelfSchema(), zerolog.New(&logs))

	doc, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, doc.Books)
	assert.Contains(t, logs.String(), "unreadable document")
}

func TestStoreLoadBackendError(t *testing.T) {
	backend := newMemBackend()
	backend.err = errors.New("disk on fire")
	store := NewStore(backend, shelfSchema(), zerolog.Nop())

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, backend.err)
}

func TestStoreSaveOverwrites(t *testing.T) {
	backend := newMemBackend()
	store := NewStore(backend, shelfSchema(), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, shelf{Books: []string{"a", "b"}}))
	require.NoError(t, store.Save(ctx, shelf{Books: []string{"c"}}))

	doc, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, doc.Books)
	assert.Equal(t, []string{}, doc.Movies)
}
