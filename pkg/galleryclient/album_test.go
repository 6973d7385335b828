package galleryclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlbumKeepsServerInStep(t *testing.T) {
	srv := newGalleryServer(t)
	client := New(srv.URL)
	album := NewAlbum(client, zerolog.Nop())
	album.now = func() time.Time { return time.UnixMilli(1717000000000) }
	ctx := context.Background()

	require.NoError(t, album.Load(ctx))
	assert.Empty(t, album.Photos())

	first, err := album.Add(ctx, "https://img.example.com/a.jpg", "A", "2024-01-01")
	require.NoError(t, err)
	second, err := album.Add(ctx, "https://img.example.com/b.jpg", "B", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEmpty(t, second.Date)

	require.NoError(t, album.Edit(ctx, first.ID, func(p Photo) Photo {
		p.Caption = "A, edited"
		return p
	}))
	require.NoError(t, album.Edit(ctx, "404", func(p Photo) Photo { return p }))

	remote, err := client.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, album.Photos(), remote)
	require.Len(t, remote, 2)
	assert.Equal(t, second.ID, remote[0].ID)
	assert.Equal(t, "A, edited", remote[1].Caption)

	require.NoError(t, album.Remove(ctx, second.ID))
	remote, err = client.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, album.Photos(), remote)
	assert.Len(t, remote, 1)
}

func TestAlbumFailureLeavesStateUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(`[{"id":"1","url":"u","caption":"c","date":"d"}]`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"db down"}`))
	}))
	defer srv.Close()

	album := NewAlbum(New(srv.URL), zerolog.Nop())
	ctx := context.Background()
	require.NoError(t, album.Load(ctx))
	before := album.Photos()

	_, err := album.Add(ctx, "u2", "", "2024-01-01")
	assert.Error(t, err)
	assert.Error(t, album.Remove(ctx, "1"))
	assert.Error(t, album.Edit(ctx, "1", func(p Photo) Photo {
		p.Caption = "x"
		return p
	}))
	assert.Error(t, album.Replace(ctx, nil))

	assert.Equal(t, before, album.Photos())
}

func TestAlbumAddSendsNewPhotoLast(t *testing.T) {
	var posted []Photo
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(`[{"id":"2","url":"b","caption":"B","date":"2024-02-01"},{"id":"1","url":"a","caption":"A","date":"2024-01-01"}]`))
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	album := NewAlbum(New(srv.URL), zerolog.Nop())
	album.now = func() time.Time { return time.UnixMilli(1717000000000) }
	ctx := context.Background()
	require.NoError(t, album.Load(ctx))

	added, err := album.Add(ctx, "c", "C", "2024-03-01")
	require.NoError(t, err)

	require.Len(t, posted, 3)
	assert.Equal(t, []string{"1", "2", added.ID}, []string{posted[0].ID, posted[1].ID, posted[2].ID})
	assert.Equal(t, []string{added.ID, "2", "1"}, ids(album.Photos()))
}

func ids(photos []Photo) []string {
	out := make([]string, 0, len(photos))
	for _, p := range photos {
		out = append(out, p.ID)
	}
	return out
}
