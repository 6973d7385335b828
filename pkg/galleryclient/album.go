package galleryclient

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taiwoajasa245/memories-api/internal/collection"
	"github.com/taiwoajasa245/memories-api/pkg/date"
)

// Album mirrors the server gallery. Every change computes the new full
// list, sends it, and only then replaces the local copy; a failed call
// leaves the local copy as it was.
type Album struct {
	client *Client
	log    zerolog.Logger
	now    func() time.Time

	mu sync.Mutex
	// photos is in upload order, oldest first: the order ReplaceAll sends.
	photos []Photo
}

func NewAlbum(client *Client, log zerolog.Logger) *Album {
	return &Album{
		client: client,
		log:    log.With().Str("component", "album").Logger(),
		now:    time.Now,
		photos: []Photo{},
	}
}

func (a *Album) Load(ctx context.Context) error {
	photos, err := a.client.List(ctx)
	if err != nil {
		a.log.Error().Err(err).Msg("failed to load photos")
		return err
	}

	slices.Reverse(photos)
	a.mu.Lock()
	a.photos = photos
	a.mu.Unlock()
	return nil
}

// Photos returns a copy of the local list, newest first, as the server
// lists it.
func (a *Album) Photos() []Photo {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := collection.Clone(a.photos)
	slices.Reverse(out)
	return out
}

// Add appends a new photo, which makes it the newest. Date defaults to today.
func (a *Album) Add(ctx context.Context, url, caption, day string) (Photo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if day == "" {
		day = date.Of(a.now(), time.Local).String()
	}
	p := Photo{
		ID:      collection.NewID(a.photos, a.now()),
		URL:     url,
		Caption: caption,
		Date:    day,
	}
	next := append(collection.Clone(a.photos), p)
	if err := a.commit(ctx, next); err != nil {
		return Photo{}, err
	}
	return p, nil
}

// Edit applies fn to one photo. An unknown id sends nothing.
func (a *Album) Edit(ctx context.Context, id string, fn func(Photo) Photo) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !collection.Contains(a.photos, id) {
		return nil
	}
	return a.commit(ctx, collection.Update(a.photos, id, fn))
}

// Remove deletes one photo through the single-delete call.
func (a *Album) Remove(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.client.Delete(ctx, id); err != nil {
		a.log.Error().Err(err).Str("id", id).Msg("failed to delete photo")
		return err
	}
	a.photos = collection.Delete(a.photos, id)
	return nil
}

// Replace sends photos, oldest first, as the whole album.
func (a *Album) Replace(ctx context.Context, photos []Photo) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.commit(ctx, collection.Clone(photos))
}

func (a *Album) commit(ctx context.Context, next []Photo) error {
	if err := a.client.ReplaceAll(ctx, next); err != nil {
		a.log.Error().Err(err).Int("photos", len(next)).Msg("failed to save photos")
		return err
	}
	a.photos = next
	return nil
}
