package memories

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/memories-api/internal/document"
	"github.com/taiwoajasa245/memories-api/pkg/date"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	backend, err := document.NewFileBackend(t.TempDir())
	require.NoError(t, err)

	svc := NewService(NewRepository(backend, zerolog.Nop()), zerolog.Nop())
	tick := time.UnixMilli(1700000000000)
	svc.now = func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}
	return svc
}

func req(title string, d date.Date) MemoryRequest {
	return MemoryRequest{Title: title, Description: "we were there", Date: d}
}

func TestCreateOrdersNewestFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, req("First date", date.New(2022, time.March, 5)))
	require.NoError(t, err)
	_, err = svc.Create(ctx, req("Paris", date.New(2023, time.July, 14)))
	require.NoError(t, err)
	out, err := svc.Create(ctx, req("Picnic", date.New(2022, time.June, 1)))
	require.NoError(t, err)

	titles := []string{out[0].Title, out[1].Title, out[2].Title}
	assert.Equal(t, []string{"Paris", "Picnic", "First date"}, titles)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, out, listed)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, req(" ", date.New(2022, time.March, 5)))
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = svc.Create(ctx, MemoryRequest{Title: "x", Date: date.New(2022, time.March, 5)})
	assert.ErrorIs(t, err, ErrEmptyDescription)

	_, err = svc.Create(ctx, MemoryRequest{Title: "x", Description: "y"})
	assert.ErrorIs(t, err, ErrMissingDate)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestUpdateMemory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	out, err := svc.Create(ctx, req("Paris", date.New(2023, time.July, 14)))
	require.NoError(t, err)
	id := out[0].ID

	img := "https://img.example.com/paris.jpg"
	out, err = svc.Update(ctx, id, MemoryPatch{ImageURL: &img})
	require.NoError(t, err)
	assert.Equal(t, img, out[0].ImageURL)
	assert.Equal(t, "Paris", out[0].Title)

	blank := ""
	_, err = svc.Update(ctx, id, MemoryPatch{Title: &blank})
	assert.ErrorIs(t, err, ErrEmptyTitle)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Paris", listed[0].Title, "failed update must not be saved")

	same, err := svc.Update(ctx, "404", MemoryPatch{Title: &blank})
	require.NoError(t, err)
	assert.Equal(t, listed, same)
}

func TestDeleteAndReplace(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	out, err := svc.Create(ctx, req("Paris", date.New(2023, time.July, 14)))
	require.NoError(t, err)

	out, err = svc.Delete(ctx, out[0].ID)
	require.NoError(t, err)
	assert.Empty(t, out)

	m := Memory{ID: "1", Title: "a", Description: "b", Date: date.New(2020, time.January, 1)}
	_, err = svc.Replace(ctx, []Memory{m, m})
	assert.ErrorIs(t, err, ErrDuplicateID)

	out, err = svc.Replace(ctx, []Memory{m})
	require.NoError(t, err)
	assert.Equal(t, []Memory{m}, out)
}
