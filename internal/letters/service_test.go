package letters

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/memories-api/internal/document"
	"github.com/taiwoajasa245/memories-api/pkg/date"
)

type recorder struct {
	mu     sync.Mutex
	opened []string
}

func (r *recorder) LetterRevealed(_ context.Context, l Letter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opened = append(r.opened, l.ID)
}

func (r *recorder) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.opened...)
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func newTestService(t *testing.T) (*Service, *recorder, *clock) {
	t.Helper()
	backend, err := document.NewFileBackend(t.TempDir())
	require.NoError(t, err)

	rec := &recorder{}
	clk := &clock{t: time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)}
	svc := NewService(NewRepository(backend, zerolog.Nop()), []string{"Ichrak", "Yassine"}, time.UTC, rec, zerolog.Nop())
	svc.now = clk.now
	return svc, rec, clk
}

func sealed(revealDate string) LetterRequest {
	no := false
	return LetterRequest{
		From:              "Ichrak",
		To:                "Yassine",
		Message:           "see you soon",
		RevealDate:        day(revealDate),
		RevealImmediately: &no,
	}
}

func TestCreateImmediate(t *testing.T) {
	svc, rec, _ := newTestService(t)

	letters, created, err := svc.Create(context.Background(), LetterRequest{
		From: "Yassine", To: "Ichrak", Message: "hello",
	})

	require.NoError(t, err)
	assert.True(t, created.Revealed)
	assert.True(t, created.RevealImmediately)
	assert.Nil(t, created.RevealDate)
	assert.Equal(t, "2024-02-10", created.DateWritten.String())
	assert.Equal(t, []Letter{created}, letters)
	assert.Empty(t, rec.ids(), "immediate letters are not announced")
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Create(ctx, LetterRequest{From: "Ichrak", To: "Bob", Message: "hi"})
	assert.ErrorIs(t, err, ErrUnknownParticipant)

	_, _, err = svc.Create(ctx, LetterRequest{From: "Ichrak", To: "Yassine", Message: "  "})
	assert.ErrorIs(t, err, ErrEmptyMessage)

	req := sealed("2024-03-01")
	req.RevealDate = nil
	_, _, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, ErrRevealDateRequired)

	letters, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, letters)
}

func TestSealedLetterOpensOnItsDay(t *testing.T) {
	svc, rec, clk := newTestService(t)
	ctx := context.Background()

	_, created, err := svc.Create(ctx, sealed("2024-02-14"))
	require.NoError(t, err)
	assert.False(t, created.Revealed)

	board, err := svc.Board(ctx)
	require.NoError(t, err)
	assert.Empty(t, board.Revealed)
	require.Len(t, board.Sealed, 1)

	clk.set(time.Date(2024, time.February, 14, 0, 30, 0, 0, time.UTC))
	board, err = svc.Board(ctx)
	require.NoError(t, err)
	require.Len(t, board.Revealed, 1)
	assert.Empty(t, board.Sealed)
	assert.Equal(t, []string{created.ID}, rec.ids())

	// persisted, so it is not announced twice
	_, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rec.ids(), 1)
}

func TestTodayFollowsLocation(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Create(ctx, sealed("2024-02-14"))
	require.NoError(t, err)

	tokyo := time.FixedZone("JST", 9*60*60)
	svc.loc = tokyo
	// 20:00 UTC on the 13th is already the 14th in Tokyo.
	clk.set(time.Date(2024, time.February, 13, 20, 0, 0, 0, time.UTC))

	opened, err := svc.RevealPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, opened)
}

func TestRevealNowIsIdempotent(t *testing.T) {
	svc, rec, _ := newTestService(t)
	ctx := context.Background()

	_, created, err := svc.Create(ctx, sealed("2030-01-01"))
	require.NoError(t, err)

	once, err := svc.RevealNow(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, once[0].Revealed)

	twice, err := svc.RevealNow(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, once, twice)

	unknown, err := svc.RevealNow(ctx, "404")
	require.NoError(t, err)
	assert.Equal(t, once, unknown)
	assert.Empty(t, rec.ids())
}

func TestUpdateRevealRule(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, created, err := svc.Create(ctx, sealed("2030-01-01"))
	require.NoError(t, err)

	yes := true
	letters, err := svc.Update(ctx, created.ID, LetterPatch{RevealImmediately: &yes})
	require.NoError(t, err)
	assert.True(t, letters[0].Revealed)
	assert.Nil(t, letters[0].RevealDate)

	// switching back needs a date and keeps the letter open
	no := false
	_, err = svc.Update(ctx, created.ID, LetterPatch{RevealImmediately: &no})
	assert.ErrorIs(t, err, ErrRevealDateRequired)

	letters, err = svc.Update(ctx, created.ID, LetterPatch{RevealImmediately: &no, RevealDate: day("2031-01-01")})
	require.NoError(t, err)
	assert.True(t, letters[0].Revealed)
	assert.Equal(t, "2031-01-01", letters[0].RevealDate.String())
}

func TestUpdateFields(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, created, err := svc.Create(ctx, sealed("2030-01-01"))
	require.NoError(t, err)

	msg := "changed my mind"
	letters, err := svc.Update(ctx, created.ID, LetterPatch{Message: &msg})
	require.NoError(t, err)
	assert.Equal(t, msg, letters[0].Message)
	assert.Equal(t, created.RevealDate, letters[0].RevealDate)
	assert.Equal(t, created.ID, letters[0].ID)

	unknown, err := svc.Update(ctx, "404", LetterPatch{Message: &msg})
	require.NoError(t, err)
	assert.Equal(t, letters, unknown)

	bob := "Bob"
	_, err = svc.Update(ctx, created.ID, LetterPatch{To: &bob})
	assert.ErrorIs(t, err, ErrUnknownParticipant)
}

func TestUpdateToPastDateOpens(t *testing.T) {
	svc, rec, _ := newTestService(t)
	ctx := context.Background()

	_, created, err := svc.Create(ctx, sealed("2030-01-01"))
	require.NoError(t, err)

	letters, err := svc.Update(ctx, created.ID, LetterPatch{RevealDate: day("2024-01-01")})
	require.NoError(t, err)
	assert.True(t, letters[0].Revealed)
	assert.Equal(t, []string{created.ID}, rec.ids())
}

func TestDeleteLetter(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, created, err := svc.Create(ctx, sealed("2030-01-01"))
	require.NoError(t, err)

	letters, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, letters)
}

func TestReplace(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	letters, err := svc.Replace(ctx, []Letter{
		{ID: "a", From: "Ichrak", To: "Yassine", Message: "x", RevealImmediately: true, RevealDate: day("2030-01-01")},
		{ID: "b", From: "Yassine", To: "Ichrak", Message: "y", RevealDate: day("2030-01-01")},
	})
	require.NoError(t, err)
	assert.True(t, letters[0].Revealed)
	assert.Nil(t, letters[0].RevealDate)
	assert.False(t, letters[1].Revealed)

	_, err = svc.Replace(ctx, []Letter{
		{ID: "a", From: "Ichrak", To: "Yassine", Message: "x", RevealImmediately: true},
		{ID: "a", From: "Ichrak", To: "Yassine", Message: "x", RevealImmediately: true},
	})
	assert.ErrorIs(t, err, ErrDuplicateID)

	_, err = svc.Replace(ctx, []Letter{{From: "Ichrak", To: "Yassine", Message: "x", RevealImmediately: true}})
	assert.ErrorIs(t, err, ErrMissingID)

	_, err = svc.Replace(ctx, []Letter{{ID: "c", From: "Ichrak", To: "Yassine", Message: "x"}})
	assert.ErrorIs(t, err, ErrRevealDateRequired)
}

func TestLegacyDocument(t *testing.T) {
	backend, err := document.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	legacy := `[
		{"id":"1","from":"Ichrak","to":"Yassine","message":"hi","dateWritten":"2023-12-31T22:10:00.000Z","revealDate":"","revealed":false,"revealImmediately":true},
		{"id":"2","from":"Yassine","to":"Ichrak","message":"yo","dateWritten":"2024-01-01","revealDate":"2024-02-01","revealed":false,"revealImmediately":false}
	]`
	require.NoError(t, backend.Put(ctx, DocumentKey, []byte(legacy)))

	letters, err := NewRepository(backend, zerolog.Nop()).Load(ctx)

	require.NoError(t, err)
	require.Len(t, letters, 2)
	assert.True(t, letters[0].Revealed)
	assert.Nil(t, letters[0].RevealDate)
	assert.Equal(t, date.New(2023, time.December, 31), letters[0].DateWritten)
	assert.Equal(t, "2024-02-01", letters[1].RevealDate.String())
}

func TestStartScheduler(t *testing.T) {
	svc, rec, clk := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, created, err := svc.Create(ctx, sealed("2024-02-14"))
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		svc.StartScheduler(ctx, 10*time.Millisecond)
		close(done)
	}()

	clk.set(time.Date(2024, time.February, 14, 9, 0, 0, 0, time.UTC))
	assert.Eventually(t, func() bool {
		return len(rec.ids()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{created.ID}, rec.ids())

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestStartSchedulerDisabled(t *testing.T) {
	svc, _, _ := newTestService(t)
	done := make(chan struct{})
	go func() {
		svc.StartScheduler(context.Background(), 0)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled scheduler should return at once")
	}
}
