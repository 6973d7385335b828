package adventures

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/memories-api/internal/document"
)

func newTestService(t *testing.T) (*Service, document.Backend) {
	t.Helper()
	backend, err := document.NewFileBackend(t.TempDir())
	require.NoError(t, err)

	svc := NewService(NewRepository(backend, zerolog.Nop()), zerolog.Nop())
	svc.now = func() time.Time { return time.UnixMilli(1717171717000) }
	return svc, backend
}

func TestGetListsDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	lists, err := svc.GetLists(context.Background())

	require.NoError(t, err)
	assert.Equal(t, ListData{
		Dates:  DateList{Count: 0, Items: []ListItem{}},
		Bucket: []ListItem{},
		Travel: []ListItem{},
	}, lists)
}

func TestAddThenDeleteTravelRestoresList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	before, err := svc.AddItem(ctx, Travel, "Rome")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.UnixMilli(1717171718000) }
	grown, err := svc.AddItem(ctx, Travel, "Paris")
	require.NoError(t, err)
	require.Len(t, grown.Travel, 2)
	paris := grown.Travel[1]
	assert.Equal(t, "Paris", paris.Text)
	assert.False(t, paris.Completed)

	after, err := svc.DeleteItem(ctx, Travel, paris.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Travel, after.Travel)

	stored, err := svc.GetLists(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.Travel, stored.Travel)
}

func TestAddItemRejectsBlankText(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddItem(context.Background(), Bucket, "   ")
	assert.ErrorIs(t, err, ErrEmptyText)

	lists, err := svc.GetLists(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lists.Bucket)
}

func TestUnknownList(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddItem(context.Background(), ListName("groceries"), "milk")
	assert.ErrorIs(t, err, ErrUnknownList)
	_, err = svc.ToggleItem(context.Background(), ListName("groceries"), "1")
	assert.ErrorIs(t, err, ErrUnknownList)
}

func TestListsAreIndependent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	lists, err := svc.AddItem(ctx, Dates, "stargazing")
	require.NoError(t, err)
	id := lists.Dates.Items[0].ID

	lists, err = svc.ToggleItem(ctx, Bucket, id)
	require.NoError(t, err)
	assert.False(t, lists.Dates.Items[0].Completed)

	lists, err = svc.ToggleItem(ctx, Dates, id)
	require.NoError(t, err)
	assert.True(t, lists.Dates.Items[0].Completed)

	lists, err = svc.EditItem(ctx, Dates, id, "stargazing in the desert")
	require.NoError(t, err)
	assert.Equal(t, "stargazing in the desert", lists.Dates.Items[0].Text)
	assert.True(t, lists.Dates.Items[0].Completed)
	assert.Equal(t, id, lists.Dates.Items[0].ID)
}

func TestUnknownIDIsNoOp(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	before, err := svc.AddItem(ctx, Bucket, "skydiving")
	require.NoError(t, err)

	for _, op := range []func() (ListData, error){
		func() (ListData, error) { return svc.EditItem(ctx, Bucket, "missing", "x") },
		func() (ListData, error) { return svc.ToggleItem(ctx, Bucket, "missing") },
		func() (ListData, error) { return svc.DeleteItem(ctx, Bucket, "missing") },
	} {
		after, err := op()
		require.NoError(t, err)
		assert.Equal(t, before, after)
	}
}

func TestSetDateCount(t *testing.T) {
	svc, _ := newTestService(t)

	lists, err := svc.SetDateCount(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, 12, lists.Dates.Count)

	lists, err = svc.SetDateCount(context.Background(), -3)
	require.NoError(t, err)
	assert.Equal(t, 0, lists.Dates.Count)
}

func TestReplaceListsRejectsDuplicates(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ReplaceLists(context.Background(), ListData{
		Bucket: []ListItem{{ID: "1", Text: "a"}, {ID: "1", Text: "b"}},
	})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestLegacyDocumentIsMigrated(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()
	legacy := `{"dates":{"count":4,"items":[]},"bucketList":[{"id":"9","text":"Iceland","completed":true}]}`
	require.NoError(t, backend.Put(ctx, DocumentKey, []byte(legacy)))

	lists, err := svc.GetLists(ctx)

	require.NoError(t, err)
	assert.Equal(t, 4, lists.Dates.Count)
	assert.Equal(t, []ListItem{{ID: "9", Text: "Iceland", Completed: true}}, lists.Bucket)
	assert.Equal(t, []ListItem{}, lists.Travel)
}

func TestLegacyListReplacesNullList(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()
	legacy := `{"bucket":null,"bucketList":[{"id":"1","text":"Lisbon"}],"travel":[{"id":"2","text":"Kyoto"}],"travelList":[{"id":"3","text":"Oslo"}]}`
	require.NoError(t, backend.Put(ctx, DocumentKey, []byte(legacy)))

	lists, err := svc.GetLists(ctx)

	require.NoError(t, err)
	assert.Equal(t, []ListItem{{ID: "1", Text: "Lisbon"}}, lists.Bucket)
	assert.Equal(t, []ListItem{{ID: "2", Text: "Kyoto"}}, lists.Travel, "a present list wins over the legacy key")
}
