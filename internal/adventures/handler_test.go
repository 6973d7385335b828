package adventures

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	svc, _ := newTestService(t)
	h := NewAdventuresHandler(svc)

	r := chi.NewRouter()
	r.Get("/adventures", h.GetListsHandler)
	r.Put("/adventures", h.ReplaceListsHandler)
	r.Post("/adventures/{list}/items", h.AddItemHandler)
	r.Patch("/adventures/{list}/items/{id}", h.EditItemHandler)
	r.Patch("/adventures/{list}/items/{id}/toggle", h.ToggleItemHandler)
	r.Delete("/adventures/{list}/items/{id}", h.DeleteItemHandler)
	r.Put("/adventures/dates/count", h.SetDateCountHandler)
	return r
}

type listsEnvelope struct {
	Success bool     `json:"success"`
	Data    ListData `json:"data"`
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, listsEnvelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env listsEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestHandlerAddToggleDelete(t *testing.T) {
	h := newTestRouter(t)

	rec, env := do(t, h, http.MethodPost, "/adventures/bucket/items", `{"text":"Northern lights"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, env.Data.Bucket, 1)
	id := env.Data.Bucket[0].ID

	rec, env = do(t, h, http.MethodPatch, "/adventures/bucket/items/"+id+"/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Data.Bucket[0].Completed)

	rec, env = do(t, h, http.MethodDelete, "/adventures/bucket/items/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, env.Data.Bucket)
}

func TestHandlerValidation(t *testing.T) {
	h := newTestRouter(t)

	rec, env := do(t, h, http.MethodPost, "/adventures/travel/items", `{"text":" "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)

	rec, _ = do(t, h, http.MethodPost, "/adventures/chores/items", `{"text":"dishes"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/adventures/travel/items", `{"text":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerDateCount(t *testing.T) {
	h := newTestRouter(t)

	rec, env := do(t, h, http.MethodPut, "/adventures/dates/count", `{"count":7}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, env.Data.Dates.Count)

	_, env = do(t, h, http.MethodGet, "/adventures", "")
	assert.Equal(t, 7, env.Data.Dates.Count)
}
