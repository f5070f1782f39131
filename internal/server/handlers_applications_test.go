package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/crackats/internal/db"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["error"]
}

func TestHandleCreateApplication(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)

	body := `{"company": "Acme", "title": "Platform Engineer", "url": "https://example.com/jobs/1", "tags": ["remote"]}`
	req := httptest.NewRequest(http.MethodPost, "/applications", strings.NewReader(body))
	w := httptest.NewRecorder()
	s.handleCreateApplication(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var app db.Application
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &app))
	assert.Equal(t, int64(1), app.ID)
	assert.Equal(t, "Acme", app.Company)
	// New records default to the first board column.
	assert.Equal(t, "saved", app.Status)
	assert.Equal(t, []string{"remote"}, app.Tags)
}

func TestHandleCreateApplication_MissingCompany(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	req := httptest.NewRequest(http.MethodPost, "/applications", strings.NewReader(`{"title": "Dev"}`))
	w := httptest.NewRecorder()
	s.handleCreateApplication(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "Company")
}

func TestHandleCreateApplication_InvalidStatus(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	body := `{"company": "Acme", "title": "Dev", "status": "ghosted"}`
	req := httptest.NewRequest(http.MethodPost, "/applications", strings.NewReader(body))
	w := httptest.NewRecorder()
	s.handleCreateApplication(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "Invalid status: ghosted")
}

func TestHandleCreateApplication_InvalidBody(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	req := httptest.NewRequest(http.MethodPost, "/applications", strings.NewReader(`{{{`))
	w := httptest.NewRecorder()
	s.handleCreateApplication(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleListApplications(t *testing.T) {
	store := newFakeStore(
		db.Application{Company: "Acme", Title: "Dev", Status: "saved"},
		db.Application{Company: "Globex", Title: "SRE", Status: "applied"},
	)
	s := newTestServer(t, store)

	req := httptest.NewRequest(http.MethodGet, "/applications", nil)
	w := httptest.NewRecorder()
	s.handleListApplications(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ListApplicationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}

func TestHandleListApplications_StatusFilter(t *testing.T) {
	store := newFakeStore(
		db.Application{Company: "Acme", Title: "Dev", Status: "saved"},
		db.Application{Company: "Globex", Title: "SRE", Status: "applied"},
	)
	s := newTestServer(t, store)

	req := httptest.NewRequest(http.MethodGet, "/applications?status=applied", nil)
	w := httptest.NewRecorder()
	s.handleListApplications(w, req)

	var resp ListApplicationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Globex", resp.Applications[0].Company)
}

func TestHandleListApplications_InvalidStatusFilter(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/applications?status=bogus", nil)
	w := httptest.NewRecorder()
	s.handleListApplications(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGetApplication(t *testing.T) {
	store := newFakeStore(db.Application{Company: "Acme", Title: "Dev", Status: "saved"})
	s := newTestServer(t, store)

	req := httptest.NewRequest(http.MethodGet, "/applications/1", nil)
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	s.handleGetApplication(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandleGetApplication_NotFound(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/applications/99", nil)
	req.SetPathValue("id", "99")
	w := httptest.NewRecorder()
	s.handleGetApplication(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetApplication_InvalidID(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/applications/abc", nil)
	req.SetPathValue("id", "abc")
	w := httptest.NewRecorder()
	s.handleGetApplication(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleUpdateApplication(t *testing.T) {
	store := newFakeStore(db.Application{Company: "Acme", Title: "Dev", Status: "saved"})
	s := newTestServer(t, store)

	body := `{"notes": "phone call Friday", "status": "applied"}`
	req := httptest.NewRequest(http.MethodPut, "/applications/1", strings.NewReader(body))
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	s.handleUpdateApplication(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var app db.Application
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &app))
	assert.Equal(t, "phone call Friday", app.Notes)
	assert.Equal(t, "applied", app.Status)
	// Untouched fields survive the partial update.
	assert.Equal(t, "Acme", app.Company)
}

func TestHandleUpdateApplication_InvalidStatus(t *testing.T) {
	store := newFakeStore(db.Application{Company: "Acme", Title: "Dev", Status: "saved"})
	s := newTestServer(t, store)

	req := httptest.NewRequest(http.MethodPut, "/applications/1", strings.NewReader(`{"status": "nope"}`))
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	s.handleUpdateApplication(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "saved", store.apps[1].Status)
}

func TestHandleUpdateApplication_NotFound(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	req := httptest.NewRequest(http.MethodPut, "/applications/5", strings.NewReader(`{"notes": "x"}`))
	req.SetPathValue("id", "5")
	w := httptest.NewRecorder()
	s.handleUpdateApplication(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleDeleteApplication(t *testing.T) {
	store := newFakeStore(db.Application{Company: "Acme", Title: "Dev", Status: "saved"})
	s := newTestServer(t, store)

	req := httptest.NewRequest(http.MethodDelete, "/applications/1", nil)
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	s.handleDeleteApplication(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, store.apps)
}

func TestHandleDeleteApplication_NotFound(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	req := httptest.NewRequest(http.MethodDelete, "/applications/3", nil)
	req.SetPathValue("id", "3")
	w := httptest.NewRecorder()
	s.handleDeleteApplication(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
