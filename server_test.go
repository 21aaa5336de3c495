package backend_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"

	backend "github.com/opsdash/inventory-import"
)

const (
	extractionAddr = "http://extraction.lan:5000"
	dashboardAddr  = "http://dashboard.lan:8080"
)

func getServer(t *testing.T) *backend.Server {
	gock.New(extractionAddr).
		Persist().
		Get("/healthz").
		Reply(http.StatusOK).
		BodyString(`{}`)
	gock.New(dashboardAddr).
		Persist().
		Get("/healthz").
		Reply(http.StatusOK).
		BodyString(`{}`)

	s, err := backend.New(backend.Config{
		ExtractionAddr: extractionAddr,
		DashboardAddr:  dashboardAddr,
	})
	if err != nil {
		t.Fatalf("unable to create server: %v", err)
	}
	return s
}

func doRequest(s *backend.Server, method string, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestPatchUnknownProduct(t *testing.T) {
	defer gock.Off()
	s := getServer(t)

	w := doRequest(s, http.MethodPatch, "/api/v1/products/99", `{"quantity":3}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatchDeletedProduct(t *testing.T) {
	defer gock.Off()
	s := getServer(t)

	w := doRequest(s, http.MethodPost, "/api/v1/products", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(s, http.MethodDelete, "/api/v1/products/0", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	// An edit to a removed row is rejected, never silently dropped.
	w = doRequest(s, http.MethodPatch, "/api/v1/products/0", `{"quantity":3}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSelectionEndpoints(t *testing.T) {
	defer gock.Off()
	s := getServer(t)

	w := doRequest(s, http.MethodPost, "/api/v1/products", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(s, http.MethodPut, "/api/v1/selection/0", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"selected_count":1`)

	w = doRequest(s, http.MethodPut, "/api/v1/selection/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(s, http.MethodDelete, "/api/v1/selection/0", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"selected_count":0`)
}
