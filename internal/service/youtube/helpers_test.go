package youtube

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-key"

// fakeAPI is an httptest server standing in for the YouTube Data API.
// It records every request and dispatches on the resource name.
type fakeAPI struct {
	t        *testing.T
	mu       sync.Mutex
	requests []*url.URL
	handlers map[string]http.HandlerFunc
}

func newFakeAPI(t *testing.T, handlers map[string]http.HandlerFunc) (YouTubeService, *fakeAPI) {
	t.Helper()

	api := &fakeAPI{t: t, handlers: handlers}
	srv := httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(srv.Close)

	svc := NewYouTubeServiceWithClient(srv.Client(), srv.URL+"/youtube/v3/", testAPIKey, zerolog.Nop())
	return svc, api
}

func (a *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	u := *r.URL
	a.requests = append(a.requests, &u)
	a.mu.Unlock()

	resource := strings.TrimPrefix(r.URL.Path, "/youtube/v3/")
	handler, ok := a.handlers[resource]
	if !ok {
		http.Error(w, "unexpected resource "+resource, http.StatusNotImplemented)
		return
	}
	handler(w, r)
}

// requestsTo returns the recorded requests for one resource, in order
func (a *fakeAPI) requestsTo(resource string) []url.Values {
	a.mu.Lock()
	defer a.mu.Unlock()

	var queries []url.Values
	for _, u := range a.requests {
		if u.Path == "/youtube/v3/"+resource {
			queries = append(queries, u.Query())
		}
	}
	return queries
}

func (a *fakeAPI) requestCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requests)
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func jsonHandler(t *testing.T, body string) http.HandlerFunc {
	require.True(t, json.Valid([]byte(body)), "invalid test fixture: %s", body)
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, body)
	}
}

func statusHandler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error": {"code": ` + strconv.Itoa(status) + `, "message": "fake failure"}}`))
	}
}

// mockHTTPClient is a mock implementation of common.HTTPClient for testing
type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func mockAnyRequest() any {
	return mock.AnythingOfType("*http.Request")
}

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}
