package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Dooralove/PulseNews/internal/api"
)

// APIPrefix is the path prefix the fake server mounts the API under.
const APIPrefix = "/api/v1"

// Recorded is one request received by FakeAPI.
type Recorded struct {
	Method string
	// Path excludes APIPrefix.
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// JSON decodes the recorded body into v.
func (r Recorded) JSON(t testing.TB, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Body, v); err != nil {
		t.Fatalf("decode body of %s %s: %v", r.Method, r.Path, err)
	}
}

type reply struct {
	status int
	body   string
}

// FakeAPI is an httptest server that answers registered routes with canned
// responses and records every request.
//
// Replies registered for the same route are served in order, counting every
// request the route has received so far; the last one repeats. Unregistered routes answer 404 {"detail":"Not found."}.
type FakeAPI struct {
	t      testing.TB
	server *httptest.Server

	mu       sync.Mutex
	routes   map[string][]reply
	hits     map[string]int
	requests []Recorded
}

// NewFakeAPI starts a fake server that is closed on test cleanup.
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()
	f := &FakeAPI{t: t, routes: map[string][]reply{}, hits: map[string]int{}}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

// URL is the API root, suitable for api.Options.BaseURL.
func (f *FakeAPI) URL() string {
	return f.server.URL + APIPrefix
}

// On registers a raw reply for method and path (e.g. "GET", "/articles/1/").
func (f *FakeAPI) On(method, path string, status int, body string) *FakeAPI {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := method + " " + path
	f.routes[key] = append(f.routes[key], reply{status, body})
	return f
}

// OnJSON registers a reply whose body is v encoded as JSON.
func (f *FakeAPI) OnJSON(method, path string, status int, v any) *FakeAPI {
	data, err := json.Marshal(v)
	if err != nil {
		f.t.Fatalf("encode reply for %s %s: %v", method, path, err)
	}
	return f.On(method, path, status, string(data))
}

// Requests returns every request received so far.
func (f *FakeAPI) Requests() []Recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Recorded, len(f.requests))
	copy(out, f.requests)
	return out
}

// Calls returns the requests received for method and path.
func (f *FakeAPI) Calls(method, path string) []Recorded {
	var out []Recorded
	for _, r := range f.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// Count returns how many requests hit method and path.
func (f *FakeAPI) Count(method, path string) int {
	return len(f.Calls(method, path))
}

// Routes returns "METHOD path" for every request, in arrival order.
func (f *FakeAPI) Routes() []string {
	var out []string
	for _, r := range f.Requests() {
		out = append(out, r.Method+" "+r.Path)
	}
	return out
}

// Client returns an api.Client pointed at the server that authenticates with
// token (empty for anonymous) and sends a fixed request id.
func (f *FakeAPI) Client(token string) *api.Client {
	return api.New(api.Options{
		BaseURL:    f.URL(),
		Tokens:     func(context.Context) string { return token },
		RequestIDs: NewFixedRequestIDs("test-request"),
	})
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	path := strings.TrimPrefix(r.URL.Path, APIPrefix)

	f.mu.Lock()
	f.requests = append(f.requests, Recorded{
		Method: r.Method,
		Path:   path,
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Body:   body,
	})
	key := r.Method + " " + path
	replies := f.routes[key]
	rep := reply{http.StatusNotFound, `{"detail": "Not found."}`}
	if n := len(replies); n > 0 {
		rep = replies[min(f.hits[key], n-1)]
	}
	f.hits[key]++
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.status)
	if rep.body != "" {
		fmt.Fprint(w, rep.body)
	}
}
