package airdcpp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"comicgrabr/internal/logging"
	"comicgrabr/internal/services"
)

// fakeBackend emulates the AirDC++ search endpoints with scriptable hub
// search and result behaviour.
type fakeBackend struct {
	mu sync.Mutex

	hubSearch   func(call int, req hubSearchRequest) (int, string)
	results     func(call int) []searchResult
	hubCalls    []hubSearchRequest
	resultCalls int
}

func (b *fakeBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sessions/authorize", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"auth_token":"tok"}`)
	})
	mux.HandleFunc("POST /search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": 42}`)
	})
	mux.HandleFunc("POST /search/42/hub_search", func(w http.ResponseWriter, r *http.Request) {
		var req hubSearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode hub search request: %v", err)
		}
		b.mu.Lock()
		b.hubCalls = append(b.hubCalls, req)
		call := len(b.hubCalls)
		b.mu.Unlock()

		status, body := b.hubSearch(call, req)
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	})
	mux.HandleFunc("GET /search/42/results/0/100", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.resultCalls++
		call := b.resultCalls
		b.mu.Unlock()

		if err := json.NewEncoder(w).Encode(b.results(call)); err != nil {
			t.Errorf("encode results: %v", err)
		}
	})
	return mux
}

func newTestClient(t *testing.T, backend *fakeBackend) (*Client, *[]time.Duration) {
	t.Helper()
	srv := httptest.NewServer(backend.handler(t))
	t.Cleanup(srv.Close)

	var sleeps []time.Duration
	client := New(testConfig(srv.URL), logging.NewNop(),
		WithBaseURL(srv.URL),
		WithSleep(func(d time.Duration) { sleeps = append(sleeps, d) }),
	)
	return client, &sleeps
}

func acceptFirstVariant(call int, req hubSearchRequest) (int, string) {
	return http.StatusOK, `{"search_id": 7}`
}

func TestSearchPrefersPrimaryExtension(t *testing.T) {
	backend := &fakeBackend{
		hubSearch: acceptFirstVariant,
		results: func(int) []searchResult {
			return []searchResult{
				{ID: "1", Name: "Saga 72.cbr", Path: "/share/Saga 72.cbr", Size: 100, TTH: "AAA"},
				{ID: "2", Name: "Saga 72.cbz", Path: "/share/Saga 72.cbz", Size: 200, TTH: "BBB"},
				{ID: "3", Name: "Saga 72.pdf", Path: "/share/Saga 72.pdf", Size: 300, TTH: "CCC"},
			}
		},
	}
	client, _ := newTestClient(t, backend)

	candidate, sessionID, err := client.Search(context.Background(), "Saga 72")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if sessionID != "42" {
		t.Fatalf("expected session id 42, got %q", sessionID)
	}
	if candidate.Ext != "cbz" || candidate.TTH != "BBB" {
		t.Fatalf("expected the cbz result regardless of ordering, got %+v", candidate)
	}
}

func TestSearchFallsBackToSecondaryExtension(t *testing.T) {
	backend := &fakeBackend{
		hubSearch: acceptFirstVariant,
		results: func(int) []searchResult {
			return []searchResult{
				{ID: "1", Name: "readme.txt", Path: "/share/readme.txt", Size: 1, TTH: "AAA"},
				{ID: "2", Name: "Saga 72.cbr", Path: "/share/Saga 72.cbr", Size: 100, TTH: "BBB"},
				{ID: "3", Name: "Saga 72 alt.cbr", Path: "/share/Saga 72 alt.cbr", Size: 100, TTH: "CCC"},
			}
		},
	}
	client, _ := newTestClient(t, backend)

	candidate, _, err := client.Search(context.Background(), "Saga 72")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if candidate.Ext != "cbr" || candidate.TTH != "BBB" {
		t.Fatalf("expected first cbr result, got %+v", candidate)
	}
}

func TestSearchTriesVariantsInOrder(t *testing.T) {
	backend := &fakeBackend{
		hubSearch: func(call int, req hubSearchRequest) (int, string) {
			if call < 3 {
				return http.StatusInternalServerError, "hub unavailable"
			}
			return http.StatusOK, `{"search_id": 7}`
		},
		results: func(int) []searchResult {
			return []searchResult{{ID: "1", Name: "Saga 72.cbz", Path: "/share/Saga 72.cbz", Size: 200, TTH: "BBB"}}
		},
	}
	client, sleeps := newTestClient(t, backend)

	if _, _, err := client.Search(context.Background(), "Saga 72"); err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(backend.hubCalls) != 3 {
		t.Fatalf("expected 3 hub search attempts, got %d", len(backend.hubCalls))
	}
	wantFilters := [][]string{{"cbz"}, {"cbr"}, nil}
	for i, call := range backend.hubCalls {
		if fmt.Sprint(call.Query.FileExtensions) != fmt.Sprint(wantFilters[i]) {
			t.Errorf("variant %d file_extensions = %v, want %v", i+1, call.Query.FileExtensions, wantFilters[i])
		}
		if call.Query.Pattern != "Saga 72" {
			t.Errorf("variant %d pattern = %q", i+1, call.Query.Pattern)
		}
	}

	// A settle wait precedes every variant attempt.
	settle := 2 * time.Second
	for i := 0; i < 3; i++ {
		if (*sleeps)[i] != settle {
			t.Errorf("sleep %d = %v, want %v", i, (*sleeps)[i], settle)
		}
	}
}

func TestSearchPollsWithLinearBackoff(t *testing.T) {
	backend := &fakeBackend{
		hubSearch: acceptFirstVariant,
		results: func(call int) []searchResult {
			if call < 3 {
				return nil
			}
			return []searchResult{{ID: "1", Name: "Saga 72.cbz", Path: "/share/Saga 72.cbz", Size: 200, TTH: "BBB"}}
		},
	}
	client, sleeps := newTestClient(t, backend)

	if _, _, err := client.Search(context.Background(), "Saga 72"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if backend.resultCalls != 3 {
		t.Fatalf("expected 3 result fetches, got %d", backend.resultCalls)
	}

	// One settle wait for the accepted variant, then 7s, 12s, 17s.
	want := []time.Duration{2 * time.Second, 7 * time.Second, 12 * time.Second, 17 * time.Second}
	if len(*sleeps) != len(want) {
		t.Fatalf("recorded sleeps %v, want %v", *sleeps, want)
	}
	for i := range want {
		if (*sleeps)[i] != want[i] {
			t.Errorf("sleep %d = %v, want %v", i, (*sleeps)[i], want[i])
		}
	}
}

func TestSearchReportsNotFoundWhenEveryVariantFails(t *testing.T) {
	backend := &fakeBackend{
		hubSearch: func(int, hubSearchRequest) (int, string) {
			return http.StatusInternalServerError, "hub unavailable"
		},
	}
	client, _ := newTestClient(t, backend)

	candidate, sessionID, err := client.Search(context.Background(), "Saga 72")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if candidate != nil {
		t.Fatalf("expected no candidate, got %+v", candidate)
	}
	if sessionID != "42" {
		t.Fatalf("expected the session id even on failure, got %q", sessionID)
	}
}

func TestSearchReportsNotFoundWithoutAcceptedExtension(t *testing.T) {
	backend := &fakeBackend{
		hubSearch: acceptFirstVariant,
		results: func(int) []searchResult {
			return []searchResult{{ID: "1", Name: "Saga 72.pdf", Path: "/share/Saga 72.pdf", Size: 300, TTH: "CCC"}}
		},
	}
	client, _ := newTestClient(t, backend)

	if _, _, err := client.Search(context.Background(), "Saga 72"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestPollDelay(t *testing.T) {
	for attempt, want := range []time.Duration{7 * time.Second, 12 * time.Second, 17 * time.Second} {
		if got := PollDelay(attempt, 7, 5); got != want {
			t.Errorf("PollDelay(%d) = %v, want %v", attempt, got, want)
		}
	}
}
