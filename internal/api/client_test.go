package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL+"/api", zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, srv
}

func TestGetDecodesJSON(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/museums" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("X-Request-Id header missing")
		}
		fmt.Fprint(w, `[{"museumId":1,"name":"Rijksmuseum"}]`)
	}))

	var museums []Museum
	if err := client.get(context.Background(), "/museums", nil, &museums); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(museums) != 1 || museums[0].Name != "Rijksmuseum" {
		t.Fatalf("museums = %+v", museums)
	}
}

func TestErrorCarriesStatusAndMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Route niet gevonden"}`)
	}))

	err := client.get(context.Background(), "/museums/1/routes/99", nil, nil)
	if !IsNotFound(err) {
		t.Fatalf("IsNotFound(%v) = false", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Message != "Route niet gevonden" {
		t.Fatalf("err = %v", err)
	}
}

func TestUnauthorizedTriggersRefreshAndRetry(t *testing.T) {
	var refreshed atomic.Bool
	var dataHits, refreshHits atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/refresh":
			refreshHits.Add(1)
			refreshed.Store(true)
			fmt.Fprint(w, `{"success":true,"accessToken":"fresh"}`)
		case "/api/progress":
			dataHits.Add(1)
			if !refreshed.Load() {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			fmt.Fprint(w, `[]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	var hooked string
	client.SetRefreshHook(func(auth AuthResponse) { hooked = auth.AccessToken })

	var out []RouteProgress
	if err := client.get(context.Background(), "/progress", nil, &out); err != nil {
		t.Fatalf("get after refresh: %v", err)
	}
	if got := dataHits.Load(); got != 2 {
		t.Fatalf("data hits = %d, want 2 (original + replay)", got)
	}
	if got := refreshHits.Load(); got != 1 {
		t.Fatalf("refresh hits = %d, want 1", got)
	}
	if hooked != "fresh" {
		t.Fatalf("refresh hook token = %q, want fresh", hooked)
	}
}

func TestConcurrentUnauthorizedSharesOneRefresh(t *testing.T) {
	const callers = 5
	var refreshed atomic.Bool
	var refreshHits atomic.Int32
	var arrived sync.WaitGroup
	arrived.Add(callers)

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/refresh":
			// Stay in flight long enough for every caller to park on it.
			time.Sleep(100 * time.Millisecond)
			refreshHits.Add(1)
			refreshed.Store(true)
			fmt.Fprint(w, `{"success":true}`)
		default:
			if !refreshed.Load() {
				arrived.Done()
				arrived.Wait()
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			fmt.Fprint(w, `{}`)
		}
	}))

	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = client.get(context.Background(), fmt.Sprintf("/museums/%d", i), nil, nil)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("caller %d: %v", i, err)
		}
	}
	if got := refreshHits.Load(); got != 1 {
		t.Fatalf("refresh hits = %d, want exactly 1", got)
	}
}

func TestAuthPathsNeverRefresh(t *testing.T) {
	var refreshHits atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			refreshHits.Add(1)
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))

	err := client.get(context.Background(), "/auth/me", nil, nil)
	if !IsUnauthorized(err) {
		t.Fatalf("err = %v, want 401", err)
	}
	if got := refreshHits.Load(); got != 0 {
		t.Fatalf("refresh hits = %d, want 0 for an auth-namespace request", got)
	}
}

func TestRetriedRequestIsNotRetriedAgain(t *testing.T) {
	var dataHits, refreshHits atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			refreshHits.Add(1)
			fmt.Fprint(w, `{"success":true}`)
			return
		}
		dataHits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))

	err := client.get(context.Background(), "/progress", nil, nil)
	if !IsUnauthorized(err) {
		t.Fatalf("err = %v, want 401", err)
	}
	if got := dataHits.Load(); got != 2 {
		t.Fatalf("data hits = %d, want 2 (one retry, no loop)", got)
	}
	if got := refreshHits.Load(); got != 1 {
		t.Fatalf("refresh hits = %d, want 1", got)
	}
}

func TestRefreshFailurePropagatesOriginal401(t *testing.T) {
	var dataHits atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		dataHits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))

	err := client.get(context.Background(), "/progress", nil, nil)
	if !IsUnauthorized(err) {
		t.Fatalf("err = %v, want 401", err)
	}
	if got := dataHits.Load(); got != 1 {
		t.Fatalf("data hits = %d, want 1 (no replay after failed refresh)", got)
	}
}

func TestMultipartBodySurvivesRefreshReplay(t *testing.T) {
	var refreshed atomic.Bool
	var seenBodies []string
	var mu sync.Mutex

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			refreshed.Store(true)
			fmt.Fprint(w, `{"success":true}`)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		file, _, err := r.FormFile("image")
		if err != nil {
			t.Errorf("form field image: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		mu.Lock()
		seenBodies = append(seenBodies, string(data))
		mu.Unlock()
		if !refreshed.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"isMatch":true}`)
	}))

	svc := NewVerificationService(client)
	result, err := svc.VerifyPainting(context.Background(), 10, 7, "foto.jpg", strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("VerifyPainting: %v", err)
	}
	if !result.IsMatch {
		t.Fatalf("result = %+v", result)
	}
	if len(seenBodies) != 2 {
		t.Fatalf("upload attempts = %d, want 2", len(seenBodies))
	}
	for i, body := range seenBodies {
		if body != "jpeg-bytes" {
			t.Fatalf("attempt %d body = %q, want jpeg-bytes", i, body)
		}
	}
}

func TestUpdateSequenceSendsQueryParameter(t *testing.T) {
	var gotMethod, gotPath, gotSeq string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotSeq = r.URL.Query().Get("sequenceNumber")
	}))

	svc := NewRouteStopAdminService(client)
	if err := svc.UpdateSequence(context.Background(), 42, 3); err != nil {
		t.Fatalf("UpdateSequence: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Fatalf("method = %q, want PATCH", gotMethod)
	}
	if gotPath != "/api/admin/route-stops/42/sequence" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotSeq != "3" {
		t.Fatalf("sequenceNumber = %q, want 3", gotSeq)
	}
}

func TestOptionalYearOmittedWhenAbsent(t *testing.T) {
	var gotBody string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		fmt.Fprint(w, `{"paintingId":1}`)
	}))

	svc := NewPaintingAdminService(client)
	_, err := svc.Create(context.Background(), PaintingInput{MuseumID: 1, Title: "t", Artist: "a"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if strings.Contains(gotBody, "year") {
		t.Fatalf("body %q carries a year the form never filled", gotBody)
	}
}
