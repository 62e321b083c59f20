package middleware

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type fakeIdempotencyStore struct {
	data map[string]string
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{data: make(map[string]string)}
}

func (f *fakeIdempotencyStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (f *fakeIdempotencyStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	str, _ := value.(string)
	f.data[key] = str
	return true, nil
}

func (f *fakeIdempotencyStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeIdempotencyStore) IdempotencyKey(scope, id string) string {
	return fmt.Sprintf("fake:%s:%s", scope, id)
}

func requestWithPattern(method, url, pattern string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, url, body)
	rc := chi.NewRouteContext()
	rc.RoutePatterns = []string{pattern}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func TestRouteTTLSelection(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		pattern string
		want    time.Duration
		matched bool
	}{
		{name: "submit is critical", method: http.MethodPost, pattern: "/api/v1/purchase-orders/drafts/{draftID}/submit", want: criticalIdempotencyTTL, matched: true},
		{name: "receive is critical", method: http.MethodPost, pattern: "/api/v1/purchase-orders/{id}/receive", want: criticalIdempotencyTTL, matched: true},
		{name: "create supplier is standard", method: http.MethodPost, pattern: "/api/v1/suppliers", want: defaultIdempotencyTTL, matched: true},
		{name: "put cart is standard", method: http.MethodPut, pattern: "/api/v1/cart", want: defaultIdempotencyTTL, matched: true},
		{name: "get is unmatched", method: http.MethodGet, pattern: "/api/v1/products", matched: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := routeTTL(tc.method, tc.pattern)
			if ok != tc.matched {
				t.Fatalf("matched=%v want %v", ok, tc.matched)
			}
			if ok && got != tc.want {
				t.Fatalf("ttl=%v want %v", got, tc.want)
			}
		})
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0
	handler := Idempotency(store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"po-1"}}`))
	}))

	body := `{"supplier_id":"s1"}`
	pattern := "/api/v1/purchase-orders/drafts/{draftID}/submit"

	first := requestWithPattern(http.MethodPost, "/api/v1/purchase-orders/drafts/d1/submit", pattern, strings.NewReader(body))
	first.Header.Set("Idempotency-Key", "abc")
	w1 := httptest.NewRecorder()
	handler.ServeHTTP(w1, first)

	second := requestWithPattern(http.MethodPost, "/api/v1/purchase-orders/drafts/d1/submit", pattern, strings.NewReader(body))
	second.Header.Set("Idempotency-Key", "abc")
	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, second)

	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
	if w2.Code != http.StatusCreated {
		t.Fatalf("expected replayed 201 got %d", w2.Code)
	}
	if w1.Body.String() != w2.Body.String() {
		t.Fatalf("replayed body mismatch: %q vs %q", w1.Body.String(), w2.Body.String())
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := newFakeIdempotencyStore()
	handler := Idempotency(store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	pattern := "/api/v1/purchase-orders/drafts/{draftID}/submit"

	first := requestWithPattern(http.MethodPost, "/api/v1/purchase-orders/drafts/d1/submit", pattern, strings.NewReader(`{"a":1}`))
	first.Header.Set("Idempotency-Key", "abc")
	handler.ServeHTTP(httptest.NewRecorder(), first)

	second := requestWithPattern(http.MethodPost, "/api/v1/purchase-orders/drafts/d1/submit", pattern, strings.NewReader(`{"a":2}`))
	second.Header.Set("Idempotency-Key", "abc")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, second)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", w.Code)
	}
}

func TestIdempotencyPassthroughWithoutKey(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0
	handler := Idempotency(store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))

	pattern := "/api/v1/suppliers"
	for i := 0; i < 2; i++ {
		req := requestWithPattern(http.MethodPost, "/api/v1/suppliers", pattern, strings.NewReader(`{}`))
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
	if calls != 2 {
		t.Fatalf("expected handler to run twice, ran %d times", calls)
	}
}
