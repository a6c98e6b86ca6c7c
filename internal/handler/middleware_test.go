package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"venuestore/internal/logger"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("first"), nil, mark("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	assertEqual(t, []string{"first", "second", "handler"}, order)
}

func TestRecover(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), Recover(logger.Nop()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assertEqual(t, http.StatusInternalServerError, rec.Code)
}

func TestLoggerRequestID(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := w.(http.Flusher); !ok {
			t.Error("recorder should stay flushable")
		}
		w.WriteHeader(http.StatusTeapot)
	}), Logger(logger.Nop()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assertEqual(t, http.StatusTeapot, rec.Code)
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("expected a generated request id")
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assertEqual(t, "abc-123", rec.Header().Get(RequestIDHeader))
}
