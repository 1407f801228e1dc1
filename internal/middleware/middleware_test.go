package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/popeskul/gridpulse/internal/api"
	"github.com/popeskul/gridpulse/internal/metrics"
	"github.com/popeskul/gridpulse/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "generated when missing", incoming: "", keep: false},
		{name: "propagated when well formed", incoming: "req-42.abc_DEF", keep: true},
		{name: "replaced when it carries control characters", incoming: "abc\nlevel=error", keep: false},
		{name: "replaced when too long", incoming: strings.Repeat("a", 65), keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = middleware.GetRequestID(r.Context())
			}))

			req := httptest.NewRequest("GET", "/test", nil)
			if tt.incoming != "" {
				req.Header.Set(middleware.RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if seen == "" {
				t.Fatal("Expected request ID in context")
			}
			if got := w.Header().Get(middleware.RequestIDHeader); got != seen {
				t.Errorf("Expected response header %q, got %q", seen, got)
			}
			if tt.keep && seen != tt.incoming {
				t.Errorf("Expected incoming id %q to be kept, got %q", tt.incoming, seen)
			}
			if !tt.keep && seen == tt.incoming {
				t.Errorf("Expected incoming id %q to be replaced", tt.incoming)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	// Create rate limiter with 1 request per second
	rl := middleware.NewRateLimiter(rate.Limit(1), 1)
	defer rl.Stop()

	handler := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// First request should succeed
	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = "127.0.0.1:1234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	// Same host on a new connection shares the bucket
	req = httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = "127.0.0.1:5678"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", w.Code)
	}

	var resp api.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Expected JSON error body: %v", err)
	}
	if resp.Error != middleware.ErrorCodeRateLimitExceeded {
		t.Errorf("Expected error code %s, got %s", middleware.ErrorCodeRateLimitExceeded, resp.Error)
	}

	if rl.Visitors() != 1 {
		t.Errorf("Expected 1 tracked visitor, got %d", rl.Visitors())
	}

	// Wait and try again
	time.Sleep(time.Second)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 after waiting, got %d", w.Code)
	}
}

func TestRateLimiter_ExemptPath(t *testing.T) {
	rl := middleware.NewRateLimiter(rate.Limit(1), 1, "/api/whatsapp/webhook")
	defer rl.Stop()

	handler := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("POST", "/api/whatsapp/webhook", nil)
		req.RemoteAddr = "54.172.60.1:443"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected provider callback %d to pass, got %d", i, w.Code)
		}
	}

	if rl.Visitors() != 0 {
		t.Errorf("Expected exempt requests to stay untracked, got %d visitors", rl.Visitors())
	}
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := middleware.NewRateLimiter(rate.Limit(1), 1)
	rl.Stop()
	rl.Stop()
}

func TestCORS(t *testing.T) {
	config := middleware.DefaultCORSConfig("http://localhost:3000")
	handler := middleware.CORS(config)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Test preflight request
	req := httptest.NewRequest("OPTIONS", "/api/issues", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Error("Expected CORS origin header")
	}
	if w.Header().Get("Access-Control-Allow-Methods") != "GET, POST, OPTIONS" {
		t.Errorf("Unexpected allowed methods %q", w.Header().Get("Access-Control-Allow-Methods"))
	}

	// Origins outside the list get no CORS headers
	req = httptest.NewRequest("GET", "/api/issues", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("Expected no CORS origin header for unlisted origin")
	}
	if w.Header().Get("Vary") != "Origin" {
		t.Error("Expected Vary: Origin")
	}
}

func TestRecovery(t *testing.T) {
	logger := zap.NewNop()

	handler := middleware.Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()

	// Should not panic
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500 after panic, got %d", w.Code)
	}

	var resp api.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Expected JSON error body: %v", err)
	}
	if resp.Error != middleware.ErrorCodeInternal || resp.Timestamp == nil {
		t.Errorf("Unexpected error body %+v", resp)
	}
}

func TestLogger_ExposesResponseController(t *testing.T) {
	var deadlineErr error
	handler := middleware.Logger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadlineErr = http.NewResponseController(w).SetWriteDeadline(time.Time{})
		w.WriteHeader(http.StatusOK)
	}))

	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()

	if deadlineErr != nil {
		t.Errorf("Expected write deadline to be adjustable through the logger, got %v", deadlineErr)
	}
}

func TestTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(100 * time.Millisecond):
			w.WriteHeader(http.StatusOK)
		}
	})

	handler := middleware.Timeout(20*time.Millisecond, "/api/whatsapp/send")(slow)

	req := httptest.NewRequest("GET", "/api/issues", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusRequestTimeout {
		t.Errorf("Expected status 408, got %d", w.Code)
	}

	// Exempt path has no deadline
	req = httptest.NewRequest("POST", "/api/whatsapp/send", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 for exempt path, got %d", w.Code)
	}
}

func TestMetrics(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.Metrics)
	r.Get("/api/issues", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(metrics.RequestCount.WithLabelValues("/api/issues", "GET", "418"))

	req := httptest.NewRequest("GET", "/api/issues?estate=Karen", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	after := testutil.ToFloat64(metrics.RequestCount.WithLabelValues("/api/issues", "GET", "418"))
	if after-before != 1 {
		t.Errorf("Expected request counter to grow by 1, got %v", after-before)
	}

	before = testutil.ToFloat64(metrics.RequestCount.WithLabelValues("unmatched", "GET", "404"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/nope", nil))
	after = testutil.ToFloat64(metrics.RequestCount.WithLabelValues("unmatched", "GET", "404"))
	if after-before != 1 {
		t.Errorf("Expected unmatched counter to grow by 1, got %v", after-before)
	}
}
