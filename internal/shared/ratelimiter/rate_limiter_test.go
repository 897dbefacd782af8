package ratelimiter

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestLimiter_AllowWithinBudget(t *testing.T) {
	t.Parallel()

	l := NewLimiter(Config{RequestsPerWindow: 3, Window: time.Minute, Burst: 3})

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Error("fourth request should be rejected")
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	l := NewLimiter(Config{RequestsPerWindow: 1, Window: time.Minute, Burst: 1})

	if !l.Allow("10.0.0.1") {
		t.Fatal("first client should be allowed")
	}
	if l.Allow("10.0.0.1") {
		t.Error("first client should be exhausted")
	}
	if !l.Allow("10.0.0.2") {
		t.Error("second client should have its own budget")
	}
}

func TestLimiter_RefillsOverTime(t *testing.T) {
	t.Parallel()

	// 100 requests per second refills a single-token budget within 10ms.
	l := NewLimiter(Config{RequestsPerWindow: 100, Window: time.Second, Burst: 1})

	if !l.Allow("10.0.0.1") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("burst should be spent")
	}

	time.Sleep(20 * time.Millisecond)
	if !l.Allow("10.0.0.1") {
		t.Error("budget should have refilled")
	}
}

func TestMiddleware_Returns429(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(Middleware(Config{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("expected first two requests to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected third request to get 429, got %d", codes[2])
	}
}

func TestPerMinute(t *testing.T) {
	t.Parallel()

	cfg := PerMinute(60)
	if cfg.RequestsPerWindow != 60 || cfg.Window != time.Minute || cfg.Burst != 60 {
		t.Errorf("unexpected profile: %+v", cfg)
	}
}
