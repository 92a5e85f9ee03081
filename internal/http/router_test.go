package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mhd0331/JinanCampaign/internal/config"
	"github.com/mhd0331/JinanCampaign/internal/repo"
	"github.com/mhd0331/JinanCampaign/internal/services"
)

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func testConfig() config.Config {
	return config.Config{
		Env:              "development",
		Version:          "test",
		MaxFieldLen:      2000,
		EdgeRate:         config.RateConfig{Limit: 1000, Window: 5 * time.Minute},
		ChatRate:         config.RateConfig{Limit: 10, Window: time.Minute},
		LLM:              config.LLMConfig{Timeout: time.Second, ContactChannel: "선거사무소"},
		TrainingCacheTTL: time.Minute,
		SessionSecret:    "0123456789abcdef0123456789abcdef",
		IdempotencyTTL:   time.Hour,
		OTEL:             config.OTELConfig{ServiceName: "test-svc"},
	}
}

func newRouter(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, Deps{DB: newTestDB(t)}, cfg)
	return r
}

func send(r http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRoutes_CORSAllowAll_Health_Metrics_Fallbacks(t *testing.T) {
	r := newRouter(t, testConfig())

	// /health works
	w := send(r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	// CORS (AllowAllOrigins) → header "*"
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing X-Request-ID")
	}

	// /metrics is wired
	w = send(r, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}
	if !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Fatalf("request counter not exported")
	}

	// NoRoute → 404 envelope
	w = send(r, http.MethodGet, "/nope", "")
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), `"code":"not_found"`) {
		t.Fatalf("GET /nope: %d %s", w.Code, w.Body.String())
	}

	// NoMethod → 405 (POST /health)
	w = send(r, http.MethodPost, "/health", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health expected 405, got %d", w.Code)
	}

	// swagger is off by default
	if w = send(r, http.MethodGet, "/swagger/index.html", ""); w.Code != http.StatusNotFound {
		t.Fatalf("swagger should be disabled, got %d", w.Code)
	}
}

func TestRegisterRoutes_CORSWithOrigins_HeaderEcho(t *testing.T) {
	cfg := testConfig()
	cfg.CORS = config.CORSConfig{AllowedOrigins: []string{"https://jinan.example"}}
	r := newRouter(t, cfg)

	w := send(r, http.MethodGet, "/health", "", "Origin", "https://jinan.example")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://jinan.example" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatalf("credentials must be allowed for listed origins")
	}

	w = send(r, http.MethodGet, "/health", "", "Origin", "https://evil.example")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unlisted origin echoed: %q", got)
	}
}

func TestSecurityHeadersAndSwagger(t *testing.T) {
	cfg := testConfig()
	cfg.SwaggerEnabled = true
	r := newRouter(t, cfg)

	w := send(r, http.MethodGet, "/api/documents", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/documents = %d", w.Code)
	}
	for _, h := range []string{"Content-Security-Policy", "X-Content-Type-Options", "X-Frame-Options", "Referrer-Policy"} {
		if w.Header().Get(h) == "" {
			t.Fatalf("missing %s", h)
		}
	}

	if w = send(r, http.MethodGet, "/swagger/doc.json", ""); w.Code != http.StatusOK {
		t.Fatalf("swagger doc.json = %d", w.Code)
	}
}

func TestChatLimiter_ReplaysBypass(t *testing.T) {
	cfg := testConfig()
	cfg.ChatRate = config.RateConfig{Limit: 2, Window: time.Minute}
	r := newRouter(t, cfg)

	body := `{"message":"안녕하세요","sessionId":"s1"}`
	if w := send(r, http.MethodPost, "/api/chat", body, "Idempotency-Key", "k1"); w.Code != http.StatusOK {
		t.Fatalf("first chat: %d %s", w.Code, w.Body.String())
	}
	// replays do not consume the budget
	for i := 0; i < 3; i++ {
		w := send(r, http.MethodPost, "/api/chat", body, "Idempotency-Key", "k1")
		if w.Code != http.StatusOK || w.Header().Get("Idempotency-Replayed") != "true" {
			t.Fatalf("replay %d: %d %v", i, w.Code, w.Header())
		}
	}
	if w := send(r, http.MethodPost, "/api/chat", body); w.Code != http.StatusOK {
		t.Fatalf("second chat: %d", w.Code)
	}

	w := send(r, http.MethodPost, "/api/chat", body)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("third chat expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatalf("missing Retry-After")
	}
	var er map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &er)
	if er["code"] != "rate_limited" || er["success"] != false {
		t.Fatalf("unexpected 429 body: %#v", er)
	}

	// other routes are unaffected by the chat limiter
	if w := send(r, http.MethodGet, "/api/chat/s1", ""); w.Code != http.StatusOK {
		t.Fatalf("history after chat limit: %d", w.Code)
	}
}

func TestEdgeLimiter(t *testing.T) {
	cfg := testConfig()
	cfg.EdgeRate = config.RateConfig{Limit: 3, Window: time.Minute}
	r := newRouter(t, cfg)

	for i := 0; i < 3; i++ {
		if w := send(r, http.MethodGet, "/api/documents", ""); w.Code != http.StatusOK {
			t.Fatalf("request %d: %d", i, w.Code)
		}
	}
	if w := send(r, http.MethodGet, "/api/documents", ""); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
}

func TestInputGuard_Wired(t *testing.T) {
	r := newRouter(t, testConfig())

	w := send(r, http.MethodPost, "/api/inquiries",
		`{"name":"홍길동","phone":"010","district":"진안읍","message":"1; DROP TABLE inquiries"}`)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), `"code":"invalid_input"`) {
		t.Fatalf("expected guard rejection, got %d %s", w.Code, w.Body.String())
	}

	w = send(r, http.MethodPost, "/api/inquiries",
		`{"name":"홍길동","phone":"010","district":"진안읍","message":"<script>alert(1)</script>면담 요청"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create inquiry: %d %s", w.Code, w.Body.String())
	}
	var body struct {
		Inquiry struct {
			Message string `json:"message"`
		} `json:"inquiry"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Inquiry.Message != "면담 요청" {
		t.Fatalf("script not stripped: %q", body.Inquiry.Message)
	}
}

func TestSupportIdempotencyScopedPerSuggestion(t *testing.T) {
	r := newRouter(t, testConfig())

	create := func() string {
		w := send(r, http.MethodPost, "/api/citizen-suggestions",
			`{"title":"도서관 연장 운영","description":"주말 운영","category":"문화","submitterName":"박","submitterDistrict":"부귀면"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("create suggestion: %d %s", w.Code, w.Body.String())
		}
		var b struct {
			Suggestion struct {
				ID string `json:"id"`
			} `json:"suggestion"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &b)
		return b.Suggestion.ID
	}
	a, b := create(), create()

	// the same key on two suggestions is two independent operations
	if w := send(r, http.MethodPost, "/api/citizen-suggestions/"+a+"/support", `{}`, "Idempotency-Key", "same"); w.Code != http.StatusCreated {
		t.Fatalf("support a: %d", w.Code)
	}
	if w := send(r, http.MethodPost, "/api/citizen-suggestions/"+b+"/support", `{}`, "Idempotency-Key", "same"); w.Code != http.StatusCreated {
		t.Fatalf("support b: %d %s", w.Code, w.Body.String())
	}
	if w := send(r, http.MethodPost, "/api/citizen-suggestions/"+a+"/support", `{}`, "Idempotency-Key", "same"); w.Code != http.StatusOK {
		t.Fatalf("replay a: %d", w.Code)
	}
}

func Test_idempotencyScope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var got string
	capture := func(c *gin.Context) { got = idempotencyScope(c) }
	r.POST("/api/chat", capture)
	r.POST("/api/citizen-suggestions/:id/support", capture)
	r.POST("/api/inquiries", capture)

	cases := map[string]string{
		"/api/chat":                           services.ChatScope,
		"/api/citizen-suggestions/x1/support": services.SupportScope("x1"),
		"/api/inquiries":                      "",
	}
	for path, want := range cases {
		got = "unset"
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, path, nil))
		if got != want {
			t.Fatalf("%s: scope=%q want %q", path, got, want)
		}
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// tiny cap to trigger MaxBytesReader
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB")) // 12 bytes
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}
