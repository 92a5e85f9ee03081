package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mhd0331/JinanCampaign/internal/http/middleware"
	"github.com/mhd0331/JinanCampaign/internal/repo"
	"github.com/mhd0331/JinanCampaign/internal/services"
	"github.com/mhd0331/JinanCampaign/internal/trainingctx"
)

// ---------- test DB ----------

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique DSN per call to avoid cross-test contamination
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db.Exec("PRAGMA foreign_keys=ON;")
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestHandlers wires the real services over db. The chat service has no
// model client, so every answer is the fallback reply.
func newTestHandlers(db *gorm.DB) *Handlers {
	cache := trainingctx.New(trainingctx.DBLoader(db), time.Minute)

	return New(Deps{
		Inquiries:   &services.InquiryService{DB: db},
		Chat:        services.NewChatService(db, nil, cache),
		Content:     &services.CMSService{DB: db},
		Training:    &services.TrainingService{DB: db, Cache: cache},
		Speech:      &services.SpeechService{DB: db},
		Suggestions: &services.SuggestionService{DB: db},
		Feedback:    &services.FeedbackService{DB: db},
		Updates:     &services.UpdateService{DB: db},
		Ping:        func(ctx context.Context) error { return repo.Ping(ctx, db) },
		Version:     "test",
	})
}

// newTestRouter mounts every endpoint behind the request-id and idempotency
// middleware, mirroring the production routing table.
func newTestRouter(t *testing.T, db *gorm.DB, h *Handlers) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{
		Scope: func(c *gin.Context) string {
			switch c.FullPath() {
			case "/api/chat":
				return services.ChatScope
			case "/api/citizen-suggestions/:id/support":
				return services.SupportScope(c.Param("id"))
			}
			return ""
		},
	}, func(ctx context.Context, scope, key string, now time.Time) (bool, error) {
		_, err := repo.GetIdempotency(ctx, db, scope, key, now)
		if err != nil {
			return false, nil
		}
		return true, nil
	}))

	r.GET("/health", h.Health)
	api := r.Group("/api")
	{
		api.POST("/inquiries", h.CreateInquiry)
		api.GET("/inquiries", h.ListInquiries)
		api.POST("/inquiries/:id/responded", h.MarkInquiryResponded)

		api.POST("/chat", h.PostChat)
		api.GET("/chat/:sessionId", h.ChatHistory)
		api.GET("/documents", h.ListDocuments)

		api.GET("/cms/content", h.ListContent)
		api.POST("/cms/content", h.CreateContent)
		api.GET("/cms/content/:key", h.GetContent)
		api.PUT("/cms/content/:key", h.UpdateContent)
		api.DELETE("/cms/content/:key", h.DeleteContent)

		api.GET("/ai-training/docs", h.ListTrainingDocs)
		api.POST("/ai-training/docs", h.CreateTrainingDoc)
		api.PUT("/ai-training/docs/:id", h.UpdateTrainingDoc)
		api.DELETE("/ai-training/docs/:id", h.DeleteTrainingDoc)
		api.GET("/ai-training/search", h.SearchTrainingDocs)
		api.GET("/ai-training/similar", h.SimilarTrainingDocs)
		api.GET("/ai-training/stats", h.TrainingStats)

		api.GET("/speech-training", h.ListSpeech)
		api.POST("/speech-training", h.CreateSpeech)
		api.PUT("/speech-training/:id", h.UpdateSpeech)
		api.DELETE("/speech-training/:id", h.DeleteSpeech)
		api.POST("/speech-training/:id/validate", h.ValidateSpeech)

		api.GET("/citizen-suggestions", h.ListSuggestions)
		api.POST("/citizen-suggestions", h.CreateSuggestion)
		api.GET("/citizen-suggestions/search", h.SearchSuggestions)
		api.GET("/citizen-suggestions/:id", h.GetSuggestion)
		api.PUT("/citizen-suggestions/:id", h.UpdateSuggestion)
		api.DELETE("/citizen-suggestions/:id", h.DeleteSuggestion)
		api.GET("/citizen-suggestions/:id/support", h.ListSupport)
		api.POST("/citizen-suggestions/:id/support", h.AddSupport)
		api.DELETE("/suggestion-support/:id", h.RemoveSupport)

		api.GET("/public-feedback", h.ListFeedback)
		api.GET("/public-feedback/moderation", h.ModerationQueue)
		api.POST("/public-feedback", h.CreateFeedback)
		api.PUT("/public-feedback/:id", h.UpdateFeedback)
		api.DELETE("/public-feedback/:id", h.DeleteFeedback)
		api.POST("/public-feedback/:id/moderate", h.ModerateFeedback)

		api.GET("/implementation-updates", h.ListUpdates)
		api.POST("/implementation-updates", h.CreateUpdate)
	}
	return r
}

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	db := newHandlerDB(t)
	return newTestRouter(t, db, newTestHandlers(db))
}

// ---------- request helpers ----------

func doJSON(r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var rd *bytes.Reader
	switch b := body.(type) {
	case nil:
		rd = bytes.NewReader(nil)
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("json: %v (body=%s)", err, w.Body.String())
	}
	return m
}

// field extracts body[key] as an object.
func field(t *testing.T, body map[string]any, key string) map[string]any {
	t.Helper()
	m, ok := body[key].(map[string]any)
	if !ok {
		t.Fatalf("missing object %q in %#v", key, body)
	}
	return m
}

// items extracts body[key] as an array.
func items(t *testing.T, body map[string]any, key string) []any {
	t.Helper()
	a, ok := body[key].([]any)
	if !ok {
		t.Fatalf("missing array %q in %#v", key, body)
	}
	return a
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status=%d want %d body=%s", w.Code, want, w.Body.String())
	}
}

func expectCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	expectStatus(t, w, status)
	body := decode(t, w)
	if body["success"] != false || body["code"] != code {
		t.Fatalf("want code %q, got %#v", code, body)
	}
	if s, _ := body["request_id"].(string); s == "" {
		t.Fatalf("missing request_id: %#v", body)
	}
}
