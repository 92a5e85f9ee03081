// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// input screening, CORS, security headers, idempotency, and rate limiting.
//
//	@title						Jinan Campaign API
//	@version					1.0
//	@description				Campaign site backend: contact inquiries, the AI chat assistant, CMS, training material and the citizen participation portal.
//	@BasePath					/
//	@schemes					http https
//	@securityDefinitions.apikey	IdempotencyKey
//	@in							header
//	@name						Idempotency-Key
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/mhd0331/JinanCampaign/docs"
	"github.com/mhd0331/JinanCampaign/internal/config"
	"github.com/mhd0331/JinanCampaign/internal/http/handlers"
	"github.com/mhd0331/JinanCampaign/internal/http/middleware"
	"github.com/mhd0331/JinanCampaign/internal/llm"
	"github.com/mhd0331/JinanCampaign/internal/observability"
	"github.com/mhd0331/JinanCampaign/internal/repo"
	"github.com/mhd0331/JinanCampaign/internal/services"
	"github.com/mhd0331/JinanCampaign/internal/trainingctx"
)

const (
	// maxBodyBytes caps every request body.
	maxBodyBytes = 1 << 20
	// sessionCookie names the signed cookie holding the chat session id.
	sessionCookie = "jinan_session"
	sessionMaxAge = 24 * time.Hour

	chatRoute    = "/api/chat"
	supportRoute = "/api/citizen-suggestions/:id/support"
)

// Deps carries what RegisterRoutes cannot build from configuration alone.
//
// Model is nil when no model credential is configured; chat then always
// answers with the fallback reply. Limits is the shared window store of the
// rate limiters (nil means per-process memory).
type Deps struct {
	DB     *gorm.DB
	Model  llm.Completer
	Limits middleware.Store
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and returns the training-context cache it built, so callers can
// warm it.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Compression and body size limit
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Edge rate limiter (per IP, bypass on replay)
//  9. Input guard (sanitize + screen body, query, params)
//  10. CORS, security headers, cookie session
func RegisterRoutes(r *gin.Engine, d Deps, cfg config.Config) *trainingctx.Cache {
	r.HandleMethodNotAllowed = true
	db := d.DB

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(serviceName(cfg)))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{middleware.HeaderIdempotencyKey},
	}))

	// 4) Panic recovery to JSON 500; stack traces only outside production
	r.Use(middleware.Recovery(!cfg.IsProduction()))

	// 5) gzip responses, cap request bodies
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	r.Use(limitBody(maxBodyBytes))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Idempotency validation for the two retry-safe POSTs
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200, Scope: idempotencyScope},
		func(ctx context.Context, scope, key string, now time.Time) (bool, error) {
			_, err := repo.GetIdempotency(ctx, db, scope, key, now)
			if repo.IsNotFound(err) {
				return false, nil
			}
			return err == nil, err
		},
	))

	// 8) Edge limiter on everything
	edge := middleware.NewRateLimiter("edge", cfg.EdgeRate.Limit, cfg.EdgeRate.Window, middleware.KeyByClientIP(), d.Limits)
	r.Use(edge.Handler())

	// 9) Input guard
	r.Use(middleware.InputGuard(middleware.GuardOptions{MaxFieldLen: cfg.MaxFieldLen}))

	// 10) CORS posture, security headers, signed cookie session
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
	}))
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionCookie, store))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/cache/model
	cache := trainingctx.New(trainingctx.DBLoader(db), cfg.TrainingCacheTTL)

	chatSvc := services.NewChatService(db, d.Model, cache)
	chatSvc.Timeout = cfg.LLM.Timeout
	chatSvc.ContactChannel = cfg.LLM.ContactChannel
	chatSvc.IdempotencyTTL = cfg.IdempotencyTTL

	h := handlers.New(handlers.Deps{
		Inquiries:   &services.InquiryService{DB: db},
		Chat:        chatSvc,
		Content:     &services.CMSService{DB: db},
		Training:    &services.TrainingService{DB: db, Cache: cache},
		Speech:      &services.SpeechService{DB: db},
		Suggestions: &services.SuggestionService{DB: db, IdempotencyTTL: cfg.IdempotencyTTL},
		Feedback:    &services.FeedbackService{DB: db},
		Updates:     &services.UpdateService{DB: db},
		Ping:        func(ctx context.Context) error { return repo.Ping(ctx, db) },
		Version:     cfg.Version,
	})

	// Liveness/health
	r.GET("/health", h.Health)

	chatLimit := middleware.NewRateLimiter("chat", cfg.ChatRate.Limit, cfg.ChatRate.Window, middleware.KeyByClientIP(), d.Limits)

	api := r.Group("/api")
	{
		// Inquiries
		api.POST("/inquiries", h.CreateInquiry)
		api.GET("/inquiries", h.ListInquiries)
		api.POST("/inquiries/:id/responded", h.MarkInquiryResponded)

		// Chat
		api.POST("/chat", chatLimit.Handler(), h.PostChat)
		api.GET("/chat/:sessionId", h.ChatHistory)

		// Documents
		api.GET("/documents", h.ListDocuments)

		// CMS
		api.GET("/cms/content", h.ListContent)
		api.POST("/cms/content", h.CreateContent)
		api.GET("/cms/content/:key", h.GetContent)
		api.PUT("/cms/content/:key", h.UpdateContent)
		api.DELETE("/cms/content/:key", h.DeleteContent)

		// AI training
		api.GET("/ai-training/docs", h.ListTrainingDocs)
		api.POST("/ai-training/docs", h.CreateTrainingDoc)
		api.PUT("/ai-training/docs/:id", h.UpdateTrainingDoc)
		api.DELETE("/ai-training/docs/:id", h.DeleteTrainingDoc)
		api.GET("/ai-training/search", h.SearchTrainingDocs)
		api.GET("/ai-training/similar", h.SimilarTrainingDocs)
		api.GET("/ai-training/stats", h.TrainingStats)

		// Speech training
		api.GET("/speech-training", h.ListSpeech)
		api.POST("/speech-training", h.CreateSpeech)
		api.PUT("/speech-training/:id", h.UpdateSpeech)
		api.DELETE("/speech-training/:id", h.DeleteSpeech)
		api.POST("/speech-training/:id/validate", h.ValidateSpeech)

		// Citizen suggestions and support
		api.GET("/citizen-suggestions", h.ListSuggestions)
		api.POST("/citizen-suggestions", h.CreateSuggestion)
		api.GET("/citizen-suggestions/search", h.SearchSuggestions)
		api.GET("/citizen-suggestions/:id", h.GetSuggestion)
		api.PUT("/citizen-suggestions/:id", h.UpdateSuggestion)
		api.DELETE("/citizen-suggestions/:id", h.DeleteSuggestion)
		api.GET("/citizen-suggestions/:id/support", h.ListSupport)
		api.POST("/citizen-suggestions/:id/support", h.AddSupport)
		api.DELETE("/suggestion-support/:id", h.RemoveSupport)

		// Public feedback
		api.GET("/public-feedback", h.ListFeedback)
		api.GET("/public-feedback/moderation", h.ModerationQueue)
		api.POST("/public-feedback", h.CreateFeedback)
		api.PUT("/public-feedback/:id", h.UpdateFeedback)
		api.DELETE("/public-feedback/:id", h.DeleteFeedback)
		api.POST("/public-feedback/:id/moderate", h.ModerateFeedback)

		// Implementation updates
		api.GET("/implementation-updates", h.ListUpdates)
		api.POST("/implementation-updates", h.CreateUpdate)
	}
	return cache
}

// idempotencyScope namespaces Idempotency-Key per operation; other routes
// ignore the header.
func idempotencyScope(c *gin.Context) string {
	switch c.FullPath() {
	case chatRoute:
		return services.ChatScope
	case supportRoute:
		return services.SupportScope(c.Param("id"))
	}
	return ""
}

// corsMiddleware allows any origin (without credentials) when no allowlist
// is configured; otherwise only the listed origins, with credentials so the
// session cookie travels.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	methods := []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	headers := []string{"Origin", "Content-Type", "Accept", "X-Request-ID", middleware.HeaderIdempotencyKey}
	expose := []string{"X-Request-ID", "ETag", "Retry-After", middleware.HeaderIdempotencyReplayed,
		"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"}

	if len(origins) == 0 {
		return []gin.HandlerFunc{
			// Force ACAO: * even for requests without an Origin header.
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(cors.Config{
				AllowAllOrigins:  true,
				AllowMethods:     methods,
				AllowHeaders:     headers,
				ExposeHeaders:    expose,
				AllowCredentials: false, // must remain false with AllowAllOrigins
				MaxAge:           12 * time.Hour,
			}),
		}
	}
	return []gin.HandlerFunc{cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     methods,
		AllowHeaders:     headers,
		ExposeHeaders:    expose,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})}
}

func serviceName(cfg config.Config) string {
	if cfg.OTEL.ServiceName != "" {
		return cfg.OTEL.ServiceName
	}
	return observability.DefaultServiceName
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
