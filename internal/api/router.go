package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/kidsphere/kidsphere/internal/api/handlers"
	"github.com/kidsphere/kidsphere/internal/api/middleware"
	"github.com/kidsphere/kidsphere/internal/audit"
	"github.com/kidsphere/kidsphere/internal/auth"
	"github.com/kidsphere/kidsphere/internal/cache"
	"github.com/kidsphere/kidsphere/internal/chatbot"
	"github.com/kidsphere/kidsphere/internal/config"
	"github.com/kidsphere/kidsphere/internal/llm"
	"github.com/kidsphere/kidsphere/internal/moderation"
	"github.com/kidsphere/kidsphere/internal/queue"
	"github.com/kidsphere/kidsphere/internal/search"
	"github.com/kidsphere/kidsphere/internal/storage"
	"github.com/kidsphere/kidsphere/internal/video"
)

type Router struct {
	mux   *chi.Mux
	db    *pgxpool.Pool
	redis *redis.Client
	cfg   *config.Config
	jwt   *auth.JWTMiddleware
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		db:    db,
		redis: rdb,
		cfg:   cfg,
		jwt:   auth.NewJWTMiddleware(cfg.Auth.JWTSecret),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	// Health endpoints (no auth)
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Initialize services
	lexicon := moderation.DefaultLexicon()
	classifier := moderation.NewQueryClassifier(lexicon)
	sanitizer := moderation.NewSanitizer(lexicon)
	msgFilter := moderation.NewMessageFilter(lexicon)

	store := storage.NewStore(rt.db)
	auditSvc := audit.NewService(rt.db)
	queueClient := queue.NewClient(rt.cfg.Redis)
	redisCache := cache.NewCache(rt.redis)

	searchClient := search.NewClient(rt.cfg.Search.TavilyKey, rt.cfg.Search.Timeout)
	videoClient := video.NewClient(rt.cfg.YouTube.APIKey, rt.cfg.YouTube.Timeout)

	var gw llm.Gateway
	if rt.cfg.Chatbot.CerebrasKey != "" || rt.cfg.Chatbot.AnthropicKey != "" {
		gw = llm.NewGateway(llm.Config{
			CerebrasKey:      rt.cfg.Chatbot.CerebrasKey,
			AnthropicKey:     rt.cfg.Chatbot.AnthropicKey,
			DefaultProvider:  rt.cfg.Chatbot.DefaultProvider,
			FallbackProvider: rt.cfg.Chatbot.FallbackProvider,
			MaxRetries:       rt.cfg.Chatbot.MaxRetries,
		})
	}
	chatbotSvc := chatbot.NewService(gw, store, rt.cfg.Chatbot.Model)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.jwt.Authenticate)

		searchH := handlers.NewSearchHandler(classifier, sanitizer, searchClient, queueClient, rt.cfg.Search.ResultLimit)
		r.Get("/search", searchH.Search)

		chatH := handlers.NewChatHandler(msgFilter, store, queueClient)
		r.Route("/messages", func(r chi.Router) {
			r.Post("/", chatH.Send)
			r.Get("/{userID}/{friendID}", chatH.History)
		})

		chatbotH := handlers.NewChatbotHandler(chatbotSvc, store, queueClient)
		r.Route("/chatbot", func(r chi.Router) {
			r.Post("/", chatbotH.Ask)
			r.Get("/history", chatbotH.History)
		})

		videosH := handlers.NewVideosHandler(videoClient, store, redisCache, rt.cfg.YouTube.CacheTTL)
		r.Route("/videos", func(r chi.Router) {
			r.Get("/search", videosH.Search)
			r.Get("/{id}/eligibility", videosH.Eligibility)
		})

		// Parent-only routes
		adminH := handlers.NewAdminHandler(auditSvc)
		settingsH := handlers.NewSettingsHandler(store)
		r.Route("/admin", func(r chi.Router) {
			r.Use(rt.jwt.RequireRole(auth.RoleParent))
			r.Get("/moderation/events", adminH.ModerationEvents)
			r.Get("/moderation/summary", adminH.ModerationSummary)
			r.Get("/settings/{userID}", settingsH.Get)
			r.Put("/settings/{userID}", settingsH.Update)
		})
	})

	return r
}
