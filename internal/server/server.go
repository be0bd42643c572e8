package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/Lilac-Rose/gametracker/internal/config"
	"github.com/Lilac-Rose/gametracker/internal/handler"
	"github.com/Lilac-Rose/gametracker/internal/middleware"
	"github.com/Lilac-Rose/gametracker/internal/snapshot"
	"github.com/Lilac-Rose/gametracker/internal/steam"
	"github.com/Lilac-Rose/gametracker/internal/store"
	ws "github.com/Lilac-Rose/gametracker/internal/websocket"
)

type Server struct {
	hub          *ws.Hub
	gameH        *handler.GameHandler
	achievementH *handler.AchievementHandler
	challengeH   *handler.ChallengeHandler
	top10H       *handler.Top10Handler
	statsH       *handler.StatsHandler
	snapshotH    *handler.SnapshotHandler
	steamH       *handler.SteamHandler
	authH        *handler.AuthHandler
	batchH       *handler.BatchHandler
	settingsH    *handler.SettingsHandler
	sessionStore *store.SessionStore
	rateLimiter  *middleware.RateLimiter
	scheduler    *snapshot.Scheduler
	corsOrigins  []string
	logger       *slog.Logger
}

func New(db *sql.DB, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	hub := ws.NewHub(logger.With("component", "websocket"))

	gameStore := store.NewGameStore(db)
	achievementStore := store.NewAchievementStore(db)
	challengeStore := store.NewChallengeStore(db)
	top10Store := store.NewTop10Store(db)
	statsStore := store.NewStatsStore(db)
	snapshotStore := store.NewSnapshotStore(db)
	settingsStore := store.NewSettingsStore(db)
	sessionStore := store.NewSessionStore(db)

	steamClient := steam.NewClient(cfg.SteamAPIKey, cfg.SteamUserID)
	syncService := steam.NewSyncService(steamClient, gameStore, settingsStore, logger)
	scheduler := snapshot.NewScheduler(snapshotStore, settingsStore, hub, logger, cfg.SnapshotHour)

	authH, err := handler.NewAuthHandler(sessionStore, cfg.AdminPassword, logger.With("component", "auth"))
	if err != nil {
		return nil, err
	}

	return &Server{
		hub:          hub,
		gameH:        handler.NewGameHandler(gameStore, hub),
		achievementH: handler.NewAchievementHandler(achievementStore, gameStore, hub),
		challengeH:   handler.NewChallengeHandler(challengeStore, gameStore, hub),
		top10H:       handler.NewTop10Handler(top10Store, hub),
		statsH:       handler.NewStatsHandler(statsStore),
		snapshotH:    handler.NewSnapshotHandler(snapshotStore, scheduler),
		steamH:       handler.NewSteamHandler(steamClient, syncService, hub),
		authH:        authH,
		batchH:       handler.NewBatchHandler(gameStore, hub),
		settingsH:    handler.NewSettingsHandler(settingsStore),
		sessionStore: sessionStore,
		rateLimiter:  middleware.NewRateLimiter(),
		scheduler:    scheduler,
		corsOrigins:  cfg.CORSOrigins,
		logger:       logger,
	}, nil
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// Scheduler returns the snapshot scheduler so main can run it.
func (s *Server) Scheduler() *snapshot.Scheduler {
	return s.scheduler
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Reads are public: this is a single-user tracker and the library itself
	// is not a secret. Only mutations need a session.
	mux.HandleFunc("GET /api/games", s.gameH.List)
	mux.HandleFunc("GET /api/games/{id}", s.gameH.Get)
	mux.HandleFunc("GET /api/games/{id}/achievements", s.achievementH.List)
	mux.HandleFunc("GET /api/games/{id}/completionist", s.challengeH.ListForGame)
	mux.HandleFunc("GET /api/completionist/all", s.challengeH.ListAll)
	mux.HandleFunc("GET /api/top10", s.top10H.List)
	mux.HandleFunc("GET /api/stats", s.statsH.Get)
	mux.HandleFunc("GET /api/random-game", s.gameH.Random)
	mux.HandleFunc("GET /api/daily-snapshots/{date}", s.snapshotH.GetDay)
	mux.HandleFunc("GET /api/steam/search", s.steamH.Search)
	mux.HandleFunc("GET /api/steam/achievements/{appID}", s.steamH.Achievements)
	mux.HandleFunc("GET /api/steam/game-details/{appID}", s.steamH.Details)
	mux.HandleFunc("GET /api/settings", s.settingsH.Get)

	// Auth
	mux.HandleFunc("POST /api/login", s.rateLimitedHandler(s.authH.Login))
	mux.HandleFunc("POST /api/logout", s.authH.Logout)
	mux.HandleFunc("GET /api/auth/check", s.authH.Check)

	s.registerProtectedRoutes(mux)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	mux.HandleFunc("GET /health", s.healthHandler)

	var h http.Handler = mux
	if len(s.corsOrigins) > 0 {
		h = cors.New(cors.Options{
			AllowedOrigins:   s.corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		}).Handler(h)
	}

	return middleware.RequestLogger(s.logger.With("component", "http"))(h)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	protected := middleware.RequireAuth(s.sessionStore)
	guard := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, protected(h))
	}

	// Game mutations
	guard("POST /api/games", s.gameH.Create)
	guard("PUT /api/games/{id}", s.gameH.Update)
	guard("DELETE /api/games/{id}", s.gameH.Delete)
	guard("PUT /api/games/{id}/favorite", s.gameH.ToggleFavorite)

	// Achievement mutations
	guard("POST /api/games/{id}/achievements", s.achievementH.Create)
	guard("PUT /api/games/{id}/achievements/{achievementID}", s.achievementH.SetUnlocked)
	guard("DELETE /api/games/{id}/achievements/{achievementID}", s.achievementH.Delete)
	guard("POST /api/games/{id}/achievements/import", s.achievementH.Import)

	// Completionist challenge mutations
	guard("POST /api/games/{id}/completionist", s.challengeH.Create)
	guard("PUT /api/games/{id}/completionist/{challengeID}", s.challengeH.Update)
	guard("DELETE /api/games/{id}/completionist/{challengeID}", s.challengeH.Delete)

	// Top 10 is replaced wholesale
	guard("POST /api/top10", s.top10H.Replace)

	// Snapshots
	guard("POST /api/daily-snapshots/capture", s.snapshotH.Capture)

	// Steam
	guard("POST /api/steam/sync/{id}", s.steamH.Sync)
	guard("POST /api/steam/import-library", s.steamH.Import)

	// Batch operations
	guard("POST /api/batch/delete", s.batchH.Delete)
}
