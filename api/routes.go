package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/garnizeh/skillswap/internal/config"
	"github.com/garnizeh/skillswap/internal/payload"
	"github.com/garnizeh/skillswap/internal/service"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Services *service.Services
	Schemas  *payload.Registry
	Ping     func(ctx context.Context) error
}

func SetupRoutes(cfg *config.Config, version, buildTime string, d Deps) http.Handler {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(MetricsMiddleware)

	// Create handlers
	systemHandler := &SystemHandler{Ping: d.Ping}
	authHandler := NewAuthHandler(d.Services.Accounts, d.Schemas)
	onboardingHandler := NewOnboardingHandler(d.Services.Onboarding, cfg.Assets.MaxBytes)
	usersHandler := NewUsersHandler(d.Services.Profiles, d.Schemas)
	skillsHandler := NewSkillsHandler(d.Services.Catalog, d.Schemas)
	requestsHandler := NewRequestsHandler(d.Services.Exchange, d.Schemas)
	chatsHandler := NewChatsHandler(d.Services.Chats, d.Schemas)
	reportsHandler := NewReportsHandler(d.Services.Reports, d.Schemas)

	authMW := JWTAuthMiddleware(d.Services.Accounts)
	protect := func(h http.HandlerFunc) http.Handler { return authMW(h) }

	// System endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Auth
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.Handle("/auth/logout", protect(authHandler.Logout)).Methods("POST")

	// Onboarding and profiles
	api.Handle("/onboarding", protect(onboardingHandler.Complete)).Methods("POST")
	api.Handle("/users/me", protect(usersHandler.Me)).Methods("GET")
	api.Handle("/users/check-username", protect(usersHandler.CheckUsername)).Methods("GET")
	api.Handle("/users/me/saved-skills", protect(usersHandler.ListSaved)).Methods("GET")
	api.Handle("/users/me/saved-skills", protect(usersHandler.AddSaved)).Methods("POST")
	api.Handle("/users/me/saved-skills/{skillId}", protect(usersHandler.RemoveSaved)).Methods("DELETE")
	api.HandleFunc("/users/{id:[0-9]+}", usersHandler.GetUser).Methods("GET")

	// Catalog
	api.HandleFunc("/skills", skillsHandler.ListSkills).Methods("GET")
	api.Handle("/skills", protect(skillsHandler.CreateSkill)).Methods("POST")
	api.HandleFunc("/skills/{id}", skillsHandler.GetSkill).Methods("GET")
	api.HandleFunc("/offerings", skillsHandler.ListOfferings).Methods("GET")
	api.HandleFunc("/offerings/{slug}", skillsHandler.GetOffering).Methods("GET")

	// Exchange requests
	api.HandleFunc("/requests", requestsHandler.Create).Methods("POST")
	api.HandleFunc("/requests/incoming", requestsHandler.Incoming).Methods("GET")
	api.HandleFunc("/requests/outgoing", requestsHandler.Outgoing).Methods("GET")
	api.HandleFunc("/requests/{id}", requestsHandler.UpdateStatus).Methods("PATCH")

	// Chat
	api.HandleFunc("/chats", chatsHandler.ListChats).Methods("GET")
	api.HandleFunc("/chats", chatsHandler.OpenChat).Methods("POST")
	api.HandleFunc("/messages", chatsHandler.ListMessages).Methods("GET")
	api.HandleFunc("/messages", chatsHandler.PostMessage).Methods("POST")

	// Reports
	api.HandleFunc("/reports", reportsHandler.Submit).Methods("POST")
	if cfg.Debug {
		api.HandleFunc("/debug/reports", reportsHandler.List).Methods("GET")
	}

	return RecoveryMiddleware(CORSMiddleware(cfg.CORS.AllowedOrigins)(r))
}
