package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/blogem/enquiry-desk/authenticator"
	"github.com/blogem/enquiry-desk/config"
	"github.com/blogem/enquiry-desk/controllers"
	"github.com/blogem/enquiry-desk/database"
	"github.com/blogem/enquiry-desk/gateway"
	"github.com/blogem/enquiry-desk/metrics"
	appmiddleware "github.com/blogem/enquiry-desk/middleware"
	"github.com/blogem/enquiry-desk/repositories"
	"github.com/blogem/enquiry-desk/services"
	"github.com/blogem/enquiry-desk/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	if err := database.InitializeDatabase(cfg.Database); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	// Initialize repositories
	repos := repositories.NewRepositories(database.GetDB(), database.GetDialect())

	// Initialize services
	client := gateway.NewHTTPClient(cfg.Gateway)
	srvs := services.NewServices(repos, client, cfg.App.DefaultPageSize)

	// Single sign-on is optional
	var provider authenticator.Provider
	if cfg.OIDC.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		oidcProvider, err := authenticator.NewOpenIDProvider(ctx, cfg.OIDC)
		cancel()
		if err != nil {
			log.Fatalf("Failed to initialize OpenID provider: %v", err)
		}
		provider = oidcProvider
	}

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs, provider, cfg.OIDC)

	limiter := appmiddleware.NewRateLimiter(cfg.RateLimit)
	defer limiter.Stop()

	// Set up router
	r, err := setupRouter(cfg, ctrl, repos, limiter)
	if err != nil {
		log.Fatalf("Failed to setup router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("%s starting on port %s", cfg.App.Name, cfg.App.Port)
		log.Printf("External API: %s", cfg.Gateway.BaseURL)
		log.Printf("SSO enabled: %t", provider != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}

// setupRouter configures all routes
func setupRouter(cfg *config.Config, ctrl *controllers.Controllers, repos *repositories.Repositories, limiter *appmiddleware.RateLimiter) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	if cfg.App.TrustProxy {
		// Only behind a proxy that overwrites the forwarding headers
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second)) // covers the external API timeout and OIDC callbacks
	r.Use(middleware.Compress(5))
	if cfg.App.MetricsEnabled {
		r.Use(metrics.PrometheusMiddleware)
	}

	// Session middleware
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     cfg.Session.CookieName,
		Secure:         cfg.App.UseHTTPS,
		Gclifetime:     cfg.Session.LifetimeSeconds,
		Maxlifetime:    cfg.Session.LifetimeSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	r.Use(sessionHandler)

	r.Handle("/static/*", http.StripPrefix("/static/", web.StaticHandler()))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "enquiry-desk"}`)
	})
	if cfg.App.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler())
	}

	// PUBLIC ROUTES (no authentication required)
	cors := appmiddleware.SetupCORS(cfg.CORS)
	r.Get("/", ctrl.Enquiry.Index)
	r.With(cors, limiter.Limit).Post("/", ctrl.Enquiry.Submit)
	r.With(cors).Options("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/admin-login/", ctrl.Auth.LoginPage)
	r.Post("/admin-login/", ctrl.Auth.LoginSubmit)
	r.Get("/admin-logout/", ctrl.Auth.Logout)
	r.Post("/admin-logout/", ctrl.Auth.Logout)
	r.Get("/login", ctrl.Auth.Login)
	r.Get("/callback", ctrl.Auth.Callback)

	// PROTECTED ROUTES (authentication required)
	r.Group(func(r chi.Router) {
		r.Use(appmiddleware.RequireAuth)
		r.Use(appmiddleware.AuditLogger(repos.Audit))

		r.Route("/enquiries", func(r chi.Router) {
			r.Get("/list/", ctrl.Admin.List)
			r.Get("/delete/", ctrl.Admin.Delete)
			r.Post("/delete/", ctrl.Admin.Delete)
			r.Get("/delete/{id}/", ctrl.Admin.Delete)
			r.Post("/delete/{id}/", ctrl.Admin.Delete)
		})
	})

	return r, nil
}
