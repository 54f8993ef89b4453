package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/limbo/drip/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	mx               *chi.Mux
	srv              *http.Server
	userService      service.UserServiceI
	hydrationService service.HydrationServiceI
	settingsService  service.SettingsServiceI
	jwtService       JWTServiceI
}

type ServicesList struct {
	UserService      service.UserServiceI
	HydrationService service.HydrationServiceI
	SettingsService  service.SettingsServiceI
	JwtService       JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:               chi.NewMux(),
		userService:      servicesOptions.UserService,
		hydrationService: servicesOptions.HydrationService,
		settingsService:  servicesOptions.SettingsService,
		jwtService:       servicesOptions.JwtService,
	}
	s.srv = &http.Server{
		Handler:           s.mx,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       time.Minute,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mx.Use(middleware.Recoverer)
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)
	s.mx.Use(s.MetricsMiddleware)

	s.mx.Get("/health", s.Health)
	s.mx.Handle("/metrics", promhttp.Handler())
	s.mx.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.Register)
		r.Post("/login", s.Login)
	})
	s.mx.Route("/api", func(r chi.Router) {
		r.Use(s.AuthMiddleware)
		r.Use(s.LoggerExtensionMiddleware)

		r.Delete("/account", s.DeleteAccount)

		r.Post("/drinks", s.LogDrink)
		r.Delete("/drinks/{id}", s.RemoveDrink)
		r.Get("/today", s.Today)
		r.Get("/history/weekly", s.Weekly)
		r.Delete("/history", s.ClearHistory)
		r.Get("/stats", s.Stats)

		r.Get("/achievements", s.Achievements)
		r.Get("/achievements/next", s.NextAchievement)

		r.Get("/settings", s.GetSettings)
		r.Put("/settings", s.UpdateSettings)
		r.Put("/settings/goal", s.UpdateGoal)
		r.Get("/reminders", s.Reminders)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mx.ServeHTTP(w, r)
}

// Run blocks until the server is shut down. http.ErrServerClosed is
// returned after a Shutdown call, including one made before Run.
func (s *Server) Run(address string) error {
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}
	return s.srv.Serve(ln)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
