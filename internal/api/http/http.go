package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"

	"github.com/zenthra/zenthra-manager/internal/apisrv/auth"
	"github.com/zenthra/zenthra-manager/internal/apisrv/report"
)

// Config is the configuration for the http server
type Config struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Server is the http server
type Server struct {
	hs   *http.Server
	c    *Config
	done chan struct{}
}

// New creates a new server
func New(config *Config) *Server {
	return &Server{
		c:    config,
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) router(authServer *auth.Server, reportServer *report.Server) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.c.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		AllowCredentials: true,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})

	r.Post("/api/auth/login", authServer.Login)

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(jwtauth.Verifier(authServer.JwtAuth))
		r.Use(jwtauth.Authenticator)

		r.Get("/analytics/products", reportServer.ProductSales)
		r.Get("/analytics/customers", reportServer.Customers)
		r.Get("/analytics/abandoned", reportServer.AbandonedCarts)
		r.Get("/analytics/dashboard", reportServer.Dashboard)
		r.Get("/analytics/revenue/monthly", reportServer.MonthlyRevenue)

		r.Post("/orders", reportServer.CreateOrder)
		r.Get("/orders/{id}", reportServer.GetOrder)
		r.Put("/orders/{id}/status", reportServer.UpdateOrderStatus)
		r.Put("/orders/{id}/tracking", reportServer.SetOrderTracking)
	})

	return r
}

// Start starts the server
func (s *Server) Start(ctx context.Context, authServer *auth.Server, reportServer *report.Server) error {
	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:    listenerAddr,
		Handler: s.router(authServer, reportServer),
	}

	go func() {
		slog.Default().InfoContext(ctx, fmt.Sprintf("zenthra-manager new listener on: http://%v", listenerAddr))
		err := s.hs.ListenAndServe()
		if err == http.ErrServerClosed {
			slog.Default().InfoContext(ctx, "http server returned")
		} else {
			slog.Default().ErrorContext(ctx, "http server exited with an error",
				slog.String("err", err.Error()),
			)
		}
		close(s.done)
	}()

	return nil
}

// Stop shuts the server down, waiting for in-flight requests to drain.
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.hs.Shutdown(ctx)
}
