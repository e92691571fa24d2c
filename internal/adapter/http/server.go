package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/syndilend/syndilend-backend/internal/usecase/facility"
	"github.com/syndilend/syndilend-backend/internal/usecase/party"
	"github.com/syndilend/syndilend-backend/internal/usecase/syndicate"
)

// Config holds server configuration
type Config struct {
	Port             int
	Log              zerolog.Logger
	FacilityService  *facility.Service
	PartyService     *party.Service
	SyndicateService *syndicate.Service
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(requestLogger(s.log))

	facilityHandler := NewFacilityHandler(cfg.FacilityService, cfg.Log)
	partyHandler := NewPartyHandler(cfg.PartyService, cfg.Log)
	syndicateHandler := NewSyndicateHandler(cfg.SyndicateService, cfg.Log)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/facilities", func(r chi.Router) {
			r.Post("/", facilityHandler.HandleCreate)
			r.Get("/", facilityHandler.HandleList)
			r.Get("/{id}", facilityHandler.HandleGet)
			r.Put("/{id}", facilityHandler.HandleUpdate)
			r.Delete("/{id}", facilityHandler.HandleDelete)
			r.Get("/{id}/investments", facilityHandler.HandleListInvestments)
		})

		r.Route("/syndicates", func(r chi.Router) {
			r.Post("/", syndicateHandler.HandleCreate)
			r.Get("/", syndicateHandler.HandleList)
			r.Get("/{id}", syndicateHandler.HandleGet)
			r.Put("/{id}", syndicateHandler.HandleUpdate)
			r.Delete("/{id}", syndicateHandler.HandleDelete)
		})

		r.Route("/parties", func(r chi.Router) {
			r.Post("/companies", partyHandler.HandleCreateCompany)
			r.Get("/companies", partyHandler.HandleListCompanies)
			r.Get("/companies/{id}", partyHandler.HandleGetCompany)
			r.Delete("/companies/{id}", partyHandler.HandleDeleteCompany)

			r.Post("/borrowers", partyHandler.HandleCreateBorrower)
			r.Get("/borrowers", partyHandler.HandleListBorrowers)
			r.Get("/borrowers/{id}", partyHandler.HandleGetBorrower)
			r.Put("/borrowers/{id}", partyHandler.HandleUpdateBorrower)
			r.Delete("/borrowers/{id}", partyHandler.HandleDeleteBorrower)

			r.Post("/investors", partyHandler.HandleCreateInvestor)
			r.Get("/investors", partyHandler.HandleListInvestors)
			r.Get("/investors/{id}", partyHandler.HandleGetInvestor)
			r.Patch("/investors/{id}/active", partyHandler.HandleSetInvestorActive)
			r.Delete("/investors/{id}", partyHandler.HandleDeleteInvestor)
		})
	})

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Router exposes the mux, mainly for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving HTTP requests
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
