package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/standup-lab/cadence/pkg/domain/model"
	"github.com/standup-lab/cadence/pkg/domain/types"
	"github.com/standup-lab/cadence/pkg/utils/logging"
)

// UseCase is the pipeline surface the HTTP layer depends on
type UseCase interface {
	SubmitUpdate(ctx context.Context, author types.AuthorID, period types.Period, content string) (*model.Update, error)
	ListUpdates(ctx context.Context, period types.Period) ([]*model.Update, error)
	GenerateReport(ctx context.Context, period types.Period) (*model.Report, string, error)
	DeliverReport(ctx context.Context, period types.Period) (*model.Report, error)
}

type Server struct {
	router *chi.Mux
	uc     UseCase
}

func New(uc UseCase) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/updates", s.handleSubmitUpdate)
		r.Get("/updates", s.handleListUpdates)
		r.Get("/reports", s.handleGetReport)
		r.Post("/reports/deliver", s.handleDeliverReport)
	})

	r.Get("/health", healthHandler)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"date":   types.Today().String(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
