package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/CodeTest-git/testovoe-otsivy/internal/model"
	"github.com/CodeTest-git/testovoe-otsivy/internal/pipeline"
	"github.com/CodeTest-git/testovoe-otsivy/internal/placeid"
)

var servePort int

// reviewService is the part of the pipeline the HTTP API exposes.
type reviewService interface {
	FetchByURL(ctx context.Context, rawURL string, forceRefresh bool) (*model.Result, error)
	FetchMoreReviews(ctx context.Context, rawURL string, page int) (*model.PageResult, error)
	ClearCache(ctx context.Context, rawURL string) error
	ExtractPlaceID(rawURL string) (string, bool)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve listing data over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		env, err := initPipeline(ctx, "serve")
		if err != nil {
			return err
		}
		defer env.Close()

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           buildRouter(env.Pipeline, cfg.Server.CORSOrigins),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// buildRouter wires the HTTP API onto svc.
func buildRouter(svc reviewService, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	if len(corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/place-id", func(w http.ResponseWriter, req *http.Request) {
			rawURL, ok := requireURL(w, req)
			if !ok {
				return
			}
			id, found := svc.ExtractPlaceID(rawURL)
			if !found {
				writeError(w, http.StatusUnprocessableEntity, placeid.ErrUnresolvable.Error())
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"placeId": id})
		})

		r.Get("/reviews", func(w http.ResponseWriter, req *http.Request) {
			rawURL, ok := requireURL(w, req)
			if !ok {
				return
			}
			refresh, _ := strconv.ParseBool(req.URL.Query().Get("refresh"))
			result, err := svc.FetchByURL(req.Context(), rawURL, refresh)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, result)
		})

		r.Get("/reviews/more", func(w http.ResponseWriter, req *http.Request) {
			rawURL, ok := requireURL(w, req)
			if !ok {
				return
			}
			page, err := strconv.Atoi(req.URL.Query().Get("page"))
			if err != nil {
				writeError(w, http.StatusBadRequest, "page must be an integer")
				return
			}
			result, err := svc.FetchMoreReviews(req.Context(), rawURL, page)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, result)
		})

		r.Delete("/reviews/cache", func(w http.ResponseWriter, req *http.Request) {
			rawURL, ok := requireURL(w, req)
			if !ok {
				return
			}
			if err := svc.ClearCache(req.Context(), rawURL); err != nil {
				writeServiceError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})

	return r
}

func requireURL(w http.ResponseWriter, req *http.Request) (string, bool) {
	u := req.URL.Query().Get("url")
	if u == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return "", false
	}
	return u, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, placeid.ErrUnresolvable):
		writeError(w, http.StatusUnprocessableEntity, placeid.ErrUnresolvable.Error())
	case errors.Is(err, pipeline.ErrInvalidPage):
		writeError(w, http.StatusBadRequest, pipeline.ErrInvalidPage.Error())
	default:
		zap.L().Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
