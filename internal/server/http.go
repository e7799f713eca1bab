package server

import (
	"context"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// TriviaRoutes is the set of question bank handlers mounted by the server.
type TriviaRoutes interface {
	ListCategories(w http.ResponseWriter, r *http.Request)
	ListQuestions(w http.ResponseWriter, r *http.Request)
	CreateOrSearchQuestions(w http.ResponseWriter, r *http.Request)
	DeleteQuestion(w http.ResponseWriter, r *http.Request)
	QuestionsByCategory(w http.ResponseWriter, r *http.Request)
	PlayQuiz(w http.ResponseWriter, r *http.Request)
}

// PingFunc checks upstream dependencies for /v1/ping.
type PingFunc func(ctx context.Context) error

// NewHTTPServer wires the trivia routes plus health, ping and metrics.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, redis *redis.Client, trivia TriviaRoutes) *http.Server {
	ping := func(ctx context.Context) error {
		return pingDependencies(ctx, pool, redis)
	}
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewRouter(cfg, logger, ping, trivia),
	}
}

// NewRouter builds the routed handler with the full middleware chain.
func NewRouter(cfg *config.App, logger zerolog.Logger, ping PingFunc, trivia TriviaRoutes) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := ping(r.Context()); err != nil {
			reqLogger := logging.FromContext(r.Context())
			reqLogger.Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondBadGateway(w)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	mux.HandleFunc("GET /categories", trivia.ListCategories)
	mux.HandleFunc("GET /categories/{id}/questions", trivia.QuestionsByCategory)
	mux.HandleFunc("GET /questions", trivia.ListQuestions)
	mux.HandleFunc("POST /questions", trivia.CreateOrSearchQuestions)
	mux.HandleFunc("DELETE /questions/{id}", trivia.DeleteQuestion)
	mux.HandleFunc("POST /quizzes", trivia.PlayQuiz)

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})

	return requestLogger(logger)(instrument(corsHandler(recoverPanics(envelopeUnmatched(mux)))))
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, redis *redis.Client) error {
	if pool != nil {
		if err := pool.Ping(ctx); err != nil {
			return err
		}
	}
	if redis != nil {
		if err := redis.Ping(ctx).Err(); err != nil {
			return err
		}
	}
	return nil
}
