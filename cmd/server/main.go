// Command server exposes the matching core over a small HTTP surface:
// listing ingest, query, and prometheus metrics. The wire format here
// is illustrative plumbing around the core, not a stable protocol.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/brain2/matchcore/internal/config"
	"github.com/brain2/matchcore/internal/core"
	"github.com/brain2/matchcore/internal/embed"
	"github.com/brain2/matchcore/internal/implication"
	"github.com/brain2/matchcore/internal/matcherr"
	"github.com/brain2/matchcore/internal/normalize"
	"github.com/brain2/matchcore/internal/observability"
	"github.com/brain2/matchcore/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.IsProduction())
	if err != nil {
		return err
	}
	defer logger.Sync()

	registry := prometheus.NewRegistry()
	var metrics *observability.Metrics
	if cfg.EnableMetrics {
		metrics = observability.NewMetrics(registry)
	}

	if cfg.EnableTracing {
		tp := observability.NewTracerProvider()
		otel.SetTracerProvider(tp)
		defer tp.Shutdown(ctx)
	}

	var graph *implication.Graph
	if cfg.ImplicationGraphPath != "" {
		graph, err = implication.LoadYAML(cfg.ImplicationGraphPath)
		if err != nil {
			return err
		}
	}

	weights, err := cfg.RRFWeights()
	if err != nil {
		return err
	}

	var listings store.ListingStore
	if cfg.IsProduction() {
		client, err := store.NewDynamoClient(ctx, cfg.AWSRegion)
		if err != nil {
			return err
		}
		listings = store.NewDynamoListingStore(client, cfg.DynamoDBTable)
	} else {
		listings = store.NewMemoryListingStore()
	}

	c, err := core.NewCore(core.Deps{
		Listings:       listings,
		Vectors:        store.NewMemoryVectorStore(),
		Implication:    graph,
		Embedder:       embed.NewHashingEmbedder(cfg.EmbeddingDimension),
		Weights:        weights,
		Logger:         logger,
		Metrics:        metrics,
		RetrievalLimit: cfg.RetrievalLimit,
		BreakerTimeout: 30 * time.Second,
	})
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Post("/v1/listings", handleIngest(c, logger))
	r.Post("/v1/query", handleQuery(c, logger))
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if cfg.EnableMetrics {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	addr := ":" + envOr("MATCHCORE_HTTP_PORT", "8080")
	logger.Info("server listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}

func handleIngest(c *core.Core, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw normalize.RawListing
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		id, err := c.Ingest(r.Context(), raw)
		if err != nil {
			logger.Warn("ingest rejected", zap.Error(err))
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"listing_id": id})
	}
}

type queryRequest struct {
	Listing normalize.RawListing `json:"listing"`
	Limit   int                  `json:"limit"`
}

func handleQuery(c *core.Core, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		results, err := c.Query(r.Context(), req.Listing, req.Limit)
		if err != nil {
			logger.Warn("query failed", zap.Error(err))
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
	}
}

// statusFor maps the core's error kinds onto HTTP statuses: rejected
// input is the caller's fault, store failures are upstream's.
func statusFor(err error) int {
	var e *matcherr.Error
	if errors.As(err, &e) {
		switch e.Kind {
		case matcherr.KindNormalization:
			return http.StatusUnprocessableEntity
		case matcherr.KindRetrieval:
			return http.StatusBadGateway
		}
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
