package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ibrhmmrana/hunter2.0-sub002/internal/category"
	"github.com/ibrhmmrana/hunter2.0-sub002/internal/compete"
	"github.com/ibrhmmrana/hunter2.0-sub002/internal/gaps"
	"github.com/ibrhmmrana/hunter2.0-sub002/internal/match"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for classification, scoring, and retrieval",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		store, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Handle("/metrics", promhttp.Handler())

		r.Route("/v1", func(r chi.Router) {
			r.Post("/classify", handleClassify)
			r.Post("/score", handleScore)
			r.Post("/anchor", handleAnchor)
			r.Post("/gaps", handleGaps)
			r.Post("/competitors", handleCompetitors(store))
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

type classifyRequest struct {
	Primary    string   `json:"primary"`
	Legacy     string   `json:"legacy"`
	Categories []string `json:"categories"`
}

func handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	respondJSON(w, http.StatusOK, category.BuildContext(req.Primary, req.Legacy, req.Categories))
}

type scoreRequest struct {
	Subject   classifyRequest `json:"subject"`
	Candidate struct {
		Types       []string `json:"types"`
		PrimaryType string   `json:"primary_type"`
		Name        string   `json:"name"`
	} `json:"candidate"`
}

func handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	catCtx := category.BuildContext(req.Subject.Primary, req.Subject.Legacy, req.Subject.Categories)
	cats := category.ExtractCandidateCategories(req.Candidate.Types, req.Candidate.PrimaryType, req.Candidate.Name)
	result := match.Score(catCtx, cats)

	respondJSON(w, http.StatusOK, struct {
		Context             category.Context `json:"context"`
		CandidateCategories []string         `json:"candidate_categories"`
		Score               int              `json:"score"`
		VerticalMatch       bool             `json:"vertical_match"`
	}{catCtx, cats, result.Score, result.VerticalMatch})
}

type anchorRequest struct {
	Label string   `json:"label"`
	Types []string `json:"types"`
	Name  string   `json:"name"`
}

func handleAnchor(w http.ResponseWriter, r *http.Request) {
	var req anchorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	anchor := match.NewAnchor(req.Label)
	respondJSON(w, http.StatusOK, map[string]bool{"passes": anchor.Passes(req.Types, req.Name)})
}

func handleGaps(w http.ResponseWriter, r *http.Request) {
	var in gaps.Inputs
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	respondJSON(w, http.StatusOK, gaps.Analyze(in))
}

type competitorsRequest struct {
	SubjectID string         `json:"subject_id"`
	Cursor    compete.Cursor `json:"cursor"`
	PageSize  int            `json:"page_size"`
}

// handleCompetitors pages the retrieval ladder. A store failure maps to 502,
// never to an empty 200 page: clients must be able to tell "no more
// competitors" apart from "retrieval is broken".
func handleCompetitors(store compete.Store) http.HandlerFunc {
	ladder := compete.NewLadder(store)

	return func(w http.ResponseWriter, r *http.Request) {
		var req competitorsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.SubjectID == "" {
			respondError(w, http.StatusBadRequest, "subject_id is required")
			return
		}

		page, err := ladder.FetchMore(r.Context(), req.SubjectID, req.Cursor, req.PageSize)
		if err != nil {
			zap.L().Error("competitor retrieval failed",
				zap.String("subject_id", req.SubjectID),
				zap.Error(err),
			)
			respondError(w, http.StatusBadGateway, "competitor retrieval failed")
			return
		}

		respondJSON(w, http.StatusOK, page)
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
