// Package api provides HTTP handlers for the assignment helper.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"assignhelper/internal/answer"
	"assignhelper/internal/config"
	"assignhelper/internal/domain"
	"assignhelper/internal/store"
	"assignhelper/web"

	"github.com/go-chi/chi/v5"
)

// testQuestion is the fixed probe sent by the /api/test endpoint.
const testQuestion = "What is 2+2?"

// Handler serves the page and the ask API.
type Handler struct {
	repo           store.Repository
	answerer       answer.Answerer
	renderer       *web.Renderer
	maxUploadBytes int64
	recentLimit    int
	frequentLimit  int
}

// NewHandler creates a new Handler with its dependencies.
func NewHandler(repo store.Repository, answerer answer.Answerer, renderer *web.Renderer, cfg *config.Config) *Handler {
	return &Handler{
		repo:           repo,
		answerer:       answerer,
		renderer:       renderer,
		maxUploadBytes: cfg.MaxUploadBytes(),
		recentLimit:    cfg.RecentLimit,
		frequentLimit:  cfg.FrequentLimit,
	}
}

// RegisterRoutes attaches the page and API routes to the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Page)
	r.Post("/api/", h.Ask)
	r.Get("/api/test", h.Test)
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// Page renders the index page with recent and most-frequent questions.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recent, err := h.repo.RecentQuestions(ctx, h.recentLimit)
	if err != nil {
		slog.Error("Failed to load recent questions", "error", err)
		http.Error(w, "failed to load question history", http.StatusInternalServerError)
		return
	}

	frequent, err := h.repo.MostFrequent(ctx, h.frequentLimit)
	if err != nil {
		slog.Error("Failed to load frequent questions", "error", err)
		http.Error(w, "failed to load question history", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Index(w, web.PageData{
		RecentQuestions: recent,
		MostFrequent:    frequent,
	}); err != nil {
		slog.Error("Failed to render page", "error", err)
	}
}

// Ask handles a submitted question with an optional file attachment.
// It forwards both to the upstream answerer, records the answered question,
// and responds with {"answer": ...} or {"error": ...}.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		Error(w, http.StatusBadRequest, "could not parse form: "+err.Error())
		return
	}

	question := strings.TrimSpace(r.FormValue("question"))
	if question == "" {
		Error(w, http.StatusBadRequest, "question is required")
		return
	}

	var upload *answer.Upload
	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		if header.Filename != "" {
			upload = &answer.Upload{Filename: header.Filename, Content: file}
		}
	case errors.Is(err, http.ErrMissingFile):
		// File is optional.
	default:
		Error(w, http.StatusBadRequest, "could not read file: "+err.Error())
		return
	}

	slog.Info("Received question", "question", question, "had_file", upload != nil)

	answerText, err := h.answerer.Ask(r.Context(), question, upload)
	if err != nil {
		slog.Error("Failed to answer question", "question", question, "error", err)
		Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	entry := &domain.HistoryEntry{
		Question: question,
		Answer:   answerText,
		HadFile:  upload != nil,
		AskedAt:  time.Now(),
	}
	if err := h.repo.RecordQuestion(r.Context(), entry); err != nil {
		// History is best effort; the answer still goes out.
		slog.Error("Failed to record question", "question", question, "error", err)
	}

	JSON(w, http.StatusOK, map[string]string{"answer": answerText})
}

// Test verifies the upstream answerer is reachable using a fixed question.
func (h *Handler) Test(w http.ResponseWriter, r *http.Request) {
	answerText, err := h.answerer.Ask(r.Context(), testQuestion, nil)
	if err != nil {
		slog.Error("Test question failed", "error", err)
		JSON(w, http.StatusOK, map[string]string{"error": err.Error()})
		return
	}

	JSON(w, http.StatusOK, map[string]string{
		"question": testQuestion,
		"answer":   answerText,
	})
}
