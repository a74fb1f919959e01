package webserver

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/fincrew/fincrew/internal/report"
)

//go:embed templates/*.html
var templateFS embed.FS

// registerRoutes sets up the form, result and API routes on the given mux.
func registerRoutes(mux *http.ServeMux, cfg Config) error {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("webserver: parsing templates: %w", err)
	}

	h := &handlers{crew: cfg.Crew, tmpl: tmpl, logger: cfg.Logger}

	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /{$}", h.handleAsk)
	mux.HandleFunc("GET /api/health", handleHealth)
	return nil
}

type handlers struct {
	crew   QuestionRunner
	tmpl   *template.Template
	logger *slog.Logger
}

// indexData feeds the question form template.
type indexData struct {
	Error string
}

// resultData feeds the result page template.
type resultData struct {
	Question string
	Report   template.HTML
}

// errorData feeds the error page template.
type errorData struct {
	Question  string
	RequestID string
}

func (h *handlers) handleIndex(w http.ResponseWriter, _ *http.Request) {
	h.render(w, http.StatusOK, "index.html", indexData{})
}

func (h *handlers) handleAsk(w http.ResponseWriter, r *http.Request) {
	question := strings.TrimSpace(r.FormValue("query"))
	if question == "" {
		h.render(w, http.StatusBadRequest, "index.html", indexData{
			Error: "Please enter a question.",
		})
		return
	}

	requestID := uuid.NewString()
	logger := h.logger.With("request_id", requestID)
	logger.Info("running pipeline", "question", question)

	markdown, err := h.crew.Kickoff(r.Context(), question)
	if err != nil {
		logger.Error("pipeline failed", "error", err)
		h.render(w, http.StatusBadGateway, "error.html", errorData{
			Question:  question,
			RequestID: requestID,
		})
		return
	}

	html, err := report.RenderHTML(markdown)
	if err != nil {
		logger.Error("report rendering failed", "error", err)
		h.render(w, http.StatusInternalServerError, "error.html", errorData{
			Question:  question,
			RequestID: requestID,
		})
		return
	}

	logger.Info("pipeline finished", "report_bytes", len(markdown))
	h.render(w, http.StatusOK, "result.html", resultData{
		Question: question,
		Report:   html,
	})
}

func (h *handlers) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("template rendering failed", "template", name, "error", err)
	}
}

// handleHealth returns a simple health check response.
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"}) //nolint:errcheck
}
