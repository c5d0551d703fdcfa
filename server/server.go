// Package server exposes a Chart over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	bandchart "github.com/aouyang1/go-bandchart"
	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

// SelectionRequest is the body of a POST /figure request.
type SelectionRequest struct {
	Selection *bandchart.Selection `json:"selection"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	chart *bandchart.Chart
}

// NewRouter registers the health check, the figure endpoints and the html preview.
func NewRouter(chart *bandchart.Chart) *mux.Router {
	h := &handler{chart: chart}

	r := mux.NewRouter()
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.HandleFunc("/figure", h.getFigure).Methods(http.MethodGet)
	r.HandleFunc("/figure", h.postFigure).Methods(http.MethodPost)
	r.HandleFunc("/", h.preview).Methods(http.MethodGet)

	return r
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) getFigure(w http.ResponseWriter, r *http.Request) {
	h.writeFigure(w, r, nil)
}

func (h *handler) postFigure(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var req SelectionRequest
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	h.writeFigure(w, r, req.Selection)
}

func (h *handler) writeFigure(w http.ResponseWriter, r *http.Request, sel *bandchart.Selection) {
	fig, err := h.chart.Rebuild(r.Context(), sel)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, fig)
}

func (h *handler) preview(w http.ResponseWriter, r *http.Request) {
	fig, err := h.chart.Rebuild(r.Context(), nil)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	var buf bytes.Buffer
	if err := bandchart.RenderHTML(&buf, fig); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("unable to write preview", "error", err.Error())
	}
}

func statusFor(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("unable to encode response", "error", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", err.Error())
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
