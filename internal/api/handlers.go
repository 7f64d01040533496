package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/history"
	"github.com/starford/raido/internal/organizer"
	"github.com/starford/raido/internal/settings"
)

// Handler holds API route handlers.
type Handler struct {
	settings *settings.Store
	engine   *organizer.Engine
	runs     history.RunLog
}

// NewHandler creates a new Handler.
func NewHandler(set *settings.Store, engine *organizer.Engine, runs history.RunLog) *Handler {
	return &Handler{settings: set, engine: engine, runs: runs}
}

// ruleIndex extracts the {index} URL parameter.
func ruleIndex(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "index"))
}

func (h *Handler) writeSettingsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("rule not found"))
	case errors.Is(err, apperr.ErrInvalidRule):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	default:
		slog.Error("settings mutation failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// ListRules handles GET /api/rules.
func (h *Handler) ListRules(w http.ResponseWriter, _ *http.Request) {
	doc := h.settings.Snapshot()
	writeJSON(w, http.StatusOK, RuleListResponse{Rules: doc.Rules})
}

// CreateRule handles POST /api/rules.
func (h *Handler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req RuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.settings.AddRule(req.Rule()); err != nil {
		h.writeSettingsError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, RuleListResponse{Rules: h.settings.Snapshot().Rules})
}

// UpdateRule handles PUT /api/rules/{index}.
func (h *Handler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	idx, err := ruleIndex(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid rule index"))
		return
	}
	var req RuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.settings.UpdateRule(idx, req.Rule()); err != nil {
		h.writeSettingsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RuleListResponse{Rules: h.settings.Snapshot().Rules})
}

// DeleteRule handles DELETE /api/rules/{index}.
func (h *Handler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	idx, err := ruleIndex(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid rule index"))
		return
	}
	if err := h.settings.RemoveRule(idx); err != nil {
		h.writeSettingsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RuleListResponse{Rules: h.settings.Snapshot().Rules})
}

// ReorderRules handles POST /api/rules/reorder.
func (h *Handler) ReorderRules(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.settings.MoveRule(req.From, req.To); err != nil {
		h.writeSettingsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RuleListResponse{Rules: h.settings.Snapshot().Rules})
}

// SetRuleEnabled handles POST /api/rules/{index}/enabled.
func (h *Handler) SetRuleEnabled(w http.ResponseWriter, r *http.Request) {
	idx, err := ruleIndex(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid rule index"))
		return
	}
	var req EnabledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.settings.SetRuleEnabled(idx, req.Enabled); err != nil {
		h.writeSettingsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RuleListResponse{Rules: h.settings.Snapshot().Rules})
}

// ListExclusions handles GET /api/exclusions.
func (h *Handler) ListExclusions(w http.ResponseWriter, _ *http.Request) {
	doc := h.settings.Snapshot()
	out := doc.Exclusions
	if out == nil {
		out = []string{}
	}
	writeJSON(w, http.StatusOK, ExclusionsResponse{ExcludedFolders: out})
}

// SetExclusions handles PUT /api/exclusions.
func (h *Handler) SetExclusions(w http.ResponseWriter, r *http.Request) {
	var req ExclusionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.settings.SetExclusions(req.ExcludedFolders); err != nil {
		h.writeSettingsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ExclusionsResponse{ExcludedFolders: h.settings.Snapshot().Exclusions})
}

// Organize handles POST /api/organize: one synchronous organization run.
func (h *Handler) Organize(w http.ResponseWriter, r *http.Request) {
	doc := h.settings.Snapshot()
	res, err := h.engine.Run(r.Context(), doc.Rules, doc.Exclusions)
	if err != nil {
		slog.Error("organize failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Preview handles GET /api/organize/preview: the plan a run would execute,
// without moving anything.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	doc := h.settings.Snapshot()
	plan, err := h.engine.Preview(r.Context(), doc.Rules, doc.Exclusions)
	if err != nil {
		slog.Error("preview failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if plan.Moves == nil {
		plan.Moves = []organizer.MoveOp{}
	}
	writeJSON(w, http.StatusOK, plan)
}

// Status handles GET /api/status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	doc := h.settings.Snapshot()
	out := StatusResponse{
		RuleCount:      len(doc.Rules),
		ExclusionCount: len(doc.Exclusions),
	}
	for _, r := range doc.Rules {
		if r.Enabled {
			out.EnabledCount++
		}
	}
	if last, err := h.runs.LastRunAt(); err == nil && !last.IsZero() {
		out.LastRunAt = &last
	}
	writeJSON(w, http.StatusOK, out)
}

// ListRuns handles GET /api/runs.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := h.runs.ListRuns(limit)
	if err != nil {
		slog.Error("list runs failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if runs == nil {
		runs = []history.RunRow{}
	}
	writeJSON(w, http.StatusOK, RunListResponse{Runs: runs})
}

// RunMoves handles GET /api/runs/{id}/moves.
func (h *Handler) RunMoves(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid run id"))
		return
	}
	moves, err := h.runs.RunMoves(id)
	if err != nil {
		slog.Error("run moves failed", slog.Int64("run_id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if moves == nil {
		moves = []history.MoveRow{}
	}
	writeJSON(w, http.StatusOK, RunMovesResponse{Moves: moves})
}
