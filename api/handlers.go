package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vinted-scanner/config"
	"vinted-scanner/models"
	"vinted-scanner/utils"
)

// CheckRunner runs one immediate query outside the scan schedule.
type CheckRunner interface {
	RunQuery(ctx context.Context, keyword string, ignoreSeen bool) ([]*models.ScoredListing, models.ScanReport, error)
}

// Handlers exposes the administrative command surface: query list
// management, pause/resume, threshold updates, ledger reset, and the
// immediate one-off check. Every mutation is validated; a rejected
// parameter returns 400 and leaves state unchanged.
type Handlers struct {
	settings *config.Settings
	seen     *utils.SeenSet
	checker  CheckRunner
	logger   *slog.Logger
}

func NewHandlers(settings *config.Settings, seen *utils.SeenSet, checker CheckRunner, logger *slog.Logger) *Handlers {
	return &Handlers{settings: settings, seen: seen, checker: checker, logger: logger}
}

func (h *Handlers) handleListQueries(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{"queries": h.settings.Queries()})
}

func (h *Handlers) handleAddQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.settings.AddQuery(req.Keyword); err != nil {
		h.respondSettingsError(w, err)
		return
	}

	h.logger.Info("query added", "keyword", req.Keyword)
	respondJSON(w, http.StatusCreated, map[string]string{"added": req.Keyword})
}

func (h *Handlers) handleRemoveQuery(w http.ResponseWriter, r *http.Request) {
	keyword := chi.URLParam(r, "keyword")
	if err := h.settings.RemoveQuery(keyword); err != nil {
		h.respondSettingsError(w, err)
		return
	}

	h.logger.Info("query removed", "keyword", keyword)
	respondJSON(w, http.StatusOK, map[string]string{"removed": keyword})
}

func (h *Handlers) handleClearQueries(w http.ResponseWriter, _ *http.Request) {
	h.settings.ClearQueries()
	h.logger.Info("query list cleared")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) handlePause(w http.ResponseWriter, _ *http.Request) {
	h.settings.Pause()
	h.logger.Info("scanner paused")
	respondJSON(w, http.StatusOK, map[string]string{"state": "paused"})
}

func (h *Handlers) handleResume(w http.ResponseWriter, _ *http.Request) {
	h.settings.Resume()
	h.logger.Info("scanner resumed")
	respondJSON(w, http.StatusOK, map[string]string{"state": "running"})
}

func (h *Handlers) handleStatus(w http.ResponseWriter, _ *http.Request) {
	state := "running"
	if h.settings.Paused() {
		state = "paused"
	}
	respondJSON(w, http.StatusOK, statusResponse{
		State:           state,
		IntervalSeconds: int(h.settings.Interval().Seconds()),
		MaxPrice:        h.settings.MaxPrice(),
		MinProfit:       h.settings.MinProfit(),
		MinConfidence:   h.settings.MinConfidenceLevel(),
		Queries:         h.settings.Queries(),
		SeenCount:       h.seen.Size(),
	})
}

func (h *Handlers) handleSetMaxPrice(w http.ResponseWriter, r *http.Request) {
	var req priceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.settings.SetMaxPrice(req.Value); err != nil {
		h.respondSettingsError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]float64{"max_price": req.Value})
}

func (h *Handlers) handleSetInterval(w http.ResponseWriter, r *http.Request) {
	var req intervalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.settings.SetInterval(time.Duration(req.Seconds) * time.Second); err != nil {
		h.respondSettingsError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"interval_seconds": req.Seconds})
}

func (h *Handlers) handleSetMinProfit(w http.ResponseWriter, r *http.Request) {
	var req priceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.settings.SetMinProfit(req.Value); err != nil {
		h.respondSettingsError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]float64{"min_profit": req.Value})
}

func (h *Handlers) handleSetMinConfidence(w http.ResponseWriter, r *http.Request) {
	var req confidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.settings.SetMinConfidence(req.Value); err != nil {
		h.respondSettingsError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"min_confidence": req.Value})
}

func (h *Handlers) handleResetLedger(w http.ResponseWriter, _ *http.Request) {
	h.seen.Reset()
	h.logger.Info("dedupe ledger reset")
	respondJSON(w, http.StatusOK, map[string]int{"seen_count": h.seen.Size()})
}

// handleCheck runs one immediate query, bypassing the dedupe ledger,
// and reports the diagnostic counts alongside the results.
func (h *Handlers) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Keyword == "" {
		respondError(w, http.StatusBadRequest, "keyword: must not be empty")
		return
	}

	results, report, err := h.checker.RunQuery(r.Context(), req.Keyword, true)
	if err != nil {
		h.logger.Error("ad-hoc check failed", "keyword", req.Keyword, "error", err)
		respondError(w, http.StatusBadGateway, "fetch failed: "+err.Error())
		return
	}

	resp := checkResponse{
		SearchURL:    report.SearchURL,
		PageItems:    report.PageItems,
		Relevant:     report.Relevant,
		WithinBudget: report.WithinBudget,
		Matches:      len(results),
	}
	for _, item := range results {
		resp.Listings = append(resp.Listings, checkListing{
			Title: item.Listing.Title,
			Price: item.Listing.PriceText,
			URL:   item.Listing.URL,
			Score: item.Score.Score,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handlers) respondSettingsError(w http.ResponseWriter, err error) {
	var vErr *config.ValidationError
	if errors.As(err, &vErr) {
		respondError(w, http.StatusBadRequest, vErr.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}
