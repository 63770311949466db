package api

import (
	"encoding/json"
	"net/http"
)

type queryRequest struct {
	Keyword string `json:"keyword"`
}

type priceRequest struct {
	Value float64 `json:"value"`
}

type intervalRequest struct {
	Seconds int `json:"seconds"`
}

type confidenceRequest struct {
	Value int `json:"value"`
}

type statusResponse struct {
	State           string   `json:"state"`
	IntervalSeconds int      `json:"interval_seconds"`
	MaxPrice        float64  `json:"max_price"`
	MinProfit       float64  `json:"min_profit"`
	MinConfidence   int      `json:"min_confidence"`
	Queries         []string `json:"queries"`
	SeenCount       int      `json:"seen_count"`
}

type checkListing struct {
	Title string `json:"title"`
	Price string `json:"price"`
	URL   string `json:"url"`
	Score int    `json:"score"`
}

type checkResponse struct {
	SearchURL    string         `json:"search_url"`
	PageItems    int            `json:"page_items"`
	Relevant     int            `json:"relevant"`
	WithinBudget int            `json:"within_budget"`
	Matches      int            `json:"matches"`
	Listings     []checkListing `json:"listings"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
