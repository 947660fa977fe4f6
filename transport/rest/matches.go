package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
)

const defaultMatchLimit = 20

// matchesHandler serves the recent match history as JSON. The optional
// "limit" query parameter caps the number of rows.
func matchesHandler(matches matchLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultMatchLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		recent, err := matches.RecentMatches(r.Context(), limit)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err = json.NewEncoder(w).Encode(recent); err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}
}
