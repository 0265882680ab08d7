// Package plans serves the stored plan history over HTTP.
package plans

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kilianp07/homeload/core/planstore"
)

// Path is the route the handler is mounted on.
const Path = "/api/plans"

// NewHandler returns an HTTP handler answering GET /api/plans with the plans
// matching the start, end, strategy and resource query parameters.
// Requests must include an Authorization header with "Bearer <token>" when
// token is non-empty.
func NewHandler(store planstore.PlanStore, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		params := r.URL.Query()
		q := planstore.PlanQuery{
			Strategy: params.Get("strategy"),
			Resource: params.Get("resource"),
		}
		var err error
		if q.Start, err = parseTime(params.Get("start")); err != nil {
			http.Error(w, "invalid start: "+err.Error(), http.StatusBadRequest)
			return
		}
		if q.End, err = parseTime(params.Get("end")); err != nil {
			http.Error(w, "invalid end: "+err.Error(), http.StatusBadRequest)
			return
		}
		records, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []planstore.PlanRecord{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
