//go:build unix

package daemon

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gurisko/jbp/internal/launcher"
	"github.com/gurisko/jbp/internal/limits"
)

// Request/Response types

type ListItemsResponse struct {
	Items []launcher.ItemView `json:"items"`
	Count int                 `json:"count"`
}

type OpenRequest struct {
	Query string `json:"query"`
	ID    string `json:"id"`
}

type OpenResponse struct {
	Opened string `json:"opened"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler methods

// handleItems handles GET /api/items?q=<query>&branch=<bool>
func (d *Daemon) handleItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	withBranch := false
	if raw := query.Get("branch"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, "branch must be a boolean", http.StatusBadRequest)
			return
		}
		withBranch = b
	}

	items := d.plugin.Items(launcher.StripTrigger(query.Get("q")))
	writeJSON(w, ListItemsResponse{
		Items: launcher.Views(items, withBranch),
		Count: len(items),
	}, http.StatusOK)
}

// handleOpen handles POST /api/open. The query is re-run so the item and
// its action reflect current state on disk.
func (d *Daemon) handleOpen(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	var req OpenRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.JSON))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		writeError(w, "id is required", http.StatusBadRequest)
		return
	}

	it, err := d.plugin.Find(launcher.StripTrigger(req.Query), req.ID)
	if err != nil {
		if errors.Is(err, launcher.ErrItemNotFound) {
			writeError(w, "item not found", http.StatusNotFound)
			return
		}
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := it.Open(); err != nil {
		log.Printf("[ERROR] handleOpen: %v", err)
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Printf("[DEBUG] handleOpen: opened %s", it.ID)
	writeJSON(w, OpenResponse{Opened: it.ID}, http.StatusOK)
}

// Helper functions

func writeJSON(w http.ResponseWriter, data interface{}, status int) {
	buf, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf)
}

func writeError(w http.ResponseWriter, message string, status int) {
	resp := ErrorResponse{
		Error: message,
	}
	writeJSON(w, resp, status)
}
