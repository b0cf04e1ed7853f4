//go:build unix

package daemon

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gurisko/jbp/internal/config"
	"github.com/gurisko/jbp/internal/launcher"
	"github.com/gurisko/jbp/internal/limits"
)

// UpdateConfigRequest carries the settings to change; nil fields are left as is.
type UpdateConfigRequest struct {
	MatchPath *bool `json:"match_path,omitempty"`
	Fuzzy     *bool `json:"fuzzy,omitempty"`
}

type ListIDEsResponse struct {
	IDEs []launcher.IDEView `json:"ides"`
}

type SettingsResponse struct {
	Trigger        string            `json:"trigger"`
	FuzzySupported bool              `json:"fuzzy_supported"`
	Widgets        []launcher.Widget `json:"widgets"`
}

// handleConfig handles GET and PUT /api/config
func (d *Daemon) handleConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, d.store.Settings(), http.StatusOK)
	case http.MethodPut:
		d.handleUpdateConfig(w, r)
	default:
		w.Header().Set("Allow", "GET, PUT")
		writeError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (d *Daemon) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req UpdateConfigRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.JSON))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if req.MatchPath != nil {
		if err := d.plugin.SetMatchPath(*req.MatchPath); err != nil {
			writeError(w, fmt.Sprintf("failed to persist %s: %v", config.KeyMatchPath, err), http.StatusInternalServerError)
			return
		}
	}
	if req.Fuzzy != nil {
		if err := d.store.SetFuzzy(*req.Fuzzy); err != nil {
			writeError(w, fmt.Sprintf("failed to persist %s: %v", config.KeyFuzzy, err), http.StatusInternalServerError)
			return
		}
		d.plugin.SetFuzzyMatching(*req.Fuzzy)
	}

	writeJSON(w, d.store.Settings(), http.StatusOK)
}

// handleIDEs handles GET /api/ides
func (d *Daemon) handleIDEs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, ListIDEsResponse{IDEs: d.plugin.IDEs()}, http.StatusOK)
}

// handleSettings handles GET /api/settings
func (d *Daemon) handleSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, SettingsResponse{
		Trigger:        d.plugin.DefaultTrigger(),
		FuzzySupported: d.plugin.SupportsFuzzyMatching(),
		Widgets:        d.plugin.ConfigWidget(),
	}, http.StatusOK)
}
