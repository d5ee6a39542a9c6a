package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/scorelink-core/internal/accessory"
	"github.com/nerrad567/scorelink-core/internal/bridges/scoreboard"
)

// accessoryView is the JSON shape for one accessory.
type accessoryView struct {
	*accessory.Record
	Restored     bool                    `json:"restored"`
	InputSources []accessory.InputSource `json:"input_sources"`
}

func newAccessoryView(acc *accessory.Accessory) accessoryView {
	return accessoryView{
		Record:       acc.Record(),
		Restored:     acc.Restored(),
		InputSources: acc.InputSources(),
	}
}

// handleListAccessories returns all discovered accessories.
func (s *Server) handleListAccessories(w http.ResponseWriter, _ *http.Request) {
	views := make([]accessoryView, 0, len(s.ordered))
	for _, acc := range s.ordered {
		views = append(views, newAccessoryView(acc))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"accessories": views,
		"count":       len(views),
	})
}

// handleGetAccessory returns a single accessory by identity.
func (s *Server) handleGetAccessory(w http.ResponseWriter, r *http.Request) {
	acc, ok := s.accessories[chi.URLParam(r, "id")]
	if !ok {
		writeNotFound(w, "accessory not found")
		return
	}

	writeJSON(w, http.StatusOK, newAccessoryView(acc))
}

// handleGetState returns the live device state for one accessory.
// Both fields come from a device round trip; nothing is served from cache.
func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	acc, ok := s.accessories[chi.URLParam(r, "id")]
	if !ok {
		writeNotFound(w, "accessory not found")
		return
	}

	ctx := r.Context()

	on, err := acc.GetPower(ctx)
	if err != nil {
		writeDeviceError(w, err)
		return
	}
	sport, err := acc.GetActiveInput(ctx)
	if err != nil {
		writeDeviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"screen_on": on,
		"sport":     sport,
	})
}

// handleSetPower sets display power for one accessory.
func (s *Server) handleSetPower(w http.ResponseWriter, r *http.Request) {
	acc, ok := s.accessories[chi.URLParam(r, "id")]
	if !ok {
		writeNotFound(w, "accessory not found")
		return
	}

	var body struct {
		On *bool `json:"on"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.On == nil {
		writeBadRequest(w, "body must be {\"on\": true|false}")
		return
	}

	if err := acc.SetPower(r.Context(), *body.On); err != nil {
		writeDeviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"screen_on": *body.On})
}

// handleSetInput sets the active input source for one accessory.
func (s *Server) handleSetInput(w http.ResponseWriter, r *http.Request) {
	acc, ok := s.accessories[chi.URLParam(r, "id")]
	if !ok {
		writeNotFound(w, "accessory not found")
		return
	}

	var body struct {
		Sport *int `json:"sport"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Sport == nil {
		writeBadRequest(w, "body must be {\"sport\": <identifier>}")
		return
	}

	if err := acc.SetActiveInput(r.Context(), *body.Sport); err != nil {
		if errors.Is(err, accessory.ErrUnknownInputSource) {
			writeBadRequest(w, "unknown input source")
			return
		}
		writeDeviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"sport": *body.Sport})
}

// writeDeviceError maps device round-trip failures onto HTTP statuses.
func writeDeviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scoreboard.ErrDeviceUnreachable):
		writeError(w, http.StatusBadGateway, ErrCodeDeviceUnreachable, "device unreachable")
	case errors.Is(err, scoreboard.ErrMalformedResponse):
		writeError(w, http.StatusBadGateway, ErrCodeDeviceProtocol, "device returned a malformed response")
	default:
		writeInternalError(w, "device operation failed")
	}
}
