package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// listGeocodes handles GET /api/geocodes.
func (h *Handler) listGeocodes(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		writeError(w, http.StatusServiceUnavailable, "geocode cache disabled")
		return
	}
	items, err := h.cache.List()
	if err != nil {
		h.log.Error("failed to list geocodes", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list geocodes")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type refreshRequest struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// refreshGeocode handles POST /api/geocodes/refresh.
//
// The place is geocoded again. The X-Idempotency-Write header reports
// whether the cached entry changed; repeating the call with an unchanged
// upstream answer never writes.
func (h *Handler) refreshGeocode(w http.ResponseWriter, r *http.Request) {
	if h.geo == nil {
		writeError(w, http.StatusServiceUnavailable, "geocoding disabled")
		return
	}
	var body refreshRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.City) == "" {
		writeError(w, http.StatusBadRequest, "missing city")
		return
	}

	entry, written, err := h.geo.Refresh(r.Context(), body.City, body.Country)
	if err != nil {
		h.log.Warn("geocode refresh failed", zap.String("city", body.City), zap.Error(err))
		writeError(w, http.StatusBadGateway, "geocoding failed: "+err.Error())
		return
	}

	if written {
		w.Header().Set("X-Idempotency-Write", "true")
	} else {
		w.Header().Set("X-Idempotency-Write", "false")
	}
	writeJSON(w, http.StatusOK, entry)
}

// deleteGeocode handles DELETE /api/geocodes/{key}.
//
// Deleting a key that is not cached still returns 200: the desired end state
// is reached either way.
func (h *Handler) deleteGeocode(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		writeError(w, http.StatusServiceUnavailable, "geocode cache disabled")
		return
	}
	key := r.PathValue("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "missing key in path")
		return
	}

	if err := h.cache.Delete(key); err != nil {
		h.log.Error("failed to delete geocode", zap.String("key", key), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete geocode")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"deleted": key})
}
