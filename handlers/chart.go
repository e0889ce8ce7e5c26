package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/charleschoi123/bazi-destiny/bazi"
	"github.com/charleschoi123/bazi-destiny/geocode"
	"github.com/charleschoi123/bazi-destiny/models"
)

// chart handles POST /api/chart.
//
// The place is resolved through the built-in gazetteer first. Places it does
// not know are geocoded (when enabled); if that fails too the chart is still
// computed at UTC+0 and the response carries timezone_fallback=true.
func (h *Handler) chart(w http.ResponseWriter, r *http.Request) {
	var req models.ChartRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Date) == "" || strings.TrimSpace(req.Time) == "" {
		writeError(w, http.StatusBadRequest, "Please provide date and time.")
		return
	}
	if strings.TrimSpace(req.Timezone) == "" && (strings.TrimSpace(req.City) == "" || strings.TrimSpace(req.Country) == "") {
		writeError(w, http.StatusBadRequest, "Please provide date, time, city, and country.")
		return
	}

	log := h.log.With(zap.String("request_id", RequestIDFrom(r.Context())))
	in := req.BirthInput()

	var geo *models.GeocodeEntry
	if strings.TrimSpace(req.Timezone) == "" && h.geo != nil && !h.resolver.Known(req.City, req.Country) {
		entry, err := h.geo.Locate(r.Context(), req.City, req.Country)
		switch {
		case err != nil:
			log.Warn("geocoding failed", zap.String("city", req.City), zap.String("country", req.Country), zap.Error(err))
		default:
			if z, ok := geocode.Zone(entry); ok {
				in.Resolved = z
				geo = entry
			}
		}
	}

	c, err := h.calc.Compute(in)
	if err != nil {
		if errors.Is(err, bazi.ErrInvalidDateTime) || errors.Is(err, bazi.ErrSolarTermTableGap) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error("chart computation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to compute chart")
		return
	}

	if c.Timezone.Fallback {
		log.Warn("birth place not resolved, using UTC+0",
			zap.String("city", req.City),
			zap.String("country", req.Country))
	}
	log.Debug("chart computed",
		zap.String("beijing", c.Beijing.String()),
		zap.String("zone", c.Timezone.Zone),
		zap.String("source", string(c.Timezone.Source)))

	writeJSON(w, http.StatusOK, models.NewChartResponse(req, c, geo))
}
