// Package handlers provides the HTTP API:
//
//   - POST   /api/chart            – compute a chart (pure, safe to retry).
//   - POST   /api/interpret_stream – stream an interpretation as server-sent
//     events.
//   - GET    /api/geocodes         – list the geocode cache.
//   - POST   /api/geocodes/refresh – geocode a place again; the cache write is
//     skipped when nothing changed.
//   - DELETE /api/geocodes/{key}   – evict a cache entry; succeeds when the
//     entry does not exist.
//   - GET    /healthz              – liveness.
//
// Every endpoint is idempotent. Chart computation has no side effects, the
// geocode cache keeps the first result for a place, and deletes of missing
// keys succeed, so clients may retry any request after a network failure.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/charleschoi123/bazi-destiny/bazi"
	"github.com/charleschoi123/bazi-destiny/geocode"
	"github.com/charleschoi123/bazi-destiny/interpret"
	"github.com/charleschoi123/bazi-destiny/models"
	"github.com/charleschoi123/bazi-destiny/timezone"
)

// GeocodeCache is the part of the store the admin endpoints use.
type GeocodeCache interface {
	List() ([]models.GeocodeEntry, error)
	Delete(key string) error
}

// Deps are the collaborators of a Handler. Only Calculator is required; a
// nil Geocoder disables geocoding and a nil Cache disables the admin
// endpoints.
type Deps struct {
	Calculator  *bazi.Calculator
	Geocoder    *geocode.Service
	Cache       GeocodeCache
	LLM         interpret.Provider
	Logger      *zap.Logger
	AllowOrigin string
}

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	calc     *bazi.Calculator
	geo      *geocode.Service
	cache    GeocodeCache
	llm      interpret.Provider
	log      *zap.Logger
	origin   string
	resolver timezone.Resolver
}

// New creates a Handler.
func New(d Deps) *Handler {
	h := &Handler{
		calc:   d.Calculator,
		geo:    d.Geocoder,
		cache:  d.Cache,
		llm:    d.LLM,
		log:    d.Logger,
		origin: d.AllowOrigin,
	}
	if h.calc == nil {
		h.calc = bazi.New()
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	if h.llm == nil {
		h.llm = interpret.Notice{Label: "none", Text: "[No language model configured]\n"}
	}
	if h.origin == "" {
		h.origin = "*"
	}
	return h
}

// Routes returns the API mux wrapped in the request-id, access-log and CORS
// middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chart", h.chart)
	mux.HandleFunc("POST /api/interpret_stream", h.interpretStream)
	mux.HandleFunc("GET /api/geocodes", h.listGeocodes)
	mux.HandleFunc("POST /api/geocodes/refresh", h.refreshGeocode)
	mux.HandleFunc("DELETE /api/geocodes/{key}", h.deleteGeocode)
	mux.HandleFunc("GET /healthz", h.healthz)

	return requestID(accessLog(h.log, cors(h.origin, mux)))
}

// maxBodyBytes caps every request body; interpretation requests carry the
// chart and earlier output, which stay far below it.
const maxBodyBytes = 1 << 20

// decodeBody decodes the JSON request body into v. On failure it writes a
// 400, or a 413 when the body exceeds maxBodyBytes, and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// writeJSON serialises v as JSON and writes it to w with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v) //nolint:errcheck
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{OK: false, Error: msg})
}

// healthz handles GET /healthz.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
