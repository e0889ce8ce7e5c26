package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/charleschoi123/bazi-destiny/interpret"
	"github.com/charleschoi123/bazi-destiny/models"
)

// interpretStream handles POST /api/interpret_stream.
//
// The response is a text/event-stream of `data: {"delta": "..."}` frames
// terminated by `data: [DONE]`. An upstream failure after the stream started
// is reported as a `data: {"error": "..."}` frame before [DONE].
func (h *Handler) interpretStream(w http.ResponseWriter, r *http.Request) {
	var req models.InterpretRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Chart == nil || !req.Chart.OK {
		writeError(w, http.StatusBadRequest, "Chart payload missing.")
		return
	}

	user, err := interpret.BuildUserPrompt(req.Chart, req.Name, req.Previous)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	log := h.log.With(
		zap.String("request_id", RequestIDFrom(r.Context())),
		zap.String("provider", h.llm.Name()))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.Header().Set("X-AI-Source", h.llm.Name())
	w.WriteHeader(http.StatusOK)
	rc := http.NewResponseController(w)

	deltas, errc := h.llm.Stream(r.Context(), interpret.SystemPrompt, user)
	n := 0
	for d := range deltas {
		if err := writeFrame(w, models.StreamFrame{Delta: d}); err != nil {
			// Client went away; drain so the provider goroutine can exit.
			for range deltas {
			}
			log.Debug("client disconnected", zap.Error(err))
			return
		}
		rc.Flush() //nolint:errcheck
		n++
	}
	if err := <-errc; err != nil {
		log.Warn("interpretation stream failed", zap.Int("deltas", n), zap.Error(err))
		writeFrame(w, models.StreamFrame{Error: err.Error()}) //nolint:errcheck
	}
	fmt.Fprint(w, "data: [DONE]\n\n")
	rc.Flush() //nolint:errcheck
	log.Info("interpretation streamed", zap.Int("deltas", n))
}

func writeFrame(w http.ResponseWriter, f models.StreamFrame) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", b)
	return err
}
