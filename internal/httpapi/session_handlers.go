package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/muryalabs/murya/internal/eventlog"
	"github.com/muryalabs/murya/internal/generate"
	"github.com/muryalabs/murya/internal/stats"
	"github.com/muryalabs/murya/internal/tts"
)

// handleCurrent returns the pending (not yet saved) result per provider.
func (r *Router) handleCurrent(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"current": r.state.Snapshot(),
	})
}

// handleSave copies a provider's current result into the history. The slot
// itself stays occupied, so saving twice records two entries.
func (r *Router) handleSave(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Provider string `json:"provider"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	provider := tts.Provider(body.Provider)
	if !provider.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown provider"})
		return
	}

	result, ok := r.state.Current(provider)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no current result for this provider"})
		return
	}

	r.history.Save(result)
	r.events.Log(eventlog.EventResultSaved, string(provider), map[string]any{"result_id": result.ID})
	r.logger.Printf("history: saved %s result %s", provider, result.ID)

	writeJSON(w, http.StatusOK, map[string]any{
		"saved": result,
		"count": r.history.Len(),
	})
}

// handleClear empties both current slots. History stays as it is.
func (r *Router) handleClear(w http.ResponseWriter, req *http.Request) {
	r.state.Clear()
	r.events.Log(eventlog.EventSessionCleared, "", nil)

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleHistory returns every saved result, newest first.
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) {
	entries := r.history.All()
	writeJSON(w, http.StatusOK, map[string]any{
		"history": entries,
		"count":   len(entries),
	})
}

// handleStats returns per-provider latency summaries over the saved history.
func (r *Router) handleStats(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"stats": stats.Summarize(r.history.All()),
	})
}

// handleAudio serves the WAV bytes of one result. Results store audio as
// base64 text; this is the only place it is decoded back to bytes.
func (r *Router) handleAudio(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")

	result, ok := r.lookupResult(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "audio not found"})
		return
	}

	audio, err := base64.StdEncoding.DecodeString(result.AudioBase64)
	if err != nil {
		r.logger.Printf("audio: result %s holds undecodable audio: %v", id, err)
		captureError(req, err, "audio: stored audio is not valid base64")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "stored audio is not decodable"})
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(audio)))
	_, _ = w.Write(audio)
}

// lookupResult finds a result by ID in the saved history or, failing that,
// in the current slots.
func (r *Router) lookupResult(id string) (generate.Result, bool) {
	if result, ok := r.history.Get(id); ok {
		return result, true
	}
	for _, result := range r.state.Snapshot() {
		if result.ID == id {
			return result, true
		}
	}
	return generate.Result{}, false
}
