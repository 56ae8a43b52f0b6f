package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/muryalabs/murya/internal/tts"
)

// handleListVoices returns the curated Spitch voice list. Awarri has no
// voice selection, so there is nothing to list for it.
func (r *Router) handleListVoices(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"voices": tts.SpitchVoices,
	})
}

// handleGenerate runs one synthesis against the requested provider. On
// success the result becomes that provider's current slot; failures leave
// all session state untouched.
func (r *Router) handleGenerate(w http.ResponseWriter, req *http.Request) {
	if !r.generations.Add() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "server is draining"})
		return
	}
	defer r.generations.Done()

	var body struct {
		Provider string `json:"provider"`
		Text     string `json:"text"`
		Voice    string `json:"voice"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	provider := tts.Provider(body.Provider)

	// Once issued, a synthesis call runs to completion or to the transport
	// timeout; a dropped browser connection must not cancel it.
	ctx := context.WithoutCancel(req.Context())

	result, err := r.generator.Generate(ctx, provider, body.Text, body.Voice)
	if err != nil {
		kind, status := classifyGenerateError(err)
		if kind != "validation" {
			captureError(req, err, "generate: provider call failed")
		}
		writeJSON(w, status, map[string]string{
			"error":    err.Error(),
			"kind":     kind,
			"provider": body.Provider,
		})
		return
	}

	r.state.SetCurrent(*result)
	writeJSON(w, http.StatusOK, result)
}

// classifyGenerateError maps a generation failure to an error kind for the
// client and an HTTP status. Anything that is not a classified provider
// failure comes from input validation.
func classifyGenerateError(err error) (kind string, status int) {
	switch tts.KindOf(err) {
	case tts.KindConfig:
		return "config", http.StatusServiceUnavailable
	case tts.KindTransport:
		return "transport", http.StatusBadGateway
	case tts.KindProvider:
		return "provider", http.StatusBadGateway
	}
	return "validation", http.StatusBadRequest
}
