package tts

import (
	"context"
	"strings"
)

// Provider identifies an external text-to-speech backend.
type Provider string

const (
	ProviderSpitch Provider = "spitch"
	ProviderAwarri Provider = "awarri"
)

// Valid reports whether p names a known provider.
func (p Provider) Valid() bool {
	return p == ProviderSpitch || p == ProviderAwarri
}

// DisplayName returns the provider label shown in the comparison UI.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderSpitch:
		return "Spitch AI"
	case ProviderAwarri:
		return "Awarri"
	}
	return string(p)
}

// Client defines the interface for text-to-speech providers.
type Client interface {
	// Synthesize converts text to Hausa speech. voice is the display name of
	// the requested voice; providers without voice selection ignore it.
	// The returned Audio carries the payload in the provider's wire encoding.
	Synthesize(ctx context.Context, text, voice string) (Audio, error)
}

// Audio is a synthesis payload tagged with its wire encoding. Exactly one
// field is set: Raw for providers that stream audio bytes, Base64 for
// providers that answer with pre-encoded audio text.
type Audio struct {
	Raw    []byte
	Base64 string
}

// RawAudio wraps audio bytes as received from the provider.
func RawAudio(b []byte) Audio { return Audio{Raw: b} }

// Base64Audio wraps a base64 payload as received from the provider.
func Base64Audio(s string) Audio { return Audio{Base64: s} }

// Empty reports whether the payload carries no audio at all.
func (a Audio) Empty() bool { return len(a.Raw) == 0 && a.Base64 == "" }

// Voice is a selectable Spitch voice. Awarri offers no voice selection.
type Voice struct {
	ID     string `json:"id"`   // wire identifier, lowercase
	Name   string `json:"name"` // display name
	Gender string `json:"gender"`
}

// SpitchVoices is the curated set of Hausa voices offered by Spitch.
var SpitchVoices = []Voice{
	{ID: "hasan", Name: "Hasan", Gender: "male"},
	{ID: "amina", Name: "Amina", Gender: "female"},
	{ID: "zainab", Name: "Zainab", Gender: "female"},
	{ID: "aliyu", Name: "Aliyu", Gender: "male"},
}

// spitchVoiceIDs is a set of valid wire identifiers for quick validation.
var spitchVoiceIDs = func() map[string]bool {
	ids := make(map[string]bool, len(SpitchVoices))
	for _, v := range SpitchVoices {
		ids[v.ID] = true
	}
	return ids
}()

// VoiceID maps a voice display name to its wire identifier. It returns ""
// when the name is not in the Spitch voice set.
func VoiceID(name string) string {
	id := strings.ToLower(strings.TrimSpace(name))
	if !spitchVoiceIDs[id] {
		return ""
	}
	return id
}
