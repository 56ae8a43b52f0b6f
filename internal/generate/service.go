package generate

import (
	"context"
	"encoding/base64"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/muryalabs/murya/internal/eventlog"
	"github.com/muryalabs/murya/internal/notifications"
	"github.com/muryalabs/murya/internal/tts"
)

// MaxTextLen is the input limit, in characters, enforced before any
// provider is contacted.
const MaxTextLen = 500

// Validation errors. All of them are raised before a network call is made.
var (
	ErrEmptyText       = errors.New("text is empty")
	ErrTextTooLong     = errors.New("text exceeds 500 characters")
	ErrUnknownProvider = errors.New("unknown provider")
	ErrInvalidVoice    = errors.New("voice is not in the Spitch voice set")
)

// Result is one normalized synthesis outcome. Audio is always held as
// standard base64 text regardless of how the provider returned it, and is
// decoded back to bytes only at playback time. Voice is nil for providers
// without voice selection.
type Result struct {
	ID             string       `json:"id"`
	Text           string       `json:"text"`
	Provider       tts.Provider `json:"provider"`
	Voice          *string      `json:"voice"`
	AudioBase64    string       `json:"audio_base64"`
	LatencySeconds float64      `json:"latency_seconds"`
	CreatedAt      time.Time    `json:"created_at"`
}

// Service validates requests, dispatches them to provider clients, times
// the call, and normalizes the heterogeneous audio encodings into one
// canonical form.
type Service struct {
	clients  map[tts.Provider]tts.Client
	events   *eventlog.Logger
	notifier *notifications.Discord
	logger   *log.Logger
}

// NewService creates a generation service over the given provider clients.
// notifier may be nil when failure alerting is not configured.
func NewService(clients map[tts.Provider]tts.Client, events *eventlog.Logger, notifier *notifications.Discord, logger *log.Logger) *Service {
	return &Service{clients: clients, events: events, notifier: notifier, logger: logger}
}

// Generate synthesizes text with the named provider and returns a
// normalized result. The latency figure covers the provider call only,
// not validation or encoding. Failed generations produce no Result.
func (s *Service) Generate(ctx context.Context, provider tts.Provider, text, voice string) (*Result, error) {
	client, ok := s.clients[provider]
	if !ok {
		return nil, ErrUnknownProvider
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if utf8.RuneCountInString(text) > MaxTextLen {
		return nil, ErrTextTooLong
	}

	var voicePtr *string
	switch provider {
	case tts.ProviderSpitch:
		if tts.VoiceID(voice) == "" {
			return nil, ErrInvalidVoice
		}
		v := voice
		voicePtr = &v
	default:
		// Awarri synthesizes with its single built-in voice.
		voice = ""
	}

	s.events.Log(eventlog.EventGenerationStarted, string(provider), map[string]any{
		"text_len": utf8.RuneCountInString(text),
	})

	start := time.Now()
	audio, err := client.Synthesize(ctx, text, voice)
	latency := time.Since(start).Seconds()

	if err != nil {
		s.logger.Printf("generate: %s failed after %.2fs: %v", provider, latency, err)
		s.events.Log(eventlog.EventGenerationFailed, string(provider), map[string]any{
			"seconds": latency,
			"error":   err.Error(),
		})
		s.notifier.NotifyProviderFailure(ctx, string(provider), string(tts.KindOf(err)), err.Error())
		return nil, err
	}

	encoded, ok := normalize(audio)
	if !ok {
		err := tts.NewProviderError(provider, 0, "empty audio payload")
		s.logger.Printf("generate: %s returned no audio after %.2fs", provider, latency)
		s.events.Log(eventlog.EventGenerationFailed, string(provider), map[string]any{
			"seconds": latency,
			"error":   err.Error(),
		})
		s.notifier.NotifyProviderFailure(ctx, string(provider), string(tts.KindProvider), err.Error())
		return nil, err
	}

	result := &Result{
		ID:             uuid.NewString(),
		Text:           text,
		Provider:       provider,
		Voice:          voicePtr,
		AudioBase64:    encoded,
		LatencySeconds: latency,
		CreatedAt:      time.Now().UTC(),
	}

	s.logger.Printf("generate: %s ok in %.2fs (%d bytes base64)", provider, latency, len(encoded))
	s.events.Log(eventlog.EventGenerationCompleted, string(provider), map[string]any{
		"seconds":   latency,
		"result_id": result.ID,
	})
	return result, nil
}

// normalize converts a provider payload into canonical base64 text. Raw
// bytes are encoded; pre-encoded payloads pass through unchanged.
func normalize(a tts.Audio) (string, bool) {
	switch {
	case len(a.Raw) > 0:
		return base64.StdEncoding.EncodeToString(a.Raw), true
	case a.Base64 != "":
		return a.Base64, true
	}
	return "", false
}
