package generate

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/muryalabs/murya/internal/eventlog"
	"github.com/muryalabs/murya/internal/tts"
)

// stubClient returns a fixed payload or error and counts invocations.
type stubClient struct {
	audio tts.Audio
	err   error
	calls int
	delay time.Duration
}

func (s *stubClient) Synthesize(ctx context.Context, text, voice string) (tts.Audio, error) {
	s.calls++
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.audio, s.err
}

func newTestService(spitch, awarri tts.Client) *Service {
	return NewService(map[tts.Provider]tts.Client{
		tts.ProviderSpitch: spitch,
		tts.ProviderAwarri: awarri,
	}, eventlog.New(), nil, log.New(io.Discard, "", 0))
}

func TestGenerate_SpitchNormalizesRawBytes(t *testing.T) {
	wav := []byte("RIFF....WAVEdata")
	spitch := &stubClient{audio: tts.RawAudio(wav)}
	svc := newTestService(spitch, &stubClient{})

	result, err := svc.Generate(context.Background(), tts.ProviderSpitch, "Sannu da zuwa", "Hasan")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	decoded, err := base64.StdEncoding.DecodeString(result.AudioBase64)
	if err != nil {
		t.Fatalf("stored audio is not valid base64: %v", err)
	}
	if string(decoded) != string(wav) {
		t.Errorf("decoded audio = %q, want the provider bytes", decoded)
	}
	if reencoded := base64.StdEncoding.EncodeToString(decoded); reencoded != result.AudioBase64 {
		t.Errorf("re-encoded audio = %q, want the stored string (normalization must be canonical)", reencoded)
	}

	if result.Provider != tts.ProviderSpitch {
		t.Errorf("Provider = %q, want %q", result.Provider, tts.ProviderSpitch)
	}
	if result.Voice == nil || *result.Voice != "Hasan" {
		t.Errorf("Voice = %v, want %q", result.Voice, "Hasan")
	}
	if result.Text != "Sannu da zuwa" {
		t.Errorf("Text = %q, want the input text", result.Text)
	}
	if result.ID == "" {
		t.Error("ID should be set")
	}
	if result.LatencySeconds < 0 {
		t.Errorf("LatencySeconds = %f, want >= 0", result.LatencySeconds)
	}
	if result.CreatedAt.IsZero() || result.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt = %v, want a UTC timestamp", result.CreatedAt)
	}
}

func TestGenerate_AwarriPassesBase64Through(t *testing.T) {
	awarri := &stubClient{audio: tts.Base64Audio("UklGRiQAAABXQVZF")}
	svc := newTestService(&stubClient{}, awarri)

	result, err := svc.Generate(context.Background(), tts.ProviderAwarri, "Ina kwana", "Hasan")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.AudioBase64 != "UklGRiQAAABXQVZF" {
		t.Errorf("AudioBase64 = %q, want the provider payload untouched", result.AudioBase64)
	}
	if result.Voice != nil {
		t.Errorf("Voice = %q, want nil for a provider without voice selection", *result.Voice)
	}
}

func TestGenerate_ValidationPrecedesProviderCall(t *testing.T) {
	tests := []struct {
		name     string
		provider tts.Provider
		text     string
		voice    string
		wantErr  error
	}{
		{"empty text", tts.ProviderSpitch, "", "Hasan", ErrEmptyText},
		{"whitespace only", tts.ProviderSpitch, "   \n\t ", "Hasan", ErrEmptyText},
		{"too long", tts.ProviderAwarri, strings.Repeat("a", 501), "", ErrTextTooLong},
		{"unknown provider", tts.Provider("eleven"), "Sannu", "", ErrUnknownProvider},
		{"unknown voice", tts.ProviderSpitch, "Sannu", "Rachel", ErrInvalidVoice},
		{"empty voice for spitch", tts.ProviderSpitch, "Sannu", "", ErrInvalidVoice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spitch := &stubClient{audio: tts.RawAudio([]byte("x"))}
			awarri := &stubClient{audio: tts.Base64Audio("eA==")}
			svc := newTestService(spitch, awarri)

			_, err := svc.Generate(context.Background(), tt.provider, tt.text, tt.voice)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Generate() error = %v, want %v", err, tt.wantErr)
			}
			if spitch.calls != 0 || awarri.calls != 0 {
				t.Errorf("provider calls = %d/%d, want none for invalid input", spitch.calls, awarri.calls)
			}
		})
	}
}

func TestGenerate_ExactlyMaxLengthIsAccepted(t *testing.T) {
	awarri := &stubClient{audio: tts.Base64Audio("eA==")}
	svc := newTestService(&stubClient{}, awarri)

	_, err := svc.Generate(context.Background(), tts.ProviderAwarri, strings.Repeat("a", MaxTextLen), "")
	if err != nil {
		t.Errorf("Generate() error = %v, want nil at exactly %d characters", err, MaxTextLen)
	}
}

func TestGenerate_LengthCountsRunesNotBytes(t *testing.T) {
	// 500 two-byte runes exceed 500 bytes but not the character limit.
	awarri := &stubClient{audio: tts.Base64Audio("eA==")}
	svc := newTestService(&stubClient{}, awarri)

	_, err := svc.Generate(context.Background(), tts.ProviderAwarri, strings.Repeat("ƙ", MaxTextLen), "")
	if err != nil {
		t.Errorf("Generate() error = %v, want nil for %d multi-byte characters", err, MaxTextLen)
	}
}

func TestGenerate_ProviderErrorPassesThrough(t *testing.T) {
	provErr := tts.NewProviderError(tts.ProviderSpitch, 500, "internal error")
	spitch := &stubClient{err: provErr}
	svc := newTestService(spitch, &stubClient{})

	result, err := svc.Generate(context.Background(), tts.ProviderSpitch, "Sannu", "Amina")
	if result != nil {
		t.Errorf("result = %v, want nil on failure", result)
	}

	var gotErr *tts.Error
	if !errors.As(err, &gotErr) {
		t.Fatalf("error type = %T, want *tts.Error", err)
	}
	if gotErr.Status != 500 {
		t.Errorf("Status = %d, want 500", gotErr.Status)
	}
}

func TestGenerate_EmptyAudioIsAFailure(t *testing.T) {
	spitch := &stubClient{audio: tts.Audio{}}
	svc := newTestService(spitch, &stubClient{})

	_, err := svc.Generate(context.Background(), tts.ProviderSpitch, "Sannu", "Zainab")
	if got := tts.KindOf(err); got != tts.KindProvider {
		t.Errorf("KindOf(err) = %q, want %q for an empty payload", got, tts.KindProvider)
	}
}

func TestGenerate_LatencyCoversProviderCall(t *testing.T) {
	spitch := &stubClient{audio: tts.RawAudio([]byte("x")), delay: 30 * time.Millisecond}
	svc := newTestService(spitch, &stubClient{})

	result, err := svc.Generate(context.Background(), tts.ProviderSpitch, "Sannu", "Aliyu")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.LatencySeconds < 0.03 {
		t.Errorf("LatencySeconds = %f, want at least the provider delay", result.LatencySeconds)
	}
}

func TestGenerate_ResultIDsAreUnique(t *testing.T) {
	awarri := &stubClient{audio: tts.Base64Audio("eA==")}
	svc := newTestService(&stubClient{}, awarri)

	first, err := svc.Generate(context.Background(), tts.ProviderAwarri, "Sannu", "")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := svc.Generate(context.Background(), tts.ProviderAwarri, "Sannu", "")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if first.ID == second.ID {
		t.Errorf("both results got ID %q, want unique IDs", first.ID)
	}
}

func TestGenerate_EmitsLifecycleEvents(t *testing.T) {
	events := eventlog.New()
	svc := NewService(map[tts.Provider]tts.Client{
		tts.ProviderAwarri: &stubClient{audio: tts.Base64Audio("eA==")},
	}, events, nil, log.New(io.Discard, "", 0))

	if _, err := svc.Generate(context.Background(), tts.ProviderAwarri, "Sannu", ""); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	got := events.Recent(10)
	if len(got) != 2 {
		t.Fatalf("logged %d events, want 2", len(got))
	}
	if got[0].Type != eventlog.EventGenerationStarted {
		t.Errorf("first event = %q, want %q", got[0].Type, eventlog.EventGenerationStarted)
	}
	if got[1].Type != eventlog.EventGenerationCompleted {
		t.Errorf("second event = %q, want %q", got[1].Type, eventlog.EventGenerationCompleted)
	}
}
