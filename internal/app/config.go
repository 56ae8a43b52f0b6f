package app

import (
	"os"
	"time"
)

type Config struct {
	HTTPAddr  string
	SentryDSN string

	// Spitch provider
	SpitchAPIKey  string
	SpitchBaseURL string // empty means the client's public default

	// Awarri provider
	AwarriTTSURL string
	AwarriAPIKey string

	// Optional Discord webhook for provider failure alerts.
	DiscordWebhookURL string

	// Shared transport timeout for synthesis calls. Once a call is issued it
	// runs to completion or to this timeout; there is no cancellation.
	TTSRequestTimeout time.Duration
}

func LoadConfigFromEnv() Config {
	return Config{
		HTTPAddr:  getenv("HTTP_ADDR", ":8080"),
		SentryDSN: getenv("SENTRY_DSN", ""),

		// Spitch provider
		SpitchAPIKey:  getenv("SPITCH_API_KEY", ""),
		SpitchBaseURL: getenv("SPITCH_BASE_URL", ""),

		// Awarri provider
		AwarriTTSURL: getenv("AWARRI_TTS_URL", ""),
		AwarriAPIKey: getenv("AWARRI_API_KEY", ""),

		DiscordWebhookURL: getenv("DISCORD_WEBHOOK_URL", ""),

		TTSRequestTimeout: getenvDurationClamped("TTS_REQUEST_TIMEOUT", 30*time.Second, time.Second, 2*time.Minute),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getenvDurationClamped reads a duration env var ("45s", "1m") and clamps it
// to [min, max]. Missing or unparseable values fall back to def.
func getenvDurationClamped(k string, def, min, max time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	if d < min {
		return min
	}
	if d > max {
		return max
	}
	return d
}
