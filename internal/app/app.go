package app

import (
	"log"
	"net"
	"net/http"
	"time"

	"github.com/muryalabs/murya/internal/eventlog"
	"github.com/muryalabs/murya/internal/generate"
	"github.com/muryalabs/murya/internal/history"
	"github.com/muryalabs/murya/internal/httpapi"
	"github.com/muryalabs/murya/internal/notifications"
	"github.com/muryalabs/murya/internal/session"
	"github.com/muryalabs/murya/internal/tts"
)

// App owns the session-scoped state and the provider clients. Everything is
// constructed once at startup; the session ends when the process exits.
type App struct {
	cfg        Config
	logger     *log.Logger
	state      *session.State
	history    *history.Store
	events     *eventlog.Logger
	generator  *generate.Service
	httpClient *http.Client // Shared HTTP client with connection pooling for TTS
}

func New(cfg Config, logger *log.Logger) *App {
	// Shared HTTP client with connection pooling for both providers.
	// Keeps TCP connections alive to reduce latency for repeated calls.
	// Missing credentials are not checked here: they surface per call as
	// configuration errors, matching how the comparison is actually used.
	httpClient := &http.Client{
		Timeout: cfg.TTSRequestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10, // two provider hosts, a few conns each
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   5 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	spitch := tts.NewSpitchClient(tts.SpitchConfig{
		APIKey:     cfg.SpitchAPIKey,
		BaseURL:    cfg.SpitchBaseURL,
		HTTPClient: httpClient,
	})
	awarri := tts.NewAwarriClient(tts.AwarriConfig{
		URL:        cfg.AwarriTTSURL,
		APIKey:     cfg.AwarriAPIKey,
		HTTPClient: httpClient,
	})

	events := eventlog.New()
	notifier := notifications.NewDiscord(cfg.DiscordWebhookURL, logger)
	generator := generate.NewService(map[tts.Provider]tts.Client{
		tts.ProviderSpitch: spitch,
		tts.ProviderAwarri: awarri,
	}, events, notifier, logger)

	return &App{
		cfg:        cfg,
		logger:     logger,
		state:      session.NewState(),
		history:    history.New(),
		events:     events,
		generator:  generator,
		httpClient: httpClient,
	}
}

func (a *App) Router(generations *httpapi.GenerationRegistry) http.Handler {
	return httpapi.NewRouter(a.logger, a.generator, a.state, a.history, a.events, generations)
}

// Close releases what little the app holds onto. Session state and history
// are memory only and vanish with the process.
func (a *App) Close() error {
	a.httpClient.CloseIdleConnections()
	return nil
}
