package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

const spitchAPIURL = "https://api.spi-tch.com"

// spitchLanguage pins synthesis to Hausa; the comparison covers Hausa only.
const spitchLanguage = "ha"

// maxErrorBody bounds how much of a failure response is kept for diagnostics.
const maxErrorBody = 4096

// SpitchClient implements the Client interface against the Spitch speech API.
type SpitchClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// SpitchConfig holds configuration for the Spitch client.
type SpitchConfig struct {
	APIKey     string
	BaseURL    string       // defaults to the public API endpoint
	HTTPClient *http.Client // shared pooled client; defaults to a 30s-timeout client
}

// NewSpitchClient creates a new Spitch client.
func NewSpitchClient(cfg SpitchConfig) *SpitchClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = spitchAPIURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &SpitchClient{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// speechRequest represents a Spitch speech synthesis request.
type speechRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Voice    string `json:"voice"`
}

// Synthesize generates Hausa speech for text with the named voice and
// returns the WAV bytes. Spitch streams the audio; synthesis counts as
// complete only once the whole stream has been read.
func (c *SpitchClient) Synthesize(ctx context.Context, text, voice string) (Audio, error) {
	if c.apiKey == "" {
		return Audio{}, NewConfigError(ProviderSpitch, "SPITCH_API_KEY is not set")
	}

	req := speechRequest{
		Text:     text,
		Language: spitchLanguage,
		Voice:    strings.ToLower(voice),
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Audio{}, NewTransportError(ProviderSpitch, "marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/speech", bytes.NewReader(body))
	if err != nil {
		return Audio{}, NewTransportError(ProviderSpitch, "create request", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Audio{}, NewTransportError(ProviderSpitch, "send request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return Audio{}, NewProviderError(ProviderSpitch, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Audio{}, NewTransportError(ProviderSpitch, "read audio stream", err)
	}
	if len(data) == 0 {
		return Audio{}, NewProviderError(ProviderSpitch, resp.StatusCode, "empty audio response")
	}

	return RawAudio(data), nil
}
