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

// awarriLanguage is the only language the comparison exercises on Awarri.
const awarriLanguage = "hausa"

// AwarriClient implements the Client interface against the Awarri TTS
// endpoint. Awarri has no voice selection; the voice argument is ignored.
type AwarriClient struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// AwarriConfig holds configuration for the Awarri client.
type AwarriConfig struct {
	URL        string // full endpoint URL, no public default
	APIKey     string
	HTTPClient *http.Client // shared pooled client; defaults to a 30s-timeout client
}

// NewAwarriClient creates a new Awarri client.
func NewAwarriClient(cfg AwarriConfig) *AwarriClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &AwarriClient{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}
}

// awarriRequest represents an Awarri synthesis request. The API key travels
// in the body, not in a header, and the text field is named audio_txt.
type awarriRequest struct {
	APIKey   string `json:"api_key"`
	AudioTxt string `json:"audio_txt"`
	Lang     string `json:"lang"`
}

// awarriResponse is the success payload. The audio arrives pre-encoded.
type awarriResponse struct {
	Base64Data string `json:"base64_data"`
}

// Synthesize generates Hausa speech for text and returns the base64 audio
// exactly as the provider sent it, without re-encoding.
func (c *AwarriClient) Synthesize(ctx context.Context, text, _ string) (Audio, error) {
	if c.url == "" {
		return Audio{}, NewConfigError(ProviderAwarri, "AWARRI_TTS_URL is not set")
	}
	if c.apiKey == "" {
		return Audio{}, NewConfigError(ProviderAwarri, "AWARRI_API_KEY is not set")
	}

	req := awarriRequest{
		APIKey:   c.apiKey,
		AudioTxt: text,
		Lang:     awarriLanguage,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Audio{}, NewTransportError(ProviderAwarri, "marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Audio{}, NewTransportError(ProviderAwarri, "create request", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Audio{}, NewTransportError(ProviderAwarri, "send request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return Audio{}, NewProviderError(ProviderAwarri, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var out awarriResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Audio{}, NewProviderError(ProviderAwarri, resp.StatusCode, "response is not valid JSON")
	}
	if out.Base64Data == "" {
		return Audio{}, NewProviderError(ProviderAwarri, resp.StatusCode, "response missing base64_data")
	}

	return Base64Audio(out.Base64Data), nil
}
