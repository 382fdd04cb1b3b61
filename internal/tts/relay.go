package tts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// browserUA is sent upstream; the public endpoint rejects non-browser agents.
const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// ErrEmptyText rejects synthesis requests with nothing to say.
var ErrEmptyText = errors.New("tts: empty text")

// RelayClient fetches synthesized MP3 audio from the public translate-TTS
// endpoint. One fetch per call, no retry; failures surface to the caller.
type RelayClient struct {
	BaseURL string
	Client  *http.Client
}

// NewRelayClient constructs a client against the public endpoint. baseURL is
// overridable for tests.
func NewRelayClient(baseURL string) *RelayClient {
	if baseURL == "" {
		baseURL = "https://translate.google.com"
	}
	return &RelayClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch returns the audio bytes for text in the given language code
// (primary subtag, e.g. "te"). It satisfies the sample-call player's
// AudioFetcher interface.
func (c *RelayClient) Fetch(ctx context.Context, text, lang string) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if lang == "" {
		lang = "en"
	}

	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", lang)
	q.Set("q", text)
	endpoint := c.BaseURL + "/translate_tts?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUA)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts upstream: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts upstream: status=%d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
