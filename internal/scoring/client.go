package scoring

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/uibench/uibench/internal/config"
)

// anthropicVersion is the API version header value.
const anthropicVersion = "2023-06-01"

// defaultMaxTokens bounds response length. Rubric responses are a few
// hundred tokens; 4096 leaves ample headroom without inviting rambling.
const defaultMaxTokens = 4096

// VisionClient is the caller-facing contract of the model client.
// The engine depends on this interface so tests can substitute a fake.
type VisionClient interface {
	// AnalyzeImage sends one image plus a prompt and returns the model's
	// raw text reply.
	AnalyzeImage(ctx context.Context, prompt string, imagePNG []byte) (string, error)

	// Complete sends a text-only prompt and returns the raw text reply.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client talks to the Anthropic Messages API.
type Client struct {
	// apiKey authenticates requests. Never logged.
	apiKey string

	// model is the vision-capable model identifier.
	model string

	// baseURL allows tests to point the client at a local server.
	baseURL string

	// maxTokens bounds each response.
	maxTokens int

	// httpClient carries the per-call timeout.
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithModel overrides the model identifier.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL overrides the API endpoint, primarily for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

// WithTimeout sets the per-call HTTP timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates an API client with the given key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:    apiKey,
		model:     config.DefaultModel,
		baseURL:   "https://api.anthropic.com",
		maxTokens: defaultMaxTokens,
		httpClient: &http.Client{
			Timeout: config.DefaultScoringTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// contentBlock is one element of a message's content array.
// Text blocks carry Text; image blocks carry Source.
type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

// imageSource is the base64 payload of an image content block.
type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

// apiMessage is one conversation turn.
type apiMessage struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

// apiRequest is the Messages API request body.
type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	Messages  []apiMessage `json:"messages"`
}

// apiResponse is the Messages API response body.
type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Error      *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// AnalyzeImage sends one PNG image plus a prompt and returns the raw reply.
func (c *Client) AnalyzeImage(ctx context.Context, prompt string, imagePNG []byte) (string, error) {
	blocks := []contentBlock{
		{
			Type: "image",
			Source: &imageSource{
				Type:      "base64",
				MediaType: "image/png",
				Data:      base64.StdEncoding.EncodeToString(imagePNG),
			},
		},
		{Type: "text", Text: prompt},
	}
	return c.send(ctx, blocks)
}

// Complete sends a text-only prompt and returns the raw reply.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.send(ctx, []contentBlock{{Type: "text", Text: prompt}})
}

// send performs one Messages API call. No retries: a failure here is a
// recorded per-item failure at the engine level.
func (c *Client) send(ctx context.Context, blocks []contentBlock) (string, error) {
	body, err := json.Marshal(apiRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []apiMessage{
			{Role: "user", Content: blocks},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("model call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parsing response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("model API error (%s): %s", parsed.Error.Type, parsed.Error.Message)
		}
		return "", fmt.Errorf("model API returned status %d", resp.StatusCode)
	}

	var text strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	if text.Len() == 0 {
		return "", fmt.Errorf("model returned no text content (stop reason %q)", parsed.StopReason)
	}

	return text.String(), nil
}
