package textgen

// Package textgen is the HTTP client for the remote text-generation service.
// The response shape is provider-specific, so the field carrying the generated
// text is addressed with a configurable JMESPath expression instead of a
// hardcoded struct.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	apperrors "github.com/launchpath/lp-gateway/internal/errors"
)

const defaultResultPath = "choices[0].message.content"

// Config holds configuration for the text-generation client.
type Config struct {
	// APIKey authenticates against the service. Required.
	APIKey string
	// Endpoint is the completion endpoint URL. Required.
	Endpoint string
	// Model names the model to use.
	Model string
	// ResultPath is the JMESPath expression locating the generated text in
	// the response JSON. Defaults to the chat-completions shape.
	ResultPath string
	// HTTPClient is optional; defaults to a 60s-timeout client.
	HTTPClient *http.Client
}

// Client implements ports.TextGenerator.
type Client struct {
	apiKey     string
	endpoint   string
	model      string
	resultPath string
	httpClient *http.Client
}

// NewClient creates a text-generation client, validating the result path
// expression up front.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("textgen: API key is required")
	}
	if cfg.Endpoint == "" {
		return nil, errors.New("textgen: endpoint is required")
	}

	resultPath := cfg.ResultPath
	if strings.TrimSpace(resultPath) == "" {
		resultPath = defaultResultPath
	}
	if _, err := jmespath.Compile(resultPath); err != nil {
		return nil, fmt.Errorf("textgen: invalid result path %q: %w", resultPath, err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}

	return &Client{
		apiKey:     cfg.APIKey,
		endpoint:   cfg.Endpoint,
		model:      cfg.Model,
		resultPath: resultPath,
		httpClient: httpClient,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model,omitempty"`
	Messages []chatMessage `json:"messages"`
}

// Generate sends the prompt to the service and extracts the generated text.
// Transport failures surface as unavailable errors.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt is required")
	}

	payload, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "text-generation service unreachable")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "read text-generation response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", apperrors.Wrapf(
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			apperrors.ErrCodeUnavailable,
			"text-generation request failed",
		)
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("decode text-generation response: %w", err)
	}

	result, err := jmespath.Search(c.resultPath, doc)
	if err != nil {
		return "", fmt.Errorf("extract result: %w", err)
	}
	text, ok := result.(string)
	if !ok || text == "" {
		return "", fmt.Errorf("response has no text at %q", c.resultPath)
	}
	return text, nil
}
