// Package ai is a thin client for the OpenAI chat completions endpoint,
// used to run analysis over Data Cloud query results.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defEndpoint = "https://api.openai.com/v1/chat/completions"
	// DefModel is used when the caller does not name one.
	DefModel = "gpt-4"

	systemPrompt = "You are a data analyst specializing in customer segmentation and marketing insights."

	temperature = 0.7
	maxTokens   = 1000

	maxErrBodySz = 4 << 10
)

// ErrNoAPIKey is returned when the client has no API key configured.  No
// network call is made in that case.
var ErrNoAPIKey = errors.New("no OpenAI API key configured")

// Client calls the OpenAI chat completions API.
type Client struct {
	apiKey   string
	endpoint string
	cl       *http.Client
}

// Option is the Client option.
type Option func(*Client)

// WithHTTPClient sets the http client to use.
func WithHTTPClient(cl *http.Client) Option {
	return func(c *Client) {
		if cl != nil {
			c.cl = cl
		}
	}
}

// WithEndpoint overrides the completions endpoint.
func WithEndpoint(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.endpoint = url
		}
	}
}

// New creates a new AI client.  An empty apiKey is allowed; calls will
// fail with ErrNoAPIKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		endpoint: defEndpoint,
		cl:       http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether the client has an API key.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Analysis is the result of a completed analysis run.
type Analysis struct {
	Text      string         `json:"analysis"`
	Model     string         `json:"model"`
	Timestamp time.Time      `json:"timestamp"`
	Usage     map[string]any `json:"usage,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage map[string]any `json:"usage"`
}

// Complete sends the prompt to the model and returns the analysis.  An
// empty model selects DefModel.
func (c *Client) Complete(ctx context.Context, prompt, model string) (*Analysis, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = DefModel
	}
	payload := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.cl.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySz))
		return nil, fmt.Errorf("openai: status %d: %s", resp.StatusCode, msg)
	}
	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("openai: decoding response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, errors.New("openai: response contains no choices")
	}
	return &Analysis{
		Text:      cr.Choices[0].Message.Content,
		Model:     model,
		Timestamp: time.Now().UTC(),
		Usage:     cr.Usage,
	}, nil
}
