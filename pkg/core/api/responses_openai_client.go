// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/leseb/openresponses-cli/pkg/core/schema"
	"github.com/leseb/openresponses-cli/pkg/observability/logging"
)

// defaultTemperature is used by the convenience calls when none is given.
const defaultTemperature float32 = 1.0

// OpenAIResponsesClient implements ResponsesAPIClient using net/http.
// It serializes schema.Request as-is, so fields left unset never reach the
// wire.
type OpenAIResponsesClient struct {
	baseURL    string // e.g. "https://api.openai.com/v1"
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ResponsesAPIClient = (*OpenAIResponsesClient)(nil)

// ClientOption customizes an OpenAIResponsesClient.
type ClientOption func(*OpenAIResponsesClient)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *OpenAIResponsesClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *OpenAIResponsesClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewOpenAIResponsesClient creates a new Responses API client.
// baseURL should include the /v1 prefix; empty means DefaultBaseURL.
func NewOpenAIResponsesClient(baseURL, apiKey string, opts ...ClientOption) *OpenAIResponsesClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &OpenAIResponsesClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{},
		logger:     logging.Nop().Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestBuilder returns a fresh builder for use with CreateResponseWithBuilder.
func (c *OpenAIResponsesClient) RequestBuilder() *schema.RequestBuilder {
	return schema.NewRequestBuilder()
}

// CreateResponse sends one request and decodes the reply.
//
// The body is read in full before decoding. A non-2xx status is classified by
// ClassifyError; a 2xx body that does not decode yields *JSONParseError.
// Nothing is retried.
func (c *OpenAIResponsesClient) CreateResponse(ctx context.Context, req *schema.Request) (*schema.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	c.setHeaders(httpReq)

	start := time.Now()
	c.logger.Debug("sending response request", "url", httpReq.URL.String(), "bytes", len(body))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("request failed", "error", err)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	c.logger.Debug("received response",
		"status", resp.StatusCode,
		"bytes", len(respBody),
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		classified := ClassifyError(resp.StatusCode, string(respBody))
		c.logger.Warn("backend rejected request", "status", resp.StatusCode, "error", classified)
		return nil, classified
	}

	var result schema.Response
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &JSONParseError{Err: err}
	}

	return &result, nil
}

// CreateResponseWithBuilder builds the request and sends it.
func (c *OpenAIResponsesClient) CreateResponseWithBuilder(ctx context.Context, b *schema.RequestBuilder) (*schema.Response, error) {
	req := b.Build()
	return c.CreateResponse(ctx, &req)
}

// GetResponse sends a plain text prompt. A nil temperature means 1.0.
func (c *OpenAIResponsesClient) GetResponse(ctx context.Context, model, prompt string, temperature *float32) (*schema.Response, error) {
	return c.CreateResponseWithBuilder(ctx, c.basic(model, prompt, temperature))
}

// ContinueConversation sends a prompt chained onto previousResponseID.
func (c *OpenAIResponsesClient) ContinueConversation(ctx context.Context, model, prompt, previousResponseID string, temperature *float32) (*schema.Response, error) {
	b := c.basic(model, prompt, temperature).PreviousResponseID(previousResponseID)
	return c.CreateResponseWithBuilder(ctx, b)
}

// GetStreamingResponse sets stream=true. The reply is still read as a single
// document; server-sent events are not decoded.
func (c *OpenAIResponsesClient) GetStreamingResponse(ctx context.Context, model, prompt string, temperature *float32) (*schema.Response, error) {
	return c.CreateResponseWithBuilder(ctx, c.basic(model, prompt, temperature).Stream(true))
}

// GetBackgroundResponse asks the backend to run the request in background mode.
func (c *OpenAIResponsesClient) GetBackgroundResponse(ctx context.Context, model, prompt string, temperature *float32) (*schema.Response, error) {
	return c.CreateResponseWithBuilder(ctx, c.basic(model, prompt, temperature).Background(true))
}

func (c *OpenAIResponsesClient) basic(model, prompt string, temperature *float32) *schema.RequestBuilder {
	temp := defaultTemperature
	if temperature != nil {
		temp = *temperature
	}
	return schema.NewRequestBuilder().
		Model(model).
		InputText(prompt).
		Temperature(temp).
		Store(schema.DefaultStore)
}

func (c *OpenAIResponsesClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}
