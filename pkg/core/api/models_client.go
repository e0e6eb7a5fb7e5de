// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"sort"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ModelInfo describes a model available to the configured key.
type ModelInfo struct {
	ID      string
	OwnedBy string
	Created int64
}

// ModelsClient lists models through the official OpenAI Go SDK.
type ModelsClient struct {
	client openai.Client
}

// NewModelsClient creates a models client. SDK retries are disabled so a
// listing is a single round trip like every other call in this package.
func NewModelsClient(baseURL, apiKey string) *ModelsClient {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &ModelsClient{client: openai.NewClient(opts...)}
}

// ListModels returns the available models sorted by ID.
func (c *ModelsClient) ListModels(ctx context.Context) ([]ModelInfo, error) {
	page, err := c.client.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	models := make([]ModelInfo, 0, len(page.Data))
	for _, m := range page.Data {
		models = append(models, ModelInfo{
			ID:      m.ID,
			OwnedBy: m.OwnedBy,
			Created: m.Created,
		})
	}
	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })
	return models, nil
}
