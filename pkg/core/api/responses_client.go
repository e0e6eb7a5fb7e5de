// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/leseb/openresponses-cli/pkg/core/schema"
)

// DefaultBaseURL is the public OpenAI API root.
const DefaultBaseURL = "https://api.openai.com/v1"

// ResponsesAPIClient calls a backend's /v1/responses endpoint.
type ResponsesAPIClient interface {
	// CreateResponse performs one blocking round trip. Failures are one of
	// *APIError, *HTTPError, *JSONParseError or *NetworkError.
	CreateResponse(ctx context.Context, req *schema.Request) (*schema.Response, error)
}
