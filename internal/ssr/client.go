// Package ssr renders pages server-side: a request-scoped client fetches the
// page's queries from the GraphQL endpoint, and the rendered markup plus the
// fetched state are serialized into one HTML document for hydration.
package ssr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"msgboard/internal/session"
)

// Client is a GraphQL client scoped to one incoming page request. It
// forwards the request's Cookie header verbatim, and when a token cookie is
// present it also sends the token as x-token, so the SSR-time identity
// matches the identity the hydrated page will have in the browser.
type Client struct {
	endpoint string
	httpc    *http.Client
	cookie   string
	token    string
}

func NewClient(endpoint string, r *http.Request) *Client {
	c := &Client{
		endpoint: endpoint,
		httpc:    &http.Client{},
	}
	if r != nil {
		c.cookie = r.Header.Get("Cookie")
		c.token = session.TokenFromCookie(r)
	}
	return c
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// Query posts one GraphQL operation and returns the raw data object.
func (c *Client) Query(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}
	if c.token != "" {
		req.Header.Set("x-token", c.token)
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned status %d", res.StatusCode)
	}

	var out gqlResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("upstream error: %s", out.Errors[0].Message)
	}

	return out.Data, nil
}
