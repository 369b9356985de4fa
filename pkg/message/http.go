package message

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/yuletree/pkg/buildinfo"
	"github.com/matzehuels/yuletree/pkg/errors"
	"github.com/matzehuels/yuletree/pkg/observability"
)

const httpTimeout = 10 * time.Second

// HTTPClient lists messages from a remote yuletree server (or any server
// answering GET /messages with a JSON array of {id, text}).
//
// There is no retry: a failed request is reported once and callers using
// [Fetch] show an empty tree.
type HTTPClient struct {
	base    string
	http    *http.Client
	headers map[string]string
}

// NewHTTPClient creates a client for the server at baseURL. Headers are
// sent with every request; pass nil when none are needed.
func NewHTTPClient(baseURL string, headers map[string]string) (*HTTPClient, error) {
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	return &HTTPClient{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: httpTimeout},
		headers: headers,
	}, nil
}

// List performs GET <base>/messages. Any status other than 200 and any
// body that is not a JSON message array is an error.
func (c *HTTPClient) List(ctx context.Context) ([]Message, error) {
	endpoint := c.base + "/messages"
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", endpoint)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", endpoint)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.ErrCodeNetwork, "GET %s: status %d", endpoint, resp.StatusCode)
	}

	var msgs []Message
	if err := json.NewDecoder(resp.Body).Decode(&msgs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return msgs, nil
}
