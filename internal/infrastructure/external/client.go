// Package external implements the market-registry clients: the PDOK location
// server for BAG building data, EP-Online for energy labels, and CBS StatLine
// for area statistics. All lookups are best-effort; a missing record returns
// nil data without an error, and registry responses are cached in Redis.
package external

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
)

const maxResponseBytes = 4 << 20

// restClient is the shared HTTP plumbing for the registry clients.
type restClient struct {
	httpClient *http.Client
	baseURL    string
	headers    map[string]string
}

func newRESTClient(baseURL string, timeout time.Duration, headers map[string]string) *restClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &restClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		headers:    headers,
	}
}

// getJSON performs a GET against path with query params and decodes the JSON
// body into out.
func (c *restClient) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "build registry request")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.CodeMarketLookupFailed, "registry request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf(errors.CodeMarketLookupFailed, "registry returned status %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.Wrap(err, errors.CodeMarketLookupFailed, "read registry response")
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, errors.CodeMarketLookupFailed, "decode registry response")
	}
	return nil
}
