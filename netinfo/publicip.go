package netinfo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/yllada/ip-applet/common"
)

// maxBodySize caps how much of a service response is read.
const maxBodySize = 4 << 10

// PublicIPClient fetches the public address from a plain-text HTTP service.
type PublicIPClient struct {
	client *http.Client
}

var _ common.PublicIPFetcher = (*PublicIPClient)(nil)

// NewPublicIPClient returns a client using httpClient, or http.DefaultClient
// when nil. No timeout is imposed beyond the caller's context.
func NewPublicIPClient(httpClient *http.Client) *PublicIPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &PublicIPClient{client: httpClient}
}

// Fetch GETs url and returns the trimmed response body.
// Any failure yields common.PublicIPUnavailable.
func (c *PublicIPClient) Fetch(ctx context.Context, url string) string {
	ip, err := c.fetch(ctx, url)
	if err != nil {
		common.LogDebug("Public IP lookup via %s failed: %v", url, err)
		return common.PublicIPUnavailable
	}
	return ip
}

func (c *PublicIPClient) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	return strings.TrimSpace(string(body)), nil
}
