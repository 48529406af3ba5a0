// Package opensky is a minimal client for the OpenSky Network REST API.
package opensky

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Domenick1991/skyflow/config"
	"github.com/sirupsen/logrus"
)

type Endpoint string

const EndpointDeparture Endpoint = "/flights/departure"

type Credentials struct {
	Username string
	Password string
}

type Client struct {
	baseURL     string
	credentials Credentials
	client      *http.Client
	log         logrus.FieldLogger
}

func NewClient(cfg config.OpenSkyConfig, log logrus.FieldLogger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		credentials: Credentials{Username: cfg.Username, Password: cfg.Password},
		client: &http.Client{
			Timeout: cfg.Timeout(),
		},
		log: log,
	}
}

// Get issues an authenticated GET to endpoint and returns the raw body.
// Any status other than 200 is an error.
func (c *Client) Get(ctx context.Context, endpoint Endpoint, params url.Values) ([]byte, error) {
	target := c.baseURL + string(endpoint)
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.credentials.Username, c.credentials.Password)
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"endpoint": string(endpoint),
		"status":   resp.StatusCode,
		"took":     time.Since(started),
	}).Debug("opensky request")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return body, nil
}
