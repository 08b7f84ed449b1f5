// Package eodhd fetches end-of-day prices and symbol listings from the
// EODHD API (https://eodhd.com). Responses are cached on disk with a
// daily expiry, so repeated runs do not burn through the API quota.
package eodhd

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the production endpoint of the EODHD API.
const DefaultBaseURL = "https://eodhd.com/api"

// Client is an explicit handle to the EODHD API. The zero value is not
// usable, use New. BaseURL and HTTP exist so tests can point the client
// at a fake server.
type Client struct {
	APIKey  string
	BaseURL string       // defaults to DefaultBaseURL
	HTTP    *http.Client // defaults to a daily-caching client
}

// New returns a client with the daily-caching transport.
func New(apiKey string) *Client {
	return &Client{APIKey: apiKey, HTTP: newDailyCachingClient()}
}

func (c *Client) base() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	return DefaultBaseURL
}

func (c *Client) client() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// get queries one API endpoint and unmarshals the JSON response.
// The api_token and fmt parameters are added to every request.
func (c *Client) get(path string, query url.Values, data any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_token", c.APIKey)
	query.Set("fmt", "json")
	addr := fmt.Sprintf("%s/%s?%s", c.base(), strings.TrimPrefix(path, "/"), query.Encode())
	return jwget(c.client(), addr, data)
}
