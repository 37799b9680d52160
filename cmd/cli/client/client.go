package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/crucial707/asset-inventory/cmd/cli/config"
)

// Client is a thin JSON client for the inventory API.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// New builds a client from the configured API URL, without a token.
func New() *Client {
	return &Client{BaseURL: config.APIURL(), HTTP: http.DefaultClient}
}

// NewAuthenticated builds a client carrying the stored login token.
func NewAuthenticated() (*Client, error) {
	token, err := config.ReadToken()
	if err != nil {
		return nil, err
	}
	c := New()
	c.Token = token
	return c, nil
}

// Do sends a JSON request and decodes the JSON response into out (when out is
// non-nil). Returns the HTTP status code.
func (c *Client) Do(method, path string, payload any, out any) (int, error) {
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, err
		}
		body = bytes.NewBuffer(data)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return 0, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
