//go:build unix

// Package apiclient talks to the jbp daemon over its unix socket.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gurisko/jbp/internal/config"
	"github.com/gurisko/jbp/internal/launcher"
	"github.com/gurisko/jbp/internal/limits"
	"github.com/gurisko/jbp/internal/paths"
)

type Client struct {
	http       *http.Client
	baseURL    string
	socketPath string
}

func New() *Client {
	return NewWithSocket(paths.DefaultSocketPath())
}

func NewWithSocket(socketPath string) *Client {
	tr := &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", socketPath)
		},
		ResponseHeaderTimeout: 30 * time.Second,
		IdleConnTimeout:       60 * time.Second,
	}
	return &Client{
		http:       &http.Client{Transport: tr}, // no Timeout; use ctx per-request
		baseURL:    "http://unix",
		socketPath: socketPath,
	}
}

type APIError struct {
	StatusCode int
	Body       []byte
	Message    string // parsed from {"error": "..."} if present
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, string(e.Body))
}

func IsNotFound(err error) bool {
	var api *APIError
	return errors.As(err, &api) && api.StatusCode == http.StatusNotFound
}

// Items runs a query on the daemon.
func (c *Client) Items(ctx context.Context, query string, withBranch bool) ([]launcher.ItemView, error) {
	params := url.Values{}
	params.Set("q", query)
	if withBranch {
		params.Set("branch", strconv.FormatBool(true))
	}
	var out struct {
		Items []launcher.ItemView `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/items?"+params.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// Open asks the daemon to run the open action of item id in query's results.
func (c *Client) Open(ctx context.Context, query, id string) error {
	in := map[string]string{"query": query, "id": id}
	return c.do(ctx, http.MethodPost, "/api/open", in, nil)
}

func (c *Client) Settings(ctx context.Context) (config.Settings, error) {
	var out config.Settings
	err := c.do(ctx, http.MethodGet, "/api/config", nil, &out)
	return out, err
}

// SetBool changes one config key on the daemon, which persists it.
func (c *Client) SetBool(ctx context.Context, key string, value bool) (config.Settings, error) {
	var out config.Settings
	err := c.do(ctx, http.MethodPut, "/api/config", map[string]bool{key: value}, &out)
	return out, err
}

func (c *Client) IDEs(ctx context.Context) ([]launcher.IDEView, error) {
	var out struct {
		IDEs []launcher.IDEView `json:"ides"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/ides", nil, &out); err != nil {
		return nil, err
	}
	return out.IDEs, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.wrapConnErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(io.LimitReader(resp.Body, limits.JSON)).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, limits.ErrorBody))
	var m struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(b, &m)
	return &APIError{StatusCode: resp.StatusCode, Body: b, Message: m.Error}
}

// Friendly hint when the daemon isn't running / socket missing.
func (c *Client) wrapConnErr(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "connect: no such file or directory") ||
		strings.Contains(msg, "connection refused") {
		return fmt.Errorf("cannot connect to jbp daemon at %s; is it running? try `jbp daemon start` (%w)", c.socketPath, err)
	}
	return err
}
