package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/pkg/errors"

	"github.com/learnx/learnx/core"
)

// Client talks HTTP/JSON to the Learn-X API. The session cookie issued by
// POST /sessionLogin lives in the cookie jar and rides along on every
// subsequent request, so one Client is one browser-equivalent session.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(conf core.BackendConfig) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating cookie jar")
	}
	return &Client{
		baseURL: strings.TrimRight(conf.BaseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: conf.RequestTimeout,
		},
	}, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}, headers ...header) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out, headers...)
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, path, in, out)
}

func (c *Client) patch(ctx context.Context, path string, in, out interface{}) error {
	return c.doJSON(ctx, http.MethodPatch, path, in, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

type header struct{ key, value string }

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}, headers ...header) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encoding request")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		req.Header.Set(h.key, h.value)
	}

	data, _, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decoding %s %s response", method, path)
	}
	return nil
}

// do executes the request and returns the raw body plus the response headers.
// Non-2xx statuses come back as *Error.
func (c *Client) do(req *http.Request) ([]byte, http.Header, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, newError(resp.StatusCode, data)
	}
	return data, resp.Header, nil
}
