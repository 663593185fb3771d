package vision

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const analyzePath = "/vision/v3.2/analyze"

// Client calls the analyze endpoint. It holds no per-request state and is safe
// for concurrent use once constructed.
type Client struct {
	http *resty.Client
}

// NewClient builds a client from cfg.
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rc := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.Endpoint, "/")).
		SetHeader("Ocp-Apim-Subscription-Key", cfg.APIKey).
		SetTimeout(timeout)
	return &Client{http: rc}, nil
}

// Analyze uploads image and returns the tags, categories and captions found.
func (c *Client) Analyze(ctx context.Context, image []byte, features []Feature) (*Result, error) {
	if len(image) == 0 {
		return nil, errors.New("vision: empty image")
	}
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = string(f)
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetQueryParam("visualFeatures", strings.Join(names, ",")).
		SetBody(image).
		Post(analyzePath)
	if err != nil {
		return nil, fmt.Errorf("vision: analyze: %w", err)
	}
	if resp.IsError() {
		return nil, parseServiceError(resp.StatusCode(), resp.Body())
	}
	return parseResult(resp.Body()), nil
}

func parseServiceError(status int, body []byte) *ServiceError {
	e := &ServiceError{Status: status}
	if gjson.ValidBytes(body) {
		doc := gjson.ParseBytes(body)
		e.Code = doc.Get("error.code").String()
		e.Message = doc.Get("error.message").String()
	}
	if e.Message == "" {
		e.Message = strings.TrimSpace(string(body))
	}
	return e
}

// parseResult tolerates sections missing from the response: a feature the
// service could not compute is simply absent.
func parseResult(body []byte) *Result {
	doc := gjson.ParseBytes(body)
	return &Result{
		Tags:       stringList(doc.Get("tags.#.name")),
		Categories: stringList(doc.Get("categories.#.name")),
		Captions:   stringList(doc.Get("description.captions.#.text")),
		Raw:        body,
	}
}

func stringList(r gjson.Result) []string {
	out := []string{}
	for _, v := range r.Array() {
		if s := v.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}
