package api

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/openfactura/go-openfactura-client/openfactura/util"
)

var logger = logrus.WithField("component", "openfactura.api")

// Client is the transport boundary: it returns the parsed response body on
// 2xx and a typed request error otherwise. Bodies parse to map[string]any for
// JSON objects and to string for anything else.
type Client interface {
	Get(ctx context.Context, path string, query url.Values, headers map[string]string) (any, error)
	Post(ctx context.Context, path string, body any, headers map[string]string) (any, error)
}

const DefaultTimeout = 30 * time.Second

type client struct {
	rest *resty.Client
}

// New builds a transport client for the given base URL. The API key is sent on
// every request in the apikey header. A zero timeout falls back to
// DefaultTimeout.
func New(baseURL, apiKey string, timeout time.Duration) Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("apikey", apiKey).
		SetHeader("Content-Type", "application/json")

	return &client{rest: rest}
}

func (c *client) Get(ctx context.Context, path string, query url.Values, headers map[string]string) (any, error) {

	logger.Debugf("GET %s", path)

	r := c.rest.R().SetContext(ctx).SetHeaders(headers)
	if util.HttpTraceEnabled() {
		r.EnableTrace()
	}
	if query != nil {
		r.SetQueryParamsFromValues(query)
	}

	resp, err := r.Get(path)
	return parseResponse(resp, err)
}

func (c *client) Post(ctx context.Context, path string, body any, headers map[string]string) (any, error) {

	logger.Debugf("POST %s", path)

	r := c.rest.R().SetContext(ctx).SetHeaders(headers).SetBody(body)
	if util.HttpTraceEnabled() {
		r.EnableTrace()
	}

	resp, err := r.Post(path)
	return parseResponse(resp, err)
}

func parseResponse(resp *resty.Response, err error) (any, error) {
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	if util.HttpTraceEnabled() {
		logger.Debugf("request trace: %+v", resp.Request.TraceInfo())
	}
	if resp.IsError() {
		return nil, requestErrorFromStatus(resp.StatusCode(), resp.String())
	}
	return parseBody(resp.Body()), nil
}

// parseBody decodes JSON when it parses and hands back the raw string body
// otherwise; the status lookup answers with a bare string.
func parseBody(body []byte) any {
	if len(body) == 0 {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return string(body)
	}
	return parsed
}
