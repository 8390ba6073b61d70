package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/dwolla-client/internal/constants"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"github.com/hashicorp/go-retryablehttp"
)

// Transport sends a Request and returns the raw response. It makes exactly one
// network call per Send and never retries; retry decisions belong to callers.
type Transport struct {
	httpClient *retryablehttp.Client
	logger     dwolla.Logger
	debug      bool
	userAgent  string
}

// RawResponse is an unclassified HTTP response.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Method     string
	URL        *url.URL
}

// Option configures the Transport.
type Option func(*Transport)

// WithLogger sets the logger.
func WithLogger(logger dwolla.Logger) Option {
	return func(t *Transport) {
		t.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(t *Transport) {
		t.debug = debug
	}
}

// WithUserAgent sets the User-Agent sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(t *Transport) {
		t.userAgent = userAgent
	}
}

// WithTimeout sets the timeout of a single call.
func WithTimeout(timeout time.Duration) Option {
	return func(t *Transport) {
		client := *t.httpClient.HTTPClient
		client.Timeout = timeout
		t.httpClient.HTTPClient = &client
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(t *Transport) {
		if client != nil {
			t.httpClient.HTTPClient = client
		}
	}
}

// NewTransport creates a new transport.
func NewTransport(opts ...Option) *Transport {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = neverRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	transport := &Transport{
		httpClient: retryClient,
		userAgent:  constants.DefaultUserAgent(),
	}

	for _, opt := range opts {
		opt(transport)
	}

	if transport.logger != nil && transport.debug {
		retryClient.Logger = &leveledLogger{logger: transport.logger}
	}

	return transport
}

func neverRetry(_ context.Context, _ *http.Response, _ error) (bool, error) {
	return false, nil
}

// Send performs the request. Any failure to build, send or read the exchange
// is returned as a *dwolla.TransportError; non-2xx statuses are not errors here.
func (t *Transport) Send(ctx context.Context, request *Request) (*RawResponse, error) {
	var payload []byte

	if request.Body != nil {
		encoded, err := request.Body.Encode()
		if err != nil {
			return nil, &dwolla.TransportError{Message: "encoding request body: " + err.Error(), Err: err}
		}

		payload = encoded
	}

	var body interface{}
	if payload != nil {
		body = payload
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, request.Method, request.URL, body)
	if err != nil {
		return nil, &dwolla.TransportError{Message: "creating request: " + err.Error(), Err: err}
	}

	t.writeHeaders(httpReq.Header, request)
	t.logRequest(request, payload)

	start := time.Now()

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		t.logFailure(request, err)

		return nil, &dwolla.TransportError{Message: err.Error(), Err: err}
	}

	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &dwolla.TransportError{Message: "reading response body: " + err.Error(), Err: err}
	}

	raw := &RawResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		Method:     request.Method,
		URL:        httpReq.URL,
	}

	if resp.Request != nil {
		raw.URL = resp.Request.URL
	}

	t.logResponse(raw, time.Since(start))

	return raw, nil
}

func (t *Transport) writeHeaders(target http.Header, request *Request) {
	if request.Accept != "" {
		target.Set("Accept", request.Accept)
	}

	if t.userAgent != "" {
		target.Set("User-Agent", t.userAgent)
	}

	if request.BearerToken != "" {
		target.Set("Authorization", "Bearer "+request.BearerToken)
	}

	if request.Body != nil {
		target.Set("Content-Type", request.Body.ContentType())
	}

	request.Headers.writeTo(target)
}

func (t *Transport) logRequest(request *Request, payload []byte) {
	if t.logger == nil || !t.debug {
		return
	}

	fields := map[string]interface{}{
		"method":  request.Method,
		"url":     request.URL,
		"headers": redactedHeaders(request),
	}

	// Bodies carry secrets and personal data, only their size is logged.
	if payload != nil {
		fields["body_bytes"] = len(payload)
	}

	t.logger.Debug("HTTP Request", fields)
}

func (t *Transport) logResponse(raw *RawResponse, elapsed time.Duration) {
	if t.logger == nil || !t.debug {
		return
	}

	t.logger.Debug("HTTP Response", map[string]interface{}{
		"method":     raw.Method,
		"url":        raw.URL.String(),
		"status":     raw.StatusCode,
		"request_id": raw.Header.Get(constants.HeaderRequestID),
		"duration":   elapsed.String(),
	})
}

func (t *Transport) logFailure(request *Request, err error) {
	if t.logger == nil {
		return
	}

	t.logger.Warn("HTTP request failed", map[string]interface{}{
		"method": request.Method,
		"url":    request.URL,
		"error":  err.Error(),
	})
}

func redactedHeaders(request *Request) map[string]string {
	headers := map[string]string{"Accept": request.Accept}
	if request.BearerToken != "" {
		headers["Authorization"] = "Bearer " + constants.MaskedSecret
	}

	request.Headers.Each(func(name, value string) {
		if strings.EqualFold(name, "Authorization") {
			value = constants.MaskedSecret
		}

		headers[name] = value
	})

	return headers
}

// leveledLogger adapts dwolla.Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger dwolla.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, toFields(keysAndValues))
}

func toFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}
