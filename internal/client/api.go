package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	dwollahttp "github.com/fivetwenty-io/dwolla-client/internal/http"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
)

// TokenProvider hands out access tokens. *auth.Manager implements it.
type TokenProvider interface {
	GetToken(ctx context.Context, force bool) (dwolla.Token, error)
}

// Sender performs a single HTTP exchange. *http.Transport implements it.
type Sender interface {
	Send(ctx context.Context, request *dwollahttp.Request) (*dwollahttp.RawResponse, error)
}

// API runs authenticated calls against one Dwolla base URL. Every call
// follows the same sequence: get a token, send, classify, and when the API
// reports ExpiredAccessToken, force one refresh and send once more.
type API struct {
	baseURL string
	sender  Sender
	tokens  TokenProvider
	headers dwollahttp.Headers
	logger  dwolla.Logger
}

// NewAPI creates the call pipeline shared by every resource client.
func NewAPI(baseURL string, sender Sender, tokens TokenProvider, logger dwolla.Logger, headers ...dwolla.Header) *API {
	api := &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		sender:  sender,
		tokens:  tokens,
		logger:  logger,
	}

	for _, header := range headers {
		api.headers.Add(header.Name, header.Value)
	}

	return api
}

// BaseURL returns the API base URL without a trailing slash.
func (a *API) BaseURL() string {
	return a.baseURL
}

// URL formats pathFormat with path-escaped resource IDs and prefixes the base
// URL, e.g. URL("/customers/%s/documents", id). An empty ID is rejected.
func (a *API) URL(pathFormat string, ids ...string) (string, error) {
	escaped := make([]interface{}, 0, len(ids))

	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return "", fmt.Errorf("%w: empty id in %s", dwolla.ErrInvalidResourceID, pathFormat)
		}

		escaped = append(escaped, url.PathEscape(id))
	}

	return a.baseURL + fmt.Sprintf(pathFormat, escaped...), nil
}

// requestHeaders returns the configured headers followed by the ones on ctx.
func (a *API) requestHeaders(ctx context.Context) dwollahttp.Headers {
	headers := a.headers.Clone()

	for _, header := range dwolla.HeadersFromContext(ctx) {
		headers.Add(header.Name, header.Value)
	}

	return headers
}

// Execute sends request and classifies the response into T, retrying once
// with a fresh token when the API says the current one has expired.
func Execute[T any](ctx context.Context, a *API, request *dwollahttp.Request) (*dwolla.Response[T], error) {
	response, err := attempt[T](ctx, a, request, false)
	if err == nil || !dwolla.IsExpiredToken(err) {
		return response, err
	}

	a.debug("access token expired, refreshing", map[string]interface{}{
		"method":     request.Method,
		"url":        request.URL,
		"request_id": dwolla.RequestID(err),
	})

	return attempt[T](ctx, a, request, true)
}

func attempt[T any](ctx context.Context, a *API, request *dwollahttp.Request, forceRefresh bool) (*dwolla.Response[T], error) {
	token, err := a.tokens.GetToken(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}

	raw, err := a.sender.Send(ctx, request.WithBearer(token.AccessToken))
	if err != nil {
		return nil, err
	}

	return dwollahttp.Classify[T](raw)
}

// Get fetches rawURL into T.
func Get[T any](ctx context.Context, a *API, rawURL string, query url.Values) (*T, error) {
	request := dwollahttp.NewRequest(http.MethodGet, dwollahttp.WithQuery(rawURL, query), a.requestHeaders(ctx))

	response, err := Execute[T](ctx, a, request)
	if err != nil {
		return nil, err
	}

	return &response.Content, nil
}

// Post sends body as JSON and decodes the response into T.
func Post[T any](ctx context.Context, a *API, rawURL string, body interface{}) (*T, error) {
	response, err := Execute[T](ctx, a, a.newPost(ctx, rawURL, body))
	if err != nil {
		return nil, err
	}

	return &response.Content, nil
}

// Delete removes the resource at rawURL and returns its final representation.
func Delete[T any](ctx context.Context, a *API, rawURL string) (*T, error) {
	request := dwollahttp.NewRequest(http.MethodDelete, rawURL, a.requestHeaders(ctx))

	response, err := Execute[T](ctx, a, request)
	if err != nil {
		return nil, err
	}

	return &response.Content, nil
}

// Create sends body as JSON and returns the Location of the new resource.
func Create(ctx context.Context, a *API, rawURL string, body interface{}) (*url.URL, error) {
	return created(ctx, a, a.newPost(ctx, rawURL, body))
}

// newPost builds a POST carrying body as JSON, or no body at all when body is nil.
func (a *API) newPost(ctx context.Context, rawURL string, body interface{}) *dwollahttp.Request {
	if body == nil {
		return dwollahttp.NewRequest(http.MethodPost, rawURL, a.requestHeaders(ctx))
	}

	return dwollahttp.NewJSONRequest(http.MethodPost, rawURL, body, a.requestHeaders(ctx))
}

// Upload sends a multipart document and returns the Location of the new document.
func Upload(ctx context.Context, a *API, rawURL string, upload *dwolla.UploadDocumentRequest) (*url.URL, error) {
	request := dwollahttp.NewUploadRequest(rawURL, upload, a.requestHeaders(ctx))

	return created(ctx, a, request)
}

func created(ctx context.Context, a *API, request *dwollahttp.Request) (*url.URL, error) {
	response, err := Execute[struct{}](ctx, a, request)
	if err != nil {
		return nil, err
	}

	if response.Meta.Location == nil {
		return nil, fmt.Errorf("%w: %s %s", dwolla.ErrNoLocation, request.Method, request.URL)
	}

	return response.Meta.Location, nil
}

var errNilRequest = errors.New("request is required")

// checkRequest rejects nil requests and runs the validate tags of the others
// before anything is sent.
func checkRequest[T any](request *T) error {
	if request == nil {
		return fmt.Errorf("%w: %w", dwolla.ErrInvalidRequest, errNilRequest)
	}

	return dwolla.ValidateStruct(request)
}

func (a *API) debug(msg string, fields map[string]interface{}) {
	if a.logger != nil {
		a.logger.Debug(msg, fields)
	}
}
