package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/dwolla-client/internal/constants"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
)

// Body is an encodable request body.
type Body interface {
	ContentType() string
	Encode() ([]byte, error)
}

// JSONBody encodes Value as JSON.
type JSONBody struct {
	Value interface{}
}

// ContentType implements Body.
func (b JSONBody) ContentType() string {
	return constants.ContentTypeHALJSON
}

// Encode implements Body.
func (b JSONBody) Encode() ([]byte, error) {
	data, err := json.Marshal(b.Value)
	if err != nil {
		return nil, fmt.Errorf("encoding JSON body: %w", err)
	}

	return data, nil
}

// FormField is one key/value pair of a form body.
type FormField struct {
	Name  string
	Value string
}

// FormBody is an application/x-www-form-urlencoded body. Fields keep their order.
type FormBody struct {
	Fields []FormField
}

// ContentType implements Body.
func (b FormBody) ContentType() string {
	return constants.ContentTypeForm
}

// Encode implements Body.
func (b FormBody) Encode() ([]byte, error) {
	parts := make([]string, 0, len(b.Fields))
	for _, field := range b.Fields {
		parts = append(parts, url.QueryEscape(field.Name)+"="+url.QueryEscape(field.Value))
	}

	return []byte(strings.Join(parts, "&")), nil
}

// Request is a single call to the API. Builders below produce requests that
// differ only in body kind and the Accept header; the bearer token is added
// with WithBearer right before sending.
type Request struct {
	Method string
	URL    string
	Accept string
	// BearerToken is sent as "Authorization: Bearer <token>" when set.
	BearerToken string
	// Headers are appended verbatim after the headers the client injects.
	Headers Headers
	Body    Body
}

// NewRequest builds a bodiless resource request.
func NewRequest(method, rawURL string, headers Headers) *Request {
	return &Request{
		Method:  method,
		URL:     rawURL,
		Accept:  constants.ContentTypeHALJSON,
		Headers: headers,
	}
}

// NewJSONRequest builds a resource request with a JSON body.
func NewJSONRequest(method, rawURL string, value interface{}, headers Headers) *Request {
	request := NewRequest(method, rawURL, headers)
	request.Body = JSONBody{Value: value}

	return request
}

// NewUploadRequest builds a multipart document upload.
func NewUploadRequest(rawURL string, upload *dwolla.UploadDocumentRequest, headers Headers) *Request {
	request := NewRequest(http.MethodPost, rawURL, headers)
	request.Body = &MultipartBody{
		Fields: []FormField{{Name: "documentType", Value: string(upload.DocumentType)}},
		File:   upload.Document,
	}

	return request
}

// NewTokenRequest builds the unauthenticated client_credentials token request.
// The key and secret are only sent when both are set.
func NewTokenRequest(baseURL string, credentials dwolla.Credentials) *Request {
	fields := []FormField{{Name: "grant_type", Value: "client_credentials"}}
	if credentials.Complete() {
		fields = append(fields,
			FormField{Name: "client_id", Value: credentials.ClientID},
			FormField{Name: "client_secret", Value: credentials.ClientSecret},
		)
	}

	return &Request{
		Method: http.MethodPost,
		URL:    JoinURL(baseURL, constants.TokenPath),
		Accept: constants.ContentTypeJSON,
		Body:   FormBody{Fields: fields},
	}
}

// WithBearer returns a copy of the request carrying token.
func (r *Request) WithBearer(token string) *Request {
	clone := *r
	clone.BearerToken = token
	clone.Headers = r.Headers.Clone()

	return &clone
}

// JoinURL joins a base URL and an absolute API path.
func JoinURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// WithQuery appends encoded query values to rawURL.
func WithQuery(rawURL string, query url.Values) string {
	if len(query) == 0 {
		return rawURL
	}

	separator := "?"
	if strings.Contains(rawURL, "?") {
		separator = "&"
	}

	return rawURL + separator + query.Encode()
}
