package dwolla

import (
	"net/http"
	"net/url"
)

// ResponseMeta describes the HTTP exchange behind a result.
type ResponseMeta struct {
	StatusCode int
	Header     http.Header
	RequestID  string
	Location   *url.URL
	Method     string
	URL        *url.URL
}

// Response is a successfully classified API response.
type Response[T any] struct {
	Content    T
	Meta       ResponseMeta
	RawContent []byte
}
