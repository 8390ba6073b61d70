package dwolla

import (
	"context"

	"github.com/google/uuid"
)

// Header is one extra request header. Headers keep the order they are given
// in and duplicate names are all sent.
type Header struct {
	Name  string
	Value string
}

type headersKey struct{}

// WithHeaders returns a context whose API calls carry headers in addition to
// the ones the client injects. Headers already on ctx are kept.
func WithHeaders(ctx context.Context, headers ...Header) context.Context {
	existing := HeadersFromContext(ctx)
	combined := make([]Header, 0, len(existing)+len(headers))
	combined = append(combined, existing...)
	combined = append(combined, headers...)

	return context.WithValue(ctx, headersKey{}, combined)
}

// HeadersFromContext returns the headers added with WithHeaders.
func HeadersFromContext(ctx context.Context) []Header {
	headers, _ := ctx.Value(headersKey{}).([]Header)

	return headers
}

// WithIdempotencyKey makes the API calls made with ctx idempotent under key.
// Dwolla returns the original response when a POST is repeated with the same key.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return WithHeaders(ctx, Header{Name: "Idempotency-Key", Value: key})
}

// NewIdempotencyKey returns a random key suitable for WithIdempotencyKey.
func NewIdempotencyKey() string {
	return uuid.NewString()
}
