package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	dwollahttp "github.com/fivetwenty-io/dwolla-client/internal/http"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTokenEndpointDown = errors.New("token endpoint down")

type fooResource struct {
	Name  string       `json:"name"`
	Links dwolla.Links `json:"_links"`
}

func expiredTokenBody() map[string]string {
	return map[string]string{"code": "ExpiredAccessToken", "message": "Invalid access token."}
}

// failingSender fails every call with a transport error.
type failingSender struct {
	calls int
}

func (s *failingSender) Send(_ context.Context, _ *dwollahttp.Request) (*dwollahttp.RawResponse, error) {
	s.calls++

	return nil, &dwolla.TransportError{Message: "dial tcp: connection refused"}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestExecute(t *testing.T) {
	t.Parallel()

	t.Run("sends the bearer token and extra headers", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t).respond("/foo", http.StatusOK, fooResource{Name: "bar"})
		client := newTestClient(t, server, nil, dwolla.Header{Name: "X-Trace", Value: "one"})

		ctx := dwolla.WithHeaders(context.Background(),
			dwolla.Header{Name: "X-Trace", Value: "two"},
			dwolla.Header{Name: "X-Tenant", Value: "acme"},
		)

		foo, err := Get[fooResource](ctx, client.api, server.URL+"/foo", nil)
		require.NoError(t, err)
		assert.Equal(t, "bar", foo.Name)

		requests := server.requestsTo("/foo")
		require.Len(t, requests, 1)
		assert.Equal(t, "Bearer abc", requests[0].Authorization)
		assert.Equal(t, "application/vnd.dwolla.v1.hal+json", requests[0].Header.Get("Accept"))
		assert.Equal(t, []string{"one", "two"}, requests[0].Header.Values("X-Trace"))
		assert.Equal(t, "acme", requests[0].Header.Get("X-Tenant"))
	})

	t.Run("expired token is refreshed once and the call repeated", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t).
			respond("/foo", http.StatusUnauthorized, expiredTokenBody()).
			respond("/foo", http.StatusOK, fooResource{Name: "bar"})
		tokens := &countingTokens{tokens: []string{"old", "new"}}
		client := newTestClient(t, server, tokens)

		foo, err := Get[fooResource](context.Background(), client.api, server.URL+"/foo", nil)
		require.NoError(t, err)
		assert.Equal(t, "bar", foo.Name)

		requests := server.requestsTo("/foo")
		require.Len(t, requests, 2)
		assert.Equal(t, "Bearer old", requests[0].Authorization)
		assert.Equal(t, "Bearer new", requests[1].Authorization)
		assert.Equal(t, 1, tokens.forcedRefreshes())
	})

	t.Run("expired token on a success status is refreshed", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t).
			respond("/foo", http.StatusOK, map[string]string{"code": "ExpiredAccessToken"}).
			respond("/foo", http.StatusOK, fooResource{Name: "bar"})
		tokens := &countingTokens{tokens: []string{"old", "new"}}
		client := newTestClient(t, server, tokens)

		foo, err := Get[fooResource](context.Background(), client.api, server.URL+"/foo", nil)
		require.NoError(t, err)
		assert.Equal(t, "bar", foo.Name)

		requests := server.requestsTo("/foo")
		require.Len(t, requests, 2)
		assert.Equal(t, "Bearer new", requests[1].Authorization)
		assert.Equal(t, 1, tokens.forcedRefreshes())
	})

	t.Run("second expiry is returned without another retry", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t).respond("/foo", http.StatusUnauthorized, expiredTokenBody())
		tokens := &countingTokens{tokens: []string{"old", "new"}}
		client := newTestClient(t, server, tokens)

		_, err := Get[fooResource](context.Background(), client.api, server.URL+"/foo", nil)
		require.Error(t, err)
		assert.True(t, dwolla.IsExpiredToken(err))
		assert.Len(t, server.requestsTo("/foo"), 2)
		assert.Equal(t, 1, tokens.forcedRefreshes())
	})

	t.Run("the error of the retried call is returned", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t).
			respond("/foo", http.StatusUnauthorized, expiredTokenBody()).
			respond("/foo", http.StatusNotFound, map[string]string{"code": "NotFound", "message": "Not found."})
		client := newTestClient(t, server, &countingTokens{tokens: []string{"old", "new"}})

		_, err := Get[fooResource](context.Background(), client.api, server.URL+"/foo", nil)
		require.Error(t, err)
		assert.True(t, dwolla.IsNotFound(err))
		assert.False(t, dwolla.IsExpiredToken(err))
		assert.Equal(t, "req-/foo", dwolla.RequestID(err))
	})

	t.Run("other API errors are not retried", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t).respond("/foo", http.StatusForbidden,
			map[string]string{"code": "Forbidden", "message": "Not authorized."})
		tokens := &countingTokens{tokens: []string{"abc"}}
		client := newTestClient(t, server, tokens)

		_, err := Get[fooResource](context.Background(), client.api, server.URL+"/foo", nil)
		require.Error(t, err)
		assert.True(t, dwolla.IsForbidden(err))
		assert.Len(t, server.requestsTo("/foo"), 1)
		assert.Equal(t, 0, tokens.forcedRefreshes())
	})

	t.Run("transport errors are not retried", func(t *testing.T) {
		t.Parallel()

		sender := &failingSender{}
		tokens := &countingTokens{tokens: []string{"abc"}}
		api := NewAPI("https://api.example.com", sender, tokens, nil)

		_, err := Get[fooResource](context.Background(), api, "https://api.example.com/foo", nil)
		require.Error(t, err)
		assert.True(t, dwolla.IsTransportError(err))
		assert.Equal(t, 1, sender.calls)
		assert.Equal(t, 0, tokens.forcedRefreshes())
	})

	t.Run("token failure stops the call before sending", func(t *testing.T) {
		t.Parallel()

		sender := &failingSender{}
		tokens := &countingTokens{err: &dwolla.AuthError{Message: "boom", Err: errTokenEndpointDown}}
		api := NewAPI("https://api.example.com", sender, tokens, nil)

		_, err := Get[fooResource](context.Background(), api, "https://api.example.com/foo", nil)
		require.ErrorIs(t, err, errTokenEndpointDown)
		assert.Equal(t, 0, sender.calls)
	})
}

func TestExecute_Concurrent(t *testing.T) {
	t.Parallel()

	server := newAPIServer(t).respond("/foo", http.StatusOK, fooResource{Name: "bar"})
	client := newTestClient(t, server, nil)

	errs := make(chan error, 10)

	for range 10 {
		go func() {
			_, err := Get[fooResource](context.Background(), client.api, server.URL+"/foo", nil)
			errs <- err
		}()
	}

	for range 10 {
		require.NoError(t, <-errs)
	}

	assert.Len(t, server.requestsTo("/foo"), 10)
}

func TestAPI_URL(t *testing.T) {
	t.Parallel()

	api := NewAPI("https://api.example.com/", nil, nil, nil)

	path, err := api.URL("/customers/%s/documents", "a b/c")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/customers/a%20b%2Fc/documents", path)

	_, err = api.URL("/customers/%s", " ")
	require.ErrorIs(t, err, dwolla.ErrInvalidResourceID)
}

func TestCreate_RequiresLocation(t *testing.T) {
	t.Parallel()

	server := newAPIServer(t).respond("/customers", http.StatusOK, map[string]string{})
	client := newTestClient(t, server, nil)

	_, err := Create(context.Background(), client.api, server.URL+"/customers", map[string]string{"firstName": "Jane"})
	require.ErrorIs(t, err, dwolla.ErrNoLocation)
}
