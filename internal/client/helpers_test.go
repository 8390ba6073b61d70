package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	dwollahttp "github.com/fivetwenty-io/dwolla-client/internal/http"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"github.com/stretchr/testify/require"
)

// countingTokens hands out a fixed token and counts forced refreshes.
type countingTokens struct {
	mu     sync.Mutex
	tokens []string
	calls  int
	forced int
	err    error
}

func (c *countingTokens) GetToken(_ context.Context, force bool) (dwolla.Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls++

	if c.err != nil {
		return dwolla.Token{}, c.err
	}

	if force {
		c.forced++
	}

	index := c.forced
	if index >= len(c.tokens) {
		index = len(c.tokens) - 1
	}

	return dwolla.Token{AccessToken: c.tokens[index]}, nil
}

func (c *countingTokens) forcedRefreshes() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.forced
}

// recordedRequest is what the test server saw.
type recordedRequest struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	ContentType   string
	Header        http.Header
	Body          []byte
}

// apiServer is an httptest server answering from a queue of canned responses
// per path and recording every request.
type apiServer struct {
	*httptest.Server

	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string][]cannedResponse
	hits      map[string]*atomic.Int32
}

type cannedResponse struct {
	status   int
	body     interface{}
	location string
}

func newAPIServer(t *testing.T) *apiServer {
	t.Helper()

	server := &apiServer{
		responses: map[string][]cannedResponse{},
		hits:      map[string]*atomic.Int32{},
	}

	server.Server = httptest.NewServer(http.HandlerFunc(server.handle))
	t.Cleanup(server.Close)

	return server
}

// respond queues a response for path. The last queued response repeats.
func (s *apiServer) respond(path string, status int, body interface{}) *apiServer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.responses[path] = append(s.responses[path], cannedResponse{status: status, body: body})
	if s.hits[path] == nil {
		s.hits[path] = &atomic.Int32{}
	}

	return s
}

// created queues a 201 with a Location header for path.
func (s *apiServer) created(path, location string) *apiServer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.responses[path] = append(s.responses[path], cannedResponse{status: http.StatusCreated, location: location})
	if s.hits[path] == nil {
		s.hits[path] = &atomic.Int32{}
	}

	return s
}

func (s *apiServer) handle(writer http.ResponseWriter, request *http.Request) {
	body, _ := io.ReadAll(request.Body)

	s.mu.Lock()
	s.requests = append(s.requests, recordedRequest{
		Method:        request.Method,
		Path:          request.URL.Path,
		Query:         request.URL.RawQuery,
		Authorization: request.Header.Get("Authorization"),
		ContentType:   request.Header.Get("Content-Type"),
		Header:        request.Header.Clone(),
		Body:          body,
	})

	queue := s.responses[request.URL.Path]
	counter := s.hits[request.URL.Path]
	s.mu.Unlock()

	if len(queue) == 0 {
		writer.Header().Set("Content-Type", "application/vnd.dwolla.v1.hal+json")
		writer.WriteHeader(http.StatusNotFound)
		_, _ = writer.Write([]byte(`{"code":"NotFound","message":"The requested resource was not found."}`))

		return
	}

	index := int(counter.Add(1)) - 1
	if index >= len(queue) {
		index = len(queue) - 1
	}

	response := queue[index]

	writer.Header().Set("X-Request-Id", "req-"+request.URL.Path)

	if response.location != "" {
		writer.Header().Set("Location", response.location)
	}

	if response.body == nil {
		writer.WriteHeader(response.status)

		return
	}

	writer.Header().Set("Content-Type", "application/vnd.dwolla.v1.hal+json")
	writer.WriteHeader(response.status)
	_ = json.NewEncoder(writer).Encode(response.body)
}

func (s *apiServer) recorded() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]recordedRequest(nil), s.requests...)
}

func (s *apiServer) requestsTo(path string) []recordedRequest {
	var matching []recordedRequest

	for _, request := range s.recorded() {
		if request.Path == path {
			matching = append(matching, request)
		}
	}

	return matching
}

// newTestClient builds a client over server with a static token provider.
func newTestClient(t *testing.T, server *apiServer, tokens TokenProvider, headers ...dwolla.Header) *Client {
	t.Helper()

	if tokens == nil {
		tokens = &countingTokens{tokens: []string{"abc"}}
	}

	api := NewAPI(server.URL, dwollahttp.NewTransport(), tokens, nil, headers...)
	client := newWithAPI(api)
	require.NotNil(t, client)

	return client
}
