package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fivetwenty-io/dwolla-client/internal/auth"
	dwollahttp "github.com/fivetwenty-io/dwolla-client/internal/http"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("store down")

// fakeSender answers token requests with canned responses and counts them.
type fakeSender struct {
	calls    atomic.Int32
	delay    time.Duration
	status   int
	body     string
	header   http.Header
	err      error
	requests chan *dwollahttp.Request
}

func newFakeSender(body string) *fakeSender {
	return &fakeSender{status: http.StatusOK, body: body, header: http.Header{}}
}

func (s *fakeSender) Send(ctx context.Context, request *dwollahttp.Request) (*dwollahttp.RawResponse, error) {
	s.calls.Add(1)

	if s.requests != nil {
		s.requests <- request
	}

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, &dwolla.TransportError{Message: ctx.Err().Error(), Err: ctx.Err()}
		}
	}

	if s.err != nil {
		return nil, s.err
	}

	return &dwollahttp.RawResponse{
		StatusCode: s.status,
		Header:     s.header,
		Body:       []byte(s.body),
		Method:     request.Method,
	}, nil
}

// memoryStore records saves and returns a fixed token on load.
type memoryStore struct {
	mu      sync.Mutex
	loaded  *dwolla.Token
	loadErr error
	saveErr error
	loads   int
	saves   []dwolla.Token
}

func (s *memoryStore) Load(_ context.Context) (*dwolla.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loads++

	return s.loaded, s.loadErr
}

func (s *memoryStore) Save(_ context.Context, token dwolla.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saves = append(s.saves, token)

	return s.saveErr
}

var testCredentials = dwolla.Credentials{ClientID: "key", ClientSecret: "secret"}

const tokenBody = `{"access_token":"fresh","token_type":"bearer","expires_in":3600}`

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestManager_GetToken(t *testing.T) {
	t.Parallel()

	t.Run("requests a token when none is cached", func(t *testing.T) {
		t.Parallel()

		sender := newFakeSender(tokenBody)
		now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		manager := auth.NewManager("https://api.example.com", testCredentials, sender,
			auth.WithClock(func() time.Time { return now }))

		token, err := manager.GetToken(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, "fresh", token.AccessToken)
		assert.True(t, now.Add(time.Hour).Equal(token.ExpiresAt))
		assert.Equal(t, int32(1), sender.calls.Load())

		cached, ok := manager.Current()
		assert.True(t, ok)
		assert.Equal(t, token, cached)
	})

	t.Run("reuses a valid cached token", func(t *testing.T) {
		t.Parallel()

		sender := newFakeSender(tokenBody)
		manager := auth.NewManager("https://api.example.com", testCredentials, sender)

		first, err := manager.GetToken(context.Background(), false)
		require.NoError(t, err)

		second, err := manager.GetToken(context.Background(), false)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, int32(1), sender.calls.Load())
	})

	t.Run("force always refreshes", func(t *testing.T) {
		t.Parallel()

		sender := newFakeSender(tokenBody)
		manager := auth.NewManager("https://api.example.com", testCredentials, sender)

		_, err := manager.GetToken(context.Background(), false)
		require.NoError(t, err)

		_, err = manager.GetToken(context.Background(), true)
		require.NoError(t, err)

		assert.Equal(t, int32(2), sender.calls.Load())
	})

	t.Run("refreshes an expired token", func(t *testing.T) {
		t.Parallel()

		var now atomic.Int64

		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		now.Store(start.Unix())

		sender := newFakeSender(tokenBody)
		manager := auth.NewManager("https://api.example.com", testCredentials, sender,
			auth.WithClock(func() time.Time { return time.Unix(now.Load(), 0).UTC() }))

		_, err := manager.GetToken(context.Background(), false)
		require.NoError(t, err)

		// A token expiring exactly now is already expired.
		now.Store(start.Add(time.Hour).Unix())

		_, err = manager.GetToken(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, int32(2), sender.calls.Load())
	})

	t.Run("expiry is measured from the Date header", func(t *testing.T) {
		t.Parallel()

		served := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
		sender := newFakeSender(tokenBody)
		sender.header.Set("Date", served.Format(http.TimeFormat))

		manager := auth.NewManager("https://api.example.com", testCredentials, sender,
			auth.WithClock(func() time.Time { return served.Add(-time.Minute) }))

		token, err := manager.GetToken(context.Background(), false)
		require.NoError(t, err)
		assert.True(t, served.Add(time.Hour).Equal(token.ExpiresAt))
	})

	t.Run("sends the client credentials form", func(t *testing.T) {
		t.Parallel()

		sender := newFakeSender(tokenBody)
		sender.requests = make(chan *dwollahttp.Request, 1)
		manager := auth.NewManager("https://api.example.com/", testCredentials, sender)

		_, err := manager.GetToken(context.Background(), false)
		require.NoError(t, err)

		request := <-sender.requests
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "https://api.example.com/token", request.URL)
		assert.Empty(t, request.BearerToken)

		body, err := request.Body.Encode()
		require.NoError(t, err)
		assert.Equal(t, "grant_type=client_credentials&client_id=key&client_secret=secret", string(body))
	})
}

func TestManager_ConcurrentCallersShareOneRefresh(t *testing.T) {
	t.Parallel()

	sender := newFakeSender(tokenBody)
	sender.delay = 50 * time.Millisecond
	manager := auth.NewManager("https://api.example.com", testCredentials, sender)

	const callers = 20

	var wg sync.WaitGroup

	tokens := make([]dwolla.Token, callers)
	errs := make([]error, callers)

	for i := range callers {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			tokens[i], errs[i] = manager.GetToken(context.Background(), false)
		}(i)
	}

	wg.Wait()

	assert.Equal(t, int32(1), sender.calls.Load())

	for i := range callers {
		require.NoError(t, errs[i])
		assert.Equal(t, "fresh", tokens[i].AccessToken)
	}
}

func TestManager_ConcurrentForcedRefreshesShareOneRequest(t *testing.T) {
	t.Parallel()

	sender := newFakeSender(tokenBody)
	manager := auth.NewManager("https://api.example.com", testCredentials, sender)

	_, err := manager.GetToken(context.Background(), false)
	require.NoError(t, err)

	sender.delay = 50 * time.Millisecond

	const callers = 10

	var wg sync.WaitGroup

	errs := make([]error, callers)

	for i := range callers {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			_, errs[i] = manager.GetToken(context.Background(), true)
		}(i)
	}

	wg.Wait()

	for i := range callers {
		require.NoError(t, errs[i])
	}

	// The warm-up request plus one refresh shared by every forced caller.
	assert.Equal(t, int32(2), sender.calls.Load())
}

func TestManager_WaitingHonorsContext(t *testing.T) {
	t.Parallel()

	sender := newFakeSender(tokenBody)
	sender.delay = time.Second
	manager := auth.NewManager("https://api.example.com", testCredentials, sender)

	go func() {
		_, _ = manager.GetToken(context.Background(), false)
	}()

	require.Eventually(t, func() bool { return sender.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := manager.GetToken(ctx, false)
	require.Error(t, err)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	var authErr *dwolla.AuthError
	assert.ErrorAs(t, err, &authErr)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestManager_Errors(t *testing.T) {
	t.Parallel()

	t.Run("error response becomes AuthError with the code", func(t *testing.T) {
		t.Parallel()

		sender := newFakeSender(`{"error":"invalid_client","error_description":"Invalid client credentials."}`)
		sender.status = http.StatusUnauthorized
		manager := auth.NewManager("https://api.example.com", testCredentials, sender)

		_, err := manager.GetToken(context.Background(), false)
		require.Error(t, err)

		var authErr *dwolla.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "invalid_client", authErr.Code)
		assert.Equal(t, "Invalid client credentials.", authErr.Message)

		_, cached := manager.Current()
		assert.False(t, cached)
	})

	t.Run("transport failure becomes AuthError wrapping it", func(t *testing.T) {
		t.Parallel()

		sender := newFakeSender("")
		sender.err = &dwolla.TransportError{Message: "connection refused"}
		manager := auth.NewManager("https://api.example.com", testCredentials, sender)

		_, err := manager.GetToken(context.Background(), false)
		require.Error(t, err)

		var authErr *dwolla.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.True(t, dwolla.IsTransportError(err))
	})

	t.Run("missing access token is rejected", func(t *testing.T) {
		t.Parallel()

		sender := newFakeSender(`{"token_type":"bearer","expires_in":3600}`)
		manager := auth.NewManager("https://api.example.com", testCredentials, sender)

		_, err := manager.GetToken(context.Background(), false)
		require.ErrorIs(t, err, auth.ErrEmptyAccessToken)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestManager_Store(t *testing.T) {
	t.Parallel()

	t.Run("uses a valid saved token without requesting one", func(t *testing.T) {
		t.Parallel()

		saved := dwolla.Token{AccessToken: "saved", ExpiresAt: time.Now().Add(time.Hour)}
		store := &memoryStore{loaded: &saved}
		sender := newFakeSender(tokenBody)
		manager := auth.NewManager("https://api.example.com", testCredentials, sender, auth.WithStore(store))

		token, err := manager.GetToken(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, "saved", token.AccessToken)
		assert.Equal(t, int32(0), sender.calls.Load())

		_, err = manager.GetToken(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, 1, store.loads)
	})

	t.Run("refreshes an expired saved token and saves the new one", func(t *testing.T) {
		t.Parallel()

		saved := dwolla.Token{AccessToken: "stale", ExpiresAt: time.Now().Add(-time.Minute)}
		store := &memoryStore{loaded: &saved}
		sender := newFakeSender(tokenBody)
		manager := auth.NewManager("https://api.example.com", testCredentials, sender, auth.WithStore(store))

		token, err := manager.GetToken(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, "fresh", token.AccessToken)
		require.Len(t, store.saves, 1)
		assert.Equal(t, token, store.saves[0])
	})

	t.Run("load failure is treated as no token", func(t *testing.T) {
		t.Parallel()

		store := &memoryStore{loadErr: errStoreDown}
		logger := &recordingLogger{}
		sender := newFakeSender(tokenBody)
		manager := auth.NewManager("https://api.example.com", testCredentials, sender,
			auth.WithStore(store), auth.WithLogger(logger))

		token, err := manager.GetToken(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, "fresh", token.AccessToken)
		assert.Contains(t, logger.messages(), "loading saved token failed")
	})

	t.Run("save failure is returned and the token stays cached", func(t *testing.T) {
		t.Parallel()

		store := &memoryStore{saveErr: errStoreDown}
		sender := newFakeSender(tokenBody)
		manager := auth.NewManager("https://api.example.com", testCredentials, sender, auth.WithStore(store))

		_, err := manager.GetToken(context.Background(), false)
		require.ErrorIs(t, err, errStoreDown)

		token, err := manager.GetToken(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, "fresh", token.AccessToken)
		assert.Equal(t, int32(1), sender.calls.Load())
	})
}

func TestManager_WithTransport(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(tokenBody))
	}))
	defer server.Close()

	manager := auth.NewManager(server.URL, testCredentials, dwollahttp.NewTransport())

	source := manager.TokenSource(context.Background())

	token, err := source.Token()
	require.NoError(t, err)
	assert.Equal(t, "fresh", token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.True(t, token.Valid())

	_, err = source.Token()
	require.NoError(t, err)
	assert.Equal(t, int32(1), requests.Load())
}

type recordingLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *recordingLogger) add(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.msgs = append(l.msgs, msg)
}

func (l *recordingLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.msgs...)
}

func (l *recordingLogger) Debug(msg string, _ map[string]interface{}) { l.add(msg) }
func (l *recordingLogger) Info(msg string, _ map[string]interface{})  { l.add(msg) }
func (l *recordingLogger) Warn(msg string, _ map[string]interface{})  { l.add(msg) }
func (l *recordingLogger) Error(msg string, _ map[string]interface{}) { l.add(msg) }
