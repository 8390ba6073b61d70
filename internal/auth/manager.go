package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	dwollahttp "github.com/fivetwenty-io/dwolla-client/internal/http"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"golang.org/x/sync/semaphore"
)

// Static errors for err113 compliance.
var (
	ErrEmptyAccessToken = errors.New("token response has no access_token")
)

// Sender sends a request without any authentication of its own.
type Sender interface {
	Send(ctx context.Context, request *dwollahttp.Request) (*dwollahttp.RawResponse, error)
}

// tokenResponse is the body of a successful POST /token.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Manager acquires, caches and refreshes the application access token.
//
// All refresh decisions happen behind a single gate, so concurrent callers
// that find no valid token trigger one token request between them. A forced
// caller that waited on the gate while another refresh completed takes that
// token instead of requesting its own. Readers of a valid cached token never
// wait on the gate.
type Manager struct {
	baseURL     string
	credentials dwolla.Credentials
	sender      Sender
	store       dwolla.TokenStore
	logger      dwolla.Logger
	now         func() time.Time

	gate   *semaphore.Weighted
	loaded bool                // guarded by gate

	mutex      sync.RWMutex
	token      *dwolla.Token
	generation uint64 // completed refreshes
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore sets the token store used to load and save tokens.
func WithStore(store dwolla.TokenStore) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithLogger sets the logger.
func WithLogger(logger dwolla.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a token manager for the API at baseURL.
func NewManager(baseURL string, credentials dwolla.Credentials, sender Sender, opts ...Option) *Manager {
	manager := &Manager{
		baseURL:     baseURL,
		credentials: credentials,
		sender:      sender,
		now:         time.Now,
		gate:        semaphore.NewWeighted(1),
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

// GetToken returns a valid access token. A new token is requested when force
// is set, when none is cached, or when the cached one has expired. A forced
// call that arrives while a refresh is in flight returns that refresh's token.
func (m *Manager) GetToken(ctx context.Context, force bool) (dwolla.Token, error) {
	if !force {
		if token, ok := m.valid(); ok {
			return token, nil
		}
	}

	seen := m.refreshes()

	err := m.gate.Acquire(ctx, 1)
	if err != nil {
		return dwolla.Token{}, &dwolla.AuthError{Message: "waiting for token refresh: " + err.Error(), Err: err}
	}
	defer m.gate.Release(1)

	m.loadOnce(ctx)

	if !force || m.refreshes() != seen {
		if token, ok := m.valid(); ok {
			return token, nil
		}
	}

	token, err := m.fetch(ctx)
	if err != nil {
		return dwolla.Token{}, err
	}

	m.mutex.Lock()
	m.token = &token
	m.generation++
	m.mutex.Unlock()

	if m.store != nil {
		err = m.store.Save(ctx, token)
		if err != nil {
			return dwolla.Token{}, err
		}
	}

	return token, nil
}

// Current returns the cached token without refreshing it.
func (m *Manager) Current() (dwolla.Token, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.token == nil {
		return dwolla.Token{}, false
	}

	return *m.token, true
}

func (m *Manager) refreshes() uint64 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.generation
}

func (m *Manager) valid() (dwolla.Token, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.token == nil || m.token.Expired(m.now()) {
		return dwolla.Token{}, false
	}

	return *m.token, true
}

// loadOnce asks the store for a saved token the first time a decision is made.
// A failing store is treated as empty.
func (m *Manager) loadOnce(ctx context.Context) {
	if m.loaded || m.store == nil {
		return
	}

	m.loaded = true

	m.mutex.RLock()
	cached := m.token != nil
	m.mutex.RUnlock()

	if cached {
		return
	}

	saved, err := m.store.Load(ctx)
	if err != nil {
		m.warn("loading saved token failed", map[string]interface{}{"error": err.Error()})

		return
	}

	if saved == nil || saved.IsZero() {
		return
	}

	m.mutex.Lock()
	m.token = saved
	m.mutex.Unlock()

	m.debug("loaded saved token", map[string]interface{}{"expires_at": saved.ExpiresAt})
}

func (m *Manager) fetch(ctx context.Context) (dwolla.Token, error) {
	raw, err := m.sender.Send(ctx, dwollahttp.NewTokenRequest(m.baseURL, m.credentials))
	if err != nil {
		return dwolla.Token{}, &dwolla.AuthError{Message: err.Error(), Err: err}
	}

	received := m.now()

	response, err := dwollahttp.Classify[tokenResponse](raw)
	if err != nil {
		apiErr := &dwolla.APIError{}
		if errors.As(err, &apiErr) {
			return dwolla.Token{}, &dwolla.AuthError{Code: apiErr.Code, Message: apiErr.Message, Err: apiErr}
		}

		return dwolla.Token{}, &dwolla.AuthError{Message: err.Error(), Err: err}
	}

	if response.Content.AccessToken == "" {
		return dwolla.Token{}, &dwolla.AuthError{Message: ErrEmptyAccessToken.Error(), Err: ErrEmptyAccessToken}
	}

	issued := received
	if date, parseErr := http.ParseTime(raw.Header.Get("Date")); parseErr == nil {
		issued = date
	}

	token := dwolla.Token{
		AccessToken: response.Content.AccessToken,
		ExpiresAt:   issued.Add(time.Duration(response.Content.ExpiresIn) * time.Second),
	}

	m.debug("acquired access token", map[string]interface{}{
		"expires_at": token.ExpiresAt,
		"request_id": response.Meta.RequestID,
	})

	return token, nil
}

func (m *Manager) debug(msg string, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.Debug(msg, fields)
	}
}

func (m *Manager) warn(msg string, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.Warn(msg, fields)
	}
}
