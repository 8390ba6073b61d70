// Package store provides dwolla.TokenStore implementations: in memory, a YAML
// file, the OS keyring and a NATS JetStream key-value bucket.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/fivetwenty-io/dwolla-client/internal/constants"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
)

// Static errors for err113 compliance.
var (
	ErrNATSURLRequired = errors.New("NATS URL required for the nats token store")
	ErrPathRequired    = errors.New("path required for the file token store")
	ErrKeyRequired     = errors.New("token key required")
)

// Config selects and configures a token store.
type Config struct {
	// Type is one of none, memory, file, keyring or nats.
	Type string
	// Key identifies the token inside shared stores, usually the client ID.
	Key string
	// Path is the file of the file store.
	Path string
	// NATSURL is the server of the nats store.
	NATSURL string
	// NATSBucket is the key-value bucket of the nats store.
	NATSBucket string
}

// DefaultPath returns the token file inside configDir.
func DefaultPath(configDir string) string {
	return filepath.Join(configDir, constants.TokenFileName)
}

// New builds the store described by config. A nil store is returned for the
// none type. Stores holding a connection implement io.Closer.
func New(ctx context.Context, config Config) (dwolla.TokenStore, error) {
	switch config.Type {
	case "", constants.TokenStoreNone:
		return nil, nil //nolint:nilnil // no store configured
	case constants.TokenStoreMemory:
		return NewMemory(), nil
	case constants.TokenStoreFile:
		if config.Path == "" {
			return nil, ErrPathRequired
		}

		return NewFile(config.Path), nil
	case constants.TokenStoreKeyring:
		if config.Key == "" {
			return nil, ErrKeyRequired
		}

		return NewKeyring(constants.KeyringService, config.Key), nil
	case constants.TokenStoreNATS:
		if config.NATSURL == "" {
			return nil, ErrNATSURLRequired
		}

		if config.Key == "" {
			return nil, ErrKeyRequired
		}

		bucket := config.NATSBucket
		if bucket == "" {
			bucket = constants.DefaultNATSBucket
		}

		kv, err := DialNATSKV(ctx, config.NATSURL, bucket, config.Key)
		if err != nil {
			return nil, err
		}

		return kv, nil
	default:
		return nil, fmt.Errorf("%w: %s", dwolla.ErrUnsupportedTokenStore, config.Type)
	}
}

// Close closes store when it holds resources.
func Close(store dwolla.TokenStore) error {
	closer, ok := store.(io.Closer)
	if !ok {
		return nil
	}

	err := closer.Close()
	if err != nil {
		return fmt.Errorf("closing token store: %w", err)
	}

	return nil
}

var invalidKeyChars = regexp.MustCompile(`[^-_=.a-zA-Z0-9]`)

// sanitizeKey makes key usable as a key-value entry name.
func sanitizeKey(key string) string {
	return invalidKeyChars.ReplaceAllString(key, "_")
}

// Memory keeps the token in process memory. It is useful to share one token
// between several clients of the same application.
type Memory struct {
	mu    sync.RWMutex
	token *dwolla.Token
}

// NewMemory creates an empty memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Load implements dwolla.TokenStore.
func (m *Memory) Load(_ context.Context) (*dwolla.Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.token == nil {
		return nil, nil //nolint:nilnil // nothing saved yet
	}

	token := *m.token

	return &token, nil
}

// Save implements dwolla.TokenStore.
func (m *Memory) Save(_ context.Context, token dwolla.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = &token

	return nil
}
