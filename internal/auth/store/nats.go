package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fivetwenty-io/dwolla-client/internal/constants"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NATSKV saves the token in a JetStream key-value bucket so that several
// processes using the same application credentials share one token.
type NATSKV struct {
	kv   jetstream.KeyValue
	key  string
	conn *nats.Conn
}

// DialNATSKV connects to url and opens (or creates) bucket. The returned store
// owns the connection; call Close when done.
func DialNATSKV(ctx context.Context, url, bucket, key string) (*NATSKV, error) {
	conn, err := nats.Connect(url,
		nats.Name(constants.KeyringService),
		nats.Timeout(constants.NATSConnectTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}

	store, err := NewNATSKV(ctx, conn, bucket, key)
	if err != nil {
		conn.Close()

		return nil, err
	}

	store.conn = conn

	return store, nil
}

// NewNATSKV opens (or creates) bucket on an existing connection. The caller
// keeps ownership of conn.
func NewNATSKV(ctx context.Context, conn *nats.Conn, bucket, key string) (*NATSKV, error) {
	js, err := jetstream.New(conn)
	if err != nil {
		return nil, fmt.Errorf("creating JetStream context: %w", err)
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "Dwolla access tokens",
		History:     1,
	})
	if err != nil {
		return nil, fmt.Errorf("opening key-value bucket %s: %w", bucket, err)
	}

	return &NATSKV{kv: kv, key: sanitizeKey(key)}, nil
}

// Load implements dwolla.TokenStore.
func (n *NATSKV) Load(ctx context.Context) (*dwolla.Token, error) {
	entry, err := n.kv.Get(ctx, n.key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, nil //nolint:nilnil // nothing saved yet
	}

	if err != nil {
		return nil, fmt.Errorf("reading key %s: %w", n.key, err)
	}

	var token dwolla.Token

	err = json.Unmarshal(entry.Value(), &token)
	if err != nil {
		return nil, fmt.Errorf("parsing key %s: %w", n.key, err)
	}

	return &token, nil
}

// Save implements dwolla.TokenStore.
func (n *NATSKV) Save(ctx context.Context, token dwolla.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	_, err = n.kv.Put(ctx, n.key, data)
	if err != nil {
		return fmt.Errorf("writing key %s: %w", n.key, err)
	}

	return nil
}

// Close closes the connection opened by DialNATSKV.
func (n *NATSKV) Close() error {
	if n.conn != nil {
		n.conn.Close()
	}

	return nil
}
