package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"github.com/zalando/go-keyring"
)

// Keyring saves the token in the OS credential store (Keychain, Secret
// Service, Windows Credential Manager).
type Keyring struct {
	service string
	user    string
}

// NewKeyring creates a keyring store for one entry of service.
func NewKeyring(service, user string) *Keyring {
	return &Keyring{service: service, user: user}
}

// Load implements dwolla.TokenStore.
func (k *Keyring) Load(_ context.Context) (*dwolla.Token, error) {
	secret, err := keyring.Get(k.service, k.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, nil //nolint:nilnil // nothing saved yet
	}

	if err != nil {
		return nil, fmt.Errorf("reading keyring entry %s/%s: %w", k.service, k.user, err)
	}

	var token dwolla.Token

	err = json.Unmarshal([]byte(secret), &token)
	if err != nil {
		return nil, fmt.Errorf("parsing keyring entry %s/%s: %w", k.service, k.user, err)
	}

	return &token, nil
}

// Save implements dwolla.TokenStore.
func (k *Keyring) Save(_ context.Context, token dwolla.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	err = keyring.Set(k.service, k.user, string(data))
	if err != nil {
		return fmt.Errorf("writing keyring entry %s/%s: %w", k.service, k.user, err)
	}

	return nil
}

// Clear removes the saved token.
func (k *Keyring) Clear() error {
	err := keyring.Delete(k.service, k.user)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("deleting keyring entry %s/%s: %w", k.service, k.user, err)
	}

	return nil
}
