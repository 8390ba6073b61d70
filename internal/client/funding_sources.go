package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
)

// FundingSourcesClient implements dwolla.FundingSourcesClient.
type FundingSourcesClient struct {
	api *API
}

// NewFundingSourcesClient creates a new funding sources client.
func NewFundingSourcesClient(api *API) *FundingSourcesClient {
	return &FundingSourcesClient{api: api}
}

// Get implements dwolla.FundingSourcesClient.Get.
func (c *FundingSourcesClient) Get(ctx context.Context, id string) (*dwolla.FundingSource, error) {
	path, err := c.api.URL("/funding-sources/%s", id)
	if err != nil {
		return nil, err
	}

	source, err := Get[dwolla.FundingSource](ctx, c.api, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting funding source: %w", err)
	}

	return source, nil
}

// GetBalance implements dwolla.FundingSourcesClient.GetBalance.
func (c *FundingSourcesClient) GetBalance(ctx context.Context, id string) (*dwolla.Balance, error) {
	path, err := c.api.URL("/funding-sources/%s/balance", id)
	if err != nil {
		return nil, err
	}

	balance, err := Get[dwolla.Balance](ctx, c.api, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting funding source balance: %w", err)
	}

	return balance, nil
}

// Remove implements dwolla.FundingSourcesClient.Remove.
func (c *FundingSourcesClient) Remove(ctx context.Context, id string) (*dwolla.FundingSource, error) {
	path, err := c.api.URL("/funding-sources/%s", id)
	if err != nil {
		return nil, err
	}

	source, err := Post[dwolla.FundingSource](ctx, c.api, path, map[string]bool{"removed": true})
	if err != nil {
		return nil, fmt.Errorf("removing funding source: %w", err)
	}

	return source, nil
}

// GetMicroDeposits implements dwolla.FundingSourcesClient.GetMicroDeposits.
func (c *FundingSourcesClient) GetMicroDeposits(ctx context.Context, id string) (*dwolla.MicroDeposits, error) {
	path, err := c.api.URL("/funding-sources/%s/micro-deposits", id)
	if err != nil {
		return nil, err
	}

	deposits, err := Get[dwolla.MicroDeposits](ctx, c.api, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting micro-deposits: %w", err)
	}

	return deposits, nil
}

// InitiateMicroDeposits implements dwolla.FundingSourcesClient.InitiateMicroDeposits.
func (c *FundingSourcesClient) InitiateMicroDeposits(ctx context.Context, id string) (*url.URL, error) {
	path, err := c.api.URL("/funding-sources/%s/micro-deposits", id)
	if err != nil {
		return nil, err
	}

	location, err := Create(ctx, c.api, path, nil)
	if err != nil {
		return nil, fmt.Errorf("initiating micro-deposits: %w", err)
	}

	return location, nil
}

// VerifyMicroDeposits implements dwolla.FundingSourcesClient.VerifyMicroDeposits.
func (c *FundingSourcesClient) VerifyMicroDeposits(ctx context.Context, id string, request *dwolla.VerifyMicroDepositsRequest) error {
	err := checkRequest(request)
	if err != nil {
		return err
	}

	path, err := c.api.URL("/funding-sources/%s/micro-deposits", id)
	if err != nil {
		return err
	}

	_, err = Post[struct{}](ctx, c.api, path, request)
	if err != nil {
		return fmt.Errorf("verifying micro-deposits: %w", err)
	}

	return nil
}
