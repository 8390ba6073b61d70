package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
)

// CustomersClient implements dwolla.CustomersClient.
type CustomersClient struct {
	api *API
}

// NewCustomersClient creates a new customers client.
func NewCustomersClient(api *API) *CustomersClient {
	return &CustomersClient{api: api}
}

// List implements dwolla.CustomersClient.List.
func (c *CustomersClient) List(ctx context.Context, params *dwolla.CustomerListParams) (*dwolla.CustomerList, error) {
	list, err := Get[dwolla.CustomerList](ctx, c.api, c.api.BaseURL()+"/customers", params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}

	return list, nil
}

// Get implements dwolla.CustomersClient.Get.
func (c *CustomersClient) Get(ctx context.Context, id string) (*dwolla.Customer, error) {
	path, err := c.api.URL("/customers/%s", id)
	if err != nil {
		return nil, err
	}

	customer, err := Get[dwolla.Customer](ctx, c.api, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return customer, nil
}

// Create implements dwolla.CustomersClient.Create.
func (c *CustomersClient) Create(ctx context.Context, request *dwolla.CreateCustomerRequest) (*url.URL, error) {
	err := checkRequest(request)
	if err != nil {
		return nil, err
	}

	location, err := Create(ctx, c.api, c.api.BaseURL()+"/customers", request)
	if err != nil {
		return nil, fmt.Errorf("creating customer: %w", err)
	}

	return location, nil
}

// Update implements dwolla.CustomersClient.Update.
func (c *CustomersClient) Update(ctx context.Context, id string, request *dwolla.UpdateCustomerRequest) (*dwolla.Customer, error) {
	err := checkRequest(request)
	if err != nil {
		return nil, err
	}

	path, err := c.api.URL("/customers/%s", id)
	if err != nil {
		return nil, err
	}

	customer, err := Post[dwolla.Customer](ctx, c.api, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating customer: %w", err)
	}

	return customer, nil
}

// GetIavToken implements dwolla.CustomersClient.GetIavToken.
func (c *CustomersClient) GetIavToken(ctx context.Context, id string) (*dwolla.IavToken, error) {
	path, err := c.api.URL("/customers/%s/iav-token", id)
	if err != nil {
		return nil, err
	}

	token, err := Post[dwolla.IavToken](ctx, c.api, path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating IAV token: %w", err)
	}

	return token, nil
}

// ListFundingSources implements dwolla.CustomersClient.ListFundingSources.
func (c *CustomersClient) ListFundingSources(ctx context.Context, id string, includeRemoved bool) (*dwolla.FundingSourceList, error) {
	path, err := c.api.URL("/customers/%s/funding-sources", id)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	if !includeRemoved {
		query.Set("removed", "false")
	}

	list, err := Get[dwolla.FundingSourceList](ctx, c.api, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing funding sources: %w", err)
	}

	return list, nil
}

// CreateFundingSource implements dwolla.CustomersClient.CreateFundingSource.
func (c *CustomersClient) CreateFundingSource(ctx context.Context, id string, request *dwolla.CreateFundingSourceRequest) (*url.URL, error) {
	err := checkRequest(request)
	if err != nil {
		return nil, err
	}

	path, err := c.api.URL("/customers/%s/funding-sources", id)
	if err != nil {
		return nil, err
	}

	location, err := Create(ctx, c.api, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating funding source: %w", err)
	}

	return location, nil
}
