package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
)

// BeneficialOwnersClient implements dwolla.BeneficialOwnersClient.
type BeneficialOwnersClient struct {
	api *API
}

// NewBeneficialOwnersClient creates a new beneficial owners client.
func NewBeneficialOwnersClient(api *API) *BeneficialOwnersClient {
	return &BeneficialOwnersClient{api: api}
}

// List implements dwolla.BeneficialOwnersClient.List.
func (c *BeneficialOwnersClient) List(ctx context.Context, customerID string) (*dwolla.BeneficialOwnerList, error) {
	path, err := c.api.URL("/customers/%s/beneficial-owners", customerID)
	if err != nil {
		return nil, err
	}

	list, err := Get[dwolla.BeneficialOwnerList](ctx, c.api, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing beneficial owners: %w", err)
	}

	return list, nil
}

// Get implements dwolla.BeneficialOwnersClient.Get.
func (c *BeneficialOwnersClient) Get(ctx context.Context, id string) (*dwolla.BeneficialOwner, error) {
	path, err := c.api.URL("/beneficial-owners/%s", id)
	if err != nil {
		return nil, err
	}

	owner, err := Get[dwolla.BeneficialOwner](ctx, c.api, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting beneficial owner: %w", err)
	}

	return owner, nil
}

// Create implements dwolla.BeneficialOwnersClient.Create.
func (c *BeneficialOwnersClient) Create(ctx context.Context, customerID string, request *dwolla.CreateBeneficialOwnerRequest) (*url.URL, error) {
	err := checkRequest(request)
	if err != nil {
		return nil, err
	}

	path, err := c.api.URL("/customers/%s/beneficial-owners", customerID)
	if err != nil {
		return nil, err
	}

	location, err := Create(ctx, c.api, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating beneficial owner: %w", err)
	}

	return location, nil
}

// Delete implements dwolla.BeneficialOwnersClient.Delete.
func (c *BeneficialOwnersClient) Delete(ctx context.Context, id string) (*dwolla.BeneficialOwner, error) {
	path, err := c.api.URL("/beneficial-owners/%s", id)
	if err != nil {
		return nil, err
	}

	owner, err := Delete[dwolla.BeneficialOwner](ctx, c.api, path)
	if err != nil {
		return nil, fmt.Errorf("deleting beneficial owner: %w", err)
	}

	return owner, nil
}

// GetOwnership implements dwolla.BeneficialOwnersClient.GetOwnership.
func (c *BeneficialOwnersClient) GetOwnership(ctx context.Context, customerID string) (*dwolla.BeneficialOwnership, error) {
	path, err := c.api.URL("/customers/%s/beneficial-ownership", customerID)
	if err != nil {
		return nil, err
	}

	ownership, err := Get[dwolla.BeneficialOwnership](ctx, c.api, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting beneficial ownership: %w", err)
	}

	return ownership, nil
}

// CertifyOwnership implements dwolla.BeneficialOwnersClient.CertifyOwnership.
func (c *BeneficialOwnersClient) CertifyOwnership(ctx context.Context, customerID string) (*dwolla.BeneficialOwnership, error) {
	path, err := c.api.URL("/customers/%s/beneficial-ownership", customerID)
	if err != nil {
		return nil, err
	}

	body := map[string]string{"status": string(dwolla.BeneficialOwnershipStatusCertified)}

	ownership, err := Post[dwolla.BeneficialOwnership](ctx, c.api, path, body)
	if err != nil {
		return nil, fmt.Errorf("certifying beneficial ownership: %w", err)
	}

	return ownership, nil
}
