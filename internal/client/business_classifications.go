package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
)

// BusinessClassificationsClient implements dwolla.BusinessClassificationsClient.
type BusinessClassificationsClient struct {
	api *API
}

// NewBusinessClassificationsClient creates a new business classifications client.
func NewBusinessClassificationsClient(api *API) *BusinessClassificationsClient {
	return &BusinessClassificationsClient{api: api}
}

// List implements dwolla.BusinessClassificationsClient.List.
func (c *BusinessClassificationsClient) List(ctx context.Context) (*dwolla.BusinessClassificationList, error) {
	list, err := Get[dwolla.BusinessClassificationList](ctx, c.api, c.api.BaseURL()+"/business-classifications", nil)
	if err != nil {
		return nil, fmt.Errorf("listing business classifications: %w", err)
	}

	return list, nil
}

// Get implements dwolla.BusinessClassificationsClient.Get.
func (c *BusinessClassificationsClient) Get(ctx context.Context, id string) (*dwolla.BusinessClassification, error) {
	path, err := c.api.URL("/business-classifications/%s", id)
	if err != nil {
		return nil, err
	}

	classification, err := Get[dwolla.BusinessClassification](ctx, c.api, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting business classification: %w", err)
	}

	return classification, nil
}
