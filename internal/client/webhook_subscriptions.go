package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
)

// WebhookSubscriptionsClient implements dwolla.WebhookSubscriptionsClient.
type WebhookSubscriptionsClient struct {
	api *API
}

// NewWebhookSubscriptionsClient creates a new webhook subscriptions client.
func NewWebhookSubscriptionsClient(api *API) *WebhookSubscriptionsClient {
	return &WebhookSubscriptionsClient{api: api}
}

// List implements dwolla.WebhookSubscriptionsClient.List.
func (c *WebhookSubscriptionsClient) List(ctx context.Context) (*dwolla.WebhookSubscriptionList, error) {
	list, err := Get[dwolla.WebhookSubscriptionList](ctx, c.api, c.api.BaseURL()+"/webhook-subscriptions", nil)
	if err != nil {
		return nil, fmt.Errorf("listing webhook subscriptions: %w", err)
	}

	return list, nil
}

// Get implements dwolla.WebhookSubscriptionsClient.Get.
func (c *WebhookSubscriptionsClient) Get(ctx context.Context, id string) (*dwolla.WebhookSubscription, error) {
	path, err := c.api.URL("/webhook-subscriptions/%s", id)
	if err != nil {
		return nil, err
	}

	subscription, err := Get[dwolla.WebhookSubscription](ctx, c.api, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting webhook subscription: %w", err)
	}

	return subscription, nil
}

// Create implements dwolla.WebhookSubscriptionsClient.Create.
func (c *WebhookSubscriptionsClient) Create(ctx context.Context, request *dwolla.CreateWebhookSubscriptionRequest) (*url.URL, error) {
	err := checkRequest(request)
	if err != nil {
		return nil, err
	}

	location, err := Create(ctx, c.api, c.api.BaseURL()+"/webhook-subscriptions", request)
	if err != nil {
		return nil, fmt.Errorf("creating webhook subscription: %w", err)
	}

	return location, nil
}

// Delete implements dwolla.WebhookSubscriptionsClient.Delete.
func (c *WebhookSubscriptionsClient) Delete(ctx context.Context, id string) (*dwolla.WebhookSubscription, error) {
	path, err := c.api.URL("/webhook-subscriptions/%s", id)
	if err != nil {
		return nil, err
	}

	subscription, err := Delete[dwolla.WebhookSubscription](ctx, c.api, path)
	if err != nil {
		return nil, fmt.Errorf("deleting webhook subscription: %w", err)
	}

	return subscription, nil
}
