package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
)

// EventsClient implements dwolla.EventsClient.
type EventsClient struct {
	api *API
}

// NewEventsClient creates a new events client.
func NewEventsClient(api *API) *EventsClient {
	return &EventsClient{api: api}
}

// List implements dwolla.EventsClient.List.
func (c *EventsClient) List(ctx context.Context, params *dwolla.ListParams) (*dwolla.EventList, error) {
	list, err := Get[dwolla.EventList](ctx, c.api, c.api.BaseURL()+"/events", params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	return list, nil
}

// Get implements dwolla.EventsClient.Get.
func (c *EventsClient) Get(ctx context.Context, id string) (*dwolla.Event, error) {
	path, err := c.api.URL("/events/%s", id)
	if err != nil {
		return nil, err
	}

	event, err := Get[dwolla.Event](ctx, c.api, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting event: %w", err)
	}

	return event, nil
}
