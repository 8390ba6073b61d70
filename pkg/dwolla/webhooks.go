package dwolla

import "time"

// WebhookSubscription is a URL registered to receive event notifications.
type WebhookSubscription struct {
	ID      string    `json:"id"               yaml:"id"`
	URL     string    `json:"url"              yaml:"url"`
	Paused  bool      `json:"paused"           yaml:"paused"`
	Created time.Time `json:"created"          yaml:"created"`
	Links   Links     `json:"_links,omitempty" yaml:"links,omitempty"`
}

// WebhookSubscriptionList is the list of webhook subscriptions of the application.
type WebhookSubscriptionList = HALList[WebhookSubscription]

// CreateWebhookSubscriptionRequest is the body of POST /webhook-subscriptions.
type CreateWebhookSubscriptionRequest struct {
	URL    string `json:"url"    validate:"required,url"`
	Secret string `json:"secret" validate:"required,max=128"`
}
