package dwolla

import "time"

// Event records a state change of a resource.
type Event struct {
	ID         string    `json:"id"               yaml:"id"`
	Created    time.Time `json:"created"          yaml:"created"`
	Topic      string    `json:"topic"            yaml:"topic"`
	ResourceID string    `json:"resourceId"       yaml:"resourceId"`
	Links      Links     `json:"_links,omitempty" yaml:"links,omitempty"`
}

// EventList is a page of events.
type EventList = HALList[Event]
