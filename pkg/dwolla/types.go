package dwolla

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Links represents the HAL _links object of a resource.
type Links map[string]Link

// Link represents a single HAL link.
type Link struct {
	Href         string `json:"href"                    yaml:"href"`
	Type         string `json:"type,omitempty"          yaml:"type,omitempty"`
	ResourceType string `json:"resource-type,omitempty" yaml:"resource_type,omitempty"`
}

// ID returns the identifier in the last path segment of the link.
func (l Link) ID() (string, error) {
	if l.Href == "" {
		return "", fmt.Errorf("empty link: %w", ErrInvalidResourceID)
	}

	parsed, err := url.Parse(l.Href)
	if err != nil {
		return "", fmt.Errorf("parsing link %q: %w", l.Href, err)
	}

	return ParseID(parsed)
}

// Has reports whether a relation is present.
func (l Links) Has(rel string) bool {
	_, ok := l[rel]

	return ok
}

// ParseID extracts the UUID in the last path segment of a resource location,
// such as the Location header returned by create calls.
func ParseID(location *url.URL) (string, error) {
	if location == nil {
		return "", ErrNoLocation
	}

	segment := path.Base(strings.TrimSuffix(location.Path, "/"))

	id, err := uuid.Parse(segment)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidResourceID, segment, err)
	}

	return id.String(), nil
}

// HALList is a HAL collection: the items live under a single _embedded key
// whose name depends on the resource ("customers", "funding-sources", ...).
type HALList[T any] struct {
	Links    Links          `json:"_links,omitempty"   yaml:"links,omitempty"`
	Embedded map[string][]T `json:"_embedded,omitempty" yaml:"embedded,omitempty"`
	Total    int            `json:"total,omitempty"    yaml:"total,omitempty"`
}

// Items returns the embedded items.
func (l *HALList[T]) Items() []T {
	if l == nil || len(l.Embedded) == 0 {
		return nil
	}

	if len(l.Embedded) == 1 {
		for _, items := range l.Embedded {
			return items
		}
	}

	keys := make([]string, 0, len(l.Embedded))
	for key := range l.Embedded {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	var items []T
	for _, key := range keys {
		items = append(items, l.Embedded[key]...)
	}

	return items
}

// Money is an amount in a currency. Value is a decimal string such as "10.00".
type Money struct {
	Value    string `json:"value"    yaml:"value"    validate:"required,numeric"`
	Currency string `json:"currency" yaml:"currency" validate:"required,len=3"`
}

// USD returns an amount in US dollars.
func USD(value string) Money {
	return Money{Value: value, Currency: "USD"}
}

// String formats the amount as "10.00 USD".
func (m Money) String() string {
	return m.Value + " " + m.Currency
}

// Address is a postal address as used by beneficial owners and controllers.
type Address struct {
	Address1            string `json:"address1"                      yaml:"address1"                      validate:"required"`
	Address2            string `json:"address2,omitempty"            yaml:"address2,omitempty"`
	Address3            string `json:"address3,omitempty"            yaml:"address3,omitempty"`
	City                string `json:"city"                          yaml:"city"                          validate:"required"`
	StateProvinceRegion string `json:"stateProvinceRegion,omitempty" yaml:"stateProvinceRegion,omitempty"`
	PostalCode          string `json:"postalCode,omitempty"          yaml:"postalCode,omitempty"`
	Country             string `json:"country"                       yaml:"country"                       validate:"required,len=2"`
}

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate returns the date of the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(d.Format(dateLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("parsing date: %w", err)
	}

	if raw == "" {
		d.Time = time.Time{}

		return nil
	}

	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return fmt.Errorf("parsing date %q: %w", raw, err)
		}
	}

	d.Time = parsed

	return nil
}

// Root is the response of GET /, listing the links available to the
// authenticated application.
type Root struct {
	Links Links `json:"_links,omitempty" yaml:"links,omitempty"`
}

// ListParams are the paging parameters shared by list endpoints.
type ListParams struct {
	Limit  int
	Offset int
}

// ToValues converts the paging parameters to query values.
func (p *ListParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	if p.Limit > 0 {
		values.Set("limit", fmt.Sprint(p.Limit))
	}

	if p.Offset > 0 {
		values.Set("offset", fmt.Sprint(p.Offset))
	}

	return values
}
