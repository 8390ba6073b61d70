package http

import (
	"net/http"
	"strings"
)

type header struct {
	name  string
	value string
}

// Headers is an ordered header multimap. Lookups ignore case, the original
// casing of each name is written to the wire and duplicate names are all sent
// in insertion order.
type Headers struct {
	entries []header
}

// NewHeaders returns headers initialized from name/value pairs.
func NewHeaders(pairs ...string) Headers {
	var headers Headers

	for i := 0; i+1 < len(pairs); i += 2 {
		headers.Add(pairs[i], pairs[i+1])
	}

	return headers
}

// Add appends a value.
func (h *Headers) Add(name, value string) {
	h.entries = append(h.entries, header{name: name, value: value})
}

// Get returns the first value for name, or "".
func (h Headers) Get(name string) string {
	for _, entry := range h.entries {
		if strings.EqualFold(entry.name, name) {
			return entry.value
		}
	}

	return ""
}

// Values returns every value for name in insertion order.
func (h Headers) Values(name string) []string {
	var values []string

	for _, entry := range h.entries {
		if strings.EqualFold(entry.name, name) {
			values = append(values, entry.value)
		}
	}

	return values
}

// Has reports whether name is present.
func (h Headers) Has(name string) bool {
	for _, entry := range h.entries {
		if strings.EqualFold(entry.name, name) {
			return true
		}
	}

	return false
}

// Len returns the number of entries.
func (h Headers) Len() int {
	return len(h.entries)
}

// Each calls fn for every entry in insertion order.
func (h Headers) Each(fn func(name, value string)) {
	for _, entry := range h.entries {
		fn(entry.name, entry.value)
	}
}

// Clone returns an independent copy.
func (h Headers) Clone() Headers {
	entries := make([]header, len(h.entries))
	copy(entries, h.entries)

	return Headers{entries: entries}
}

// Merge appends every entry of other.
func (h *Headers) Merge(other Headers) {
	h.entries = append(h.entries, other.entries...)
}

// writeTo appends the entries to an http.Header keeping the names verbatim.
func (h Headers) writeTo(target http.Header) {
	for _, entry := range h.entries {
		target[entry.name] = append(target[entry.name], entry.value)
	}
}
