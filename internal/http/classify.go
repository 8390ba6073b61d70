package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/dwolla-client/internal/constants"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
)

// errorEnvelope covers both the resource error shape ({code, message,
// _embedded.errors}) and the OAuth shape ({error, error_description}) returned
// by the token endpoint.
type errorEnvelope struct {
	Code             string          `json:"code"`
	Message          string          `json:"message"`
	Error            string          `json:"error"`
	ErrorDescription string          `json:"error_description"`
	Links            json.RawMessage `json:"_links"`
	Embedded         struct {
		Errors []dwolla.EmbeddedError `json:"errors"`
	} `json:"_embedded"`
}

// isError reports whether the envelope describes a failure. The status is not
// authoritative: a 2xx body with a "code" is an error unless it also carries
// "_links", which every resource representation (a transfer failure, for one)
// does.
func (e *errorEnvelope) isError(status int) bool {
	if e.Code == "" && e.Error == "" {
		return false
	}

	if status >= constants.HTTPStatusBadRequest {
		return true
	}

	return e.Error != "" || len(e.Links) == 0
}

// Classify turns a raw response into either a typed payload or an error:
//
//   - a body shaped like an error envelope yields *dwolla.APIError;
//   - a status >= 400 without a recognisable envelope yields *dwolla.APIError
//     with code UnexpectedStatus;
//   - an empty success body yields the zero value of T, with the Location
//     header exposed in the metadata;
//   - a success body that cannot be decoded into T yields *dwolla.TransportError.
func Classify[T any](raw *RawResponse) (*dwolla.Response[T], error) {
	meta := Meta(raw)
	body := bytes.TrimSpace(raw.Body)

	if apiErr := parseErrorEnvelope(body, raw.StatusCode, meta); apiErr != nil {
		return nil, apiErr
	}

	if raw.StatusCode >= constants.HTTPStatusBadRequest {
		return nil, &dwolla.APIError{
			Code:    dwolla.ErrorCodeUnexpectedStatus,
			Message: unexpectedStatusMessage(raw.StatusCode, body),
			Meta:    meta,
		}
	}

	response := &dwolla.Response[T]{Meta: meta, RawContent: raw.Body}

	if len(body) == 0 {
		return response, nil
	}

	err := json.Unmarshal(body, &response.Content)
	if err != nil {
		return nil, &dwolla.TransportError{Message: "decoding response: " + err.Error(), Err: err}
	}

	return response, nil
}

// Meta extracts the response metadata.
func Meta(raw *RawResponse) dwolla.ResponseMeta {
	meta := dwolla.ResponseMeta{
		StatusCode: raw.StatusCode,
		Header:     raw.Header,
		RequestID:  raw.Header.Get(constants.HeaderRequestID),
		Method:     raw.Method,
		URL:        raw.URL,
	}

	if location := raw.Header.Get("Location"); location != "" {
		parsed, err := url.Parse(location)
		if err == nil {
			if raw.URL != nil {
				parsed = raw.URL.ResolveReference(parsed)
			}

			meta.Location = parsed
		}
	}

	return meta
}

func parseErrorEnvelope(body []byte, status int, meta dwolla.ResponseMeta) *dwolla.APIError {
	if len(body) == 0 || body[0] != '{' {
		return nil
	}

	var envelope errorEnvelope

	err := json.Unmarshal(body, &envelope)
	if err != nil || !envelope.isError(status) {
		return nil
	}

	switch {
	case envelope.Code != "":
		return &dwolla.APIError{
			Code:     envelope.Code,
			Message:  envelope.Message,
			Embedded: envelope.Embedded.Errors,
			Meta:     meta,
		}
	case envelope.Error != "":
		return &dwolla.APIError{
			Code:    envelope.Error,
			Message: envelope.ErrorDescription,
			Meta:    meta,
		}
	default:
		return nil
	}
}

func unexpectedStatusMessage(status int, body []byte) string {
	message := http.StatusText(status)
	if len(body) == 0 {
		return message
	}

	if len(body) > constants.MaxErrorBodyLength {
		body = body[:constants.MaxErrorBodyLength]
	}

	return message + ": " + string(body)
}
