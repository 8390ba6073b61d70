package http_test

import (
	"net/http"
	"net/url"
	"testing"

	dwollahttp "github.com/fivetwenty-io/dwolla-client/internal/http"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawResponse(t *testing.T, status int, body string, headers ...string) *dwollahttp.RawResponse {
	t.Helper()

	requestURL, err := url.Parse("https://api-sandbox.dwolla.com/customers")
	require.NoError(t, err)

	header := http.Header{}
	for i := 0; i+1 < len(headers); i += 2 {
		header.Add(headers[i], headers[i+1])
	}

	return &dwollahttp.RawResponse{
		StatusCode: status,
		Header:     header,
		Body:       []byte(body),
		Method:     http.MethodGet,
		URL:        requestURL,
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("success decodes payload", func(t *testing.T) {
		t.Parallel()

		raw := rawResponse(t, http.StatusOK, `{"id":"c1","firstName":"Jane","unknown":"ignored"}`, "X-Request-Id", "r-1")

		response, err := dwollahttp.Classify[dwolla.Customer](raw)
		require.NoError(t, err)
		assert.Equal(t, "c1", response.Content.ID)
		assert.Equal(t, "Jane", response.Content.FirstName)
		assert.Equal(t, "r-1", response.Meta.RequestID)
		assert.Equal(t, http.StatusOK, response.Meta.StatusCode)
		assert.Equal(t, raw.Body, response.RawContent)
	})

	t.Run("error envelope", func(t *testing.T) {
		t.Parallel()

		raw := rawResponse(t, http.StatusBadRequest, `{
			"code": "ValidationError",
			"message": "Validation error(s) present. See embedded errors list for more details.",
			"_embedded": {"errors": [{"code": "Required", "message": "FirstName required.", "path": "/firstName"}]}
		}`, "X-Request-Id", "r-2")

		_, err := dwollahttp.Classify[dwolla.Customer](raw)
		require.Error(t, err)

		var apiErr *dwolla.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "ValidationError", apiErr.Code)
		require.Len(t, apiErr.Embedded, 1)
		assert.Equal(t, "/firstName", apiErr.Embedded[0].Path)
		assert.Equal(t, "r-2", apiErr.Meta.RequestID)
		assert.Equal(t, http.StatusBadRequest, apiErr.Meta.StatusCode)
	})

	t.Run("expired token envelope", func(t *testing.T) {
		t.Parallel()

		raw := rawResponse(t, http.StatusUnauthorized, `{"code":"ExpiredAccessToken","message":"Access token is expired."}`)

		_, err := dwollahttp.Classify[dwolla.Customer](raw)
		assert.True(t, dwolla.IsExpiredToken(err))
	})

	t.Run("code-only envelope on a success status", func(t *testing.T) {
		t.Parallel()

		raw := rawResponse(t, http.StatusOK, `{"code":"ExpiredAccessToken"}`)

		response, err := dwollahttp.Classify[dwolla.Customer](raw)
		require.Error(t, err)
		assert.Nil(t, response)
		assert.True(t, dwolla.IsExpiredToken(err))

		var apiErr *dwolla.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Empty(t, apiErr.Message)
		assert.Equal(t, http.StatusOK, apiErr.Meta.StatusCode)
	})

	t.Run("oauth error shape", func(t *testing.T) {
		t.Parallel()

		raw := rawResponse(t, http.StatusUnauthorized, `{"error":"invalid_client","error_description":"Invalid client credentials."}`)

		_, err := dwollahttp.Classify[dwolla.Customer](raw)

		var apiErr *dwolla.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "invalid_client", apiErr.Code)
		assert.Equal(t, "Invalid client credentials.", apiErr.Message)
	})

	t.Run("error status without envelope", func(t *testing.T) {
		t.Parallel()

		raw := rawResponse(t, http.StatusBadGateway, `<html>bad gateway</html>`)

		_, err := dwollahttp.Classify[dwolla.Customer](raw)

		var apiErr *dwolla.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, dwolla.ErrorCodeUnexpectedStatus, apiErr.Code)
		assert.Contains(t, apiErr.Message, "Bad Gateway")
	})

	t.Run("empty body with location", func(t *testing.T) {
		t.Parallel()

		raw := rawResponse(t, http.StatusCreated, "", "Location", "https://api-sandbox.dwolla.com/customers/fc451a7a-ae30-4404-ab95-e3553fcd733f")

		response, err := dwollahttp.Classify[struct{}](raw)
		require.NoError(t, err)
		require.NotNil(t, response.Meta.Location)

		id, err := dwolla.ParseID(response.Meta.Location)
		require.NoError(t, err)
		assert.Equal(t, "fc451a7a-ae30-4404-ab95-e3553fcd733f", id)
	})

	t.Run("relative location resolves against request url", func(t *testing.T) {
		t.Parallel()

		raw := rawResponse(t, http.StatusCreated, "", "Location", "/customers/abc")

		response, err := dwollahttp.Classify[struct{}](raw)
		require.NoError(t, err)
		assert.Equal(t, "https://api-sandbox.dwolla.com/customers/abc", response.Meta.Location.String())
	})

	t.Run("undecodable success body", func(t *testing.T) {
		t.Parallel()

		raw := rawResponse(t, http.StatusOK, `{"id": 42`)

		_, err := dwollahttp.Classify[dwolla.Customer](raw)
		require.Error(t, err)
		assert.True(t, dwolla.IsTransportError(err))
	})

	t.Run("success body with its own code field", func(t *testing.T) {
		t.Parallel()

		raw := rawResponse(t, http.StatusOK, `{
			"_links": {"self": {"href": "https://api-sandbox.dwolla.com/transfers/1/failure"}},
			"code": "R01",
			"description": "Insufficient Funds"
		}`)

		response, err := dwollahttp.Classify[dwolla.TransferFailure](raw)
		require.NoError(t, err)
		assert.Equal(t, "R01", response.Content.Code)
	})
}
