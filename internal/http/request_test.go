package http_test

import (
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	dwollahttp "github.com/fivetwenty-io/dwolla-client/internal/http"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaders(t *testing.T) {
	t.Parallel()

	headers := dwollahttp.NewHeaders("X-Trace", "a", "Idempotency-Key", "k")
	headers.Add("x-trace", "b")

	assert.Equal(t, "a", headers.Get("X-TRACE"))
	assert.Equal(t, []string{"a", "b"}, headers.Values("x-Trace"))
	assert.True(t, headers.Has("idempotency-key"))
	assert.False(t, headers.Has("Authorization"))
	assert.Equal(t, 3, headers.Len())

	var names []string

	headers.Each(func(name, _ string) {
		names = append(names, name)
	})
	assert.Equal(t, []string{"X-Trace", "Idempotency-Key", "x-trace"}, names)

	clone := headers.Clone()
	clone.Add("X-Other", "c")
	assert.Equal(t, 3, headers.Len())
	assert.Equal(t, 4, clone.Len())
}

func TestFormBody_Encode(t *testing.T) {
	t.Parallel()

	body := dwollahttp.FormBody{Fields: []dwollahttp.FormField{
		{Name: "grant_type", Value: "client_credentials"},
		{Name: "client_secret", Value: "a&b=c"},
	}}

	encoded, err := body.Encode()
	require.NoError(t, err)
	assert.Equal(t, "grant_type=client_credentials&client_secret=a%26b%3Dc", string(encoded))
}

func TestRequest_WithBearer(t *testing.T) {
	t.Parallel()

	original := dwollahttp.NewRequest("GET", "https://api-sandbox.dwolla.com/", dwollahttp.NewHeaders("X-A", "1"))
	authorized := original.WithBearer("token")

	assert.Empty(t, original.BearerToken)
	assert.Equal(t, "token", authorized.BearerToken)
	assert.Equal(t, "1", authorized.Headers.Get("X-A"))
}

func TestJoinURLAndQuery(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://api.dwolla.com/customers", dwollahttp.JoinURL("https://api.dwolla.com/", "/customers"))
	assert.Equal(t, "https://api.dwolla.com/token", dwollahttp.JoinURL("https://api.dwolla.com", "token"))
	assert.Equal(t, "https://x/a", dwollahttp.WithQuery("https://x/a", nil))
	assert.Equal(t, "https://x/a?removed=false", dwollahttp.WithQuery("https://x/a", map[string][]string{"removed": {"false"}}))
}

func TestMultipartBody(t *testing.T) {
	t.Parallel()

	request := dwollahttp.NewUploadRequest("https://api-sandbox.dwolla.com/customers/c/documents", &dwolla.UploadDocumentRequest{
		DocumentType: dwolla.DocumentTypePassport,
		Document: dwolla.File{
			Filename:    "passport.png",
			ContentType: "image/png",
			Content:     strings.NewReader("PNGDATA"),
		},
	}, dwollahttp.Headers{})

	assert.Equal(t, `multipart/form-data; boundary="----------Upload"`, request.Body.ContentType())

	encoded, err := request.Body.Encode()
	require.NoError(t, err)

	again, err := request.Body.Encode()
	require.NoError(t, err)
	assert.Equal(t, encoded, again)

	_, params, err := mime.ParseMediaType(request.Body.ContentType())
	require.NoError(t, err)
	assert.Equal(t, "----------Upload", params["boundary"])

	reader := multipart.NewReader(strings.NewReader(string(encoded)), params["boundary"])

	part, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "documentType", part.FormName())

	value, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, "passport", string(value))

	part, err = reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "file", part.FormName())
	assert.Equal(t, "passport.png", part.FileName())
	assert.Equal(t, "image/png", part.Header.Get("Content-Type"))

	content, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, "PNGDATA", string(content))

	_, err = reader.NextPart()
	assert.ErrorIs(t, err, io.EOF)
}

func TestMultipartBody_RequiresContent(t *testing.T) {
	t.Parallel()

	body := &dwollahttp.MultipartBody{File: dwolla.File{Filename: "x.png", ContentType: "image/png"}}

	_, err := body.Encode()
	require.ErrorIs(t, err, dwolla.ErrFileRequired)
}

func TestMultipartBody_EscapesFilename(t *testing.T) {
	t.Parallel()

	body := &dwollahttp.MultipartBody{File: dwolla.File{
		Filename:    `my "scan"\1.png`,
		ContentType: "image/png",
		Content:     strings.NewReader("PNGDATA"),
	}}

	encoded, err := body.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `filename="my \"scan\"\\1.png"`)

	reader := multipart.NewReader(strings.NewReader(string(encoded)), "----------Upload")

	part, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "file", part.FormName())
	assert.Equal(t, `my "scan"\1.png`, part.FileName())
}
