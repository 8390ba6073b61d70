package http

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/fivetwenty-io/dwolla-client/internal/constants"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// MultipartBody is a multipart/form-data body made of text fields followed by
// one file part. The boundary is fixed so the Content-Type header is stable.
type MultipartBody struct {
	Fields []FormField
	File   dwolla.File

	encoded []byte
}

// ContentType implements Body.
func (b *MultipartBody) ContentType() string {
	return `multipart/form-data; boundary="` + constants.MultipartBoundary + `"`
}

// Encode implements Body. The file content is read on the first call and the
// encoded body is reused when the request is sent again.
func (b *MultipartBody) Encode() ([]byte, error) {
	if b.encoded != nil {
		return b.encoded, nil
	}

	if b.File.Content == nil {
		return nil, dwolla.ErrFileRequired
	}

	var buffer bytes.Buffer

	writer := multipart.NewWriter(&buffer)

	err := writer.SetBoundary(constants.MultipartBoundary)
	if err != nil {
		return nil, fmt.Errorf("setting multipart boundary: %w", err)
	}

	for _, field := range b.Fields {
		err = writer.WriteField(field.Name, field.Value)
		if err != nil {
			return nil, fmt.Errorf("writing field %s: %w", field.Name, err)
		}
	}

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(b.File.Filename)))
	partHeader.Set("Content-Type", b.File.ContentType)

	part, err := writer.CreatePart(partHeader)
	if err != nil {
		return nil, fmt.Errorf("creating file part: %w", err)
	}

	_, err = io.Copy(part, b.File.Content)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", b.File.Filename, err)
	}

	err = writer.Close()
	if err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	b.encoded = buffer.Bytes()

	return b.encoded, nil
}
