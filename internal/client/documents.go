package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
)

// DocumentsClient implements dwolla.DocumentsClient.
type DocumentsClient struct {
	api *API
}

// NewDocumentsClient creates a new documents client.
func NewDocumentsClient(api *API) *DocumentsClient {
	return &DocumentsClient{api: api}
}

// Get implements dwolla.DocumentsClient.Get.
func (c *DocumentsClient) Get(ctx context.Context, id string) (*dwolla.Document, error) {
	path, err := c.api.URL("/documents/%s", id)
	if err != nil {
		return nil, err
	}

	document, err := Get[dwolla.Document](ctx, c.api, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}

	return document, nil
}

// ListForCustomer implements dwolla.DocumentsClient.ListForCustomer.
func (c *DocumentsClient) ListForCustomer(ctx context.Context, customerID string) (*dwolla.DocumentList, error) {
	return c.list(ctx, "/customers/%s/documents", customerID)
}

// UploadForCustomer implements dwolla.DocumentsClient.UploadForCustomer.
func (c *DocumentsClient) UploadForCustomer(ctx context.Context, customerID string, request *dwolla.UploadDocumentRequest) (*url.URL, error) {
	return c.upload(ctx, "/customers/%s/documents", customerID, request)
}

// ListForBeneficialOwner implements dwolla.DocumentsClient.ListForBeneficialOwner.
func (c *DocumentsClient) ListForBeneficialOwner(ctx context.Context, ownerID string) (*dwolla.DocumentList, error) {
	return c.list(ctx, "/beneficial-owners/%s/documents", ownerID)
}

// UploadForBeneficialOwner implements dwolla.DocumentsClient.UploadForBeneficialOwner.
func (c *DocumentsClient) UploadForBeneficialOwner(ctx context.Context, ownerID string, request *dwolla.UploadDocumentRequest) (*url.URL, error) {
	return c.upload(ctx, "/beneficial-owners/%s/documents", ownerID, request)
}

func (c *DocumentsClient) list(ctx context.Context, pathFormat, ownerID string) (*dwolla.DocumentList, error) {
	path, err := c.api.URL(pathFormat, ownerID)
	if err != nil {
		return nil, err
	}

	list, err := Get[dwolla.DocumentList](ctx, c.api, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	return list, nil
}

func (c *DocumentsClient) upload(ctx context.Context, pathFormat, ownerID string, request *dwolla.UploadDocumentRequest) (*url.URL, error) {
	err := checkRequest(request)
	if err != nil {
		return nil, err
	}

	path, err := c.api.URL(pathFormat, ownerID)
	if err != nil {
		return nil, err
	}

	location, err := Upload(ctx, c.api, path, request)
	if err != nil {
		return nil, fmt.Errorf("uploading document: %w", err)
	}

	return location, nil
}
