package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
)

// TransfersClient implements dwolla.TransfersClient.
type TransfersClient struct {
	api *API
}

// NewTransfersClient creates a new transfers client.
func NewTransfersClient(api *API) *TransfersClient {
	return &TransfersClient{api: api}
}

type transferFeeBody struct {
	Links  dwolla.Links `json:"_links"`
	Amount dwolla.Money `json:"amount"`
}

// transferBody is the wire form of dwolla.CreateTransferRequest.
type transferBody struct {
	Links         dwolla.Links       `json:"_links"`
	Amount        dwolla.Money       `json:"amount"`
	Fees          []transferFeeBody  `json:"fees,omitempty"`
	Metadata      map[string]string  `json:"metadata,omitempty"`
	Clearing      *dwolla.Clearing   `json:"clearing,omitempty"`
	ACHDetails    *dwolla.ACHDetails `json:"achDetails,omitempty"`
	CorrelationID string             `json:"correlationId,omitempty"`
}

// newTransferBody links the funding sources and fee payers of request as
// absolute resource URLs under the API base URL.
func (c *TransfersClient) newTransferBody(request *dwolla.CreateTransferRequest) (*transferBody, error) {
	source, err := c.api.URL("/funding-sources/%s", request.SourceFundingSourceID)
	if err != nil {
		return nil, err
	}

	destination, err := c.api.URL("/funding-sources/%s", request.DestinationFundingSourceID)
	if err != nil {
		return nil, err
	}

	body := &transferBody{
		Links: dwolla.Links{
			"source":      {Href: source},
			"destination": {Href: destination},
		},
		Amount:        request.Amount,
		Metadata:      request.Metadata,
		Clearing:      request.Clearing,
		ACHDetails:    request.ACHDetails,
		CorrelationID: request.CorrelationID,
	}

	for _, fee := range request.Fees {
		chargeTo, err := c.api.URL("/customers/%s", fee.ChargeTo)
		if err != nil {
			return nil, err
		}

		body.Fees = append(body.Fees, transferFeeBody{
			Links:  dwolla.Links{"charge-to": {Href: chargeTo}},
			Amount: fee.Amount,
		})
	}

	return body, nil
}

// Get implements dwolla.TransfersClient.Get.
func (c *TransfersClient) Get(ctx context.Context, id string) (*dwolla.Transfer, error) {
	path, err := c.api.URL("/transfers/%s", id)
	if err != nil {
		return nil, err
	}

	transfer, err := Get[dwolla.Transfer](ctx, c.api, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting transfer: %w", err)
	}

	return transfer, nil
}

// GetFailure implements dwolla.TransfersClient.GetFailure.
func (c *TransfersClient) GetFailure(ctx context.Context, id string) (*dwolla.TransferFailure, error) {
	path, err := c.api.URL("/transfers/%s/failure", id)
	if err != nil {
		return nil, err
	}

	failure, err := Get[dwolla.TransferFailure](ctx, c.api, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting transfer failure: %w", err)
	}

	return failure, nil
}

// Create implements dwolla.TransfersClient.Create.
func (c *TransfersClient) Create(ctx context.Context, request *dwolla.CreateTransferRequest) (*url.URL, error) {
	err := checkRequest(request)
	if err != nil {
		return nil, err
	}

	body, err := c.newTransferBody(request)
	if err != nil {
		return nil, err
	}

	location, err := Create(ctx, c.api, c.api.BaseURL()+"/transfers", body)
	if err != nil {
		return nil, fmt.Errorf("creating transfer: %w", err)
	}

	return location, nil
}

// Cancel implements dwolla.TransfersClient.Cancel.
func (c *TransfersClient) Cancel(ctx context.Context, id string) (*dwolla.Transfer, error) {
	path, err := c.api.URL("/transfers/%s", id)
	if err != nil {
		return nil, err
	}

	transfer, err := Post[dwolla.Transfer](ctx, c.api, path, map[string]string{"status": string(dwolla.TransferStatusCancelled)})
	if err != nil {
		return nil, fmt.Errorf("cancelling transfer: %w", err)
	}

	return transfer, nil
}

// ListForCustomer implements dwolla.TransfersClient.ListForCustomer.
func (c *TransfersClient) ListForCustomer(ctx context.Context, customerID string, params *dwolla.TransferListParams) (*dwolla.TransferList, error) {
	path, err := c.api.URL("/customers/%s/transfers", customerID)
	if err != nil {
		return nil, err
	}

	list, err := Get[dwolla.TransferList](ctx, c.api, path, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing transfers: %w", err)
	}

	return list, nil
}
