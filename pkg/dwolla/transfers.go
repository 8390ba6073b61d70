package dwolla

import (
	"net/url"
	"time"
)

// TransferStatus is the processing status of a transfer.
type TransferStatus string

// Transfer statuses.
const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusProcessed TransferStatus = "processed"
	TransferStatusFailed    TransferStatus = "failed"
	TransferStatusCancelled TransferStatus = "cancelled"
)

// Transfer represents a movement of money between two funding sources.
type Transfer struct {
	ID              string            `json:"id"                      yaml:"id"`
	Status          TransferStatus    `json:"status"                  yaml:"status"`
	Amount          Money             `json:"amount"                  yaml:"amount"`
	Created         time.Time         `json:"created"                 yaml:"created"`
	Metadata        map[string]string `json:"metadata,omitempty"      yaml:"metadata,omitempty"`
	Clearing        *Clearing         `json:"clearing,omitempty"      yaml:"clearing,omitempty"`
	ACHDetails      *ACHDetails       `json:"achDetails,omitempty"    yaml:"achDetails,omitempty"`
	CorrelationID   string            `json:"correlationId,omitempty" yaml:"correlationId,omitempty"`
	IndividualACHID string            `json:"individualAchId,omitempty" yaml:"individualAchId,omitempty"`
	Links           Links             `json:"_links,omitempty"        yaml:"links,omitempty"`
}

// Cancellable reports whether the API offers the cancel relation for this transfer.
func (t *Transfer) Cancellable() bool {
	return t.Links.Has("cancel")
}

// TransferList is a page of transfers.
type TransferList = HALList[Transfer]

// Clearing selects expedited clearing for the source or destination side.
type Clearing struct {
	Source      string `json:"source,omitempty"      yaml:"source,omitempty"`
	Destination string `json:"destination,omitempty" yaml:"destination,omitempty"`
}

// ACHDetails carries addenda records for the source and destination ACH entries.
type ACHDetails struct {
	Source      *ACHDetail `json:"source,omitempty"      yaml:"source,omitempty"`
	Destination *ACHDetail `json:"destination,omitempty" yaml:"destination,omitempty"`
}

// ACHDetail is the addenda of one side of a transfer.
type ACHDetail struct {
	Addenda *Addenda `json:"addenda,omitempty" yaml:"addenda,omitempty"`
}

// Addenda holds free-form addenda values.
type Addenda struct {
	Values []string `json:"values" yaml:"values" validate:"max=1,dive,max=80"`
}

// TransferFee is a facilitator fee charged to a customer on top of a transfer.
type TransferFee struct {
	Amount Money
	// ChargeTo is the ID of the customer paying the fee.
	ChargeTo string `validate:"required,uuid"`
}

// CreateTransferRequest describes a transfer to initiate. The client turns the
// funding source IDs into the _links the API expects.
type CreateTransferRequest struct {
	SourceFundingSourceID      string            `validate:"required,uuid"`
	DestinationFundingSourceID string            `validate:"required,uuid"`
	Amount                     Money
	Fees                       []TransferFee     `validate:"dive"`
	Metadata                   map[string]string `validate:"max=10"`
	Clearing                   *Clearing
	ACHDetails                 *ACHDetails
	CorrelationID              string
}

// TransferFailure is the response of GET /transfers/{id}/failure.
type TransferFailure struct {
	Code        string    `json:"code"                  yaml:"code"`
	Description string    `json:"description"           yaml:"description"`
	Explanation string    `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	Created     time.Time `json:"created"               yaml:"created"`
	Links       Links     `json:"_links,omitempty"      yaml:"links,omitempty"`
}

// TransferListParams filters GET /customers/{id}/transfers.
type TransferListParams struct {
	ListParams

	Search        string
	StartDate     string
	EndDate       string
	Status        TransferStatus
	CorrelationID string
}

// ToValues converts the parameters to query values.
func (p *TransferListParams) ToValues() url.Values {
	if p == nil {
		return url.Values{}
	}

	values := p.ListParams.ToValues()

	if p.Search != "" {
		values.Set("search", p.Search)
	}

	if p.StartDate != "" {
		values.Set("startDate", p.StartDate)
	}

	if p.EndDate != "" {
		values.Set("endDate", p.EndDate)
	}

	if p.Status != "" {
		values.Set("status", string(p.Status))
	}

	if p.CorrelationID != "" {
		values.Set("correlationId", p.CorrelationID)
	}

	return values
}
