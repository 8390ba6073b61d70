package dwolla

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"
)

// CustomerStatus is the verification status of a customer.
type CustomerStatus string

// Customer statuses.
const (
	CustomerStatusUnverified  CustomerStatus = "unverified"
	CustomerStatusRetry       CustomerStatus = "retry"
	CustomerStatusDocument    CustomerStatus = "document"
	CustomerStatusVerified    CustomerStatus = "verified"
	CustomerStatusSuspended   CustomerStatus = "suspended"
	CustomerStatusDeactivated CustomerStatus = "deactivated"
)

// CustomerType is the kind of customer record.
type CustomerType string

// Customer types.
const (
	CustomerTypeUnverified  CustomerType = "unverified"
	CustomerTypePersonal    CustomerType = "personal"
	CustomerTypeBusiness    CustomerType = "business"
	CustomerTypeReceiveOnly CustomerType = "receive-only"
)

// BusinessType is the legal structure of a business customer.
type BusinessType string

// Business types.
const (
	BusinessTypeSoleProprietorship BusinessType = "soleProprietorship"
	BusinessTypeCorporation        BusinessType = "corporation"
	BusinessTypeLLC                BusinessType = "llc"
	BusinessTypePartnership        BusinessType = "partnership"
)

// UpdateCustomerStatus is a status transition requested through an update.
type UpdateCustomerStatus string

// Status transitions accepted by the update endpoint.
const (
	UpdateCustomerStatusSuspended   UpdateCustomerStatus = "suspended"
	UpdateCustomerStatusDeactivated UpdateCustomerStatus = "deactivated"
	UpdateCustomerStatusReactivated UpdateCustomerStatus = "reactivated"
)

// Customer represents a Dwolla customer.
type Customer struct {
	ID                     string         `json:"id"                               yaml:"id"`
	FirstName              string         `json:"firstName"                        yaml:"firstName"`
	LastName               string         `json:"lastName"                         yaml:"lastName"`
	Email                  string         `json:"email"                            yaml:"email"`
	Type                   CustomerType   `json:"type"                             yaml:"type"`
	Status                 CustomerStatus `json:"status"                           yaml:"status"`
	Created                time.Time      `json:"created"                          yaml:"created"`
	Address1               string         `json:"address1,omitempty"               yaml:"address1,omitempty"`
	Address2               string         `json:"address2,omitempty"               yaml:"address2,omitempty"`
	City                   string         `json:"city,omitempty"                   yaml:"city,omitempty"`
	State                  string         `json:"state,omitempty"                  yaml:"state,omitempty"`
	PostalCode             string         `json:"postalCode,omitempty"             yaml:"postalCode,omitempty"`
	Phone                  string         `json:"phone,omitempty"                  yaml:"phone,omitempty"`
	BusinessName           string         `json:"businessName,omitempty"           yaml:"businessName,omitempty"`
	DoingBusinessAs        string         `json:"doingBusinessAs,omitempty"        yaml:"doingBusinessAs,omitempty"`
	Website                string         `json:"website,omitempty"                yaml:"website,omitempty"`
	BusinessType           BusinessType   `json:"businessType,omitempty"           yaml:"businessType,omitempty"`
	BusinessClassification string         `json:"businessClassification,omitempty" yaml:"businessClassification,omitempty"`
	Controller             *Controller    `json:"controller,omitempty"             yaml:"controller,omitempty"`
	Links                  Links          `json:"_links,omitempty"                 yaml:"links,omitempty"`
}

// Controller is the person with significant responsibility for a business customer.
type Controller struct {
	FirstName   string    `json:"firstName"             yaml:"firstName"             validate:"required"`
	LastName    string    `json:"lastName"              yaml:"lastName"              validate:"required"`
	Title       string    `json:"title"                 yaml:"title"                 validate:"required"`
	DateOfBirth Date      `json:"dateOfBirth"           yaml:"dateOfBirth"`
	SSN         string    `json:"ssn,omitempty"         yaml:"ssn,omitempty"`
	Address     *Address  `json:"address,omitempty"     yaml:"address,omitempty"`
	Passport    *Passport `json:"passport,omitempty"    yaml:"passport,omitempty"`
}

// Passport identifies a non-US controller or beneficial owner.
type Passport struct {
	Number  string `json:"number"  yaml:"number"  validate:"required"`
	Country string `json:"country" yaml:"country" validate:"required"`
}

// CustomerList is a page of customers.
type CustomerList = HALList[Customer]

// CreateCustomerRequest is the body of POST /customers.
type CreateCustomerRequest struct {
	FirstName              string       `json:"firstName"                        validate:"required"`
	LastName               string       `json:"lastName"                         validate:"required"`
	Email                  string       `json:"email"                            validate:"required,email"`
	Type                   CustomerType `json:"type,omitempty"`
	IPAddress              string       `json:"ipAddress,omitempty"              validate:"omitempty,ip"`
	Address1               string       `json:"address1,omitempty"`
	Address2               string       `json:"address2,omitempty"`
	City                   string       `json:"city,omitempty"`
	State                  string       `json:"state,omitempty"                  validate:"omitempty,len=2"`
	PostalCode             string       `json:"postalCode,omitempty"`
	DateOfBirth            *Date        `json:"dateOfBirth,omitempty"`
	SSN                    string       `json:"ssn,omitempty"`
	Phone                  string       `json:"phone,omitempty"`
	BusinessName           string       `json:"businessName,omitempty"`
	BusinessType           BusinessType `json:"businessType,omitempty"`
	BusinessClassification string       `json:"businessClassification,omitempty"`
	EIN                    string       `json:"ein,omitempty"`
	DoingBusinessAs        string       `json:"doingBusinessAs,omitempty"`
	Website                string       `json:"website,omitempty"`
	Controller             *Controller  `json:"controller,omitempty"`
	CorrelationID          string       `json:"correlationId,omitempty"`
}

// MarshalJSON writes the state code in upper case.
func (r CreateCustomerRequest) MarshalJSON() ([]byte, error) {
	type plain CreateCustomerRequest

	out := plain(r)
	out.State = strings.ToUpper(out.State)

	return json.Marshal(out)
}

// UpdateCustomerRequest is the body of POST /customers/{id}.
// Only the fields that are set are sent.
type UpdateCustomerRequest struct {
	FirstName       string               `json:"firstName,omitempty"`
	LastName        string               `json:"lastName,omitempty"`
	Email           string               `json:"email,omitempty"       validate:"omitempty,email"`
	Address1        string               `json:"address1,omitempty"`
	Address2        string               `json:"address2,omitempty"`
	City            string               `json:"city,omitempty"`
	State           string               `json:"state,omitempty"       validate:"omitempty,len=2"`
	PostalCode      string               `json:"postalCode,omitempty"`
	Phone           string               `json:"phone,omitempty"`
	DoingBusinessAs string               `json:"doingBusinessAs,omitempty"`
	Website         string               `json:"website,omitempty"`
	Status          UpdateCustomerStatus `json:"status,omitempty"      validate:"omitempty,oneof=suspended deactivated reactivated"`
}

// MarshalJSON writes the state code in upper case.
func (r UpdateCustomerRequest) MarshalJSON() ([]byte, error) {
	type plain UpdateCustomerRequest

	out := plain(r)
	out.State = strings.ToUpper(out.State)

	return json.Marshal(out)
}

// CustomerListParams filters GET /customers.
type CustomerListParams struct {
	ListParams

	Search string
	Email  string
	Status CustomerStatus
}

// ToValues converts the parameters to query values.
func (p *CustomerListParams) ToValues() url.Values {
	if p == nil {
		return url.Values{}
	}

	values := p.ListParams.ToValues()

	if p.Search != "" {
		values.Set("search", p.Search)
	}

	if p.Email != "" {
		values.Set("email", p.Email)
	}

	if p.Status != "" {
		values.Set("status", string(p.Status))
	}

	return values
}

// IavToken is a single-use token for the instant account verification flow.
type IavToken struct {
	Token string `json:"token"            yaml:"token"`
	Links Links  `json:"_links,omitempty" yaml:"links,omitempty"`
}
