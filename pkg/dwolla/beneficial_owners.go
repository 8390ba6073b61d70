package dwolla

import "time"

// BeneficialOwnershipStatus is the certification status of a business customer's owners.
type BeneficialOwnershipStatus string

// Beneficial ownership statuses.
const (
	BeneficialOwnershipStatusUncertified BeneficialOwnershipStatus = "uncertified"
	BeneficialOwnershipStatusRecertify   BeneficialOwnershipStatus = "recertify"
	BeneficialOwnershipStatusCertified   BeneficialOwnershipStatus = "certified"
)

// BeneficialOwner represents a person owning 25% or more of a business customer.
type BeneficialOwner struct {
	ID                 string    `json:"id"                           yaml:"id"`
	FirstName          string    `json:"firstName"                    yaml:"firstName"`
	LastName           string    `json:"lastName"                     yaml:"lastName"`
	Address            *Address  `json:"address,omitempty"            yaml:"address,omitempty"`
	VerificationStatus string    `json:"verificationStatus,omitempty" yaml:"verificationStatus,omitempty"`
	Created            time.Time `json:"created"                      yaml:"created"`
	Links              Links     `json:"_links,omitempty"             yaml:"links,omitempty"`
}

// BeneficialOwnerList is the list of beneficial owners of a customer.
type BeneficialOwnerList = HALList[BeneficialOwner]

// CreateBeneficialOwnerRequest is the body of POST /customers/{id}/beneficial-owners.
type CreateBeneficialOwnerRequest struct {
	FirstName   string    `json:"firstName"          validate:"required"`
	LastName    string    `json:"lastName"           validate:"required"`
	SSN         string    `json:"ssn,omitempty"`
	DateOfBirth Date      `json:"dateOfBirth"`
	Address     Address   `json:"address"`
	Passport    *Passport `json:"passport,omitempty"`
}

// BeneficialOwnership is the certification state of a customer's beneficial owners.
type BeneficialOwnership struct {
	Status BeneficialOwnershipStatus `json:"status"           yaml:"status"`
	Links  Links                     `json:"_links,omitempty" yaml:"links,omitempty"`
}
