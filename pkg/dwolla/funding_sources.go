package dwolla

import "time"

// BankAccountType is the kind of bank account behind a funding source.
type BankAccountType string

// Bank account types.
const (
	BankAccountTypeChecking      BankAccountType = "checking"
	BankAccountTypeSavings       BankAccountType = "savings"
	BankAccountTypeGeneralLedger BankAccountType = "general-ledger"
	BankAccountTypeLoan          BankAccountType = "loan"
)

// FundingSource represents a bank account or Dwolla balance.
type FundingSource struct {
	ID                string             `json:"id"                          yaml:"id"`
	Status            string             `json:"status"                      yaml:"status"`
	Type              string             `json:"type"                        yaml:"type"`
	BankAccountType   BankAccountType    `json:"bankAccountType,omitempty"   yaml:"bankAccountType,omitempty"`
	Name              string             `json:"name"                        yaml:"name"`
	Created           time.Time          `json:"created"                     yaml:"created"`
	Removed           bool               `json:"removed"                     yaml:"removed"`
	Channels          []string           `json:"channels,omitempty"          yaml:"channels,omitempty"`
	BankName          string             `json:"bankName,omitempty"          yaml:"bankName,omitempty"`
	IavAccountHolders *IavAccountHolders `json:"iavAccountHolders,omitempty" yaml:"iavAccountHolders,omitempty"`
	Fingerprint       string             `json:"fingerprint,omitempty"       yaml:"fingerprint,omitempty"`
	Links             Links              `json:"_links,omitempty"            yaml:"links,omitempty"`
}

// IsBalance reports whether the funding source is a Dwolla balance.
func (f *FundingSource) IsBalance() bool {
	return f.Type == "balance"
}

// IavAccountHolders lists the account holder names returned by instant account verification.
type IavAccountHolders struct {
	Selected string   `json:"selected,omitempty" yaml:"selected,omitempty"`
	Other    []string `json:"other,omitempty"    yaml:"other,omitempty"`
}

// FundingSourceList is a page of funding sources.
type FundingSourceList = HALList[FundingSource]

// Balance is the response of GET /funding-sources/{id}/balance.
type Balance struct {
	Balance     *Money    `json:"balance,omitempty"     yaml:"balance,omitempty"`
	Total       *Money    `json:"total,omitempty"       yaml:"total,omitempty"`
	Status      string    `json:"status,omitempty"      yaml:"status,omitempty"`
	LastUpdated time.Time `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
	Links       Links     `json:"_links,omitempty"      yaml:"links,omitempty"`
}

// CreateFundingSourceRequest is the body of POST /customers/{id}/funding-sources.
type CreateFundingSourceRequest struct {
	RoutingNumber   string          `json:"routingNumber,omitempty"   validate:"omitempty,len=9,numeric"`
	AccountNumber   string          `json:"accountNumber,omitempty"   validate:"omitempty,numeric"`
	BankAccountType BankAccountType `json:"bankAccountType,omitempty" validate:"omitempty,oneof=checking savings general-ledger loan"`
	Name            string          `json:"name"                      validate:"required"`
	PlaidToken      string          `json:"plaidToken,omitempty"`
	Channels        []string        `json:"channels,omitempty"`
	Links           Links           `json:"_links,omitempty"`
}

// MicroDeposits is the response of GET /funding-sources/{id}/micro-deposits.
type MicroDeposits struct {
	Created time.Time            `json:"created"           yaml:"created"`
	Status  string               `json:"status"            yaml:"status"`
	Failure *MicroDepositFailure `json:"failure,omitempty" yaml:"failure,omitempty"`
	Links   Links                `json:"_links,omitempty"  yaml:"links,omitempty"`
}

// MicroDepositFailure explains why micro-deposits could not be sent.
type MicroDepositFailure struct {
	Code        string `json:"code"        yaml:"code"`
	Description string `json:"description" yaml:"description"`
}

// VerifyMicroDepositsRequest is the body used to verify the two micro-deposit amounts.
type VerifyMicroDepositsRequest struct {
	Amount1 Money `json:"amount1"`
	Amount2 Money `json:"amount2"`
}
