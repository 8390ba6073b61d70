package dwolla

import (
	"io"
	"time"
)

// DocumentType is the kind of identity document being uploaded.
type DocumentType string

// Document types accepted by the upload endpoint.
const (
	DocumentTypeIDCard   DocumentType = "idCard"
	DocumentTypePassport DocumentType = "passport"
	DocumentTypeLicense  DocumentType = "license"
	DocumentTypeOther    DocumentType = "other"
)

// DocumentStatus is the review status of an uploaded document.
type DocumentStatus string

// Document statuses.
const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusReviewed DocumentStatus = "reviewed"
)

// Document represents an identity document uploaded for a customer or beneficial owner.
type Document struct {
	ID                string          `json:"id"                          yaml:"id"`
	Status            DocumentStatus  `json:"status"                      yaml:"status"`
	Type              DocumentType    `json:"type"                        yaml:"type"`
	Created           time.Time       `json:"created"                     yaml:"created"`
	FailureReason     string          `json:"failureReason,omitempty"     yaml:"failureReason,omitempty"`
	AllFailureReasons []FailureReason `json:"allFailureReasons,omitempty" yaml:"allFailureReasons,omitempty"`
	Links             Links           `json:"_links,omitempty"            yaml:"links,omitempty"`
}

// FailureReason is one reason a document was rejected.
type FailureReason struct {
	Reason      string `json:"reason"      yaml:"reason"`
	Description string `json:"description" yaml:"description"`
}

// DocumentList is a page of documents.
type DocumentList = HALList[Document]

// File is the content of an upload.
type File struct {
	Filename    string    `validate:"required"`
	ContentType string    `validate:"required"`
	Content     io.Reader `validate:"required"`
}

// UploadDocumentRequest is the multipart body of a document upload.
type UploadDocumentRequest struct {
	DocumentType DocumentType `validate:"required,oneof=idCard passport license other"`
	Document     File
}
