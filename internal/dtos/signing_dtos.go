package dtos

// Wire format of the public signing API. Field names are fixed by the
// signing front-end, hence camelCase rather than the snake_case used on
// the dashboard surface.

type SigningSessionResponse struct {
	LeaseID        string `json:"leaseId"`
	Role           string `json:"role"`
	RecipientName  string `json:"recipientName"`
	RecipientEmail string `json:"recipientEmail"`
	LeaseHTML      string `json:"leaseHtml"`
}

type SubmitSignatureRequest struct {
	SignatureDataURL string `json:"signatureDataUrl" validate:"required"`
	SignerName       string `json:"signerName" validate:"required"`
	SignerEmail      string `json:"signerEmail" validate:"required,email"`
	Consent          bool   `json:"consent"`
}

type SubmitSignatureResponse struct {
	SignedPdfURL string `json:"signedPdfUrl"`
	AuditLogURL  string `json:"auditLogUrl"`
	DocumentHash string `json:"documentHash"`
}
