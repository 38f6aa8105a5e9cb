package documents

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/vegaswarrior/Property-Management-sub001/internal/utils"
)

// AuditMetadata is the signer identity captured at submission time and
// stamped into the document's audit block.
type AuditMetadata struct {
	LeaseID         string    `json:"lease_id"`
	Role            string    `json:"role"`
	SignerName      string    `json:"signer_name"`
	SignerEmail     string    `json:"signer_email"`
	SignerIP        string    `json:"signer_ip"`
	SignerUserAgent string    `json:"signer_user_agent"`
	SignedAt        time.Time `json:"signed_at"`
}

// SignedDocument is the output of a stamping pass: the final PDF, a JSON
// audit log, and the tamper-evidence hash of the document content.
type SignedDocument struct {
	PDF      []byte
	AuditLog []byte
	Hash     string
}

// Generator turns lease terms plus a captured signature into a signed
// PDF. It holds no state; one instance is constructed at boot and
// injected wherever stamping happens.
type Generator struct{}

func NewGenerator() *Generator { return &Generator{} }

// Generate renders the lease document, overlays the signature image and
// the audit block, and computes the tamper-evidence hash.
//
// The hash covers the canonical content of the document (lease text,
// signature image, audit metadata), not the raw PDF bytes: the PDF
// writer does not guarantee byte-identical output for identical input,
// and the recorded hash must be stable so a later re-stamp of the same
// submission verifies against it.
func (g *Generator) Generate(d LeaseData, sigImg []byte, imgType string, meta AuditMetadata) (*SignedDocument, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(meta.SignedAt.UTC())
	pdf.SetModificationDate(meta.SignedAt.UTC())
	pdf.SetTitle("Residential Lease Agreement", false)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Residential Lease Agreement", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, sec := range leaseParagraphs(d) {
		if sec.Heading != "" {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.CellFormat(0, 8, sec.Heading, "", 1, "L", false, 0, "")
		}
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, sec.Body, "", "L", false)
		pdf.Ln(2)
	}

	// Signature image
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Signed by %s (%s)", meta.SignerName, meta.Role), "", 1, "L", false, 0, "")

	opts := fpdf.ImageOptions{ImageType: imgType}
	pdf.RegisterImageOptionsReader("signature", opts, bytes.NewReader(sigImg))
	x := pdf.GetX()
	y := pdf.GetY()
	pdf.ImageOptions("signature", x, y, 60, 0, false, opts, 0, "")
	pdf.SetY(y + 28)

	// Audit block
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Electronic Signature Audit Trail", "T", 1, "L", false, 0, "")
	pdf.SetFont("Courier", "", 9)
	for _, line := range []string{
		"Lease:      " + meta.LeaseID,
		"Signer:     " + meta.SignerName + " <" + meta.SignerEmail + ">",
		"Role:       " + meta.Role,
		"IP address: " + meta.SignerIP,
		"User agent: " + meta.SignerUserAgent,
		"Signed at:  " + meta.SignedAt.UTC().Format(time.RFC3339),
	} {
		pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing signed pdf: %w", err)
	}

	hash, err := contentHash(d, sigImg, meta)
	if err != nil {
		return nil, fmt.Errorf("hashing signed document: %w", err)
	}

	audit, err := json.MarshalIndent(struct {
		AuditMetadata
		DocumentHash string `json:"document_hash"`
	}{meta, hash}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding audit log: %w", err)
	}

	return &SignedDocument{
		PDF:      buf.Bytes(),
		AuditLog: audit,
		Hash:     hash,
	}, nil
}

// contentHash digests the canonical inputs of a signed document: every
// rendered lease paragraph, the signature image bytes, and the audit
// metadata in its JSON form with the timestamp normalized to UTC.
func contentHash(d LeaseData, sigImg []byte, meta AuditMetadata) (string, error) {
	meta.SignedAt = meta.SignedAt.UTC()

	var buf bytes.Buffer
	for _, sec := range leaseParagraphs(d) {
		buf.WriteString(sec.Heading)
		buf.WriteByte('\n')
		buf.WriteString(sec.Body)
		buf.WriteByte('\n')
	}
	buf.Write(sigImg)

	enc, err := json.Marshal(meta)
	if err != nil {
		return "", err
	}
	buf.Write(enc)

	return utils.HashDocument(buf.Bytes()), nil
}
