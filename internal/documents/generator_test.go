package documents

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLeaseData() LeaseData {
	return LeaseData{
		LeaseID:              "11111111-2222-3333-4444-555555555555",
		LandlordName:         "Dana Whitfield",
		TenantName:           "Jordan Reyes",
		PropertyAddress:      "412 Maple Ct, Huntsville, AL 35801",
		UnitNumber:           "1A",
		MonthlyRentCents:     135000,
		SecurityDepositCents: 135000,
		StartDate:            time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

func testMetadata() AuditMetadata {
	return AuditMetadata{
		LeaseID:         "11111111-2222-3333-4444-555555555555",
		Role:            "tenant",
		SignerName:      "Jordan Reyes",
		SignerEmail:     "jordan@example.com",
		SignerIP:        "203.0.113.9",
		SignerUserAgent: "Mozilla/5.0",
		SignedAt:        time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC),
	}
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 2))))
	return buf.Bytes()
}

// The document hash must be stable across repeated stamping of the same
// input. The PDF writer itself is not byte-stable, so the hash covers
// the document content rather than the output stream.
func TestGenerateIsDeterministic(t *testing.T) {
	g := NewGenerator()
	img := testPNG(t)

	a, err := g.Generate(testLeaseData(), img, "PNG", testMetadata())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		b, err := g.Generate(testLeaseData(), img, "PNG", testMetadata())
		require.NoError(t, err)
		assert.Equal(t, a.Hash, b.Hash)
		assert.Equal(t, a.AuditLog, b.AuditLog)
	}
}

func TestGenerateHashChangesWithInput(t *testing.T) {
	g := NewGenerator()
	img := testPNG(t)

	a, err := g.Generate(testLeaseData(), img, "PNG", testMetadata())
	require.NoError(t, err)

	meta := testMetadata()
	meta.SignerIP = "198.51.100.4"
	b, err := g.Generate(testLeaseData(), img, "PNG", meta)
	require.NoError(t, err)
	assert.NotEqual(t, a.Hash, b.Hash)

	other := testLeaseData()
	other.MonthlyRentCents = 142500
	c, err := g.Generate(other, img, "PNG", testMetadata())
	require.NoError(t, err)
	assert.NotEqual(t, a.Hash, c.Hash)
}

func TestGenerateAuditLogCarriesHash(t *testing.T) {
	g := NewGenerator()

	doc, err := g.Generate(testLeaseData(), testPNG(t), "PNG", testMetadata())
	require.NoError(t, err)

	var audit struct {
		SignerName   string    `json:"signer_name"`
		SignerIP     string    `json:"signer_ip"`
		SignedAt     time.Time `json:"signed_at"`
		DocumentHash string    `json:"document_hash"`
	}
	require.NoError(t, json.Unmarshal(doc.AuditLog, &audit))

	assert.Equal(t, "Jordan Reyes", audit.SignerName)
	assert.Equal(t, "203.0.113.9", audit.SignerIP)
	assert.Equal(t, doc.Hash, audit.DocumentHash)
	assert.True(t, bytes.HasPrefix(doc.PDF, []byte("%PDF")))
}

func TestTermTextMonthToMonth(t *testing.T) {
	d := testLeaseData()
	assert.Contains(t, d.TermText(), "month-to-month beginning September 1, 2026")

	end := time.Date(2027, 8, 31, 0, 0, 0, 0, time.UTC)
	d.EndDate = &end
	assert.Contains(t, d.TermText(), "ending August 31, 2027")
}

func TestRenderLeaseHTML(t *testing.T) {
	html, err := RenderLeaseHTML(testLeaseData())
	require.NoError(t, err)

	assert.Contains(t, html, "Dana Whitfield")
	assert.Contains(t, html, "Jordan Reyes")
	assert.Contains(t, html, "$1350.00")
	assert.Contains(t, html, "Unit 1A")
}

func TestParseSignatureDataURL(t *testing.T) {
	raw := testPNG(t)
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	img, imgType, err := ParseSignatureDataURL(dataURL)
	require.NoError(t, err)
	assert.Equal(t, "PNG", imgType)
	assert.Equal(t, raw, img)
}

func TestParseSignatureDataURLJPEG(t *testing.T) {
	_, imgType, err := ParseSignatureDataURL("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte{0xff, 0xd8, 0xff}))
	require.NoError(t, err)
	assert.Equal(t, "JPG", imgType)
}

func TestParseSignatureDataURLRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"not a data url",
		"data:text/plain;base64,aGVsbG8=",
		"data:image/png;base64,%%%not-base64%%%",
		"data:image/png;base64,",
		"data:image/png,rawdata",
	}
	for _, c := range cases {
		_, _, err := ParseSignatureDataURL(c)
		assert.ErrorIs(t, err, ErrBadSignatureImage, "input %q", c)
	}
}
