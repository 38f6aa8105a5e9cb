package documents

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// LeaseData is the flat bag of values substituted into the lease
// document. Rendering is static substitution; the only branch is
// month-to-month versus a fixed end date.
type LeaseData struct {
	LeaseID         string
	LandlordName    string
	TenantName      string
	PropertyAddress string
	UnitNumber      string

	MonthlyRentCents     int64
	SecurityDepositCents int64
	StartDate            time.Time
	EndDate              *time.Time // nil = month-to-month
}

func (d LeaseData) MonthlyRent() string     { return formatCents(d.MonthlyRentCents) }
func (d LeaseData) SecurityDeposit() string { return formatCents(d.SecurityDepositCents) }
func (d LeaseData) StartDateText() string   { return d.StartDate.Format("January 2, 2006") }

// TermText is the one conditional clause in the whole document.
func (d LeaseData) TermText() string {
	if d.EndDate == nil {
		return "This lease runs month-to-month beginning " + d.StartDateText() +
			" and continues until terminated by either party with proper notice."
	}
	return "This lease runs for a fixed term beginning " + d.StartDateText() +
		" and ending " + d.EndDate.Format("January 2, 2006") + "."
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

var leaseTmpl = template.Must(template.New("lease").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Residential Lease Agreement</title></head>
<body>
  <h1>Residential Lease Agreement</h1>
  <p>This Residential Lease Agreement is entered into between
  <strong>{{.LandlordName}}</strong> ("Landlord") and
  <strong>{{.TenantName}}</strong> ("Tenant") for the premises at
  <strong>{{.PropertyAddress}}{{if .UnitNumber}}, Unit {{.UnitNumber}}{{end}}</strong>.</p>

  <h2>1. Term</h2>
  <p>{{.TermText}}</p>

  <h2>2. Rent</h2>
  <p>Tenant agrees to pay monthly rent of <strong>{{.MonthlyRent}}</strong>,
  due on the first day of each month.</p>

  <h2>3. Security Deposit</h2>
  <p>Tenant has paid a security deposit of <strong>{{.SecurityDeposit}}</strong>,
  refundable per applicable law at the end of the tenancy.</p>

  <h2>4. Occupancy and Use</h2>
  <p>The premises are to be used solely as a private residence by Tenant.
  Subletting requires the Landlord's prior written consent.</p>

  <h2>5. Maintenance</h2>
  <p>Tenant shall keep the premises clean and promptly report needed
  repairs. Landlord shall maintain the premises in habitable condition.</p>

  <h2>6. Electronic Signatures</h2>
  <p>Both parties agree that electronic signatures on this document are
  legally binding.</p>
</body>
</html>
`))

// RenderLeaseHTML renders the lease terms for display on the signing page.
func RenderLeaseHTML(d LeaseData) (string, error) {
	var buf bytes.Buffer
	if err := leaseTmpl.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("rendering lease template: %w", err)
	}
	return buf.String(), nil
}

// leaseParagraphs returns the same content as plain text sections for the
// PDF body. Kept in lockstep with the HTML template.
func leaseParagraphs(d LeaseData) []struct{ Heading, Body string } {
	unit := ""
	if d.UnitNumber != "" {
		unit = ", Unit " + d.UnitNumber
	}
	return []struct{ Heading, Body string }{
		{"", fmt.Sprintf(
			"This Residential Lease Agreement is entered into between %s (\"Landlord\") and %s (\"Tenant\") for the premises at %s%s.",
			d.LandlordName, d.TenantName, d.PropertyAddress, unit)},
		{"1. Term", d.TermText()},
		{"2. Rent", fmt.Sprintf(
			"Tenant agrees to pay monthly rent of %s, due on the first day of each month.", d.MonthlyRent())},
		{"3. Security Deposit", fmt.Sprintf(
			"Tenant has paid a security deposit of %s, refundable per applicable law at the end of the tenancy.", d.SecurityDeposit())},
		{"4. Occupancy and Use",
			"The premises are to be used solely as a private residence by Tenant. Subletting requires the Landlord's prior written consent."},
		{"5. Maintenance",
			"Tenant shall keep the premises clean and promptly report needed repairs. Landlord shall maintain the premises in habitable condition."},
		{"6. Electronic Signatures",
			"Both parties agree that electronic signatures on this document are legally binding."},
	}
}
