package view

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/taxdesk/backoffice-api/internal/domain"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"5", "$5.00"},
		{"150.5", "$150.50"},
		{"999.99", "$999.99"},
		{"1000", "$1,000.00"},
		{"1234.5", "$1,234.50"},
		{"1234567.89", "$1,234,567.89"},
		{"-1234.5", "-$1,234.50"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := FormatUSD(decimal.RequireFromString(tt.in))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestText_EmptyBecomesPlaceholder(t *testing.T) {
	f := Text("Notes", "")
	assert.Equal(t, Placeholder, f.Value)
	assert.Equal(t, FieldText, f.Type)

	f = Text("Notes", "hello")
	assert.Equal(t, "hello", f.Value)
}

func TestCurrency_NilBecomesPlaceholder(t *testing.T) {
	f := Currency("Federal Refund", nil)
	assert.Equal(t, Placeholder, f.Value)
	assert.Equal(t, FieldCurrency, f.Type)

	amount := decimal.RequireFromString("2500.00")
	f = Currency("Federal Refund", &amount)
	assert.Equal(t, "$2,500.00", f.Value)
}

func TestDate_Formatting(t *testing.T) {
	f := Date("Submitted", nil)
	assert.Equal(t, Placeholder, f.Value)
	assert.Equal(t, FieldDate, f.Type)

	ts := time.Date(2025, time.March, 7, 10, 30, 0, 0, time.UTC)
	f = Date("Submitted", &ts)
	assert.Equal(t, "Mar 7, 2025", f.Value)
}

func TestBadge_UnderscoresBecomeSpaces(t *testing.T) {
	f := Badge("Status", "in_progress")
	assert.Equal(t, "in progress", f.Value)
	assert.Equal(t, FieldBadge, f.Type)
	assert.Equal(t, "warning", f.Variant)

	f = Badge("Status", "")
	assert.Equal(t, Placeholder, f.Value)
	assert.Equal(t, "neutral", f.Variant)
}

func TestBadge_VariantFromRawValue(t *testing.T) {
	// The variant is resolved from the stored enum value, before
	// underscores are rewritten for display.
	f := Badge("Status", "no_show")
	assert.Equal(t, "no show", f.Value)
	assert.Equal(t, "danger", f.Variant)

	f = Badge("Status", "archived")
	assert.Equal(t, "neutral", f.Variant)
}

func TestBadgeVariant(t *testing.T) {
	assert.Equal(t, "success", BadgeVariant("completed"))
	assert.Equal(t, "success", BadgeVariant("verified"))
	assert.Equal(t, "warning", BadgeVariant("pending"))
	assert.Equal(t, "warning", BadgeVariant("in_progress"))
	assert.Equal(t, "danger", BadgeVariant("rejected"))
	assert.Equal(t, "danger", BadgeVariant("no_show"))
	assert.Equal(t, "info", BadgeVariant("refunded"))
	// anything unknown falls back to neutral
	assert.Equal(t, "neutral", BadgeVariant("archived"))
	assert.Equal(t, "neutral", BadgeVariant(""))
}

func TestClientDetail_FieldOrderAndFallbacks(t *testing.T) {
	client := &domain.Client{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Status:   domain.ClientStatusActive,
	}
	client.CreatedAt = time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)

	fields := ClientDetail(client)
	assert.Equal(t, "Full Name", fields[0].Label)
	assert.Equal(t, "Jane Doe", fields[0].Value)
	// phone was never set
	assert.Equal(t, "Phone", fields[2].Label)
	assert.Equal(t, Placeholder, fields[2].Value)
	// no assigned agent
	assert.Equal(t, "Assigned Agent", fields[6].Label)
	assert.Equal(t, Placeholder, fields[6].Value)
	assert.Equal(t, "Created", fields[9].Label)
	assert.Equal(t, "Jan 5, 2025", fields[9].Value)
}

func TestTaxReturnDetail_MoneyFields(t *testing.T) {
	refund := decimal.RequireFromString("1200.00")
	tr := &domain.TaxReturn{
		TaxYear:       2024,
		ReturnType:    "individual",
		Status:        domain.TaxReturnStatusInProgress,
		FederalRefund: &refund,
	}

	fields := TaxReturnDetail(tr)
	assert.Equal(t, "Status", fields[4].Label)
	assert.Equal(t, "in progress", fields[4].Value)
	assert.Equal(t, "warning", fields[4].Variant)
	assert.Equal(t, "Federal Refund", fields[5].Label)
	assert.Equal(t, "$1,200.00", fields[5].Value)
	// unset money fields render the placeholder, still typed currency
	assert.Equal(t, "State Refund", fields[6].Label)
	assert.Equal(t, Placeholder, fields[6].Value)
	assert.Equal(t, FieldCurrency, fields[6].Type)
}

func TestPaymentDetail_AmountAlwaysFormatted(t *testing.T) {
	p := &domain.Payment{
		Amount:      decimal.RequireFromString("150.50"),
		PaymentType: "preparation_fee",
		Status:      domain.PaymentStatusCompleted,
	}

	fields := PaymentDetail(p)
	assert.Equal(t, "Amount", fields[1].Label)
	assert.Equal(t, "$150.50", fields[1].Value)
	assert.Equal(t, "preparation fee", fields[2].Value)
}
