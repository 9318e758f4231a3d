// Package view formats entities into ordered label/value/type triples for
// read-only detail rendering. The formatting rules are shared by every
// resource; nothing here knows what the fields mean.
package view

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FieldType selects how a detail value is rendered
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldCurrency FieldType = "currency"
	FieldDate     FieldType = "date"
	FieldBadge    FieldType = "badge"
)

// Placeholder is shown for any missing value, regardless of field type
const Placeholder = "-"

// dateLayout matches the human-readable pattern used across the admin pages
const dateLayout = "Jan 2, 2006"

// Field is one row of a detail panel. Variant is only set for badge fields
// and picks the pill colour.
type Field struct {
	Label   string    `json:"label"`
	Value   string    `json:"value"`
	Type    FieldType `json:"type"`
	Variant string    `json:"variant,omitempty"`
}

// Text builds a plain text field
func Text(label, value string) Field {
	if value == "" {
		value = Placeholder
	}
	return Field{Label: label, Value: value, Type: FieldText}
}

// Currency builds a money field from a nullable amount
func Currency(label string, amount *decimal.Decimal) Field {
	if amount == nil {
		return Field{Label: label, Value: Placeholder, Type: FieldCurrency}
	}
	return CurrencyValue(label, *amount)
}

// CurrencyValue builds a money field from a required amount
func CurrencyValue(label string, amount decimal.Decimal) Field {
	return Field{Label: label, Value: FormatUSD(amount), Type: FieldCurrency}
}

// Date builds a date field from a nullable timestamp
func Date(label string, t *time.Time) Field {
	if t == nil || t.IsZero() {
		return Field{Label: label, Value: Placeholder, Type: FieldDate}
	}
	return Field{Label: label, Value: t.Format(dateLayout), Type: FieldDate}
}

// DateValue builds a date field from a required timestamp
func DateValue(label string, t time.Time) Field {
	return Date(label, &t)
}

// Badge builds a tagged pill field. Underscores in enum values become
// spaces so in_progress reads as "in progress".
func Badge(label, value string) Field {
	if value == "" {
		return Field{Label: label, Value: Placeholder, Type: FieldBadge, Variant: "neutral"}
	}
	return Field{
		Label:   label,
		Value:   strings.ReplaceAll(value, "_", " "),
		Type:    FieldBadge,
		Variant: BadgeVariant(value),
	}
}

// FormatUSD renders an amount as en-US dollars with comma grouping and two
// decimal places, e.g. $1,234.50.
func FormatUSD(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	s := amount.Abs().StringFixed(2)

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i:]
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}

// BadgeVariant maps a status value to a display variant. Unknown statuses
// fall back to neutral instead of failing.
func BadgeVariant(status string) string {
	switch status {
	case "active", "completed", "verified", "approved", "submitted", "confirmed":
		return "success"
	case "pending", "in_progress", "review", "processing", "scheduled", "uploaded":
		return "warning"
	case "rejected", "failed", "cancelled", "no_show", "suspended", "missing":
		return "danger"
	case "inactive", "refunded":
		return "info"
	default:
		return "neutral"
	}
}
