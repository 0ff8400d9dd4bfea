package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// Amount is a debit or credit value as submitted by a form. Missing, null and
// blank values are zero; text that is not a number is kept in Raw and flagged.
type Amount struct {
	Value   decimal.Decimal
	Raw     string
	Invalid bool
}

// AmountOf wraps an already parsed decimal.
func AmountOf(d decimal.Decimal) Amount {
	return Amount{Value: d}
}

// ParseAmount coerces text to an Amount.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return Amount{Value: decimal.Zero}
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return Amount{Value: decimal.Zero, Raw: s, Invalid: true}
	}
	return Amount{Value: d, Raw: s}
}

// AmountFromJSON coerces a parsed JSON value to an Amount.
func AmountFromJSON(v gjson.Result) Amount {
	switch v.Type {
	case gjson.Null:
		return Amount{Value: decimal.Zero}
	case gjson.Number:
		return ParseAmount(v.Raw)
	case gjson.String:
		return ParseAmount(v.Str)
	default:
		return Amount{Value: decimal.Zero, Raw: v.Raw, Invalid: true}
	}
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	if !gjson.ValidBytes(b) {
		return fmt.Errorf("invalid amount JSON")
	}
	*a = AmountFromJSON(gjson.ParseBytes(b))
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Value.String()), nil
}

func (a Amount) String() string {
	if a.Invalid {
		return a.Raw
	}
	return a.Value.String()
}
