package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Attributes is a loose key/value bag, typically the result of decoding a JSON
// object. The From*Attributes factories read known keys out of it and ignore
// the rest. Lookups try every given key in order, so the same factory works
// for payloads that arrive with different spellings of the same field.
type Attributes map[string]any

func (a Attributes) first(keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := a[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (a Attributes) str(keys ...string) string {
	v, ok := a.first(keys...)
	if !ok {
		return ""
	}

	switch s := v.(type) {
	case string:
		return s
	case float64:
		// JSON numbers decode as float64, integral codes should not gain ".000000"
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%v", s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

func (a Attributes) integer(keys ...string) int {
	v, ok := a.first(keys...)
	if !ok {
		return 0
	}

	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case string:
		var parsed int
		if _, err := fmt.Sscanf(strings.TrimSpace(n), "%d", &parsed); err == nil {
			return parsed
		}
	}
	return 0
}

func (a Attributes) boolean(keys ...string) bool {
	v, ok := a.first(keys...)
	if !ok {
		return false
	}

	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case string:
		return strings.EqualFold(b, "true") || b == "1"
	}
	return false
}

func (a Attributes) dec(keys ...string) *decimal.Decimal {
	v, ok := a.first(keys...)
	if !ok {
		return nil
	}

	switch n := v.(type) {
	case float64:
		d := decimal.NewFromFloat(n)
		return &d
	case int:
		d := decimal.NewFromInt(int64(n))
		return &d
	case int64:
		d := decimal.NewFromInt(n)
		return &d
	case string:
		if d, err := decimal.NewFromString(strings.TrimSpace(n)); err == nil {
			return &d
		}
	case decimal.Decimal:
		return &n
	}
	return nil
}

func (a Attributes) object(keys ...string) (Attributes, bool) {
	v, ok := a.first(keys...)
	if !ok {
		return nil, false
	}

	switch m := v.(type) {
	case map[string]any:
		return Attributes(m), true
	case Attributes:
		return m, true
	}
	return nil, false
}

func (a Attributes) list(keys ...string) []Attributes {
	v, ok := a.first(keys...)
	if !ok {
		return nil
	}

	raw, ok := v.([]any)
	if !ok {
		return nil
	}

	var out []Attributes
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Attributes(m))
		}
	}
	return out
}

// Dec wraps a decimal value so it can be assigned to the optional numeric
// fields of the value objects. Zero is a legal value, absence is a nil pointer.
func Dec(value float64) *decimal.Decimal {
	d := decimal.NewFromFloat(value)
	return &d
}

// DecInt is Dec for whole amounts, which is the common case for Chilean pesos.
func DecInt(value int64) *decimal.Decimal {
	d := decimal.NewFromInt(value)
	return &d
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
