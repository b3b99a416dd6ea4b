package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Totals is the monetary summary (Totales). Only TotalAmount is required;
// every other field is emitted only when populated.
type Totals struct {
	TotalAmount  *decimal.Decimal
	NetAmount    *decimal.Decimal
	TaxAmount    *decimal.Decimal
	ExemptAmount *decimal.Decimal
	TaxRate      *decimal.Decimal
	PeriodAmount *decimal.Decimal
	AmountToPay  *decimal.Decimal
}

// TotalsWire is the Totales fragment in SII field naming. TasaIVA travels as a
// string on the wire.
type TotalsWire struct {
	MntTotal     json.Number `json:"MntTotal"`
	MntNeto      json.Number `json:"MntNeto,omitempty"`
	IVA          json.Number `json:"IVA,omitempty"`
	MntExe       json.Number `json:"MntExe,omitempty"`
	TasaIVA      string      `json:"TasaIVA,omitempty"`
	MontoPeriodo json.Number `json:"MontoPeriodo,omitempty"`
	VlrPagar     json.Number `json:"VlrPagar,omitempty"`
}

// TotalsFromAttributes builds Totals from a loose attribute bag.
func TotalsFromAttributes(attrs Attributes) Totals {
	return Totals{
		TotalAmount:  attrs.dec("total_amount", "totalAmount"),
		NetAmount:    attrs.dec("net_amount", "netAmount"),
		TaxAmount:    attrs.dec("tax_amount", "taxAmount"),
		ExemptAmount: attrs.dec("exempt_amount", "exemptAmount"),
		TaxRate:      attrs.dec("tax_rate", "taxRate"),
		PeriodAmount: attrs.dec("period_amount", "periodAmount"),
		AmountToPay:  attrs.dec("amount_to_pay", "amountToPay"),
	}
}

// Wire validates the totals and returns the Totales fragment.
func (t Totals) Wire() (*TotalsWire, error) {
	check := requiredCheck{object: "totals"}
	check.present("total_amount", "MntTotal", t.TotalAmount != nil)
	if err := check.err(); err != nil {
		return nil, err
	}

	wire := &TotalsWire{
		MntTotal:     number(t.TotalAmount),
		MntNeto:      number(t.NetAmount),
		IVA:          number(t.TaxAmount),
		MntExe:       number(t.ExemptAmount),
		MontoPeriodo: number(t.PeriodAmount),
		VlrPagar:     number(t.AmountToPay),
	}
	if t.TaxRate != nil {
		wire.TasaIVA = t.TaxRate.String()
	}
	return wire, nil
}
