package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Item is one detail line of a document. Quantity, Price and Amount are
// pointers so that zero survives as a legal value: a nil pointer means the
// field was never supplied, a pointer to zero is just zero.
type Item struct {
	LineNumber  int
	Name        string
	Quantity    *decimal.Decimal
	Price       *decimal.Decimal
	Amount      *decimal.Decimal
	Description string
	Exempt      bool
}

// ItemWire is one Detalle entry in SII field naming.
type ItemWire struct {
	NroLinDet int         `json:"NroLinDet"`
	NmbItem   string      `json:"NmbItem"`
	DscItem   string      `json:"DscItem,omitempty"`
	QtyItem   json.Number `json:"QtyItem"`
	PrcItem   json.Number `json:"PrcItem"`
	MontoItem json.Number `json:"MontoItem"`
	IndExe    int         `json:"IndExe,omitempty"`
}

// ItemFromAttributes builds an Item from a loose attribute bag.
func ItemFromAttributes(attrs Attributes) Item {
	return Item{
		LineNumber:  attrs.integer("line_number", "lineNumber"),
		Name:        attrs.str("name"),
		Quantity:    attrs.dec("quantity"),
		Price:       attrs.dec("price"),
		Amount:      attrs.dec("amount"),
		Description: attrs.str("description"),
		Exempt:      attrs.boolean("exempt"),
	}
}

// Wire validates the line and returns its Detalle fragment. Line number, name,
// quantity, price and amount are required; description and the exempt flag are
// optional and omitted when absent. Line numbers are 1-based, so the zero
// value reads as unset.
func (i Item) Wire() (*ItemWire, error) {
	check := requiredCheck{object: "item"}
	check.present("line_number", "NroLinDet", i.LineNumber != 0)
	check.text("name", "NmbItem", i.Name)
	check.present("quantity", "QtyItem", i.Quantity != nil)
	check.present("price", "PrcItem", i.Price != nil)
	check.present("amount", "MontoItem", i.Amount != nil)
	if err := check.err(); err != nil {
		return nil, err
	}

	wire := &ItemWire{
		NroLinDet: i.LineNumber,
		NmbItem:   i.Name,
		DscItem:   i.Description,
		QtyItem:   number(i.Quantity),
		PrcItem:   number(i.Price),
		MontoItem: number(i.Amount),
	}
	if i.Exempt {
		wire.IndExe = 1
	}
	return wire, nil
}

func number(d *decimal.Decimal) json.Number {
	if d == nil {
		return ""
	}
	return json.Number(d.String())
}
