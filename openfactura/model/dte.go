package model

import (
	"fmt"
	"regexp"
	"time"
)

// DTEType is the SII document type code.
type DTEType int

const (
	Invoice           DTEType = 33
	ExemptInvoice     DTEType = 34
	SettlementInvoice DTEType = 43
	PurchaseInvoice   DTEType = 46
	DispatchGuide     DTEType = 52
	DebitNote         DTEType = 56
	CreditNote        DTEType = 61
	ExportInvoice     DTEType = 110
	ExportDebitNote   DTEType = 111
	ExportCreditNote  DTEType = 112
)

// ValidDTETypes lists every accepted document type code, in ascending order.
var ValidDTETypes = []DTEType{
	Invoice, ExemptInvoice, SettlementInvoice, PurchaseInvoice, DispatchGuide,
	DebitNote, CreditNote, ExportInvoice, ExportDebitNote, ExportCreditNote,
}

func (t DTEType) Valid() bool {
	for _, v := range ValidDTETypes {
		if t == v {
			return true
		}
	}
	return false
}

const emissionDateLayout = "2006-01-02"

var emissionDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Emission dates the SII accepts. The lower bound is the start of the DTE
// regime, the upper bound matches the schema.
var (
	minEmissionDate = time.Date(2003, 4, 1, 0, 0, 0, 0, time.UTC)
	maxEmissionDate = time.Date(2050, 12, 31, 0, 0, 0, 0, time.UTC)
)

// DTE is the document aggregate: one receiver, ordered detail lines, a totals
// block and optionally an issuer. Type and emission date are only writable
// through the validating setters. The issuer may be attached late, the emit
// operation does so when the document carries none.
type DTE struct {
	dteType      DTEType
	folio        int
	emissionDate string

	Receiver Receiver
	Items    []Item
	Totals   Totals

	issuer *Issuer

	// optional IdDoc codes
	SaleTransactionType     int
	PurchaseTransactionType int
	PaymentForm             int
}

// IdDocWire is the document identification block.
type IdDocWire struct {
	TipoDTE       int    `json:"TipoDTE"`
	Folio         int    `json:"Folio"`
	FchEmis       string `json:"FchEmis"`
	TpoTranVenta  int    `json:"TpoTranVenta,omitempty"`
	TpoTranCompra int    `json:"TpoTranCompra,omitempty"`
	FmaPago       int    `json:"FmaPago,omitempty"`
}

// HeaderWire is the Encabezado block. Emisor is present only when an issuer is
// attached to the document.
type HeaderWire struct {
	IdDoc    IdDocWire    `json:"IdDoc"`
	Emisor   *IssuerWire  `json:"Emisor,omitempty"`
	Receptor ReceiverWire `json:"Receptor"`
	Totales  TotalsWire   `json:"Totales"`
}

// DTEWire is the full document in SII field naming.
type DTEWire struct {
	Encabezado HeaderWire `json:"Encabezado"`
	Detalle    []ItemWire `json:"Detalle"`
}

// NewDTE builds a document with folio 0 (the folio is assigned remotely on
// emission) and the emission date defaulted to today. Type and date are
// validated immediately.
func NewDTE(dteType DTEType, receiver Receiver, items []Item, totals Totals) (*DTE, error) {
	d := &DTE{
		folio:    0,
		Receiver: receiver,
		Items:    items,
		Totals:   totals,
	}
	if err := d.SetType(dteType); err != nil {
		return nil, err
	}
	if err := d.SetEmissionDate(time.Now().Format(emissionDateLayout)); err != nil {
		return nil, err
	}
	return d, nil
}

// DTEFromAttributes builds a document from a loose attribute bag. Receiver,
// totals and each item may themselves be nested bags; an explicit emission
// date or folio in the bag overrides the defaults.
func DTEFromAttributes(attrs Attributes) (*DTE, error) {
	var receiver Receiver
	if bag, ok := attrs.object("receiver"); ok {
		receiver = ReceiverFromAttributes(bag)
	}

	var totals Totals
	if bag, ok := attrs.object("totals"); ok {
		totals = TotalsFromAttributes(bag)
	}

	var items []Item
	for _, bag := range attrs.list("items") {
		items = append(items, ItemFromAttributes(bag))
	}

	d, err := NewDTE(DTEType(attrs.integer("type", "dte_type", "dteType")), receiver, items, totals)
	if err != nil {
		return nil, err
	}

	if date := attrs.str("emission_date", "emissionDate"); date != "" {
		if err := d.SetEmissionDate(date); err != nil {
			return nil, err
		}
	}
	d.folio = attrs.integer("folio")
	d.SaleTransactionType = attrs.integer("sale_transaction_type", "saleTransactionType")
	d.PurchaseTransactionType = attrs.integer("purchase_transaction_type", "purchaseTransactionType")
	d.PaymentForm = attrs.integer("payment_form", "paymentForm")

	if bag, ok := attrs.object("issuer"); ok {
		issuer := IssuerFromAttributes(bag)
		d.issuer = &issuer
	}

	return d, nil
}

func (d *DTE) Type() DTEType { return d.dteType }

// SetType validates the code against the accepted document types.
func (d *DTE) SetType(t DTEType) error {
	if t == 0 {
		return fmt.Errorf("document type is required")
	}
	if !t.Valid() {
		return fmt.Errorf("invalid document type %d, valid types are %v", int(t), ValidDTETypes)
	}
	d.dteType = t
	return nil
}

func (d *DTE) Folio() int { return d.folio }

func (d *DTE) SetFolio(folio int) { d.folio = folio }

func (d *DTE) EmissionDate() string { return d.emissionDate }

// SetEmissionDate accepts strict YYYY-MM-DD dates between 2003-04-01 and
// 2050-12-31 inclusive. Format, calendar and range problems each get their own
// message.
func (d *DTE) SetEmissionDate(date string) error {
	if !emissionDatePattern.MatchString(date) {
		return fmt.Errorf("emission date %q must use the YYYY-MM-DD format", date)
	}
	parsed, err := time.Parse(emissionDateLayout, date)
	if err != nil {
		return fmt.Errorf("emission date %q is not a valid calendar date", date)
	}
	if parsed.Before(minEmissionDate) || parsed.After(maxEmissionDate) {
		return fmt.Errorf("emission date %q is outside the accepted range 2003-04-01..2050-12-31", date)
	}
	d.emissionDate = date
	return nil
}

func (d *DTE) Issuer() *Issuer { return d.issuer }

func (d *DTE) SetIssuer(issuer *Issuer) { d.issuer = issuer }

// Wire assembles the full document. Any validation failure from a nested
// value object propagates unchanged, so a bad document never leaves the
// process.
func (d *DTE) Wire() (*DTEWire, error) {
	receptor, err := d.Receiver.Wire()
	if err != nil {
		return nil, err
	}

	totales, err := d.Totals.Wire()
	if err != nil {
		return nil, err
	}

	var emisor *IssuerWire
	if d.issuer != nil {
		emisor, err = d.issuer.Wire()
		if err != nil {
			return nil, err
		}
	}

	detalle := make([]ItemWire, 0, len(d.Items))
	for _, item := range d.Items {
		line, err := item.Wire()
		if err != nil {
			return nil, err
		}
		detalle = append(detalle, *line)
	}

	return &DTEWire{
		Encabezado: HeaderWire{
			IdDoc: IdDocWire{
				TipoDTE:       int(d.dteType),
				Folio:         d.folio,
				FchEmis:       d.emissionDate,
				TpoTranVenta:  d.SaleTransactionType,
				TpoTranCompra: d.PurchaseTransactionType,
				FmaPago:       d.PaymentForm,
			},
			Emisor:   emisor,
			Receptor: *receptor,
			Totales:  *totales,
		},
		Detalle: detalle,
	}, nil
}
