package model

import (
	"github.com/shopspring/decimal"
)

// Document is the read model for a previously emitted document, as returned by
// the by-token query. The remote payload mixes English and Spanish key
// spellings depending on which backend answered, so every field tolerates both.
type Document struct {
	ID          string
	DTEID       string
	Type        int
	Status      string
	Folio       int
	IssuerRUT   string
	ReceiverRUT string
	Amount      *decimal.Decimal
	TaxAmount   *decimal.Decimal
	CreatedAt   string
	UpdatedAt   string
}

// DocumentFromPayload maps a queried document record. The token is used as the
// last fallback for the document id.
func DocumentFromPayload(payload Attributes, token string) *Document {
	id := payload.str("id")

	dteID := payload.str("dte_id", "dteId")
	if dteID == "" {
		dteID = id
	}
	if dteID == "" {
		dteID = token
	}

	return &Document{
		ID:          id,
		DTEID:       dteID,
		Type:        payload.integer("type", "tipoDte", "tipo_dte"),
		Status:      payload.str("status", "estado"),
		Folio:       payload.integer("folio"),
		IssuerRUT:   payload.str("issuer_rut", "rutEmisor"),
		ReceiverRUT: payload.str("receiver_rut", "rutReceptor"),
		Amount:      payload.dec("amount", "montoTotal"),
		TaxAmount:   payload.dec("tax_amount", "iva"),
		CreatedAt:   payload.str("created_at", "fechaCreacion"),
		UpdatedAt:   payload.str("updated_at"),
	}
}
