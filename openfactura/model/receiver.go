package model

// Receiver is the counterparty the document is issued to (Receptor).
type Receiver struct {
	TaxID            string
	BusinessName     string
	BusinessActivity string
	Contact          string
	Address          string
	Commune          string
}

// ReceiverWire is the Receptor fragment in SII field naming.
type ReceiverWire struct {
	RUTRecep    string `json:"RUTRecep"`
	RznSocRecep string `json:"RznSocRecep"`
	GiroRecep   string `json:"GiroRecep"`
	Contacto    string `json:"Contacto"`
	DirRecep    string `json:"DirRecep"`
	CmnaRecep   string `json:"CmnaRecep"`
}

// ReceiverFromAttributes builds a Receiver from a loose attribute bag,
// ignoring unknown keys.
func ReceiverFromAttributes(attrs Attributes) Receiver {
	return Receiver{
		TaxID:            attrs.str("tax_id", "taxId", "rut"),
		BusinessName:     attrs.str("business_name", "businessName"),
		BusinessActivity: attrs.str("business_activity", "businessActivity"),
		Contact:          attrs.str("contact"),
		Address:          attrs.str("address"),
		Commune:          attrs.str("commune"),
	}
}

// Wire validates the receiver and returns its Receptor fragment. Every field
// is required; a missing or whitespace-only value fails with *ValidationError.
func (r Receiver) Wire() (*ReceiverWire, error) {
	check := requiredCheck{object: "receiver"}
	check.text("tax_id", "RUTRecep", r.TaxID)
	check.text("business_name", "RznSocRecep", r.BusinessName)
	check.text("business_activity", "GiroRecep", r.BusinessActivity)
	check.text("contact", "Contacto", r.Contact)
	check.text("address", "DirRecep", r.Address)
	check.text("commune", "CmnaRecep", r.Commune)
	if err := check.err(); err != nil {
		return nil, err
	}

	return &ReceiverWire{
		RUTRecep:    r.TaxID,
		RznSocRecep: truncate(r.BusinessName, 100),
		GiroRecep:   truncate(r.BusinessActivity, 40),
		Contacto:    r.Contact,
		DirRecep:    r.Address,
		CmnaRecep:   r.Commune,
	}, nil
}
