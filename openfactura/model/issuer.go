package model

// Issuer is the emitting entity (Emisor). It is usually looked up once via the
// organization endpoint and then shared between documents.
type Issuer struct {
	TaxID                string
	BusinessName         string
	BusinessActivity     string
	EconomicActivityCode string
	Address              string
	Commune              string
	BranchCode           string
	Phone                string
}

// IssuerWire is the Emisor fragment in SII field naming.
type IssuerWire struct {
	RUTEmisor   string `json:"RUTEmisor"`
	RznSoc      string `json:"RznSoc"`
	GiroEmis    string `json:"GiroEmis"`
	Acteco      string `json:"Acteco"`
	DirOrigen   string `json:"DirOrigen"`
	CmnaOrigen  string `json:"CmnaOrigen"`
	CdgSIISucur string `json:"CdgSIISucur,omitempty"`
	Telefono    string `json:"Telefono,omitempty"`
}

// IssuerFromAttributes builds an Issuer from a loose attribute bag. The
// economic activity code is coerced to a string when it arrives numeric.
func IssuerFromAttributes(attrs Attributes) Issuer {
	return Issuer{
		TaxID:                attrs.str("tax_id", "taxId", "rut"),
		BusinessName:         attrs.str("business_name", "businessName"),
		BusinessActivity:     attrs.str("business_activity", "businessActivity"),
		EconomicActivityCode: attrs.str("economic_activity_code", "economicActivityCode"),
		Address:              attrs.str("address"),
		Commune:              attrs.str("commune"),
		BranchCode:           attrs.str("branch_code", "branchCode"),
		Phone:                attrs.str("phone"),
	}
}

// Wire validates the issuer and returns its Emisor fragment. Branch code and
// phone are optional, everything else is required.
func (i Issuer) Wire() (*IssuerWire, error) {
	check := requiredCheck{object: "issuer"}
	check.text("tax_id", "RUTEmisor", i.TaxID)
	check.text("business_name", "RznSoc", i.BusinessName)
	check.text("business_activity", "GiroEmis", i.BusinessActivity)
	check.text("economic_activity_code", "Acteco", i.EconomicActivityCode)
	check.text("address", "DirOrigen", i.Address)
	check.text("commune", "CmnaOrigen", i.Commune)
	if err := check.err(); err != nil {
		return nil, err
	}

	return &IssuerWire{
		RUTEmisor:   i.TaxID,
		RznSoc:      truncate(i.BusinessName, 100),
		GiroEmis:    truncate(i.BusinessActivity, 80),
		Acteco:      i.EconomicActivityCode,
		DirOrigen:   i.Address,
		CmnaOrigen:  i.Commune,
		CdgSIISucur: i.BranchCode,
		Telefono:    i.Phone,
	}, nil
}
