package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validIssuer() Issuer {
	return Issuer{
		TaxID:                "76123456-7",
		BusinessName:         "Emisora de Prueba SpA",
		BusinessActivity:     "Desarrollo de software",
		EconomicActivityCode: "620200",
		Address:              "Huérfanos 100",
		Commune:              "Santiago",
	}
}

func TestIssuer_Wire(t *testing.T) {
	wire, err := validIssuer().Wire()
	require.NoError(t, err)

	assert.Equal(t, "76123456-7", wire.RUTEmisor)
	assert.Equal(t, "620200", wire.Acteco)
	assert.Equal(t, "Huérfanos 100", wire.DirOrigen)
	assert.Equal(t, "Santiago", wire.CmnaOrigen)
}

func TestIssuer_Wire_Truncation(t *testing.T) {
	i := validIssuer()
	i.BusinessName = strings.Repeat("R", 120)
	i.BusinessActivity = strings.Repeat("G", 90)

	wire, err := i.Wire()
	require.NoError(t, err)
	assert.Len(t, wire.RznSoc, 100)
	assert.Len(t, wire.GiroEmis, 80)
}

func TestIssuer_Wire_OptionalFieldsOmitted(t *testing.T) {
	wire, err := validIssuer().Wire()
	require.NoError(t, err)

	serialized, err := json.Marshal(wire)
	require.NoError(t, err)
	assert.NotContains(t, string(serialized), "CdgSIISucur")
	assert.NotContains(t, string(serialized), "Telefono")

	i := validIssuer()
	i.BranchCode = "81303347"
	i.Phone = "+56 2 2345 6789"

	wire, err = i.Wire()
	require.NoError(t, err)
	assert.Equal(t, "81303347", wire.CdgSIISucur)
	assert.Equal(t, "+56 2 2345 6789", wire.Telefono)
}

func TestIssuer_Wire_MissingFields(t *testing.T) {
	i := validIssuer()
	i.EconomicActivityCode = ""
	i.Commune = " "

	_, err := i.Wire()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "issuer", verr.Object)
	assert.Equal(t, []string{"economic_activity_code", "commune"}, verr.Fields())
}

func TestIssuerFromAttributes_CoercesActivityCode(t *testing.T) {
	i := IssuerFromAttributes(Attributes{
		"tax_id":                 "76123456-7",
		"economic_activity_code": float64(620200), // numeric in JSON payloads
	})

	assert.Equal(t, "620200", i.EconomicActivityCode)
}
