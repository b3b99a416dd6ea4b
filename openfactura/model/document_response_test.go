package model

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentResponseFromPayload(t *testing.T) {
	r := DocumentResponseFromPayload(Attributes{
		"TOKEN":   "t1",
		"FOLIO":   float64(42),
		"WARNING": "folio reutilizado",
		"RESOLUCION": map[string]any{
			"FchResol": "2014-08-22",
			"NroResol": float64(80),
		},
	})

	assert.Equal(t, "t1", r.Token)
	assert.Equal(t, 42, r.Folio)
	assert.Equal(t, "folio reutilizado", r.Warning)
	require.NotNil(t, r.Resolution)
	assert.Equal(t, "2014-08-22", r.Resolution.Date)
	assert.Equal(t, 80, r.Resolution.Number)
	assert.True(t, r.Success())
}

func TestDocumentResponseFromPayload_LowercaseKeys(t *testing.T) {
	r := DocumentResponseFromPayload(Attributes{
		"token": "t2",
		"folio": float64(7),
	})

	assert.Equal(t, "t2", r.Token)
	assert.Equal(t, 7, r.Folio)
}

func TestDocumentResponseFromPayload_UppercaseWins(t *testing.T) {
	r := DocumentResponseFromPayload(Attributes{
		"TOKEN": "upper",
		"token": "lower",
	})

	assert.Equal(t, "upper", r.Token)
}

func TestDocumentResponse_Success_RequiresToken(t *testing.T) {
	r := DocumentResponseFromPayload(Attributes{"FOLIO": float64(42)})
	assert.False(t, r.Success())
}

func TestDocumentResponse_DecodePDF(t *testing.T) {
	raw := []byte("%PDF-1.4 fake")
	r := &DocumentResponse{PDF: base64.StdEncoding.EncodeToString(raw)}

	decoded, err := r.DecodePDF()
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestDocumentResponse_Decode_AbsentFields(t *testing.T) {
	r := &DocumentResponse{}

	pdf, err := r.DecodePDF()
	require.NoError(t, err)
	assert.Nil(t, pdf)

	stamp, err := r.DecodeStamp()
	require.NoError(t, err)
	assert.Nil(t, stamp)

	xml, err := r.DecodeXML()
	require.NoError(t, err)
	assert.Empty(t, xml)
}

func TestDocumentResponse_DecodeXML_Latin1(t *testing.T) {
	// "año" in ISO-8859-1: the ñ is a single 0xF1 byte
	latin1 := []byte("<DTE><RznSoc>Compa\xf1\xeda de Prueba</RznSoc></DTE>")
	r := &DocumentResponse{XML: base64.StdEncoding.EncodeToString(latin1)}

	xml, err := r.DecodeXML()
	require.NoError(t, err)
	assert.Equal(t, "<DTE><RznSoc>Compañía de Prueba</RznSoc></DTE>", xml)
}

func TestDocumentResponse_XMLDocument(t *testing.T) {
	latin1 := []byte(`<DTE><Folio>42</Folio></DTE>`)
	r := &DocumentResponse{XML: base64.StdEncoding.EncodeToString(latin1)}

	doc, err := r.XMLDocument()
	require.NoError(t, err)

	folio := doc.FindElement("//DTE/Folio")
	require.NotNil(t, folio)
	assert.Equal(t, "42", folio.Text())
}

func TestDocumentResponse_XMLDocument_Absent(t *testing.T) {
	r := &DocumentResponse{}

	_, err := r.XMLDocument()
	assert.Error(t, err)
}
