package model

import (
	"encoding/base64"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/go-faster/errors"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Resolution is the SII resolution under which the issuer emits documents.
type Resolution struct {
	Date   string
	Number int
}

// DocumentResponse is the decoded emission response. The base64 payloads are
// kept verbatim, the Decode helpers turn them into usable bytes on demand.
// IdempotencyKey is not part of the remote payload, the emit operation fills
// it in after decoding.
type DocumentResponse struct {
	Token      string
	Folio      int
	Resolution *Resolution
	XML        string
	PDF        string
	Stamp      string
	Logo       string
	Warning    string

	IdempotencyKey string
}

// DocumentResponseFromPayload decodes the emission payload. The remote side
// answers with uppercase abbreviations (TOKEN, FOLIO, TIMBRE...), older
// payloads with lowercase semantic names; both are accepted, uppercase wins.
func DocumentResponseFromPayload(payload Attributes) *DocumentResponse {
	r := &DocumentResponse{
		Token:   payload.str("TOKEN", "token"),
		Folio:   payload.integer("FOLIO", "folio"),
		XML:     payload.str("XML", "xml"),
		PDF:     payload.str("PDF", "pdf"),
		Stamp:   payload.str("TIMBRE", "stamp"),
		Logo:    payload.str("LOGO", "logo"),
		Warning: payload.str("WARNING", "warning"),
	}

	if bag, ok := payload.object("RESOLUCION", "resolution"); ok {
		r.Resolution = &Resolution{
			Date:   bag.str("FchResol", "date"),
			Number: bag.integer("NroResol", "number"),
		}
	}

	return r
}

// Success reports whether the emission was accepted, which the remote system
// signals by returning a token.
func (r *DocumentResponse) Success() bool {
	return r.Token != ""
}

// DecodePDF returns the raw PDF bytes, or nil when the response carried none.
func (r *DocumentResponse) DecodePDF() ([]byte, error) {
	return decodeBase64(r.PDF)
}

// DecodeStamp returns the raw stamp (TED) bytes, or nil when absent.
func (r *DocumentResponse) DecodeStamp() ([]byte, error) {
	return decodeBase64(r.Stamp)
}

// DecodeLogo returns the raw logo bytes, or nil when absent.
func (r *DocumentResponse) DecodeLogo() ([]byte, error) {
	return decodeBase64(r.Logo)
}

// DecodeXML returns the document XML as UTF-8, or "" when absent. The remote
// system emits ISO-8859-1 encoded XML, so the decoded bytes are re-encoded.
func (r *DocumentResponse) DecodeXML() (string, error) {
	return decodeLatin1XML(r.XML)
}

// XMLDocument parses the decoded DTE XML for callers that want to inspect it.
func (r *DocumentResponse) XMLDocument() (*etree.Document, error) {
	xml, err := r.DecodeXML()
	if err != nil {
		return nil, err
	}
	if xml == "" {
		return nil, errors.New("response carries no XML payload")
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		return nil, errors.Wrap(err, "parse DTE XML")
	}
	return doc, nil
}

func decodeBase64(content string) ([]byte, error) {
	if content == "" {
		return nil, nil
	}
	raw, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, errors.Wrap(err, "decode base64 payload")
	}
	return raw, nil
}

func decodeLatin1XML(content string) (string, error) {
	raw, err := decodeBase64(content)
	if err != nil || raw == nil {
		return "", err
	}

	reader := transform.NewReader(strings.NewReader(string(raw)), charmap.ISO8859_1.NewDecoder())
	utf8, err := io.ReadAll(reader)
	if err != nil {
		return "", errors.Wrap(err, "re-encode XML as UTF-8")
	}
	return string(utf8), nil
}
