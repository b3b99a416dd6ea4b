package model

import (
	"fmt"
	"strings"
)

// QueryType selects the representation requested from the by-token lookup.
type QueryType string

const (
	QueryJSON    QueryType = "json"
	QueryStatus  QueryType = "status"
	QueryPDF     QueryType = "pdf"
	QueryXML     QueryType = "xml"
	QueryCedible QueryType = "cedible"
)

var queryTypes = []QueryType{QueryStatus, QueryXML, QueryJSON, QueryPDF, QueryCedible}

// ParseQueryType normalizes a case-insensitive query type name.
func ParseQueryType(value string) (QueryType, error) {
	normalized := QueryType(strings.ToLower(strings.TrimSpace(value)))
	for _, qt := range queryTypes {
		if normalized == qt {
			return qt, nil
		}
	}
	return "", fmt.Errorf("invalid query type %q, valid values are %v", value, queryTypes)
}

// DocumentQueryResponse is the decoded by-token lookup. Which fields are
// populated depends on the query type: json and status carry a Document read
// model, pdf/xml/cedible carry one base64 content blob.
type DocumentQueryResponse struct {
	Token     string
	QueryType QueryType
	Folio     int

	Status   string
	Document *Document

	PDF     string
	XML     string
	Cedible string
}

// DocumentQueryResponseFromPayload decodes the lookup payload for the given
// query type. The payload is either a JSON object or, for the status lookup, a
// bare string.
func DocumentQueryResponseFromPayload(token string, queryType QueryType, payload any) *DocumentQueryResponse {
	r := &DocumentQueryResponse{Token: token, QueryType: queryType}

	switch queryType {
	case QueryJSON:
		if bag, ok := toAttributes(payload); ok {
			r.Document = DocumentFromPayload(bag, token)
			r.Folio = bag.integer("folio")
			r.Status = r.Document.Status
		}
	case QueryStatus:
		if status, ok := payload.(string); ok {
			r.Status = status
		} else if bag, ok := toAttributes(payload); ok {
			r.Status = bag.str("status", "estado")
		}
		// synthesize a minimal document so json and status lookups can be
		// handled uniformly
		r.Document = &Document{ID: token, DTEID: token, Status: r.Status}
	case QueryPDF:
		r.PDF, r.Folio = contentField(payload, "pdf")
	case QueryXML:
		r.XML, r.Folio = contentField(payload, "xml")
	case QueryCedible:
		r.Cedible, r.Folio = contentField(payload, "cedible")
	}

	return r
}

// HasDocument reports whether the response carries a document read model.
func (r *DocumentQueryResponse) HasDocument() bool {
	return r.Document != nil
}

// Content returns whichever payload matches the active query type. For json
// and status lookups the content is the status string.
func (r *DocumentQueryResponse) Content() string {
	switch r.QueryType {
	case QueryPDF:
		return r.PDF
	case QueryXML:
		return r.XML
	case QueryCedible:
		return r.Cedible
	default:
		return r.Status
	}
}

// DecodePDF returns the raw PDF bytes, or nil when absent.
func (r *DocumentQueryResponse) DecodePDF() ([]byte, error) {
	return decodeBase64(r.PDF)
}

// DecodeCedible returns the raw cedible-copy PDF bytes, or nil when absent.
func (r *DocumentQueryResponse) DecodeCedible() ([]byte, error) {
	return decodeBase64(r.Cedible)
}

// DecodeXML returns the document XML as UTF-8, or "" when absent.
func (r *DocumentQueryResponse) DecodeXML() (string, error) {
	return decodeLatin1XML(r.XML)
}

func toAttributes(payload any) (Attributes, bool) {
	switch m := payload.(type) {
	case map[string]any:
		return Attributes(m), true
	case Attributes:
		return m, true
	}
	return nil, false
}

// contentField extracts the single base64 blob of a pdf/xml/cedible lookup.
// The blob sits under a key named after the query type, in either case; a
// payload that is not an object is taken as the raw content itself.
func contentField(payload any, key string) (string, int) {
	bag, ok := toAttributes(payload)
	if !ok {
		if raw, isString := payload.(string); isString {
			return raw, 0
		}
		return "", 0
	}
	return bag.str(strings.ToUpper(key), key), bag.integer("FOLIO", "folio")
}
