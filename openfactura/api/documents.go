package api

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/openfactura/go-openfactura-client/openfactura/model"
)

const documentPath = "/v2/dte/document"

// ResponseType selects which payloads the emission call should answer with.
type ResponseType string

const (
	ResponseToken      ResponseType = "TOKEN"
	ResponseFolio      ResponseType = "FOLIO"
	ResponseXML        ResponseType = "XML"
	ResponsePDF        ResponseType = "PDF"
	ResponseStamp      ResponseType = "TIMBRE"
	ResponseResolution ResponseType = "RESOLUCION"
)

// EmitOptions tunes a single emission. The zero value asks for a token only
// and lets the service generate a fresh idempotency key.
type EmitOptions struct {
	ResponseTypes  []ResponseType
	Custom         map[string]any
	IVAExceptional bool
	SendEmail      bool
	IdempotencyKey string
}

type DocumentService interface {
	Emit(ctx context.Context, document *model.DTE, issuer *model.Issuer, opts EmitOptions) (*model.DocumentResponse, error)
	FindByToken(ctx context.Context, token, value string) (*model.DocumentQueryResponse, error)
}

type documents struct {
	client Client
}

func NewDocumentService(client Client) DocumentService {
	return &documents{client: client}
}

// Emit validates and serializes the document locally, then submits it with an
// Idempotency-Key header. When the document carries no issuer the given one is
// attached in place, so the caller's document is mutated. A rejection arriving
// as the {error:{...}} envelope comes back as *DocumentError, any other
// transport failure passes through unchanged.
func (s *documents) Emit(ctx context.Context, document *model.DTE, issuer *model.Issuer, opts EmitOptions) (*model.DocumentResponse, error) {

	if document == nil {
		return nil, errors.New("document is required")
	}
	if issuer == nil {
		return nil, errors.New("issuer is required")
	}

	key := opts.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	if document.Issuer() == nil {
		document.SetIssuer(issuer)
	}

	// serialization happens before the request, a bad document never costs a
	// network round trip
	wire, err := document.Wire()
	if err != nil {
		return nil, err
	}

	responseTypes := opts.ResponseTypes
	if len(responseTypes) == 0 {
		responseTypes = []ResponseType{ResponseToken}
	}

	body := map[string]any{
		"dte":      wire,
		"response": responseTypes,
	}
	if opts.Custom != nil {
		body["custom"] = opts.Custom
	}
	if opts.IVAExceptional {
		body["ivaExceptional"] = true
	}
	if opts.SendEmail {
		body["sendEmail"] = true
	}

	log.Debugf("emitting DTE type %d with idempotency key %s", document.Type(), key)

	payload, err := s.client.Post(ctx, documentPath, body, map[string]string{"Idempotency-Key": key})
	if err != nil {
		return nil, upgradeDocumentError(err)
	}

	bag, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected emission payload %T", payload)
	}

	response := model.DocumentResponseFromPayload(model.Attributes(bag))
	response.IdempotencyKey = key
	return response, nil
}

// FindByToken looks up an emitted document in the requested representation:
// status, xml, json, pdf or cedible (case-insensitive).
func (s *documents) FindByToken(ctx context.Context, token, value string) (*model.DocumentQueryResponse, error) {

	if token == "" {
		return nil, errors.New("token is required")
	}

	queryType, err := model.ParseQueryType(value)
	if err != nil {
		return nil, err
	}

	log.Debugf("querying document %s as %s", token, queryType)

	payload, err := s.client.Get(ctx, fmt.Sprintf("%s/%s/%s", documentPath, token, queryType), nil, nil)
	if err != nil {
		return nil, err
	}

	return model.DocumentQueryResponseFromPayload(token, queryType, payload), nil
}

type apiError interface {
	error
	status() int
	body() string
}

// upgradeDocumentError re-classifies a transport error as a document rejection
// when its body matches the domain envelope. The decision is based on body
// shape only, the envelope shows up under various 4xx and 5xx statuses.
func upgradeDocumentError(err error) error {
	var re apiError
	if !errors.As(err, &re) {
		return err
	}
	if envelope, ok := extractEnvelope(re.body()); ok {
		return documentErrorFromEnvelope(re.status(), envelope)
	}
	return err
}
