package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfactura/go-openfactura-client/openfactura/model"
)

type recordedRequest struct {
	method string
	path   string
	query  url.Values
	header http.Header
	body   map[string]any
}

// stubServer answers every request with the given status and body and records
// what it saw.
func stubServer(t *testing.T, status int, responseBody string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()

	var requests []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorded := recordedRequest{method: r.Method, path: r.URL.Path, query: r.URL.Query(), header: r.Header.Clone()}
		_ = json.NewDecoder(r.Body).Decode(&recorded.body)
		requests = append(requests, recorded)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(responseBody))
	}))
	t.Cleanup(server.Close)

	return server, &requests
}

func testDocument(t *testing.T) *model.DTE {
	t.Helper()

	d, err := model.NewDTE(model.Invoice,
		model.Receiver{
			TaxID:            "76795561-8",
			BusinessName:     "Cliente de Prueba SpA",
			BusinessActivity: "Venta al por menor",
			Contact:          "contacto@cliente.cl",
			Address:          "Av. Providencia 1234",
			Commune:          "Providencia",
		},
		[]model.Item{
			{
				LineNumber: 1,
				Name:       "Servicio",
				Quantity:   model.DecInt(1),
				Price:      model.DecInt(100000),
				Amount:     model.DecInt(100000),
			},
		},
		model.Totals{TotalAmount: model.DecInt(119000)})
	require.NoError(t, err)
	return d
}

func testIssuer() *model.Issuer {
	return &model.Issuer{
		TaxID:                "76123456-7",
		BusinessName:         "Emisora de Prueba SpA",
		BusinessActivity:     "Desarrollo de software",
		EconomicActivityCode: "620200",
		Address:              "Huérfanos 100",
		Commune:              "Santiago",
	}
}

func TestDocuments_Emit(t *testing.T) {
	server, requests := stubServer(t, 200, `{"TOKEN":"t1","FOLIO":42}`)
	service := NewDocumentService(New(server.URL, "key", 0))

	document := testDocument(t)
	response, err := service.Emit(context.Background(), document, testIssuer(), EmitOptions{})
	require.NoError(t, err)

	assert.Equal(t, "t1", response.Token)
	assert.Equal(t, 42, response.Folio)
	assert.True(t, response.Success())
	assert.NotEmpty(t, response.IdempotencyKey, "a fresh key is generated when none is supplied")

	require.Len(t, *requests, 1)
	sent := (*requests)[0]
	assert.Equal(t, http.MethodPost, sent.method)
	assert.Equal(t, "/v2/dte/document", sent.path)
	assert.Equal(t, response.IdempotencyKey, sent.header.Get("Idempotency-Key"))
	assert.Equal(t, "key", sent.header.Get("apikey"))

	// issuer was attached in place before serialization
	require.NotNil(t, document.Issuer())
	assert.Equal(t, "76123456-7", document.Issuer().TaxID)

	dte, ok := sent.body["dte"].(map[string]any)
	require.True(t, ok)
	header, ok := dte["Encabezado"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, header, "Emisor")
	assert.Equal(t, []any{"TOKEN"}, sent.body["response"])
}

func TestDocuments_Emit_SuppliedIdempotencyKey(t *testing.T) {
	server, requests := stubServer(t, 200, `{"TOKEN":"t1"}`)
	service := NewDocumentService(New(server.URL, "key", 0))

	response, err := service.Emit(context.Background(), testDocument(t), testIssuer(), EmitOptions{
		IdempotencyKey: "my-key-123",
		ResponseTypes:  []ResponseType{ResponseToken, ResponsePDF},
		SendEmail:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, "my-key-123", response.IdempotencyKey)

	sent := (*requests)[0]
	assert.Equal(t, "my-key-123", sent.header.Get("Idempotency-Key"))
	assert.Equal(t, []any{"TOKEN", "PDF"}, sent.body["response"])
	assert.Equal(t, true, sent.body["sendEmail"])
}

func TestDocuments_Emit_KeepsExistingIssuer(t *testing.T) {
	server, _ := stubServer(t, 200, `{"TOKEN":"t1"}`)
	service := NewDocumentService(New(server.URL, "key", 0))

	document := testDocument(t)
	original := testIssuer()
	document.SetIssuer(original)

	other := testIssuer()
	other.TaxID = "11111111-1"

	_, err := service.Emit(context.Background(), document, other, EmitOptions{})
	require.NoError(t, err)
	assert.Equal(t, "76123456-7", document.Issuer().TaxID)
}

func TestDocuments_Emit_ValidationBeforeNetwork(t *testing.T) {
	server, requests := stubServer(t, 200, `{"TOKEN":"t1"}`)
	service := NewDocumentService(New(server.URL, "key", 0))

	document := testDocument(t)
	document.Items[0].Quantity = nil

	_, err := service.Emit(context.Background(), document, testIssuer(), EmitOptions{})

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, *requests, "a bad document must not reach the network")
}

func TestDocuments_Emit_Rejection(t *testing.T) {
	server, _ := stubServer(t, 400, `{"error":{"code":"OF-01","message":"Faltan datos obligatorios"}}`)
	service := NewDocumentService(New(server.URL, "key", 0))

	_, err := service.Emit(context.Background(), testDocument(t), testIssuer(), EmitOptions{})

	var docErr *DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, "OF-01", docErr.Code)
	assert.Equal(t, "Faltan datos obligatorios", docErr.Message)
}

func TestDocuments_Emit_TransportErrorPassesThrough(t *testing.T) {
	server, _ := stubServer(t, 401, `{"detail":"bad api key"}`)
	service := NewDocumentService(New(server.URL, "key", 0))

	_, err := service.Emit(context.Background(), testDocument(t), testIssuer(), EmitOptions{})

	var auth *AuthenticationError
	require.ErrorAs(t, err, &auth)
	assert.Equal(t, 401, auth.StatusCode)
}

func TestDocuments_Emit_NilArguments(t *testing.T) {
	server, requests := stubServer(t, 200, `{"TOKEN":"t1"}`)
	service := NewDocumentService(New(server.URL, "key", 0))

	_, err := service.Emit(context.Background(), nil, testIssuer(), EmitOptions{})
	assert.ErrorContains(t, err, "document is required")

	_, err = service.Emit(context.Background(), testDocument(t), nil, EmitOptions{})
	assert.ErrorContains(t, err, "issuer is required")

	assert.Empty(t, *requests)
}

func TestDocuments_FindByToken_Status(t *testing.T) {
	server, requests := stubServer(t, 200, `Aceptado`)
	service := NewDocumentService(New(server.URL, "key", 0))

	response, err := service.FindByToken(context.Background(), "tok-1", "STATUS")
	require.NoError(t, err)

	assert.Equal(t, model.QueryStatus, response.QueryType)
	assert.Equal(t, "Aceptado", response.Status)
	assert.True(t, response.HasDocument())

	sent := (*requests)[0]
	assert.Equal(t, http.MethodGet, sent.method)
	assert.Equal(t, "/v2/dte/document/tok-1/status", sent.path)
}

func TestDocuments_FindByToken_JSON(t *testing.T) {
	server, _ := stubServer(t, 200, `{"id":"doc-1","estado":"Aceptado","folio":7}`)
	service := NewDocumentService(New(server.URL, "key", 0))

	response, err := service.FindByToken(context.Background(), "tok-2", "json")
	require.NoError(t, err)

	require.True(t, response.HasDocument())
	assert.Equal(t, "doc-1", response.Document.ID)
	assert.Equal(t, 7, response.Folio)
}

func TestDocuments_FindByToken_ArgumentErrors(t *testing.T) {
	server, requests := stubServer(t, 200, `{}`)
	service := NewDocumentService(New(server.URL, "key", 0))

	_, err := service.FindByToken(context.Background(), "", "json")
	assert.ErrorContains(t, err, "token is required")

	_, err = service.FindByToken(context.Background(), "tok-1", "html")
	assert.ErrorContains(t, err, "invalid query type")

	assert.Empty(t, *requests, "argument errors must not reach the network")
}
