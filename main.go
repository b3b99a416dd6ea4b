package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/openfactura/go-openfactura-client/openfactura"
	"github.com/openfactura/go-openfactura-client/openfactura/api"
	"github.com/openfactura/go-openfactura-client/openfactura/model"
	"github.com/openfactura/go-openfactura-client/openfactura/util"
)

func main() {

	logrus.SetLevel(logrus.DebugLevel)

	apiKey := util.GetEnvOrFailed("OF_API_KEY")

	client, err := openfactura.New(openfactura.Config{
		APIKey:      apiKey,
		Environment: openfactura.Development,
		Timeout:     15 * time.Second,
	})
	if err != nil {
		panic(err)
	}

	ctx := context.Background()

	issuer, err := client.Organizations().CurrentAsIssuer(ctx)
	if err != nil {
		panic(err)
	}

	document, err := model.NewDTE(model.Invoice,
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
				Name:       "Servicio de desarrollo",
				Quantity:   model.DecInt(1),
				Price:      model.DecInt(100000),
				Amount:     model.DecInt(100000),
			},
		},
		model.Totals{
			NetAmount:   model.DecInt(100000),
			TaxAmount:   model.DecInt(19000),
			TotalAmount: model.DecInt(119000),
			TaxRate:     model.Dec(19),
		})
	if err != nil {
		panic(err)
	}

	response, err := client.Documents().Emit(ctx, document, issuer, api.EmitOptions{
		ResponseTypes: []api.ResponseType{api.ResponseToken, api.ResponseFolio, api.ResponsePDF},
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("token: %s folio: %d idempotency key: %s\n",
		response.Token, response.Folio, response.IdempotencyKey)

	link, err := openfactura.VerificationLink(issuer.TaxID, document.Type(), response.Folio, 119000)
	if err != nil {
		panic(err)
	}
	fmt.Println("verification link:", link)
}
