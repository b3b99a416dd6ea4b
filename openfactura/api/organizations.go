package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/openfactura/go-openfactura-client/openfactura/model"
)

const organizationPath = "/v2/dte/organization"

type OrganizationService interface {
	Current(ctx context.Context, extraFields ...string) (*model.Organization, error)
	CurrentAsIssuer(ctx context.Context, extraFields ...string) (*model.Issuer, error)
	AvailableFolios(ctx context.Context) (map[string]any, error)
}

type organizations struct {
	client Client
}

func NewOrganizationService(client Client) OrganizationService {
	return &organizations{client: client}
}

// Current fetches the organization the API key belongs to. Extra fields (for
// example "logo") are passed through as the extra_fields query parameter.
func (s *organizations) Current(ctx context.Context, extraFields ...string) (*model.Organization, error) {

	log.Debug("fetching current organization")

	var query url.Values
	if len(extraFields) > 0 {
		query = url.Values{"extra_fields": []string{strings.Join(extraFields, ",")}}
	}

	payload, err := s.client.Get(ctx, organizationPath, query, nil)
	if err != nil {
		return nil, err
	}

	bag, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected organization payload %T", payload)
	}

	return model.OrganizationFromPayload(model.Attributes(bag)), nil
}

// CurrentAsIssuer fetches the organization and derives issuer data from its
// primary activity.
func (s *organizations) CurrentAsIssuer(ctx context.Context, extraFields ...string) (*model.Issuer, error) {
	organization, err := s.Current(ctx, extraFields...)
	if err != nil {
		return nil, err
	}

	issuer := organization.ToIssuer()
	return &issuer, nil
}

// AvailableFolios returns the remaining folio counts per document type, as the
// raw payload.
func (s *organizations) AvailableFolios(ctx context.Context) (map[string]any, error) {

	log.Debug("fetching available folios")

	payload, err := s.client.Get(ctx, organizationPath+"/document", nil, nil)
	if err != nil {
		return nil, err
	}

	bag, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected folio payload %T", payload)
	}
	return bag, nil
}
