package openfactura

import (
	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/openfactura/go-openfactura-client/openfactura/api"
	"github.com/openfactura/go-openfactura-client/openfactura/util"
)

// Client is the entry point: one configured transport shared by the document
// and organization services.
type Client struct {
	config        Config
	documents     api.DocumentService
	organizations api.OrganizationService
}

func New(config Config) (*Client, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required")
	}

	if util.DebugEnabled() {
		logrus.SetLevel(logrus.DebugLevel)
	}

	transport := api.New(config.baseURL(), config.APIKey, config.Timeout)

	return &Client{
		config:        config,
		documents:     api.NewDocumentService(transport),
		organizations: api.NewOrganizationService(transport),
	}, nil
}

func (c *Client) Documents() api.DocumentService {
	return c.documents
}

func (c *Client) Organizations() api.OrganizationService {
	return c.organizations
}
