// Package companydir looks up company master data from the directory
// service. Lookups are best-effort decoration: a miss or outage degrades to
// an empty name, never to a failed request.
package companydir

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"taxengine/internal/config"
)

type companyResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client handles integration with the company directory service
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new company directory client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.CompanyServiceURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// CompanyName returns the registered name for a company ID, or "" when the
// directory is unconfigured, unreachable, or has no such company.
func (c *Client) CompanyName(ctx context.Context, companyID string) string {
	if c.url == "" {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/api/v1/companies/"+companyID, nil)
	if err != nil {
		return ""
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.WithError(err).Warn("company directory lookup failed")
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var out companyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.log.WithError(err).Warn("company directory response unreadable")
		return ""
	}
	return out.Name
}
