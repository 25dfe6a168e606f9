// Package journal posts accounting entries for recorded advance-tax
// payments to the external journal service.
package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"taxengine/internal/apperr"
	"taxengine/internal/config"
)

// EntryRequest describes one payment to be journaled.
type EntryRequest struct {
	PaymentID     string          `json:"payment_id"`
	AssessmentID  string          `json:"assessment_id"`
	CompanyID     string          `json:"company_id"`
	FinancialYear string          `json:"financial_year"`
	PaymentDate   string          `json:"payment_date"` // YYYY-MM-DD
	Amount        decimal.Decimal `json:"amount"`
	ChallanNumber string          `json:"challan_number"`
	Narration     string          `json:"narration"`
}

type entryResponse struct {
	JournalNumber string `json:"journal_number"`
}

// Client handles integration with the accounting journal service
type Client struct {
	url    string
	token  string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new journal client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url:   cfg.JournalServiceURL,
		token: cfg.JournalServiceToken,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// PostEntry submits the entry and returns the journal number assigned by the
// accounting system. Any failure comes back as an external-dependency error;
// the caller's own write is already durable by the time this runs.
func (c *Client) PostEntry(ctx context.Context, entry EntryRequest) (string, error) {
	if c.url == "" {
		return "", apperr.External("journal", fmt.Errorf("JOURNAL_SERVICE_URL not configured"))
	}

	body, err := json.Marshal(entry)
	if err != nil {
		return "", apperr.External("journal", fmt.Errorf("failed to encode entry: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/api/v1/journal-entries", bytes.NewBuffer(body))
	if err != nil {
		return "", apperr.External("journal", fmt.Errorf("failed to create request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", apperr.External("journal", fmt.Errorf("request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", apperr.External("journal", fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	var out entryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperr.External("journal", fmt.Errorf("failed to decode response: %v", err))
	}
	if out.JournalNumber == "" {
		return "", apperr.External("journal", fmt.Errorf("response carried no journal number"))
	}

	c.log.WithFields(logrus.Fields{
		"payment_id":     entry.PaymentID,
		"journal_number": out.JournalNumber,
	}).Info("journal entry posted")
	return out.JournalNumber, nil
}
