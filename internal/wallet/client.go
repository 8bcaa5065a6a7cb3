// Package wallet is the HTTP client for the wallet service. Every call is
// authenticated with a freshly issued service token and treated as optional:
// the wallet being down never fails a user-facing request.
package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/jacksonn455/user-service/internal/events"
	"github.com/jacksonn455/user-service/internal/token"
)

const serviceName = "user-service"

// FinancialData merges the wallet's view of a user. Either side is nil when
// the wallet call for it failed or the wallet integration is disabled.
type FinancialData struct {
	Balance      json.RawMessage `json:"balance"`
	Transactions json.RawMessage `json:"transactions"`
}

type Client struct {
	baseURL    string
	enabled    bool
	issuer     *token.Issuer
	httpClient *http.Client
}

func NewClient(baseURL string, enabled bool, issuer *token.Issuer) *Client {
	return &Client{
		baseURL: baseURL,
		enabled: enabled,
		issuer:  issuer,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// NotifyEvent pushes an event to the wallet service. Fire and forget: any
// failure is logged and swallowed, this signal is not critical.
func (c *Client) NotifyEvent(ctx context.Context, event string, data any) {
	if !c.enabled {
		log.Printf("Wallet service communication disabled, skipping event %s", event)
		return
	}

	body, err := json.Marshal(events.Envelope{
		Event:     event,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("Failed to marshal wallet event %s: %v", event, err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/internal/events", bytes.NewReader(body))
	if err != nil {
		log.Printf("Failed to build wallet event request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if err := c.authorize(req); err != nil {
		log.Printf("Failed to authorize wallet event request: %v", err)
		return
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("Failed to notify wallet service: %v", err)
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		log.Printf("Wallet service rejected event %s: status %d", event, resp.StatusCode)
		return
	}
	log.Printf("Event %s sent to wallet service", event)
}

// GetBalance returns the wallet balance payload for a user, or nil on any
// failure.
func (c *Client) GetBalance(ctx context.Context, userID string) json.RawMessage {
	return c.getJSON(ctx, "/api/internal/balance/"+userID)
}

// GetTransactions returns the wallet transaction payload for a user, or nil
// on any failure.
func (c *Client) GetTransactions(ctx context.Context, userID string) json.RawMessage {
	return c.getJSON(ctx, "/api/internal/transactions/"+userID)
}

// FinancialData fetches balance and transactions concurrently; the two calls
// fail independently.
func (c *Client) FinancialData(ctx context.Context, userID string) *FinancialData {
	data := &FinancialData{}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		data.Balance = c.GetBalance(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		data.Transactions = c.GetTransactions(ctx, userID)
	}()
	wg.Wait()

	return data
}

func (c *Client) getJSON(ctx context.Context, path string) json.RawMessage {
	if !c.enabled {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		log.Printf("Failed to build wallet request %s: %v", path, err)
		return nil
	}
	if err := c.authorize(req); err != nil {
		log.Printf("Failed to authorize wallet request %s: %v", path, err)
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("Wallet request %s failed: %v", path, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Wallet request %s returned status %d", path, resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Failed to read wallet response for %s: %v", path, err)
		return nil
	}
	return json.RawMessage(body)
}

// authorize attaches a freshly issued service token. Tokens are deliberately
// not reused across calls.
func (c *Client) authorize(req *http.Request) error {
	internalToken, err := c.issuer.IssueServiceToken(serviceName)
	if err != nil {
		return fmt.Errorf("failed to issue service token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+internalToken)
	return nil
}
