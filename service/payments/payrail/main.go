package payrail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/pkg/errors"

	"gitlab.com/missiondax-platform/ledger_api/service"
)

// Client talks to the payment-rail collaborator. The ledger only ever
// asks it to move money; confirmation drives the COMPLETE transition, the
// rail never writes ledger state itself.
type Client struct {
	apiURL string
	apiKey string
	http   *http.Client
}

// Init constructor
func Init(apiURL, apiKey string) *Client {
	return &Client{
		apiURL: apiURL,
		apiKey: apiKey,
		http:   &http.Client{},
	}
}

type disburseResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// Disburse submits one payout instruction. The caller bounds the call
// with its context; on any error the transfer is treated as not having
// happened and the caller retries the whole batch later.
func (c *Client) Disburse(ctx context.Context, instruction service.Instruction) error {
	body, err := json.Marshal(instruction)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/v1/payouts", c.apiURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)
	// the ref id doubles as the rail-side idempotency key
	req.Header.Set("Idempotency-Key", instruction.RefID)

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "payment rail request failed")
	}
	defer resp.Body.Close()

	respBody, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "payment rail response unreadable")
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return errors.Errorf("payment rail returned %d: %s", resp.StatusCode, string(respBody))
	}

	parsed := disburseResponse{}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return errors.Wrap(err, "payment rail response invalid")
	}
	if parsed.Status != "confirmed" {
		return errors.Errorf("payment rail did not confirm: %s %s", parsed.Status, parsed.Reason)
	}
	return nil
}
