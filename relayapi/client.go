package relayapi

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"strings"
	"time"

	retry "github.com/avast/retry-go/v4"
	"github.com/egaotan/solana-relay/fee"
	"github.com/gagliardetto/solana-go"
)

// Client talks to the fee relayer service. The service pays network fees as
// fee payer and is reimbursed through the user's relay deposit account.
type Client struct {
	endpoint string
	client   *http.Client
	logger   *log.Logger
}

func NewClient(endpoint string, logger *log.Logger) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: time.Second * 30},
		logger:   logger,
	}
}

type freeFeeLimitsResponse struct {
	Authority []byte `json:"authority"`
	Limits    struct {
		UseFreeFee        bool   `json:"use_free_fee"`
		MaxAmount         uint64 `json:"max_amount"`
		MaxCount          uint64 `json:"max_count"`
		MaxTokenAccountCreationAmount uint64 `json:"max_token_account_creation_amount"`
		MaxTokenAccountCreationCount  uint64 `json:"max_token_account_creation_count"`
	} `json:"limits"`
	ProcessedFee struct {
		TotalAmount                    uint64 `json:"total_amount"`
		Count                          uint64 `json:"count"`
		TokenAccountCreationAmountUsed uint64 `json:"token_account_creation_amount_used"`
		TokenAccountCreationCountUsed  uint64 `json:"token_account_creation_count_used"`
	} `json:"processed_fee"`
}

// FeePayer asks the relay which account it signs fee payments with.
func (c *Client) FeePayer() (solana.PublicKey, error) {
	body, err := c.get("/fee_payer/pubkey")
	if err != nil {
		return solana.PublicKey{}, err
	}
	pubkey, err := solana.PublicKeyFromBase58(strings.Trim(string(body), "\"\n "))
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("relay fee payer pubkey is not valid: %s", err)
	}
	return pubkey, nil
}

// FreeFeeLimits fetches the user's free tier quota counters.
func (c *Client) FreeFeeLimits(authority solana.PublicKey) (fee.UsageStatus, error) {
	usage := fee.UsageStatus{}
	body, err := c.get(fmt.Sprintf("/free_fee_limits/%s", authority.String()))
	if err != nil {
		return usage, err
	}
	response := freeFeeLimitsResponse{}
	if err := json.Unmarshal(body, &response); err != nil {
		return usage, fmt.Errorf("free fee limits response is not valid: %s", err)
	}
	usage.MaxUsage = response.Limits.MaxCount
	usage.CurrentUsage = response.ProcessedFee.Count
	usage.MaxAmount = response.Limits.MaxAmount
	usage.AmountUsed = response.ProcessedFee.TotalAmount
	usage.MaxTokenAccountCreationAmount = response.Limits.MaxTokenAccountCreationAmount
	usage.MaxTokenAccountCreationCount = response.Limits.MaxTokenAccountCreationCount
	usage.TokenAccountCreationAmountUsed = response.ProcessedFee.TokenAccountCreationAmountUsed
	usage.TokenAccountCreationCountUsed = response.ProcessedFee.TokenAccountCreationCountUsed
	return usage, nil
}

type sendTransactionRequest struct {
	Transaction string            `json:"transaction"`
	Metadata    map[string]string `json:"info,omitempty"`
}

// SendTransaction submits a signed transaction to the relay. Only two
// transient service errors are retried, a bounded number of times with
// backoff; everything else is terminal for this attempt.
func (c *Client) SendTransaction(trx *solana.Transaction, metadata map[string]string) (string, error) {
	data, err := trx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("transaction marshal err: %s", err)
	}
	request := &sendTransactionRequest{
		Transaction: base64.StdEncoding.EncodeToString(data),
		Metadata:    metadata,
	}
	requestJson, err := json.Marshal(request)
	if err != nil {
		return "", err
	}
	var signature string
	err = retry.Do(
		func() error {
			body, err := c.post("/relay_transaction", requestJson)
			if err != nil {
				return err
			}
			signature = strings.Trim(string(body), "\"\n ")
			return nil
		},
		retry.Attempts(uint(3)),
		retry.Delay(time.Millisecond*500),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Printf("relay_transaction retry %d, err: %s", n+1, err.Error())
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", err
	}
	return signature, nil
}

func isRetryable(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Maximum number of instructions allowed") ||
		strings.Contains(msg, "connection closed before message completed")
}

func (c *Client) get(path string) ([]byte, error) {
	req, err := http.NewRequest("GET", c.endpoint+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accepts", "application/json")
	return c.do(req)
}

func (c *Client) post(path string, body []byte) ([]byte, error) {
	req, err := http.NewRequest("POST", c.endpoint+path, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accepts", "application/json")
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("relay err, status code: %d, %s", resp.StatusCode, string(body))
	}
	return body, nil
}
