// Package guardian is a client for the guardian API.
package guardian

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	httpClient "github.com/guardian/guardian-api/libs/go/client/http"
	"github.com/guardian/guardian-api/libs/go/interfaces"
	"github.com/guardian/guardian-api/libs/go/types/api/requests"
	"github.com/guardian/guardian-api/libs/go/types/api/responses"
	"github.com/guardian/guardian-api/libs/go/types/business"
)

const apiPrefix = "/api/v1"

// ErrPauseReverted is returned when the drill ledger rejected pauseMarket.
var ErrPauseReverted = errors.New("pause transaction reverted")

// Client signs every request with its key, so the API sees the key's
// address as the caller.
type Client struct {
	http    *httpClient.HTTPClient
	address common.Address
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string, key *ecdsa.PrivateKey, opts ...httpClient.ClientOption) *Client {
	options := append([]httpClient.ClientOption{
		httpClient.WithBaseURL(baseURL),
		httpClient.WithSigner(key),
	}, opts...)
	return &Client{
		http:    httpClient.NewHTTPClient(options...),
		address: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// Address is the caller identity the API derives from the signatures.
func (c *Client) Address() common.Address {
	return c.address
}

// PauseMarket asks the drill pause module to pause market.
func (c *Client) PauseMarket(ctx context.Context, market common.Address) (*responses.PauseResponse, error) {
	resp, err := c.http.Post(ctx, apiPrefix+"/drill/pause", requests.DrillPauseRequest{Market: market.Hex()})
	if err != nil {
		return nil, fmt.Errorf("failed to pause %s: %w", market.Hex(), err)
	}
	var out responses.PauseResponse
	if err := c.http.ProcessJSONResponse(resp, &out); err != nil {
		return nil, fmt.Errorf("failed to decode pause response: %w", err)
	}
	return &out, nil
}

// SubmitPause implements interfaces.PauseSubmitter against the drill API.
// The returned hash is derived from the ledger transaction id.
func (c *Client) SubmitPause(ctx context.Context, market common.Address) (common.Hash, error) {
	out, err := c.PauseMarket(ctx, market)
	if err != nil {
		return common.Hash{}, err
	}
	if !out.Receipt.Success {
		return common.Hash{}, fmt.Errorf("%w: %s", ErrPauseReverted, out.Receipt.Error)
	}
	return crypto.Keccak256Hash([]byte(out.Receipt.TxID)), nil
}

// Approve records fingerprints[i] for nonces[i] on account. The client key
// must belong to an auditor of account.
func (c *Client) Approve(ctx context.Context, account common.Address, nonces []*big.Int, fingerprints []common.Hash) (*responses.ApproveResponse, error) {
	body := requests.ApproveRequest{
		Nonces: make([]json.Number, len(nonces)),
		Hashes: make([]string, len(fingerprints)),
	}
	for i, n := range nonces {
		body.Nonces[i] = json.Number(n.String())
	}
	for i, h := range fingerprints {
		body.Hashes[i] = h.Hex()
	}

	resp, err := c.http.Post(ctx, fmt.Sprintf("%s/accounts/%s/approvals", apiPrefix, account.Hex()), body)
	if err != nil {
		return nil, fmt.Errorf("failed to approve: %w", err)
	}
	var out responses.ApproveResponse
	if err := c.http.ProcessJSONResponse(resp, &out); err != nil {
		return nil, fmt.Errorf("failed to decode approve response: %w", err)
	}
	return &out, nil
}

// CheckTransaction runs the guard check with the client as submitter. A
// rejected check returns the decision together with the HTTP error.
func (c *Client) CheckTransaction(ctx context.Context, account common.Address, tx business.SafeTransaction) (*business.GuardDecision, error) {
	body := requests.CheckTransactionRequest{Transaction: requests.NewSafeTransactionRequest(tx)}
	resp, err := c.http.Post(ctx, fmt.Sprintf("%s/accounts/%s/check", apiPrefix, account.Hex()), body)
	if resp == nil {
		return nil, fmt.Errorf("failed to check transaction: %w", err)
	}

	var out responses.GuardCheckResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&out); decodeErr != nil && err == nil {
		err = fmt.Errorf("failed to decode check response: %w", decodeErr)
	}
	resp.Body.Close()
	return out.Decision, err
}

// MarketState reads a drill market.
func (c *Client) MarketState(ctx context.Context, market common.Address) (*business.MarketState, error) {
	resp, err := c.http.Get(ctx, fmt.Sprintf("%s/drill/markets/%s", apiPrefix, market.Hex()))
	if err != nil {
		return nil, fmt.Errorf("failed to read market %s: %w", market.Hex(), err)
	}
	var out business.MarketState
	if err := c.http.ProcessJSONResponse(resp, &out); err != nil {
		return nil, fmt.Errorf("failed to decode market state: %w", err)
	}
	return &out, nil
}

var _ interfaces.PauseSubmitter = (*Client)(nil)
