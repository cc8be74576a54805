package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client provides JSON-RPC access to a chain node.
type Client struct {
	rpcURL     string
	httpClient *http.Client
}

// Config holds client configuration.
type Config struct {
	RPCURL  string
	Timeout time.Duration
}

// NewClient creates a new RPC client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("RPC URL required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		rpcURL:     cfg.RPCURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params,omitempty"`
}

// RPCError is a JSON-RPC level failure returned by the node.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// Call makes a single JSON-RPC call to the node.
func (c *Client) Call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	req := rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}
	return rpcResp.Result, nil
}

// GetLatestBlockhash fetches a fresh recent blockhash for transaction
// building.  Blockhashes expire, so callers fetch one immediately before
// submission.
func (c *Client) GetLatestBlockhash(ctx context.Context) (string, error) {
	result, err := c.Call(ctx, "getLatestBlockhash", []any{map[string]any{"commitment": "confirmed"}})
	if err != nil {
		return "", err
	}
	var out struct {
		Value struct {
			Blockhash string `json:"blockhash"`
		} `json:"value"`
	}
	if err := json.Unmarshal(result, &out); err != nil {
		return "", fmt.Errorf("parse blockhash: %w", err)
	}
	if out.Value.Blockhash == "" {
		return "", fmt.Errorf("node returned empty blockhash")
	}
	return out.Value.Blockhash, nil
}

// GetBalance returns the lamport balance of an account.
func (c *Client) GetBalance(ctx context.Context, account PublicKey) (uint64, error) {
	result, err := c.Call(ctx, "getBalance", []any{account.String()})
	if err != nil {
		return 0, err
	}
	var out struct {
		Value uint64 `json:"value"`
	}
	if err := json.Unmarshal(result, &out); err != nil {
		return 0, fmt.Errorf("parse balance: %w", err)
	}
	return out.Value, nil
}

// AccountInfo is the subset of account state the actions need.
type AccountInfo struct {
	Lamports uint64 `json:"lamports"`
	Owner    string `json:"owner"`
}

// GetAccountInfo returns nil without error when the account does not exist,
// which is how vault initialization and item-id collision checks probe for
// absence.
func (c *Client) GetAccountInfo(ctx context.Context, account PublicKey) (*AccountInfo, error) {
	result, err := c.Call(ctx, "getAccountInfo", []any{account.String(), map[string]any{"encoding": "base64"}})
	if err != nil {
		return nil, err
	}
	var out struct {
		Value *AccountInfo `json:"value"`
	}
	if err := json.Unmarshal(result, &out); err != nil {
		return nil, fmt.Errorf("parse account info: %w", err)
	}
	return out.Value, nil
}

// SignatureStatus reports the confirmation state of a submitted transaction.
// Err carries the program error verbatim when execution failed.
type SignatureStatus struct {
	Slot               uint64          `json:"slot"`
	Err                json.RawMessage `json:"err"`
	ConfirmationStatus string          `json:"confirmationStatus"`
}

// Failed reports whether the transaction executed and errored.
func (s *SignatureStatus) Failed() bool {
	return len(s.Err) > 0 && string(s.Err) != "null"
}

// Confirmed reports whether the cluster has confirmed the transaction.
func (s *SignatureStatus) Confirmed() bool {
	return s.ConfirmationStatus == "confirmed" || s.ConfirmationStatus == "finalized"
}

// GetSignatureStatuses looks up the status of each signature; entries are
// nil while the cluster has not seen the transaction yet.
func (c *Client) GetSignatureStatuses(ctx context.Context, signatures []string) ([]*SignatureStatus, error) {
	result, err := c.Call(ctx, "getSignatureStatuses", []any{signatures})
	if err != nil {
		return nil, err
	}
	var out struct {
		Value []*SignatureStatus `json:"value"`
	}
	if err := json.Unmarshal(result, &out); err != nil {
		return nil, fmt.Errorf("parse signature statuses: %w", err)
	}
	return out.Value, nil
}

// SendTransaction submits a base64-encoded signed transaction and returns
// its signature.
func (c *Client) SendTransaction(ctx context.Context, txBase64 string) (string, error) {
	result, err := c.Call(ctx, "sendTransaction", []any{txBase64, map[string]any{"encoding": "base64"}})
	if err != nil {
		return "", err
	}
	var sig string
	if err := json.Unmarshal(result, &sig); err != nil {
		return "", fmt.Errorf("parse signature: %w", err)
	}
	return sig, nil
}
