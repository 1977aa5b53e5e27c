package chain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/imroc/req"
	"github.com/tidwall/gjson"
)

// GatewayClient talks to the contract gateway over HTTP. The gateway wraps the
// deployed tag registry contract and only answers once a submitted transaction
// has been mined, so every call here is a bounded blocking wait.
type GatewayClient struct {
	baseURL string
	apiKey  string
	client  *req.Req
}

// NewGatewayClient create gateway client instance
func NewGatewayClient(baseURL, apiKey string, timeout time.Duration) *GatewayClient {
	r := req.New()
	r.SetTimeout(timeout)

	return &GatewayClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  r,
	}
}

func (g *GatewayClient) header() req.Header {
	h := req.Header{"Accept": "application/json"}
	if g.apiKey != "" {
		h["Authorization"] = "Bearer " + g.apiKey
	}
	return h
}

// CreateTag registers a tag on chain via the gateway
func (g *GatewayClient) CreateTag(ctx context.Context, code, metadataURI string, productIDs []int64) (string, error) {
	body := map[string]interface{}{
		"code":         code,
		"metadata_uri": metadataURI,
		"product_ids":  productIDs,
	}

	resp, err := g.client.Post(g.baseURL+"/contract/tags", ctx, g.header(), req.BodyJSON(&body))
	if err != nil {
		return "", g.wrapTransportError(ctx, err)
	}
	return g.txHashFromResponse(resp)
}

// UpdateStatus submits a status-update transaction via the gateway
func (g *GatewayClient) UpdateStatus(ctx context.Context, code string, status int) (string, error) {
	body := map[string]interface{}{"status": status}

	resp, err := g.client.Post(g.baseURL+"/contract/tags/"+code+"/status", ctx, g.header(), req.BodyJSON(&body))
	if err != nil {
		return "", g.wrapTransportError(ctx, err)
	}
	return g.txHashFromResponse(resp)
}

// RevokeTag submits a revoke transaction via the gateway
func (g *GatewayClient) RevokeTag(ctx context.Context, code, reason string) (string, error) {
	body := map[string]interface{}{"reason": reason}

	resp, err := g.client.Post(g.baseURL+"/contract/tags/"+code+"/revoke", ctx, g.header(), req.BodyJSON(&body))
	if err != nil {
		return "", g.wrapTransportError(ctx, err)
	}
	return g.txHashFromResponse(resp)
}

// GetStatus reads the current on-chain status of a tag (read-only, no transaction)
func (g *GatewayClient) GetStatus(ctx context.Context, code string) (int, error) {
	resp, err := g.client.Get(g.baseURL+"/contract/tags/"+code+"/status", ctx, g.header())
	if err != nil {
		return 0, g.wrapTransportError(ctx, err)
	}

	raw, err := resp.ToString()
	if err != nil {
		return 0, fmt.Errorf("failed to read gateway response: %w", err)
	}

	if code := resp.Response().StatusCode; code != http.StatusOK {
		if code == http.StatusNotFound {
			return 0, ErrTagNotFound
		}
		return 0, fmt.Errorf("%w: %s", ErrCommitRejected, gatewayError(raw, code))
	}

	status := gjson.Get(raw, "status")
	if !status.Exists() {
		return 0, fmt.Errorf("gateway response missing status: %s", raw)
	}
	return int(status.Int()), nil
}

// txHashFromResponse extracts the transaction hash or maps the gateway error
func (g *GatewayClient) txHashFromResponse(resp *req.Resp) (string, error) {
	raw, err := resp.ToString()
	if err != nil {
		return "", fmt.Errorf("failed to read gateway response: %w", err)
	}

	switch code := resp.Response().StatusCode; code {
	case http.StatusOK, http.StatusCreated:
		// fall through to hash extraction
	case http.StatusConflict:
		return "", ErrTagExists
	case http.StatusNotFound:
		return "", ErrTagNotFound
	case http.StatusGatewayTimeout:
		// The gateway gave up waiting for the receipt; the transaction may
		// still be mined later.
		return "", ErrCommitTimeout
	default:
		return "", fmt.Errorf("%w: %s", ErrCommitRejected, gatewayError(raw, code))
	}

	txHash := gjson.Get(raw, "tx_hash").String()
	if txHash == "" {
		return "", fmt.Errorf("gateway response missing tx_hash: %s", raw)
	}
	return txHash, nil
}

// wrapTransportError distinguishes an ambiguous timeout from a plain failure
func (g *GatewayClient) wrapTransportError(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%w: %v", ErrCommitTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrCommitTimeout, err)
	}
	return fmt.Errorf("gateway request failed: %w", err)
}

func gatewayError(raw string, statusCode int) string {
	if msg := gjson.Get(raw, "error").String(); msg != "" {
		return msg
	}
	return fmt.Sprintf("http status %d", statusCode)
}
