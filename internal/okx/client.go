// Package okx is a thin client for the OKX DEX API: token balances by wallet
// address and per-chain trending tokens. Authenticated requests carry the
// standard OK-ACCESS-* headers with an HMAC-SHA256 signature.
package okx

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tradepilot-api/internal/config"
	"tradepilot-api/internal/trending"

	"go.uber.org/zap"
)

const signTimeLayout = "2006-01-02T15:04:05.000Z"

type Client struct {
	httpc      *http.Client
	baseURL    string
	apiKey     string
	secret     string
	passphrase string
	project    string
	log        *zap.Logger
}

func New(cfg config.Config, log *zap.Logger) *Client {
	return &Client{
		httpc:      &http.Client{Timeout: 10 * time.Second},
		baseURL:    cfg.OKXBaseURL,
		apiKey:     cfg.OKXAPIKey,
		secret:     cfg.OKXSecret,
		passphrase: cfg.OKXPassphrase,
		project:    cfg.OKXProject,
		log:        log,
	}
}

type apiResponse struct {
	Code string          `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// sign computes base64(HMAC-SHA256(timestamp + method + requestPath + body)).
func (c *Client) sign(ts, method, requestPath string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(c.secret))
	mac.Write([]byte(ts + method + requestPath))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func (c *Client) get(ctx context.Context, requestPath string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+requestPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		ts := time.Now().UTC().Format(signTimeLayout)
		req.Header.Set("OK-ACCESS-KEY", c.apiKey)
		req.Header.Set("OK-ACCESS-SIGN", c.sign(ts, http.MethodGet, requestPath, nil))
		req.Header.Set("OK-ACCESS-TIMESTAMP", ts)
		req.Header.Set("OK-ACCESS-PASSPHRASE", c.passphrase)
		if c.project != "" {
			req.Header.Set("OK-ACCESS-PROJECT", c.project)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("okx http %d: %s", resp.StatusCode, string(b))
	}

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("okx decode: %w", err)
	}
	if out.Code != "0" {
		return nil, fmt.Errorf("okx api error %s: %s", out.Code, out.Msg)
	}
	return out.Data, nil
}

// Portfolio fetches all token balances for the address and returns the
// provider's data payload untouched.
func (c *Client) Portfolio(ctx context.Context, address string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("chains", "501")
	return c.get(ctx, "/api/v5/dex/balance/all-token-balances-by-address?"+q.Encode())
}

// OKX returns numeric fields as strings.
type trendingRow struct {
	TokenSymbol          string `json:"tokenSymbol"`
	TokenName            string `json:"tokenName"`
	TokenContractAddress string `json:"tokenContractAddress"`
	ChainID              string `json:"chainId"`
	Price                string `json:"price"`
	PriceChange24H       string `json:"priceChange24H"`
	Volume24H            string `json:"volume24H"`
	MarketCap            string `json:"marketCap"`
}

func (r trendingRow) token() trending.Token {
	return trending.Token{
		Symbol:    r.TokenSymbol,
		Name:      r.TokenName,
		Address:   r.TokenContractAddress,
		ChainID:   r.ChainID,
		Price:     parseFloat(r.Price),
		Change24h: parseFloat(r.PriceChange24H),
		Volume24h: parseFloat(r.Volume24H),
		MarketCap: parseFloat(r.MarketCap),
	}
}

// MultiChainTrending scans every requested chain and concatenates the
// results. Any chain failing fails the whole call.
func (c *Client) MultiChainTrending(ctx context.Context, chains []string) ([]trending.Token, error) {
	var all []trending.Token
	for _, chain := range chains {
		data, err := c.get(ctx, "/api/v5/dex/market/trending-tokens?chainId="+url.QueryEscape(chain))
		if err != nil {
			return nil, fmt.Errorf("chain %s: %w", chain, err)
		}
		var rows []trendingRow
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("chain %s: decode: %w", chain, err)
		}
		for _, r := range rows {
			t := r.token()
			if t.ChainID == "" {
				t.ChainID = chain
			}
			all = append(all, t)
		}
	}
	return all, nil
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
