package trending

// Chain whitelist: id -> display name. Requests naming any other chain are
// rejected before the aggregator is called.
var SupportedChains = map[string]string{
	"1":   "Ethereum",
	"56":  "BSC",
	"501": "Solana",
}

// DefaultChains is the chain set used when a request names none.
var DefaultChains = []string{"1", "56", "501"}

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

type Token struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name,omitempty"`
	Address   string  `json:"address"`
	ChainID   string  `json:"chainId"`
	Price     float64 `json:"price"`
	Change24h float64 `json:"change24h"`
	Volume24h float64 `json:"volume24h"`
	MarketCap float64 `json:"marketCap,omitempty"`
}

type Metadata struct {
	TotalTokens    int            `json:"totalTokens"`
	TotalFound     int            `json:"totalFound"`
	ChainsAnalyzed []string       `json:"chainsAnalyzed"`
	Limit          int            `json:"limit"`
	Timestamp      string         `json:"timestamp"`
	Options        map[string]any `json:"options,omitempty"`
}

// InvalidChains returns the entries of chains that are not whitelisted,
// preserving request order.
func InvalidChains(chains []string) []string {
	var bad []string
	for _, c := range chains {
		if _, ok := SupportedChains[c]; !ok {
			bad = append(bad, c)
		}
	}
	return bad
}
