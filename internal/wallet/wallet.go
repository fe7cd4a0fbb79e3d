// Package wallet serves the bundled demo wallet used when no real address is
// connected. The record is baked into the binary and never mutated.
package wallet

import (
	_ "embed"
	"encoding/json"
)

//go:embed demo_wallet.json
var demoWallet []byte

type Token struct {
	Symbol    string  `json:"symbol"`
	Mint      string  `json:"mint"`
	Amount    float64 `json:"amount"`
	Decimals  int     `json:"decimals"`
	Price     float64 `json:"price"`
	Change24h float64 `json:"change24h,omitempty"`
}

type Wallet struct {
	Address      string  `json:"address"`
	TotalBalance float64 `json:"totalBalance"`
	Tokens       []Token `json:"tokens"`
}

// Demo returns the raw bundled wallet record. Callers must not modify the
// returned slice; serving the embedded bytes directly keeps the response
// byte-identical across calls.
func Demo() []byte { return demoWallet }

// DemoWallet decodes the bundled record for callers that need typed access.
func DemoWallet() (Wallet, error) {
	var w Wallet
	err := json.Unmarshal(demoWallet, &w)
	return w, err
}
