package ai

type Suggestion struct {
	Action     string  `json:"action"`
	Token      string  `json:"token"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
	RiskLevel  string  `json:"riskLevel"`
}

// fallbackSuggestions is served when the model call fails; the suggestions
// route degrades to this instead of erroring.
var fallbackSuggestions = []Suggestion{
	{
		Action:     "HOLD",
		Token:      "SOL",
		Reason:     "Core position; no signal strong enough to justify rotating out right now.",
		Confidence: 0.6,
		RiskLevel:  "medium",
	},
	{
		Action:     "REBALANCE",
		Token:      "USDC",
		Reason:     "Keep a stablecoin buffer near 20% of the portfolio to buy dips without new deposits.",
		Confidence: 0.7,
		RiskLevel:  "low",
	},
}

// Fallback returns a fresh copy of the canned advisory pair.
func Fallback() []Suggestion {
	out := make([]Suggestion, len(fallbackSuggestions))
	copy(out, fallbackSuggestions)
	return out
}
