package dto

// TradeRequest represents a buy or sell order. Shares stays a string so
// the service layer owns quantity validation, mirroring form input.
type TradeRequest struct {
	Symbol string `json:"symbol"`
	Shares string `json:"shares"`
}

// TransactionOutput represents a committed ledger entry in API responses
type TransactionOutput struct {
	ID        string `json:"id"`
	Symbol    string `json:"symbol"`
	Shares    int64  `json:"shares"`
	Price     string `json:"price"`
	Timestamp string `json:"timestamp"`
}

// QuoteOutput represents a quote lookup result
type QuoteOutput struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Price  string `json:"price"`
}
