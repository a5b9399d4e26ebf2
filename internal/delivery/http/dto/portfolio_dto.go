package dto

// HoldingOutput represents one held symbol in the portfolio view.
// Name, Price and Value are omitted when the live quote failed.
type HoldingOutput struct {
	Symbol string  `json:"symbol"`
	Shares int64   `json:"shares"`
	Name   *string `json:"name,omitempty"`
	Price  *string `json:"price,omitempty"`
	Value  *string `json:"value,omitempty"`
}

// PortfolioOutput represents the index view
type PortfolioOutput struct {
	Cash       string          `json:"cash"`
	Holdings   []HoldingOutput `json:"holdings"`
	TotalValue string          `json:"total_value"`
}

// HistoryEntryOutput represents one row of the history view
type HistoryEntryOutput struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Shares    int64  `json:"shares"`
	Price     string `json:"price"`
	Timestamp string `json:"timestamp"`
}
