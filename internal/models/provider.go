package models

// FundamentalReport is the provider's fundamentals payload after
// normalization to the canonical vocabulary: static info plus annual
// statement sections. Sections the provider has no data for are empty
// slices, never nil-with-error.
type FundamentalReport struct {
	Ticker           string            `json:"ticker"`
	Info             EntityInfo        `json:"info"`
	IncomeStatements []StatementRecord `json:"income_statements"`
	BalanceSheets    []StatementRecord `json:"balance_sheets"`
	CashFlows        []StatementRecord `json:"cash_flows,omitempty"`
}
