package models

import "github.com/shopspring/decimal"

// CategorySummary contains aggregated transaction data by category
type CategorySummary struct {
	Category         string          `json:"category"`
	TransactionCount int64           `json:"transaction_count"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
}

// TransactionTotals are income and expense sums over a set of transactions.
type TransactionTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Count   int64           `json:"count"`
}

func (t TransactionTotals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

// SavingsTotals are sums over a set of savings targets.
type SavingsTotals struct {
	Target  decimal.Decimal `json:"target"`
	Current decimal.Decimal `json:"current"`
	Count   int64           `json:"count"`
}
