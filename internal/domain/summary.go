package domain

// Summary holds aggregate income/expense figures over the full record set.
type Summary struct {
	TotalTransactions int     `json:"total_transactions"`
	TotalIncome       float64 `json:"total_income"`
	TotalExpenses     float64 `json:"total_expenses"`
	NetAmount         float64 `json:"net_amount"`
	IncomeCount       int     `json:"income_count"`
	ExpenseCount      int     `json:"expense_count"`
}

// Summarize reduces the full record set into a Summary. Transactions whose
// type is neither Income nor Expense count toward TotalTransactions but
// contribute to neither side of the totals.
func Summarize(transactions []*Transaction) Summary {
	s := Summary{TotalTransactions: len(transactions)}

	for _, t := range transactions {
		switch t.TransactionType {
		case TypeIncome:
			s.TotalIncome += t.Amount
			s.IncomeCount++
		case TypeExpense:
			s.TotalExpenses += t.Amount
			s.ExpenseCount++
		}
	}

	s.NetAmount = s.TotalIncome - s.TotalExpenses
	return s
}
