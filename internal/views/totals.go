package views

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"rentledger/pkg/domain"
)

// Totals is the all-time income, expense and net figure. There is no period
// filtering even though callers may present a period selector.
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// ComputeTotals sums every payment and expense.
func ComputeTotals(payments []domain.Payment, expenses []domain.Expense) Totals {
	income := decimal.Zero
	for _, p := range payments {
		income = income.Add(p.Amount)
	}
	spent := decimal.Zero
	for _, e := range expenses {
		spent = spent.Add(e.Amount)
	}
	return Totals{Income: income, Expenses: spent, Net: income.Sub(spent)}
}

// TransactionKind tags a merged transaction.
type TransactionKind string

const (
	// KindAll disables filtering in FilterTransactions.
	KindAll TransactionKind = "all"
	// KindIncome marks a payment.
	KindIncome TransactionKind = "income"
	// KindExpense marks an expense.
	KindExpense TransactionKind = "expense"
)

// Transaction is the common shape payments and expenses are listed in.
type Transaction struct {
	ID          string          `json:"id"`
	Kind        TransactionKind `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
}

// RecentLimit is the number of transactions on the summary view.
const RecentLimit = 10

// MergeTransactions returns payments and expenses newest first. Ties keep
// payments before expenses in stored order. limit <= 0 returns everything.
func MergeTransactions(payments []domain.Payment, expenses []domain.Expense, limit int) []Transaction {
	out := make([]Transaction, 0, len(payments)+len(expenses))
	for _, p := range payments {
		out = append(out, Transaction{
			ID:          p.ID,
			Kind:        KindIncome,
			Title:       "Rent Payment",
			Description: "Payment received",
			Amount:      p.Amount,
			Date:        p.Date,
		})
	}
	for _, e := range expenses {
		desc := e.Vendor
		if desc == "" {
			desc = "Expense"
		}
		out = append(out, Transaction{
			ID:          e.ID,
			Kind:        KindExpense,
			Title:       e.Category,
			Description: desc,
			Amount:      e.Amount,
			Date:        e.Date,
		})
	}
	slices.SortStableFunc(out, func(a, b Transaction) int { return b.Date.Compare(a.Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FilterTransactions keeps the transactions of kind. KindAll or an empty kind
// returns txs unchanged.
func FilterTransactions(txs []Transaction, kind TransactionKind) []Transaction {
	if kind == "" || kind == KindAll {
		return txs
	}
	var out []Transaction
	for _, tx := range txs {
		if tx.Kind == kind {
			out = append(out, tx)
		}
	}
	return out
}

// DashboardSummary backs the overview screen.
type DashboardSummary struct {
	Totals
	Properties   int `json:"properties"`
	Units        int `json:"units"`
	ActiveLeases int `json:"activeLeases"`
}

// Dashboard computes the headline counters over the whole snapshot.
func Dashboard(s Snapshot) DashboardSummary {
	active := 0
	for _, l := range s.Leases {
		if l.Active {
			active++
		}
	}
	return DashboardSummary{
		Totals:       ComputeTotals(s.Payments, s.Expenses),
		Properties:   len(s.Properties),
		Units:        len(s.Units),
		ActiveLeases: active,
	}
}
