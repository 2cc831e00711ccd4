// Package report exports ledger data as a spreadsheet and as a JSON backup.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"rentledger/internal/views"
)

// Sheet names written by WriteWorkbook.
const (
	SummarySheet      = "Summary"
	TransactionsSheet = "Transactions"
)

// WriteWorkbook writes an xlsx workbook with the totals on one sheet and the
// transactions, newest first, on another. Amounts are written as strings to
// keep decimal precision.
func WriteWorkbook(w io.Writer, totals views.Totals, txs []views.Transaction) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	summary := [][]any{
		{"Metric", "Amount"},
		{"Total Income", totals.Income.StringFixed(2)},
		{"Total Expenses", totals.Expenses.StringFixed(2)},
		{"Net Cash Flow", totals.Net.StringFixed(2)},
	}
	for i, row := range summary {
		if err := f.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return fmt.Errorf("summary row %d: %w", i+1, err)
		}
	}
	_ = f.SetColWidth(SummarySheet, "A", "A", 18)

	if _, err := f.NewSheet(TransactionsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	header := []any{"Date", "Type", "Title", "Description", "Amount"}
	if err := f.SetSheetRow(TransactionsSheet, "A1", &header); err != nil {
		return fmt.Errorf("transactions header: %w", err)
	}
	for i, tx := range txs {
		row := []any{tx.Date.UTC().Format("2006-01-02"), string(tx.Kind), tx.Title, tx.Description, tx.Amount.StringFixed(2)}
		if err := f.SetSheetRow(TransactionsSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("transaction row %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(TransactionsSheet, "A", "A", 12)
	_ = f.SetColWidth(TransactionsSheet, "C", "D", 24)

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
