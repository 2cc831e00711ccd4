package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"rentledger/internal/views"
	"rentledger/pkg/domain"
)

func paymentTable(w io.Writer, payments []domain.Payment) error {
	t := newTable(w, "DATE", "METHOD", "AMOUNT", "NOTE")
	for _, p := range payments {
		t.row(day(p.Date), p.Method, money(p.Amount), p.Note)
	}
	return t.flush()
}

func paymentCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "payment", Short: "Record rent payments"}

	var (
		in           domain.PaymentInput
		amount, date string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a payment (method defaults to Cash, date to today)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if in.Amount, err = parseAmount("amount", amount); err != nil {
				return err
			}
			if in.Date, err = parseDate("date", date); err != nil {
				return err
			}
			p, err := e.app.RecordPayment(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "recorded payment %s of %s\n", p.ID, money(p.Amount))
			return err
		},
	}
	add.Flags().StringVar(&in.LeaseID, "lease", "", "lease id")
	add.Flags().StringVar(&amount, "amount", "", "amount received")
	add.Flags().StringVar(&date, "date", "", "payment date YYYY-MM-DD")
	add.Flags().StringVar(&in.Method, "method", "", "payment method")
	add.Flags().StringVar(&in.Note, "note", "", "note")
	add.Flags().StringVar(&in.ReceiptURL, "receipt", "", "receipt url")

	var leaseID, markAmount, method, note string
	mark := &cobra.Command{
		Use:   "mark",
		Short: "Mark this month's rent as paid for a lease",
		RunE: func(cmd *cobra.Command, _ []string) error {
			amt, err := parseAmount("amount", markAmount)
			if err != nil {
				return err
			}
			p, err := e.app.MarkRentPaid(cmd.Context(), leaseID, amt, method, note)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "marked lease %s paid: %s via %s\n", leaseID, money(p.Amount), p.Method)
			return err
		},
	}
	mark.Flags().StringVar(&leaseID, "lease", "", "lease id")
	mark.Flags().StringVar(&markAmount, "amount", "", "amount received")
	mark.Flags().StringVar(&method, "method", "", "payment method (required)")
	mark.Flags().StringVar(&note, "note", "", "note")

	cmd.AddCommand(add, mark)
	return cmd
}

func expenseCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "expense", Short: "Record expenses"}
	var (
		in                 domain.ExpenseInput
		unit, amount, date string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Record an expense against a property",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if in.Amount, err = parseAmount("amount", amount); err != nil {
				return err
			}
			if in.Date, err = parseDate("date", date); err != nil {
				return err
			}
			if unit != "" {
				in.UnitID = &unit
			}
			x, err := e.app.AddExpense(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "recorded expense %s of %s\n", x.ID, money(x.Amount))
			return err
		},
	}
	add.Flags().StringVar(&in.PropertyID, "property", "", "property id")
	add.Flags().StringVar(&unit, "unit", "", "optional unit id")
	add.Flags().StringVar(&amount, "amount", "", "amount spent")
	add.Flags().StringVar(&in.Category, "category", "", "expense category")
	add.Flags().StringVar(&date, "date", "", "expense date YYYY-MM-DD (default today)")
	add.Flags().StringVar(&in.Vendor, "vendor", "", "vendor")
	add.Flags().StringVar(&in.Note, "note", "", "note")
	add.Flags().StringVar(&in.ReceiptURL, "receipt", "", "receipt url")
	cmd.AddCommand(add)
	return cmd
}

func summaryCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show all-time totals and recent transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap := e.app.Snapshot()
			d := views.Dashboard(snap)
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "properties: %d  units: %d  active leases: %d\n", d.Properties, d.Units, d.ActiveLeases)
			_, _ = fmt.Fprintf(out, "income: %s  expenses: %s  net: %s\n\n", money(d.Income), money(d.Expenses), money(d.Net))
			return transactionTable(out, views.MergeTransactions(snap.Payments, snap.Expenses, views.RecentLimit))
		},
	}
}

func transactionTable(w io.Writer, txs []views.Transaction) error {
	t := newTable(w, "DATE", "TYPE", "TITLE", "DESCRIPTION", "AMOUNT")
	for _, tx := range txs {
		amount := money(tx.Amount)
		if tx.Kind == views.KindExpense {
			amount = "-" + amount
		}
		t.row(day(tx.Date), string(tx.Kind), tx.Title, tx.Description, amount)
	}
	return t.flush()
}

func transactionsCmd(e *env) *cobra.Command {
	var kind string
	var limit int
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List payments and expenses, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			k := views.TransactionKind(kind)
			switch k {
			case views.KindAll, views.KindIncome, views.KindExpense:
			default:
				return fmt.Errorf("--type must be all, income or expense")
			}
			snap := e.app.Snapshot()
			txs := views.FilterTransactions(views.MergeTransactions(snap.Payments, snap.Expenses, 0), k)
			if limit > 0 && len(txs) > limit {
				txs = txs[:limit]
			}
			return transactionTable(cmd.OutOrStdout(), txs)
		},
	}
	cmd.Flags().StringVar(&kind, "type", string(views.KindAll), "all, income or expense")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows, 0 for all")
	return cmd
}

func calendarCmd(e *env) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "List rent due dates and lease milestones for a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref := e.app.Now().UTC()
			if month != "" {
				t, err := time.ParseInLocation("2006-01", month, time.UTC)
				if err != nil {
					return fmt.Errorf("--month: expected YYYY-MM: %w", err)
				}
				ref = t
			}
			events := views.BuildCalendar(e.app.Snapshot(), ref.Year(), ref.Month())
			t := newTable(cmd.OutOrStdout(), "DATE", "EVENT", "PROPERTY", "UNIT", "AMOUNT", "STATUS")
			for _, ev := range events {
				amount, status := "", ""
				if ev.Type == views.EventRentDue {
					amount = money(ev.Amount)
					status = "unpaid"
					if ev.IsPaid {
						status = "paid"
					}
				}
				t.row(day(ev.Date), ev.Title, ev.PropertyTitle, ev.UnitNumber, amount, status)
			}
			return t.flush()
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month YYYY-MM (default current)")
	return cmd
}
