package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rentledger/internal/report"
	"rentledger/internal/views"
)

func exportCmd(e *env) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export totals and transactions to an xlsx workbook",
		RunE: func(cmd *cobra.Command, _ []string) (retErr error) {
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && retErr == nil {
					retErr = cerr
				}
			}()
			snap := e.app.Snapshot()
			txs := views.MergeTransactions(snap.Payments, snap.Expenses, 0)
			if err := report.WriteWorkbook(f, views.ComputeTotals(snap.Payments, snap.Expenses), txs); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d transactions to %s\n", len(txs), out)
			return err
		},
	}
	cmd.Flags().StringVar(&out, "out", "rentledger.xlsx", "output file")
	return cmd
}

func backupCmd(e *env) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write every stored collection to a JSON file",
		RunE: func(cmd *cobra.Command, _ []string) (retErr error) {
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && retErr == nil {
					retErr = cerr
				}
			}()
			n, err := report.Backup(cmd.Context(), e.store, e.cfg.Storage.Namespace, e.app.Now(), f)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "backed up %d keys to %s\n", n, out)
			return err
		},
	}
	cmd.Flags().StringVar(&out, "out", "rentledger-backup.json", "output file")
	return cmd
}

func restoreCmd(e *env) *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Overwrite stored collections from a JSON backup (keys absent from it are kept)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(in)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			n, err := report.Restore(cmd.Context(), e.store, f)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "restored %d keys from %s\n", n, in)
			return err
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "backup file")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
