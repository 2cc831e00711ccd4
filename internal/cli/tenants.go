package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rentledger/internal/app"
	"rentledger/internal/views"
	"rentledger/pkg/domain"
)

func tenantCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "tenant", Short: "Manage tenants"}
	cmd.AddCommand(tenantAddCmd(e), tenantShowCmd(e))
	return cmd
}

func tenantAddCmd(e *env) *cobra.Command {
	var (
		tenant                    domain.TenantInput
		lease                     domain.LeaseInput
		start, end, rent, deposit string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a tenant together with their lease",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if lease.StartDate, err = parseDate("start", start); err != nil {
				return err
			}
			if lease.EndDate, err = parseDate("end", end); err != nil {
				return err
			}
			if lease.RentAmount, err = parseAmount("rent", rent); err != nil {
				return err
			}
			if lease.DepositAmount, err = parseAmount("deposit", deposit); err != nil {
				return err
			}
			lease.Active = true
			t, l, err := e.app.AddTenantWithLease(cmd.Context(), tenant, lease)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "added tenant %s (%s) with lease %s\n", t.Name, t.ID, l.ID)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&tenant.Name, "name", "", "tenant name")
	f.StringVar(&tenant.Phone, "phone", "", "tenant phone")
	f.StringVar(&tenant.Email, "email", "", "tenant email")
	f.StringVar(&tenant.IDDocURL, "id-doc", "", "identity document url")
	f.StringVar(&lease.UnitID, "unit", "", "unit id")
	f.StringVar(&start, "start", "", "lease start YYYY-MM-DD")
	f.StringVar(&end, "end", "", "lease end YYYY-MM-DD")
	f.StringVar(&rent, "rent", "", "monthly rent")
	f.StringVar(&deposit, "deposit", "", "security deposit")
	f.IntVar(&lease.RentDueDay, "due-day", 1, "day of month rent is due")
	f.StringVar(&lease.LeaseDocURL, "lease-doc", "", "lease document url")
	return cmd
}

func tenantShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a tenant with lease and payment history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, ok := views.DescribeTenant(e.app.Snapshot(), args[0])
			if !ok {
				return app.ErrNotFound{Entity: domain.EntityTenant, ID: args[0]}
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s\n%s  %s\n", d.Tenant.Name, d.Tenant.Phone, d.Tenant.Email)
			if d.ActiveLease != nil && d.Unit != nil && d.Property != nil {
				_, _ = fmt.Fprintf(out, "lease %s: %s unit %s, rent %s due day %d\n",
					d.ActiveLease.ID, d.Property.Title, d.Unit.UnitNumber, money(d.ActiveLease.RentAmount), d.ActiveLease.RentDueDay)
			} else {
				_, _ = fmt.Fprintln(out, "no active lease")
			}
			_, _ = fmt.Fprintf(out, "total paid: %s\n\n", money(d.TotalPaid))
			return paymentTable(out, d.Payments)
		},
	}
}

func leaseCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "lease", Short: "Inspect leases"}
	cmd.AddCommand(&cobra.Command{
		Use:   "show [id]",
		Short: "Show a lease with its payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, ok := views.DescribeLease(e.app.Snapshot(), args[0], e.app.Now())
			if !ok {
				return app.ErrNotFound{Entity: domain.EntityLease, ID: args[0]}
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s, unit %s: %s\n", d.Property.Title, d.Unit.UnitNumber, d.Tenant.Name)
			_, _ = fmt.Fprintf(out, "%s to %s, rent %s, deposit %s, due day %d\n",
				day(d.Lease.StartDate), day(d.Lease.EndDate), money(d.Lease.RentAmount), money(d.Lease.DepositAmount), d.Lease.RentDueDay)
			_, _ = fmt.Fprintf(out, "days remaining: %d\ntotal paid: %s\n\n", d.DaysRemaining, money(d.TotalPaid))
			return paymentTable(out, d.Payments)
		},
	})
	return cmd
}
