package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"rentledger/internal/app"
	"rentledger/internal/views"
	"rentledger/pkg/domain"
)

func propertyCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "property", Short: "Manage properties"}
	cmd.AddCommand(propertyAddCmd(e), propertyListCmd(e), propertyShowCmd(e))
	return cmd
}

func propertyAddCmd(e *env) *cobra.Command {
	var in domain.PropertyInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a property",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := e.app.AddProperty(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "added property %s (%s)\n", p.Title, p.ID)
			return err
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "property name")
	cmd.Flags().StringVar(&in.Address, "address", "", "street address")
	cmd.Flags().StringVar(&in.City, "city", "", "city")
	cmd.Flags().StringVar(&in.Currency, "currency", "", "display currency (default profile currency)")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "free text notes")
	return cmd
}

func propertyListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List properties with occupancy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			units, leases := e.app.Properties.Units(), e.app.Properties.Leases()
			t := newTable(cmd.OutOrStdout(), "ID", "TITLE", "CITY", "UNITS", "OCCUPIED", "OCCUPANCY", "RENT")
			for _, p := range e.app.Properties.Properties() {
				occ := views.PropertyOccupancy(p.ID, units, leases)
				t.row(p.ID, p.Title, p.City, strconv.Itoa(occ.TotalUnits), strconv.Itoa(occ.OccupiedUnits), occupancy(occ), money(occ.TotalRent))
			}
			return t.flush()
		},
	}
}

func occupancy(o views.Occupancy) string {
	if !o.HasUnits() {
		return "no units"
	}
	return fmt.Sprintf("%.0f%%", o.Percent)
}

func propertyShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a property with its units and expenses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := e.app.Properties.PropertyByID(args[0])
			if !ok {
				return app.ErrNotFound{Entity: domain.EntityProperty, ID: args[0]}
			}
			out := cmd.OutOrStdout()
			occ := views.PropertyOccupancy(p.ID, e.app.Properties.Units(), e.app.Properties.Leases())
			_, _ = fmt.Fprintf(out, "%s\n%s, %s\noccupancy: %s\n\n", p.Title, p.Address, p.City, occupancy(occ))

			t := newTable(out, "UNIT", "BEDROOMS", "RENT", "TENANT")
			for _, u := range e.app.Properties.UnitsForProperty(p.ID) {
				tenant := "vacant"
				if l, ok := e.app.Properties.ActiveLeaseForUnit(u.ID); ok {
					if tn, ok := e.app.Properties.TenantByID(l.TenantID); ok {
						tenant = tn.Name
					}
				}
				t.row(u.UnitNumber, strconv.Itoa(u.Bedrooms), money(u.RentAmount), tenant)
			}
			if err := t.flush(); err != nil {
				return err
			}

			expenses := e.app.Finance.ExpensesForProperty(p.ID)
			if len(expenses) == 0 {
				return nil
			}
			_, _ = fmt.Fprintln(out)
			t = newTable(out, "DATE", "CATEGORY", "VENDOR", "AMOUNT")
			for _, x := range expenses {
				t.row(day(x.Date), x.Category, x.Vendor, money(x.Amount))
			}
			return t.flush()
		},
	}
}

func unitCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "unit", Short: "Manage units"}
	var (
		in       domain.UnitInput
		rent     string
		size     float64
		inactive bool
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a unit to a property",
		RunE: func(cmd *cobra.Command, _ []string) error {
			amount, err := parseAmount("rent", rent)
			if err != nil {
				return err
			}
			in.RentAmount = amount
			in.Active = !inactive
			if cmd.Flags().Changed("size") {
				in.Size = &size
			}
			u, err := e.app.AddUnit(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "added unit %s (%s)\n", u.UnitNumber, u.ID)
			return err
		},
	}
	add.Flags().StringVar(&in.PropertyID, "property", "", "property id")
	add.Flags().StringVar(&in.UnitNumber, "number", "", "unit number")
	add.Flags().IntVar(&in.Bedrooms, "bedrooms", 0, "bedroom count")
	add.Flags().Float64Var(&size, "size", 0, "floor area")
	add.Flags().StringVar(&rent, "rent", "", "monthly rent")
	add.Flags().BoolVar(&inactive, "inactive", false, "mark the unit inactive")
	add.Flags().StringVar(&in.Notes, "notes", "", "free text notes")
	cmd.AddCommand(add)
	return cmd
}
