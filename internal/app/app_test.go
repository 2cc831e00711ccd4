package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentledger/internal/core"
	"rentledger/internal/infra/kv/memory"
	"rentledger/internal/views"
	"rentledger/pkg/domain"
)

var now = time.Date(2024, time.September, 20, 10, 0, 0, 0, time.UTC)

func openApp(t *testing.T) *App {
	t.Helper()
	a := New(memory.New(), Config{Clock: core.ClockFunc(func() time.Time { return now })})
	a.Open(context.Background())
	return a
}

func TestOpenLoadsSeeds(t *testing.T) {
	a := openApp(t)
	snap := a.Snapshot()
	assert.Len(t, snap.Properties, 2)
	assert.Len(t, snap.Payments, 3)
	assert.False(t, a.Session.IsAuthenticated())

	totals := views.ComputeTotals(snap.Payments, snap.Expenses)
	assert.True(t, totals.Income.Equal(decimal.NewFromInt(4900)))
	assert.True(t, totals.Expenses.Equal(decimal.NewFromInt(525)))
}

func TestAddTenantWithLease(t *testing.T) {
	ctx := context.Background()
	a := openApp(t)
	_, err := a.Session.SignIn(ctx, "me@example.com", "pw")
	require.NoError(t, err)

	tenant, lease, err := a.AddTenantWithLease(ctx,
		domain.TenantInput{Name: "Mia Park", Phone: "+1-555-0999", Email: "mia@example.com"},
		domain.LeaseInput{UnitID: "unit-2", StartDate: now, EndDate: now.AddDate(1, 0, 0), RentAmount: decimal.NewFromInt(900), DepositAmount: decimal.NewFromInt(900), RentDueDay: 1, Active: true},
	)
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, lease.TenantID)
	assert.Equal(t, "1", tenant.UserID)

	active, ok := a.Properties.ActiveLeaseForUnit("unit-2")
	require.True(t, ok)
	assert.Equal(t, lease.ID, active.ID)

	occ := views.PropertyOccupancy("prop-1", a.Properties.Units(), a.Properties.Leases())
	assert.InDelta(t, 100.0, occ.Percent, 1e-9)
}

func TestAddTenantWithLeaseValidatesFirst(t *testing.T) {
	ctx := context.Background()
	a := openApp(t)
	before := len(a.Properties.Tenants())

	_, _, err := a.AddTenantWithLease(ctx,
		domain.TenantInput{Name: "No Lease", Phone: "1", Email: "x@example.com"},
		domain.LeaseInput{UnitID: "unit-2", StartDate: now, EndDate: now, RentAmount: decimal.Zero, RentDueDay: 1},
	)
	var verr domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "rentAmount", verr.Field)

	_, _, err = a.AddTenantWithLease(ctx,
		domain.TenantInput{Name: "No Unit", Phone: "1", Email: "x@example.com"},
		domain.LeaseInput{UnitID: "ghost", StartDate: now, EndDate: now, RentAmount: decimal.NewFromInt(1), RentDueDay: 1},
	)
	var nf ErrNotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, domain.EntityUnit, nf.Entity)
	assert.Len(t, a.Properties.Tenants(), before)
}

func TestRecordPaymentDefaults(t *testing.T) {
	a := openApp(t)
	p, err := a.RecordPayment(context.Background(), domain.PaymentInput{LeaseID: "lease-1", Amount: decimal.NewFromInt(1200)})
	require.NoError(t, err)
	assert.Equal(t, DefaultPaymentMethod, p.Method)
	assert.Equal(t, now, p.Date)

	_, err = a.RecordPayment(context.Background(), domain.PaymentInput{LeaseID: "lease-1", Amount: decimal.NewFromInt(-5)})
	assert.Error(t, err)
}

func TestMarkRentPaid(t *testing.T) {
	ctx := context.Background()
	a := openApp(t)

	_, err := a.MarkRentPaid(ctx, "ghost", decimal.NewFromInt(10), "Cash", "")
	var nf ErrNotFound
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "lease ghost not found", nf.Error())

	_, err = a.MarkRentPaid(ctx, "lease-2", decimal.NewFromInt(2500), " ", "")
	var verr domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "method", verr.Field)

	p, err := a.MarkRentPaid(ctx, "lease-2", decimal.NewFromInt(2500), "Check", "paid at office")
	require.NoError(t, err)
	assert.Equal(t, now, p.Date)

	events := views.BuildCalendar(a.Snapshot(), 2024, time.September)
	for _, ev := range events {
		if ev.Type == views.EventRentDue && ev.LeaseID == "lease-2" {
			assert.True(t, ev.IsPaid)
		}
	}
}

func TestAddPropertyUnitExpense(t *testing.T) {
	ctx := context.Background()
	a := openApp(t)
	_, err := a.Session.SignUp(ctx, "me@example.com", "pw", "Ada")
	require.NoError(t, err)

	_, err = a.AddProperty(ctx, domain.PropertyInput{Title: "", Address: "x", City: "y"})
	require.Error(t, err)

	p, err := a.AddProperty(ctx, domain.PropertyInput{Title: "Harbor View", Address: "9 Pier", City: "Boston"})
	require.NoError(t, err)
	assert.Equal(t, "1", p.UserID)
	assert.Equal(t, core.DefaultCurrency, p.Currency)
	assert.Equal(t, now, p.CreatedAt)

	u, err := a.AddUnit(ctx, domain.UnitInput{PropertyID: p.ID, UnitNumber: "1A", Bedrooms: 2, RentAmount: decimal.NewFromInt(1800), Active: true})
	require.NoError(t, err)
	assert.Equal(t, []domain.Unit{u}, a.Properties.UnitsForProperty(p.ID))

	_, err = a.AddUnit(ctx, domain.UnitInput{PropertyID: "ghost", UnitNumber: "1", RentAmount: decimal.NewFromInt(1)})
	require.ErrorAs(t, err, new(ErrNotFound))

	e, err := a.AddExpense(ctx, domain.ExpenseInput{PropertyID: p.ID, Amount: decimal.NewFromInt(60), Category: "Cleaning"})
	require.NoError(t, err)
	assert.Equal(t, now, e.Date)
	assert.Len(t, a.Finance.ExpensesForProperty(p.ID), 1)

	_, err = a.AddExpense(ctx, domain.ExpenseInput{PropertyID: "ghost", Amount: decimal.NewFromInt(1), Category: "x"})
	require.ErrorAs(t, err, new(ErrNotFound))
}

func TestNewDefaultsCollaborators(t *testing.T) {
	a := New(memory.New(), Config{})
	assert.IsType(t, core.NopLogger{}, a.logger)
	assert.Equal(t, time.UTC, a.Now().Location())
}
