package core

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentledger/internal/infra/kv/memory"
	"rentledger/pkg/domain"
)

func TestFinanceLoadSeedsOnce(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	s := NewFinanceStore(store)
	require.NoError(t, s.Load(ctx))
	assert.Len(t, s.Payments(), 3)
	assert.Len(t, s.Expenses(), 3)

	require.NoError(t, s.Load(ctx))
	assert.Len(t, s.Payments(), 3)
	assert.Len(t, s.Expenses(), 3)

	seeded := s.Expenses()[0]
	require.NotNil(t, seeded.UnitID)
	assert.Equal(t, "unit-1", *seeded.UnitID)
}

func TestFinanceSeedsExpensesWithPayments(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Set(ctx, "landlord_expenses", []byte(`[{"id":"keep","propertyId":"p","amount":"5","category":"Other","date":"2024-01-01T00:00:00Z"}]`)))
	s := NewFinanceStore(store)
	require.NoError(t, s.Load(ctx))
	assert.Len(t, s.Expenses(), 3, "an empty payment collection reseeds expenses too")
}

func TestFinanceAddAndQuery(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	s := NewFinanceStore(store, WithIDGenerator(sequentialIDs("fin")))
	require.NoError(t, s.Load(ctx))

	when := time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)
	p, err := s.AddPayment(ctx, domain.PaymentInput{LeaseID: "lease-1", Amount: decimal.NewFromInt(1200), Date: when, Method: "Cash"})
	require.NoError(t, err)
	assert.Equal(t, "fin-1", p.ID)

	unit := "unit-2"
	e, err := s.AddExpense(ctx, domain.ExpenseInput{PropertyID: "prop-1", UnitID: &unit, Amount: decimal.RequireFromString("42.10"), Category: "Repairs", Date: when})
	require.NoError(t, err)
	assert.Equal(t, "fin-2", e.ID)

	forLease := s.PaymentsForLease("lease-1")
	require.Len(t, forLease, 3)
	assert.Equal(t, []string{"payment-1", "payment-3", "fin-1"}, []string{forLease[0].ID, forLease[1].ID, forLease[2].ID})
	assert.Len(t, s.ExpensesForProperty("prop-1"), 3)
	assert.Len(t, s.ExpensesForProperty("prop-2"), 1)
	assert.Empty(t, s.PaymentsForLease("nope"))

	reloaded := NewFinanceStore(store)
	require.NoError(t, reloaded.Load(ctx))
	got := reloaded.PaymentsForLease("lease-1")
	require.Len(t, got, 3)
	assert.True(t, got[2].Date.Equal(when))
	assert.True(t, reloaded.ExpensesForProperty("prop-1")[2].Amount.Equal(decimal.RequireFromString("42.10")))
}

func TestFinanceAddRollback(t *testing.T) {
	ctx := context.Background()
	store := newFaultyStore()
	s := NewFinanceStore(store)
	require.NoError(t, s.Load(ctx))
	store.failSet["landlord_payments"] = true
	_, err := s.AddPayment(ctx, domain.PaymentInput{LeaseID: "lease-1", Amount: decimal.NewFromInt(1)})
	require.ErrorIs(t, err, errDiskFull)
	assert.Len(t, s.Payments(), 3)
}

func TestFinanceLoadFailure(t *testing.T) {
	ctx := context.Background()
	store := newFaultyStore()
	store.failGet["landlord_payments"] = true
	logger := &captureLogger{}
	s := NewFinanceStore(store, WithLogger(logger))
	err := s.Load(ctx)
	require.ErrorIs(t, err, errDiskFull)
	assert.Empty(t, s.Payments())
	assert.Empty(t, s.Expenses())
	assert.True(t, logger.has("error", "load finance"))
}
