package core

import (
	"context"
	"fmt"
	"sync"

	"rentledger/internal/kv"
	"rentledger/pkg/domain"
)

// FinanceStore owns the payment and expense collections.
type FinanceStore struct {
	store kv.Store
	opts  options

	mu       sync.RWMutex
	payments collection[domain.Payment]
	expenses collection[domain.Expense]
}

// NewFinanceStore constructs an empty store; call Load before use.
func NewFinanceStore(store kv.Store, opts ...Option) *FinanceStore {
	o := newOptions(opts)
	return &FinanceStore{
		store:    store,
		opts:     o,
		payments: newCollection(o.key(domain.EntityPayment), func(v domain.Payment) string { return v.ID }),
		expenses: newCollection(o.key(domain.EntityExpense), func(v domain.Expense) string { return v.ID }),
	}
}

// Load reads payments and expenses. An empty payment collection triggers the
// example payments and expenses being written together in one batch.
func (s *FinanceStore) Load(ctx context.Context) error {
	return s.opts.run(ctx, "finance.load", func(ctx context.Context) error {
		payments, expenses, err := s.load(ctx)
		if err != nil {
			s.opts.logger.Error("load finance", "error", err)
			payments, expenses = nil, nil
		}
		s.mu.Lock()
		s.payments.replace(payments)
		s.expenses.replace(expenses)
		s.mu.Unlock()
		if err != nil {
			return fmt.Errorf("load finance: %w", err)
		}
		return nil
	})
}

func (s *FinanceStore) load(ctx context.Context) ([]domain.Payment, []domain.Expense, error) {
	payments, err := readCollection[domain.Payment](ctx, s.store, s.payments.key)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := readCollection[domain.Expense](ctx, s.store, s.expenses.key)
	if err != nil {
		return nil, nil, err
	}
	if len(payments) > 0 {
		return payments, expenses, nil
	}
	payments, expenses = seedFinance()
	pe, err := entry(s.payments.key, payments)
	if err != nil {
		return nil, nil, err
	}
	ee, err := entry(s.expenses.key, expenses)
	if err != nil {
		return nil, nil, err
	}
	if err := kv.SetAll(ctx, s.store, []kv.Entry{pe, ee}); err != nil {
		return nil, nil, fmt.Errorf("seed: %w", err)
	}
	s.opts.logger.Info("seeded example finance", "payments", len(payments), "expenses", len(expenses))
	return payments, expenses, nil
}

// AddPayment stores a new payment.
func (s *FinanceStore) AddPayment(ctx context.Context, in domain.PaymentInput) (domain.Payment, error) {
	p := domain.Payment{
		ID:         s.opts.newID(),
		LeaseID:    in.LeaseID,
		Amount:     in.Amount,
		Date:       in.Date,
		Method:     in.Method,
		Note:       in.Note,
		ReceiptURL: in.ReceiptURL,
	}
	err := s.opts.run(ctx, "finance.add_payment", func(ctx context.Context) error {
		return appendRecord(ctx, &s.opts, s.store, &s.mu, &s.payments, p)
	})
	if err != nil {
		return domain.Payment{}, err
	}
	return p, nil
}

// AddExpense stores a new expense.
func (s *FinanceStore) AddExpense(ctx context.Context, in domain.ExpenseInput) (domain.Expense, error) {
	e := domain.Expense{
		ID:         s.opts.newID(),
		PropertyID: in.PropertyID,
		UnitID:     in.UnitID,
		Amount:     in.Amount,
		Category:   in.Category,
		Date:       in.Date,
		Vendor:     in.Vendor,
		ReceiptURL: in.ReceiptURL,
		Note:       in.Note,
	}
	err := s.opts.run(ctx, "finance.add_expense", func(ctx context.Context) error {
		return appendRecord(ctx, &s.opts, s.store, &s.mu, &s.expenses, e)
	})
	if err != nil {
		return domain.Expense{}, err
	}
	return e, nil
}

// Payments returns a copy of all payments in insertion order.
func (s *FinanceStore) Payments() []domain.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payments.snapshot()
}

// Expenses returns a copy of all expenses in insertion order.
func (s *FinanceStore) Expenses() []domain.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expenses.snapshot()
}

// PaymentsForLease returns the payments recorded against leaseID.
func (s *FinanceStore) PaymentsForLease(leaseID string) []domain.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payments.filter(func(p domain.Payment) bool { return p.LeaseID == leaseID })
}

// ExpensesForProperty returns the expenses booked against propertyID.
func (s *FinanceStore) ExpensesForProperty(propertyID string) []domain.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expenses.filter(func(e domain.Expense) bool { return e.PropertyID == propertyID })
}
