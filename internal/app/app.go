// Package app is the composition root owning the session, property and
// finance stores. It hosts the multi-step flows the screens trigger.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"rentledger/internal/core"
	"rentledger/internal/kv"
	"rentledger/internal/views"
	"rentledger/pkg/domain"
)

// DefaultPaymentMethod is recorded when a payment names none.
const DefaultPaymentMethod = "Cash"

// ErrNotFound reports a referenced record that does not exist.
type ErrNotFound struct {
	Entity domain.EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// App wires the three stores over one kv.Store.
type App struct {
	Session    *core.SessionStore
	Properties *core.PropertyStore
	Finance    *core.FinanceStore

	store  kv.Store
	clock  core.Clock
	logger core.Logger
}

// Config carries the collaborators shared by every store.
type Config struct {
	Clock  core.Clock
	Logger core.Logger
}

// New constructs the stores without loading them.
func New(store kv.Store, cfg Config, opts ...core.Option) *App {
	if cfg.Clock != nil {
		opts = append(opts, core.WithClock(cfg.Clock))
	} else {
		cfg.Clock = core.ClockFunc(nowUTC)
	}
	if cfg.Logger != nil {
		opts = append(opts, core.WithLogger(cfg.Logger))
	} else {
		cfg.Logger = core.NopLogger{}
	}
	return &App{
		Session:    core.NewSessionStore(store, opts...),
		Properties: core.NewPropertyStore(store, opts...),
		Finance:    core.NewFinanceStore(store, opts...),
		store:      store,
		clock:      cfg.Clock,
		logger:     cfg.Logger,
	}
}

// Open restores the session and loads both domain stores. Load failures are
// logged by the stores and leave their collections empty; they are not fatal.
func (a *App) Open(ctx context.Context) {
	a.Session.LoadSession(ctx)
	if err := a.Properties.Load(ctx); err != nil {
		a.logger.Warn("properties unavailable", "error", err)
	}
	if err := a.Finance.Load(ctx); err != nil {
		a.logger.Warn("finance unavailable", "error", err)
	}
}

// Store exposes the underlying kv backend.
func (a *App) Store() kv.Store { return a.store }

// ownerID returns the signed-in profile id, or empty when anonymous.
func (a *App) ownerID() string {
	if u, ok := a.Session.Current(); ok {
		return u.ID
	}
	return ""
}

// AddProperty validates in and stores it for the current profile.
func (a *App) AddProperty(ctx context.Context, in domain.PropertyInput) (domain.Property, error) {
	if in.UserID == "" {
		in.UserID = a.ownerID()
	}
	if in.Currency == "" {
		if u, ok := a.Session.Current(); ok {
			in.Currency = u.Currency
		}
	}
	if err := in.Validate(); err != nil {
		return domain.Property{}, err
	}
	return a.Properties.AddProperty(ctx, in)
}

// AddUnit validates in and requires the property to exist.
func (a *App) AddUnit(ctx context.Context, in domain.UnitInput) (domain.Unit, error) {
	if err := in.Validate(); err != nil {
		return domain.Unit{}, err
	}
	if _, ok := a.Properties.PropertyByID(in.PropertyID); !ok {
		return domain.Unit{}, ErrNotFound{Entity: domain.EntityProperty, ID: in.PropertyID}
	}
	return a.Properties.AddUnit(ctx, in)
}

// AddTenantWithLease creates a tenant and then a lease bound to it. Both
// inputs are validated before anything is written. If the lease write fails
// the tenant stays stored.
func (a *App) AddTenantWithLease(ctx context.Context, tenant domain.TenantInput, lease domain.LeaseInput) (domain.Tenant, domain.Lease, error) {
	if err := tenant.Validate(); err != nil {
		return domain.Tenant{}, domain.Lease{}, err
	}
	if err := lease.Validate(); err != nil {
		return domain.Tenant{}, domain.Lease{}, err
	}
	if _, ok := a.Properties.UnitByID(lease.UnitID); !ok {
		return domain.Tenant{}, domain.Lease{}, ErrNotFound{Entity: domain.EntityUnit, ID: lease.UnitID}
	}
	if tenant.UserID == "" {
		tenant.UserID = a.ownerID()
	}
	t, err := a.Properties.AddTenant(ctx, tenant)
	if err != nil {
		return domain.Tenant{}, domain.Lease{}, fmt.Errorf("add tenant: %w", err)
	}
	lease.TenantID = t.ID
	l, err := a.Properties.AddLease(ctx, lease)
	if err != nil {
		a.logger.Error("lease not stored for new tenant", "tenant", t.ID, "error", err)
		return t, domain.Lease{}, fmt.Errorf("add lease: %w", err)
	}
	return t, l, nil
}

// RecordPayment stores a payment, defaulting the method to cash and the date
// to now.
func (a *App) RecordPayment(ctx context.Context, in domain.PaymentInput) (domain.Payment, error) {
	if strings.TrimSpace(in.Method) == "" {
		in.Method = DefaultPaymentMethod
	}
	if in.Date.IsZero() {
		in.Date = a.clock.Now()
	}
	if err := in.Validate(); err != nil {
		return domain.Payment{}, err
	}
	return a.Finance.AddPayment(ctx, in)
}

// MarkRentPaid records a payment dated now against an existing lease. The
// method is mandatory here.
func (a *App) MarkRentPaid(ctx context.Context, leaseID string, amount decimal.Decimal, method, note string) (domain.Payment, error) {
	if _, ok := a.Properties.LeaseByID(leaseID); !ok {
		return domain.Payment{}, ErrNotFound{Entity: domain.EntityLease, ID: leaseID}
	}
	if strings.TrimSpace(method) == "" {
		return domain.Payment{}, domain.ValidationError{Entity: domain.EntityPayment, Field: "method", Message: "is required"}
	}
	in := domain.PaymentInput{LeaseID: leaseID, Amount: amount, Date: a.clock.Now(), Method: method, Note: note}
	if err := in.Validate(); err != nil {
		return domain.Payment{}, err
	}
	return a.Finance.AddPayment(ctx, in)
}

// AddExpense validates in and stores it.
func (a *App) AddExpense(ctx context.Context, in domain.ExpenseInput) (domain.Expense, error) {
	if in.Date.IsZero() {
		in.Date = a.clock.Now()
	}
	if err := in.Validate(); err != nil {
		return domain.Expense{}, err
	}
	if _, ok := a.Properties.PropertyByID(in.PropertyID); !ok {
		return domain.Expense{}, ErrNotFound{Entity: domain.EntityProperty, ID: in.PropertyID}
	}
	return a.Finance.AddExpense(ctx, in)
}

// Snapshot copies every collection for the view functions.
func (a *App) Snapshot() views.Snapshot {
	return views.Snapshot{
		Properties: a.Properties.Properties(),
		Units:      a.Properties.Units(),
		Tenants:    a.Properties.Tenants(),
		Leases:     a.Properties.Leases(),
		Payments:   a.Finance.Payments(),
		Expenses:   a.Finance.Expenses(),
	}
}

// Now returns the app clock's current time.
func (a *App) Now() time.Time { return a.clock.Now() }
