// Package views derives read-only aggregates from the in-memory collections.
// Every function is pure and recomputed per call. Dates are bucketed in UTC.
package views

import (
	"slices"

	"github.com/shopspring/decimal"

	"rentledger/pkg/domain"
)

// Snapshot is a point-in-time copy of every collection the views read.
type Snapshot struct {
	Properties []domain.Property
	Units      []domain.Unit
	Tenants    []domain.Tenant
	Leases     []domain.Lease
	Payments   []domain.Payment
	Expenses   []domain.Expense
}

func (s Snapshot) property(id string) (domain.Property, bool) {
	i := slices.IndexFunc(s.Properties, func(p domain.Property) bool { return p.ID == id })
	if i < 0 {
		return domain.Property{}, false
	}
	return s.Properties[i], true
}

func (s Snapshot) unit(id string) (domain.Unit, bool) {
	i := slices.IndexFunc(s.Units, func(u domain.Unit) bool { return u.ID == id })
	if i < 0 {
		return domain.Unit{}, false
	}
	return s.Units[i], true
}

func (s Snapshot) tenant(id string) (domain.Tenant, bool) {
	i := slices.IndexFunc(s.Tenants, func(t domain.Tenant) bool { return t.ID == id })
	if i < 0 {
		return domain.Tenant{}, false
	}
	return s.Tenants[i], true
}

func (s Snapshot) lease(id string) (domain.Lease, bool) {
	i := slices.IndexFunc(s.Leases, func(l domain.Lease) bool { return l.ID == id })
	if i < 0 {
		return domain.Lease{}, false
	}
	return s.Leases[i], true
}

// activeLease mirrors the store lookup: first active lease on the unit.
func activeLease(leases []domain.Lease, unitID string) (domain.Lease, bool) {
	i := slices.IndexFunc(leases, func(l domain.Lease) bool { return l.UnitID == unitID && l.Active })
	if i < 0 {
		return domain.Lease{}, false
	}
	return leases[i], true
}

// paymentsNewestFirst filters payments by lease and orders them by date descending.
func paymentsNewestFirst(payments []domain.Payment, keep func(domain.Payment) bool) ([]domain.Payment, decimal.Decimal) {
	var out []domain.Payment
	total := decimal.Zero
	for _, p := range payments {
		if keep(p) {
			out = append(out, p)
			total = total.Add(p.Amount)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Payment) int { return b.Date.Compare(a.Date) })
	return out, total
}
