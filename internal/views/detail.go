package views

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"rentledger/pkg/domain"
)

// LeaseDetail joins a lease with its unit, property, tenant and payments.
type LeaseDetail struct {
	Lease         domain.Lease
	Unit          domain.Unit
	Property      domain.Property
	Tenant        domain.Tenant
	Payments      []domain.Payment
	TotalPaid     decimal.Decimal
	DaysRemaining int
}

// DescribeLease resolves leaseID. It reports false when the lease or any of
// its unit, property or tenant is missing. DaysRemaining is negative once the
// lease has ended.
func DescribeLease(s Snapshot, leaseID string, now time.Time) (LeaseDetail, bool) {
	lease, ok := s.lease(leaseID)
	if !ok {
		return LeaseDetail{}, false
	}
	unit, ok := s.unit(lease.UnitID)
	if !ok {
		return LeaseDetail{}, false
	}
	property, ok := s.property(unit.PropertyID)
	if !ok {
		return LeaseDetail{}, false
	}
	tenant, ok := s.tenant(lease.TenantID)
	if !ok {
		return LeaseDetail{}, false
	}
	payments, total := paymentsNewestFirst(s.Payments, func(p domain.Payment) bool { return p.LeaseID == leaseID })
	return LeaseDetail{
		Lease:         lease,
		Unit:          unit,
		Property:      property,
		Tenant:        tenant,
		Payments:      payments,
		TotalPaid:     total,
		DaysRemaining: int(math.Ceil(lease.EndDate.Sub(now).Hours() / 24)),
	}, true
}

// TenantDetail joins a tenant with its leases and payments. ActiveLease, Unit
// and Property are nil when they cannot be resolved.
type TenantDetail struct {
	Tenant      domain.Tenant
	Leases      []domain.Lease
	ActiveLease *domain.Lease
	Unit        *domain.Unit
	Property    *domain.Property
	Payments    []domain.Payment
	TotalPaid   decimal.Decimal
}

// DescribeTenant resolves tenantID and collects payments across all of the
// tenant's leases, newest first.
func DescribeTenant(s Snapshot, tenantID string) (TenantDetail, bool) {
	tenant, ok := s.tenant(tenantID)
	if !ok {
		return TenantDetail{}, false
	}
	detail := TenantDetail{Tenant: tenant}
	leaseIDs := map[string]bool{}
	for _, l := range s.Leases {
		if l.TenantID != tenantID {
			continue
		}
		detail.Leases = append(detail.Leases, l)
		leaseIDs[l.ID] = true
		if l.Active && detail.ActiveLease == nil {
			active := l
			detail.ActiveLease = &active
		}
	}
	if detail.ActiveLease != nil {
		if unit, ok := s.unit(detail.ActiveLease.UnitID); ok {
			detail.Unit = &unit
			if property, ok := s.property(unit.PropertyID); ok {
				detail.Property = &property
			}
		}
	}
	detail.Payments, detail.TotalPaid = paymentsNewestFirst(s.Payments, func(p domain.Payment) bool { return leaseIDs[p.LeaseID] })
	return detail, true
}
