package core

import (
	"context"
	"fmt"
	"sync"

	"rentledger/internal/kv"
	"rentledger/pkg/domain"
)

// PropertyStore owns the property, unit, tenant and lease collections. Every
// mutation rewrites the whole affected collection. There is no update or delete.
type PropertyStore struct {
	store kv.Store
	opts  options

	mu         sync.RWMutex
	properties collection[domain.Property]
	units      collection[domain.Unit]
	tenants    collection[domain.Tenant]
	leases     collection[domain.Lease]
}

// NewPropertyStore constructs an empty store; call Load before use.
func NewPropertyStore(store kv.Store, opts ...Option) *PropertyStore {
	o := newOptions(opts)
	return &PropertyStore{
		store:      store,
		opts:       o,
		properties: newCollection(o.key(domain.EntityProperty), func(v domain.Property) string { return v.ID }),
		units:      newCollection(o.key(domain.EntityUnit), func(v domain.Unit) string { return v.ID }),
		tenants:    newCollection(o.key(domain.EntityTenant), func(v domain.Tenant) string { return v.ID }),
		leases:     newCollection(o.key(domain.EntityLease), func(v domain.Lease) string { return v.ID }),
	}
}

// Load reads the four collections. When no property has ever been stored the
// example bundle is written in one batch and exposed instead. On failure the
// collections are left empty.
func (s *PropertyStore) Load(ctx context.Context) error {
	return s.opts.run(ctx, "properties.load", func(ctx context.Context) error {
		err := s.load(ctx)
		if err != nil {
			s.opts.logger.Error("load properties", "error", err)
			s.mu.Lock()
			s.properties.replace(nil)
			s.units.replace(nil)
			s.tenants.replace(nil)
			s.leases.replace(nil)
			s.mu.Unlock()
			return fmt.Errorf("load properties: %w", err)
		}
		return nil
	})
}

func (s *PropertyStore) load(ctx context.Context) error {
	properties, err := readCollection[domain.Property](ctx, s.store, s.properties.key)
	if err != nil {
		return err
	}
	units, err := readCollection[domain.Unit](ctx, s.store, s.units.key)
	if err != nil {
		return err
	}
	tenants, err := readCollection[domain.Tenant](ctx, s.store, s.tenants.key)
	if err != nil {
		return err
	}
	leases, err := readCollection[domain.Lease](ctx, s.store, s.leases.key)
	if err != nil {
		return err
	}
	if len(properties) == 0 {
		seed := seedProperties()
		if err := s.writeSeed(ctx, seed); err != nil {
			return err
		}
		properties, units, tenants, leases = seed.properties, seed.units, seed.tenants, seed.leases
		s.opts.logger.Info("seeded example properties", "properties", len(properties), "units", len(units))
	}
	s.mu.Lock()
	s.properties.replace(properties)
	s.units.replace(units)
	s.tenants.replace(tenants)
	s.leases.replace(leases)
	s.mu.Unlock()
	return nil
}

func (s *PropertyStore) writeSeed(ctx context.Context, seed propertySeed) error {
	values := []struct {
		key string
		v   any
	}{
		{s.properties.key, seed.properties},
		{s.units.key, seed.units},
		{s.tenants.key, seed.tenants},
		{s.leases.key, seed.leases},
	}
	entries := make([]kv.Entry, 0, len(values))
	for _, val := range values {
		e, err := entry(val.key, val.v)
		if err != nil {
			return err
		}
		entries = append(entries, e)
	}
	if err := kv.SetAll(ctx, s.store, entries); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

// AddProperty stores a new property stamped with the current time.
func (s *PropertyStore) AddProperty(ctx context.Context, in domain.PropertyInput) (domain.Property, error) {
	p := domain.Property{
		ID:        s.opts.newID(),
		UserID:    in.UserID,
		Title:     in.Title,
		Address:   in.Address,
		City:      in.City,
		Currency:  in.Currency,
		Notes:     in.Notes,
		CreatedAt: s.opts.clock.Now(),
	}
	err := s.opts.run(ctx, "properties.add_property", func(ctx context.Context) error {
		return appendRecord(ctx, &s.opts, s.store, &s.mu, &s.properties, p)
	})
	if err != nil {
		return domain.Property{}, err
	}
	return p, nil
}

// AddUnit stores a new unit.
func (s *PropertyStore) AddUnit(ctx context.Context, in domain.UnitInput) (domain.Unit, error) {
	u := domain.Unit{
		ID:         s.opts.newID(),
		PropertyID: in.PropertyID,
		UnitNumber: in.UnitNumber,
		Bedrooms:   in.Bedrooms,
		Size:       in.Size,
		RentAmount: in.RentAmount,
		Active:     in.Active,
		Notes:      in.Notes,
	}
	err := s.opts.run(ctx, "properties.add_unit", func(ctx context.Context) error {
		return appendRecord(ctx, &s.opts, s.store, &s.mu, &s.units, u)
	})
	if err != nil {
		return domain.Unit{}, err
	}
	return u, nil
}

// AddTenant stores a new tenant.
func (s *PropertyStore) AddTenant(ctx context.Context, in domain.TenantInput) (domain.Tenant, error) {
	t := domain.Tenant{
		ID:       s.opts.newID(),
		UserID:   in.UserID,
		Name:     in.Name,
		Phone:    in.Phone,
		Email:    in.Email,
		IDDocURL: in.IDDocURL,
	}
	err := s.opts.run(ctx, "properties.add_tenant", func(ctx context.Context) error {
		return appendRecord(ctx, &s.opts, s.store, &s.mu, &s.tenants, t)
	})
	if err != nil {
		return domain.Tenant{}, err
	}
	return t, nil
}

// AddLease stores a new lease. Other active leases on the same unit are left
// untouched.
func (s *PropertyStore) AddLease(ctx context.Context, in domain.LeaseInput) (domain.Lease, error) {
	l := domain.Lease{
		ID:            s.opts.newID(),
		UnitID:        in.UnitID,
		TenantID:      in.TenantID,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		RentAmount:    in.RentAmount,
		DepositAmount: in.DepositAmount,
		RentDueDay:    in.RentDueDay,
		LeaseDocURL:   in.LeaseDocURL,
		Active:        in.Active,
	}
	err := s.opts.run(ctx, "properties.add_lease", func(ctx context.Context) error {
		return appendRecord(ctx, &s.opts, s.store, &s.mu, &s.leases, l)
	})
	if err != nil {
		return domain.Lease{}, err
	}
	return l, nil
}

// Properties returns a copy of all properties in stored order.
func (s *PropertyStore) Properties() []domain.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.properties.snapshot()
}

// Units returns a copy of all units in stored order.
func (s *PropertyStore) Units() []domain.Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.units.snapshot()
}

// Tenants returns a copy of all tenants in stored order.
func (s *PropertyStore) Tenants() []domain.Tenant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tenants.snapshot()
}

// Leases returns a copy of all leases in stored order.
func (s *PropertyStore) Leases() []domain.Lease {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leases.snapshot()
}

// UnitsForProperty returns the units of propertyID in stored order.
func (s *PropertyStore) UnitsForProperty(propertyID string) []domain.Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.units.filter(func(u domain.Unit) bool { return u.PropertyID == propertyID })
}

// ActiveLeaseForUnit returns the first active lease for unitID. Uniqueness of
// active leases per unit is not enforced.
func (s *PropertyStore) ActiveLeaseForUnit(unitID string) (domain.Lease, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leases.first(func(l domain.Lease) bool { return l.UnitID == unitID && l.Active })
}

// TenantByID returns the first tenant with id.
func (s *PropertyStore) TenantByID(id string) (domain.Tenant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tenants.first(func(t domain.Tenant) bool { return t.ID == id })
}

// PropertyByID returns the first property with id.
func (s *PropertyStore) PropertyByID(id string) (domain.Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.properties.first(func(p domain.Property) bool { return p.ID == id })
}

// UnitByID returns the first unit with id.
func (s *PropertyStore) UnitByID(id string) (domain.Unit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.units.first(func(u domain.Unit) bool { return u.ID == id })
}

// LeaseByID returns the first lease with id.
func (s *PropertyStore) LeaseByID(id string) (domain.Lease, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leases.first(func(l domain.Lease) bool { return l.ID == id })
}

// LeasesForTenant returns every lease held by tenantID in stored order.
func (s *PropertyStore) LeasesForTenant(tenantID string) []domain.Lease {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leases.filter(func(l domain.Lease) bool { return l.TenantID == tenantID })
}
