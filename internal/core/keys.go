package core

import "rentledger/pkg/domain"

const (
	// DefaultNamespace prefixes every persisted key.
	DefaultNamespace = "landlord_"
	// DefaultCurrency is assigned to new profiles when none is configured.
	DefaultCurrency = "USD"
)

var collectionKeys = map[domain.EntityType]string{
	domain.EntityUser:     "user",
	domain.EntityProperty: "properties",
	domain.EntityUnit:     "units",
	domain.EntityTenant:   "tenants",
	domain.EntityLease:    "leases",
	domain.EntityPayment:  "payments",
	domain.EntityExpense:  "expenses",
}

// CollectionKey returns the persisted key holding records of entity under namespace.
func CollectionKey(namespace string, entity domain.EntityType) string {
	return namespace + collectionKeys[entity]
}

func (o *options) key(entity domain.EntityType) string {
	return CollectionKey(o.namespace, entity)
}
