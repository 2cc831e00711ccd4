// Package domain defines the persistent landlord records (profile, properties,
// units, tenants, leases, payments, expenses) and their input types.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntityType identifies the type of record stored in a collection.
type EntityType string

// Supported entity type identifiers used for collection keys and error messages.
const (
	// EntityUser identifies the single locally stored profile.
	EntityUser EntityType = "user"
	// EntityProperty identifies a managed real-estate asset.
	EntityProperty EntityType = "property"
	// EntityUnit identifies a rentable sub-division of a property.
	EntityUnit EntityType = "unit"
	// EntityTenant identifies a person holding leases.
	EntityTenant EntityType = "tenant"
	// EntityLease identifies a rental agreement between a tenant and a unit.
	EntityLease EntityType = "lease"
	// EntityPayment identifies a recorded rent payment.
	EntityPayment EntityType = "payment"
	// EntityExpense identifies a recorded property expense.
	EntityExpense EntityType = "expense"
)

// User is the installation's single profile record. It is rewritten on every
// sign-in and removed on sign-out.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"createdAt"`
}

// Property is a managed asset owned by a user. UserID is a lookup reference only.
type Property struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Currency  string    `json:"currency"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Unit is a rentable space inside a property.
type Unit struct {
	ID         string          `json:"id"`
	PropertyID string          `json:"propertyId"`
	UnitNumber string          `json:"unitNumber"`
	Bedrooms   int             `json:"bedrooms"`
	Size       *float64        `json:"size,omitempty"`
	RentAmount decimal.Decimal `json:"rentAmount"`
	Active     bool            `json:"active"`
	Notes      string          `json:"notes,omitempty"`
}

// Tenant is a person who may hold one or more leases.
type Tenant struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	IDDocURL string `json:"idDocUrl,omitempty"`
}

// Lease binds a tenant to a unit. Nothing prevents more than one active lease
// per unit; lookups take the first active match.
type Lease struct {
	ID            string          `json:"id"`
	UnitID        string          `json:"unitId"`
	TenantID      string          `json:"tenantId"`
	StartDate     time.Time       `json:"startDate"`
	EndDate       time.Time       `json:"endDate"`
	RentAmount    decimal.Decimal `json:"rentAmount"`
	DepositAmount decimal.Decimal `json:"depositAmount"`
	RentDueDay    int             `json:"rentDueDay"`
	LeaseDocURL   string          `json:"leaseDocUrl,omitempty"`
	Active        bool            `json:"active"`
}

// Payment records money received against a lease.
type Payment struct {
	ID         string          `json:"id"`
	LeaseID    string          `json:"leaseId"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	Method     string          `json:"method"`
	Note       string          `json:"note,omitempty"`
	ReceiptURL string          `json:"receiptUrl,omitempty"`
}

// Expense records money spent on a property, optionally scoped to a unit.
type Expense struct {
	ID         string          `json:"id"`
	PropertyID string          `json:"propertyId"`
	UnitID     *string         `json:"unitId,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Category   string          `json:"category"`
	Date       time.Time       `json:"date"`
	Vendor     string          `json:"vendor,omitempty"`
	ReceiptURL string          `json:"receiptUrl,omitempty"`
	Note       string          `json:"note,omitempty"`
}
