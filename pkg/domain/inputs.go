package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ValidationError reports an input field that failed validation.
type ValidationError struct {
	Entity  EntityType
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Entity, e.Field, e.Message)
}

func required(entity EntityType, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Entity: entity, Field: field, Message: "is required"}
	}
	return nil
}

func positive(entity EntityType, field string, value decimal.Decimal) error {
	if !value.IsPositive() {
		return ValidationError{Entity: entity, Field: field, Message: "must be greater than zero"}
	}
	return nil
}

// PropertyInput carries the caller supplied fields of a new property.
type PropertyInput struct {
	UserID   string
	Title    string
	Address  string
	City     string
	Currency string
	Notes    string
}

// Validate checks the fields the property form requires.
func (in PropertyInput) Validate() error {
	if err := required(EntityProperty, "title", in.Title); err != nil {
		return err
	}
	if err := required(EntityProperty, "address", in.Address); err != nil {
		return err
	}
	return required(EntityProperty, "city", in.City)
}

// UnitInput carries the caller supplied fields of a new unit.
type UnitInput struct {
	PropertyID string
	UnitNumber string
	Bedrooms   int
	Size       *float64
	RentAmount decimal.Decimal
	Active     bool
	Notes      string
}

// Validate checks required fields and numeric ranges.
func (in UnitInput) Validate() error {
	if err := required(EntityUnit, "propertyId", in.PropertyID); err != nil {
		return err
	}
	if err := required(EntityUnit, "unitNumber", in.UnitNumber); err != nil {
		return err
	}
	if in.Bedrooms < 0 {
		return ValidationError{Entity: EntityUnit, Field: "bedrooms", Message: "must not be negative"}
	}
	if err := positive(EntityUnit, "rentAmount", in.RentAmount); err != nil {
		return err
	}
	if in.Size != nil && *in.Size <= 0 {
		return ValidationError{Entity: EntityUnit, Field: "size", Message: "must be greater than zero"}
	}
	return nil
}

// TenantInput carries the caller supplied fields of a new tenant.
type TenantInput struct {
	UserID   string
	Name     string
	Phone    string
	Email    string
	IDDocURL string
}

// Validate checks the fields the tenant form requires.
func (in TenantInput) Validate() error {
	if err := required(EntityTenant, "name", in.Name); err != nil {
		return err
	}
	if err := required(EntityTenant, "phone", in.Phone); err != nil {
		return err
	}
	return required(EntityTenant, "email", in.Email)
}

// LeaseInput carries the caller supplied fields of a new lease.
type LeaseInput struct {
	UnitID        string
	TenantID      string
	StartDate     time.Time
	EndDate       time.Time
	RentAmount    decimal.Decimal
	DepositAmount decimal.Decimal
	RentDueDay    int
	LeaseDocURL   string
	Active        bool
}

// Validate checks references, dates and amounts. TenantID may be empty when
// the lease is created together with its tenant.
func (in LeaseInput) Validate() error {
	if err := required(EntityLease, "unitId", in.UnitID); err != nil {
		return err
	}
	if in.StartDate.IsZero() {
		return ValidationError{Entity: EntityLease, Field: "startDate", Message: "is required"}
	}
	if in.EndDate.IsZero() {
		return ValidationError{Entity: EntityLease, Field: "endDate", Message: "is required"}
	}
	if in.EndDate.Before(in.StartDate) {
		return ValidationError{Entity: EntityLease, Field: "endDate", Message: "must not precede startDate"}
	}
	if err := positive(EntityLease, "rentAmount", in.RentAmount); err != nil {
		return err
	}
	if in.DepositAmount.IsNegative() {
		return ValidationError{Entity: EntityLease, Field: "depositAmount", Message: "must not be negative"}
	}
	if in.RentDueDay < 1 || in.RentDueDay > 31 {
		return ValidationError{Entity: EntityLease, Field: "rentDueDay", Message: "must be between 1 and 31"}
	}
	return nil
}

// PaymentInput carries the caller supplied fields of a new payment.
type PaymentInput struct {
	LeaseID    string
	Amount     decimal.Decimal
	Date       time.Time
	Method     string
	Note       string
	ReceiptURL string
}

// Validate checks the amount and lease reference.
func (in PaymentInput) Validate() error {
	if err := required(EntityPayment, "leaseId", in.LeaseID); err != nil {
		return err
	}
	return positive(EntityPayment, "amount", in.Amount)
}

// ExpenseInput carries the caller supplied fields of a new expense.
type ExpenseInput struct {
	PropertyID string
	UnitID     *string
	Amount     decimal.Decimal
	Category   string
	Date       time.Time
	Vendor     string
	ReceiptURL string
	Note       string
}

// Validate checks the amount and category the expense form requires.
func (in ExpenseInput) Validate() error {
	if err := required(EntityExpense, "propertyId", in.PropertyID); err != nil {
		return err
	}
	if err := positive(EntityExpense, "amount", in.Amount); err != nil {
		return err
	}
	return required(EntityExpense, "category", in.Category)
}
