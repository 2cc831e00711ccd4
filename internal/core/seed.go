package core

import (
	"time"

	"github.com/shopspring/decimal"

	"rentledger/pkg/domain"
)

// Example records written the first time a store finds its primary
// collection empty.

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func sqft(v float64) *float64 { return &v }

type propertySeed struct {
	properties []domain.Property
	units      []domain.Unit
	tenants    []domain.Tenant
	leases     []domain.Lease
}

func seedProperties() propertySeed {
	return propertySeed{
		properties: []domain.Property{
			{ID: "prop-1", UserID: "1", Title: "Sunset Apartments", Address: "123 Main Street", City: "New York", Currency: "$", Notes: "Modern apartment complex with great amenities", CreatedAt: day(2024, time.January, 1)},
			{ID: "prop-2", UserID: "1", Title: "Downtown Lofts", Address: "456 Oak Avenue", City: "San Francisco", Currency: "$", Notes: "Trendy lofts in the heart of downtown", CreatedAt: day(2024, time.February, 1)},
		},
		units: []domain.Unit{
			{ID: "unit-1", PropertyID: "prop-1", UnitNumber: "101", Bedrooms: 2, Size: sqft(850), RentAmount: decimal.NewFromInt(1200), Active: true, Notes: "Corner unit with great views"},
			{ID: "unit-2", PropertyID: "prop-1", UnitNumber: "102", Bedrooms: 1, Size: sqft(650), RentAmount: decimal.NewFromInt(900), Active: true},
			{ID: "unit-3", PropertyID: "prop-2", UnitNumber: "A", Bedrooms: 3, Size: sqft(1200), RentAmount: decimal.NewFromInt(2500), Active: true, Notes: "Spacious loft with exposed brick"},
		},
		tenants: []domain.Tenant{
			{ID: "tenant-1", UserID: "1", Name: "John Smith", Phone: "+1-555-0123", Email: "john.smith@email.com"},
			{ID: "tenant-2", UserID: "1", Name: "Sarah Johnson", Phone: "+1-555-0456", Email: "sarah.johnson@email.com"},
		},
		leases: []domain.Lease{
			{ID: "lease-1", UnitID: "unit-1", TenantID: "tenant-1", StartDate: day(2024, time.January, 1), EndDate: day(2024, time.December, 31), RentAmount: decimal.NewFromInt(1200), DepositAmount: decimal.NewFromInt(1200), RentDueDay: 1, Active: true},
			{ID: "lease-2", UnitID: "unit-3", TenantID: "tenant-2", StartDate: day(2024, time.February, 1), EndDate: day(2025, time.January, 31), RentAmount: decimal.NewFromInt(2500), DepositAmount: decimal.NewFromInt(2500), RentDueDay: 5, Active: true},
		},
	}
}

func seedFinance() ([]domain.Payment, []domain.Expense) {
	unit1 := "unit-1"
	payments := []domain.Payment{
		{ID: "payment-1", LeaseID: "lease-1", Amount: decimal.NewFromInt(1200), Date: day(2024, time.September, 1), Method: "Bank Transfer", Note: "September rent payment"},
		{ID: "payment-2", LeaseID: "lease-2", Amount: decimal.NewFromInt(2500), Date: day(2024, time.September, 5), Method: "Online Payment", Note: "September rent payment"},
		{ID: "payment-3", LeaseID: "lease-1", Amount: decimal.NewFromInt(1200), Date: day(2024, time.August, 1), Method: "Bank Transfer", Note: "August rent payment"},
	}
	expenses := []domain.Expense{
		{ID: "expense-1", PropertyID: "prop-1", UnitID: &unit1, Amount: decimal.NewFromInt(150), Category: "Maintenance", Date: day(2024, time.September, 10), Vendor: "ABC Plumbing", Note: "Fixed kitchen sink leak"},
		{ID: "expense-2", PropertyID: "prop-1", Amount: decimal.NewFromInt(300), Category: "Utilities", Date: day(2024, time.September, 1), Vendor: "City Electric", Note: "Monthly electricity bill"},
		{ID: "expense-3", PropertyID: "prop-2", Amount: decimal.NewFromInt(75), Category: "Maintenance", Date: day(2024, time.August, 25), Vendor: "Green Lawn Care", Note: "Landscaping services"},
	}
	return payments, expenses
}
