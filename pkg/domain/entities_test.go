package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaseJSONShape(t *testing.T) {
	l := Lease{
		ID:         "lease-1",
		UnitID:     "unit-1",
		TenantID:   "tenant-1",
		StartDate:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
		RentAmount: decimal.RequireFromString("1200.50"),
		RentDueDay: 1,
		Active:     true,
	}
	raw, err := json.Marshal(l)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "2024-01-01T00:00:00Z", fields["startDate"])
	assert.Equal(t, "1200.5", fields["rentAmount"])
	assert.NotContains(t, fields, "leaseDocUrl")
}

func TestExpenseOptionalUnit(t *testing.T) {
	var e Expense
	require.NoError(t, json.Unmarshal([]byte(`{"id":"e","propertyId":"p","amount":75,"category":"Maintenance","date":"2024-08-25T00:00:00.000Z"}`), &e))
	assert.Nil(t, e.UnitID)
	assert.True(t, e.Amount.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, 25, e.Date.Day())

	unit := "unit-1"
	e.UnitID = &unit
	raw, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"unitId":"unit-1"`)
}
