package views

import (
	"github.com/shopspring/decimal"

	"rentledger/pkg/domain"
)

// Occupancy summarises how many units of a property hold an active lease.
type Occupancy struct {
	PropertyID    string          `json:"propertyId"`
	TotalUnits    int             `json:"totalUnits"`
	OccupiedUnits int             `json:"occupiedUnits"`
	Percent       float64         `json:"percent"`
	TotalRent     decimal.Decimal `json:"totalRent"`
}

// HasUnits reports whether Percent is meaningful. A property with no units
// reports 0 percent.
func (o Occupancy) HasUnits() bool { return o.TotalUnits > 0 }

// PropertyOccupancy counts the units of propertyID and those with an active
// lease. TotalRent sums the units' listed rent.
func PropertyOccupancy(propertyID string, units []domain.Unit, leases []domain.Lease) Occupancy {
	occ := Occupancy{PropertyID: propertyID, TotalRent: decimal.Zero}
	for _, u := range units {
		if u.PropertyID != propertyID {
			continue
		}
		occ.TotalUnits++
		occ.TotalRent = occ.TotalRent.Add(u.RentAmount)
		if _, ok := activeLease(leases, u.ID); ok {
			occ.OccupiedUnits++
		}
	}
	if occ.TotalUnits > 0 {
		occ.Percent = float64(occ.OccupiedUnits) / float64(occ.TotalUnits) * 100
	}
	return occ
}
