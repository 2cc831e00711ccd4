package views

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"rentledger/pkg/domain"
)

// EventType classifies a calendar event.
type EventType string

// Calendar event types.
const (
	EventRentDue    EventType = "rent_due"
	EventLeaseStart EventType = "lease_start"
	EventLeaseEnd   EventType = "lease_end"
)

// CalendarEvent is one dated entry derived from an active lease.
type CalendarEvent struct {
	ID            string          `json:"id"`
	Type          EventType       `json:"type"`
	Title         string          `json:"title"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount,omitzero"`
	IsPaid        bool            `json:"isPaid"`
	LeaseID       string          `json:"leaseId"`
	TenantID      string          `json:"tenantId"`
	TenantName    string          `json:"tenantName"`
	UnitID        string          `json:"unitId"`
	UnitNumber    string          `json:"unitNumber"`
	PropertyID    string          `json:"propertyId"`
	PropertyTitle string          `json:"propertyTitle"`
}

func sameMonth(t time.Time, year int, month time.Month) bool {
	t = t.UTC()
	return t.Year() == year && t.Month() == month
}

// BuildCalendar derives the events of (year, month) from every active lease
// whose unit, tenant and property resolve. A rent due day past the end of the
// month yields no rent event. The result is sorted by date, stable.
func BuildCalendar(s Snapshot, year int, month time.Month) []CalendarEvent {
	var events []CalendarEvent
	for _, lease := range s.Leases {
		if !lease.Active {
			continue
		}
		unit, ok := s.unit(lease.UnitID)
		if !ok {
			continue
		}
		tenant, ok := s.tenant(lease.TenantID)
		if !ok {
			continue
		}
		property, ok := s.property(unit.PropertyID)
		if !ok {
			continue
		}
		base := CalendarEvent{
			LeaseID:       lease.ID,
			TenantID:      tenant.ID,
			TenantName:    tenant.Name,
			UnitID:        unit.ID,
			UnitNumber:    unit.UnitNumber,
			PropertyID:    property.ID,
			PropertyTitle: property.Title,
		}

		due := time.Date(year, month, lease.RentDueDay, 0, 0, 0, 0, time.UTC)
		if due.Month() == month {
			ev := base
			ev.ID = fmt.Sprintf("rent-%s-%d", lease.ID, int(month))
			ev.Type = EventRentDue
			ev.Title = "Rent Due - " + tenant.Name
			ev.Date = due
			ev.Amount = lease.RentAmount
			ev.IsPaid = slices.ContainsFunc(s.Payments, func(p domain.Payment) bool {
				return p.LeaseID == lease.ID && sameMonth(p.Date, year, month)
			})
			events = append(events, ev)
		}
		if sameMonth(lease.StartDate, year, month) {
			ev := base
			ev.ID = "start-" + lease.ID
			ev.Type = EventLeaseStart
			ev.Title = "Lease Start - " + tenant.Name
			ev.Date = lease.StartDate.UTC()
			events = append(events, ev)
		}
		if sameMonth(lease.EndDate, year, month) {
			ev := base
			ev.ID = "end-" + lease.ID
			ev.Type = EventLeaseEnd
			ev.Title = "Lease End - " + tenant.Name
			ev.Date = lease.EndDate.UTC()
			events = append(events, ev)
		}
	}
	slices.SortStableFunc(events, func(a, b CalendarEvent) int { return a.Date.Compare(b.Date) })
	return events
}

// EventsOnDay keeps the events falling on day's UTC calendar date.
func EventsOnDay(events []CalendarEvent, day time.Time) []CalendarEvent {
	y, m, d := day.UTC().Date()
	var out []CalendarEvent
	for _, ev := range events {
		ey, em, ed := ev.Date.UTC().Date()
		if ey == y && em == m && ed == d {
			out = append(out, ev)
		}
	}
	return out
}
