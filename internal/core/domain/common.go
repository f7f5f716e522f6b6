package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// DateOnly truncates t to midnight UTC of its calendar day.
// Ledger dates carry no time-of-day component.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange normalizes both bounds to calendar days and rejects inverted ranges.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: DateOnly(start), End: DateOnly(end)}
	if r.End.Before(r.Start) {
		return DateRange{}, fmt.Errorf("range end %s is before start %s", r.End.Format(DateLayout), r.Start.Format(DateLayout))
	}
	return r, nil
}

// Contains reports whether the calendar day of t falls within the range.
func (r DateRange) Contains(t time.Time) bool {
	d := DateOnly(t)
	return !d.Before(r.Start) && !d.After(r.End)
}
