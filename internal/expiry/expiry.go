// Package expiry holds the shelf-life classification engine. It is the single
// source of truth for expiry date math: both the expiring-records listing and
// any presentation of a record go through Classify, so storage-side filtering
// and display can never disagree on boundaries.
package expiry

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates everywhere in the API.
const DateLayout = "2006-01-02"

// Status is the freshness category of a production record.
type Status string

const (
	StatusExpired  Status = "expired"
	StatusExpiring Status = "expiring"
	StatusNormal   Status = "normal"
)

// DateError reports an unparsable or inconsistent date input. Callers should
// surface it as a validation problem, never coerce it to zero remaining days.
type DateError struct {
	Value string
	Err   error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %q: %v", e.Value, e.Err)
}

func (e *DateError) Unwrap() error { return e.Err }

// ParseDate parses a strict YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &DateError{Value: s, Err: err}
	}
	return t, nil
}

// Classification is the derived view over a production record. It is computed
// on read and never stored.
type Classification struct {
	ExpiryDate    time.Time
	RemainingDays int
	Status        Status
}

// Classify derives expiry date, remaining days and status from a record's
// snapshot fields and a reference date (normally time.Now()). Both operands
// are collapsed to calendar days, so the result is identical regardless of
// the time of day or timezone of ref.
//
// Boundaries: remaining == 0 means the record expires today and is already
// expired; remaining == reminderDays is the last day of the reminder window
// and counts as expiring.
func Classify(productionDate time.Time, shelfLifeDays, reminderDays int, ref time.Time) (Classification, error) {
	if shelfLifeDays <= 0 {
		return Classification{}, fmt.Errorf("shelf life must be positive, got %d", shelfLifeDays)
	}
	if reminderDays < 0 || reminderDays > shelfLifeDays {
		return Classification{}, fmt.Errorf("reminder days must be within [0, %d], got %d", shelfLifeDays, reminderDays)
	}

	prod := midnight(productionDate)
	expiryDate := prod.AddDate(0, 0, shelfLifeDays)
	remaining := daysBetween(midnight(ref), expiryDate)

	status := StatusNormal
	switch {
	case remaining <= 0:
		status = StatusExpired
	case remaining <= reminderDays:
		status = StatusExpiring
	}

	return Classification{
		ExpiryDate:    expiryDate,
		RemainingDays: remaining,
		Status:        status,
	}, nil
}

// midnight drops the time-of-day and timezone, keeping only the calendar day.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole calendar days from a to b. Both arguments are
// already midnight UTC, so the division is exact and no rounding direction
// ambiguity exists.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
