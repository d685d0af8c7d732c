// Package validation collects field-level checks into a Violations map so a
// request is rejected with every offending field named, before any store call.
package validation

import (
	"strings"

	"github.com/HFQ252/Shelflife/internal/expiry"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// ExactLen flags values that are present but not exactly n characters (SKUs).
func ExactLen(field, value string, n int, v Violations) {
	if value != "" && len(value) != n {
		v[field] = "wrong_length"
	}
}

func PositiveInt(field string, val int, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func NonNegativeInt(field string, val int, v Violations) {
	if val < 0 {
		v[field] = "must_be_non_negative"
	}
}

// ISODate flags values that do not parse as a strict YYYY-MM-DD calendar date.
func ISODate(field, value string, v Violations) {
	if value == "" {
		v[field] = "required"
		return
	}
	if _, err := expiry.ParseDate(value); err != nil {
		v[field] = "invalid_date"
	}
}

// ReminderWithinShelfLife enforces the catalog invariant
// 0 <= reminderDays <= shelfLifeDays.
func ReminderWithinShelfLife(field string, reminderDays, shelfLifeDays int, v Violations) {
	if _, dup := v[field]; dup {
		return
	}
	if reminderDays > shelfLifeDays {
		v[field] = "exceeds_shelf_life"
	}
}
