package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		name          string
		production    string
		shelfLife     int
		reminderDays  int
		ref           string
		wantExpiry    string
		wantRemaining int
		wantStatus    Status
	}{
		{
			name:       "fresh record well outside the reminder window",
			production: "2024-01-01", shelfLife: 180, reminderDays: 7,
			ref:        "2024-01-02",
			wantExpiry: "2024-06-29", wantRemaining: 179, wantStatus: StatusNormal,
		},
		{
			name:       "inside the reminder window",
			production: "2024-01-01", shelfLife: 180, reminderDays: 7,
			ref:        "2024-06-25",
			wantExpiry: "2024-06-29", wantRemaining: 4, wantStatus: StatusExpiring,
		},
		{
			name:       "past expiry",
			production: "2024-01-01", shelfLife: 180, reminderDays: 7,
			ref:        "2024-07-01",
			wantExpiry: "2024-06-29", wantRemaining: -2, wantStatus: StatusExpired,
		},
		{
			name:       "expiry day itself is already expired",
			production: "2024-01-01", shelfLife: 180, reminderDays: 7,
			ref:        "2024-06-29",
			wantExpiry: "2024-06-29", wantRemaining: 0, wantStatus: StatusExpired,
		},
		{
			name:       "last day of the reminder window is expiring",
			production: "2024-01-01", shelfLife: 180, reminderDays: 7,
			ref:        "2024-06-22",
			wantExpiry: "2024-06-29", wantRemaining: 7, wantStatus: StatusExpiring,
		},
		{
			name:       "first day outside the reminder window is normal",
			production: "2024-01-01", shelfLife: 180, reminderDays: 7,
			ref:        "2024-06-21",
			wantExpiry: "2024-06-29", wantRemaining: 8, wantStatus: StatusNormal,
		},
		{
			name:       "zero reminder days only flags expired",
			production: "2024-01-01", shelfLife: 10, reminderDays: 0,
			ref:        "2024-01-10",
			wantExpiry: "2024-01-11", wantRemaining: 1, wantStatus: StatusNormal,
		},
		{
			name:       "month and year rollover",
			production: "2023-12-20", shelfLife: 21, reminderDays: 3,
			ref:        "2024-01-08",
			wantExpiry: "2024-01-10", wantRemaining: 2, wantStatus: StatusExpiring,
		},
		{
			name:       "leap day addition",
			production: "2024-02-28", shelfLife: 2, reminderDays: 1,
			ref:        "2024-02-28",
			wantExpiry: "2024-03-01", wantRemaining: 2, wantStatus: StatusNormal,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Classify(date(tc.production), tc.shelfLife, tc.reminderDays, date(tc.ref))
			assert.NoError(t, err)
			assert.Equal(t, tc.wantExpiry, got.ExpiryDate.Format(DateLayout))
			assert.Equal(t, tc.wantRemaining, got.RemainingDays)
			assert.Equal(t, tc.wantStatus, got.Status)
		})
	}
}

func TestClassifyIgnoresTimeOfDay(t *testing.T) {
	prod := time.Date(2024, 1, 1, 23, 59, 59, 0, time.FixedZone("UTC+8", 8*3600))
	ref := time.Date(2024, 6, 25, 0, 0, 1, 0, time.FixedZone("UTC-5", -5*3600))

	got, err := Classify(prod, 180, 7, ref)
	assert.NoError(t, err)
	assert.Equal(t, 4, got.RemainingDays)
	assert.Equal(t, StatusExpiring, got.Status)
}

func TestClassifyRejectsInvalidInputs(t *testing.T) {
	ref := date("2024-01-01")

	_, err := Classify(date("2024-01-01"), 0, 0, ref)
	assert.Error(t, err, "non-positive shelf life must not classify")

	_, err = Classify(date("2024-01-01"), -5, 0, ref)
	assert.Error(t, err)

	_, err = Classify(date("2024-01-01"), 10, -1, ref)
	assert.Error(t, err)

	_, err = Classify(date("2024-01-01"), 10, 11, ref)
	assert.Error(t, err, "reminder window larger than shelf life must not classify")
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-06-29")
	assert.NoError(t, err)
	assert.Equal(t, date("2024-06-29"), got)

	for _, bad := range []string{"", "2024-6-29", "29/06/2024", "2024-13-01", "not-a-date"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
		var derr *DateError
		assert.ErrorAs(t, err, &derr, bad)
	}
}
