package domain

import "time"

// Fixed day structure the slot builder packs into. The three blocks define
// the total addressable time budget for a day; they are design constants,
// not per-call configuration.
const (
	MorningStartMin   = 9 * 60           // 09:00
	MorningEndMin     = 12 * 60          // 12:00
	LunchStartMin     = 12*60 + 30       // 12:30
	LunchEndMin       = 13*60 + 30       // 13:30
	AfternoonStartMin = LunchEndMin      // 13:30
	AfternoonEndMin   = 17*60 + 30       // 17:30
	DayTotalBudgetMin = (MorningEndMin - MorningStartMin) +
		(LunchEndMin - LunchStartMin) +
		(AfternoonEndMin - AfternoonStartMin) // 480

	MaxVisitsPerDay = 4
)

// ClockTime anchors a minutes-since-midnight offset onto a calendar date.
func ClockTime(date time.Time, minOfDay int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, minOfDay/60, minOfDay%60, 0, 0, time.UTC)
}
