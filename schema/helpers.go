package schema

import "time"

// DateFormat is the canonical date representation in price extracts.
const DateFormat = "2006-01-02"

// MonthFormat is the flag representation of the clustering month.
const MonthFormat = "2006-01"

// WeekdayOrder is the canonical, locale-independent weekday ordering used
// for the periodic component: Monday first, Sunday last.
var WeekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// DaysInMonth returns the number of calendar days in the month containing t.
func DaysInMonth(t time.Time) int {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, 1, -1).Day()
}

// SameMonth reports whether t falls in the same calendar month as month.
func SameMonth(t, month time.Time) bool {
	return t.Year() == month.Year() && t.Month() == month.Month()
}

// DateOrdinate converts a date to a monotonic numeric ordinate (days since
// the Unix epoch) for use as the regression abscissa.
func DateOrdinate(t time.Time) float64 {
	return float64(t.Unix()) / 86400.0
}
