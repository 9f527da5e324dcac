package timeutil

import "time"

// IST is the fixed timezone anchoring every date window in the app,
// regardless of server or client locale.
var IST = loadIST()

func loadIST() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Containers without tzdata still get the correct UTC+5:30 offset
		return time.FixedZone("IST", 5*3600+30*60)
	}
	return loc
}

// Window is an inclusive [Start, End] instant range used for due-date queries.
type Window struct {
	Start time.Time
	End   time.Time
}

// StartOfDay returns 00:00:00.000 of t's calendar day in IST.
func StartOfDay(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 0, 0, 0, 0, IST)
}

// EndOfDay returns 23:59:59.999 of t's calendar day in IST. Millisecond
// precision matches what MongoDB stores for Date values.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Millisecond)
}

// Today resolves the full IST calendar day containing now.
func Today(now time.Time) Window {
	return Window{Start: StartOfDay(now), End: EndOfDay(now)}
}

// DueSoon resolves the next three days starting at now itself, not at
// midnight. The asymmetry with Today is intentional: a task already past due
// earlier today is not "due soon".
func DueSoon(now time.Time) Window {
	ist := now.In(IST)
	return Window{Start: ist, End: ist.Add(72 * time.Hour)}
}

// Month resolves the full IST calendar month, first instant through the last
// millisecond of the last day.
func Month(year, month int) Window {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, IST)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return Window{Start: start, End: end}
}

// DateString returns t's IST calendar date as an ISO date string
// (e.g. "2025-02-28"). Streak entries are keyed by these strings.
func DateString(t time.Time) string {
	return t.In(IST).Format("2006-01-02")
}

// NextMidnight returns the first instant of the IST day after now. The daily
// cleanup scheduler sleeps until this instant.
func NextMidnight(now time.Time) time.Time {
	return StartOfDay(now).AddDate(0, 0, 1)
}
