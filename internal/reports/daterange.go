package reports

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire and input format for report dates.
const DateLayout = "2006-01-02"

// Date range keys.
const (
	RangeAll            = All
	RangeToday          = "today"
	RangeCurrentWeek    = "current-week"
	RangeLastWeek       = "last-week"
	RangeCurrentMonth   = "current-month"
	RangeLastMonth      = "last-month"
	RangeCurrentQuarter = "current-quarter"
	RangeLastQuarter    = "last-quarter"
	RangeCurrentYear    = "current-year"
	RangeLastYear       = "last-year"
	RangeCustom         = "custom"
)

var (
	ErrIncompleteRange = errors.New("reports: custom range needs a start and an end date")
	ErrInvertedRange   = errors.New("reports: start date is after end date")
	ErrUnknownRange    = errors.New("reports: unknown date range")
)

// DateRangeOptions returns the date range select choices.
func DateRangeOptions() []Option {
	return []Option{
		{Value: RangeAll, Label: "Any time"},
		{Value: RangeToday, Label: "Today"},
		{Value: RangeCurrentWeek, Label: "This week"},
		{Value: RangeLastWeek, Label: "Last week"},
		{Value: RangeCurrentMonth, Label: "This month"},
		{Value: RangeLastMonth, Label: "Last month"},
		{Value: RangeCurrentQuarter, Label: "This quarter"},
		{Value: RangeLastQuarter, Label: "Last quarter"},
		{Value: RangeCurrentYear, Label: "This year"},
		{Value: RangeLastYear, Label: "Last year"},
		{Value: RangeCustom, Label: "Custom"},
	}
}

// Interval is an inclusive range of calendar days.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls on a day within the interval.
func (i Interval) Contains(t time.Time) bool {
	day := startOfDay(t.In(i.Start.Location()))
	return !day.Before(i.Start) && !day.After(i.End)
}

func (i Interval) String() string {
	return i.Start.Format(DateLayout) + ".." + i.End.Format(DateLayout)
}

// Quarter returns the year and zero-based quarter index of t.
func Quarter(t time.Time) (int, int) {
	return t.Year(), (int(t.Month()) - 1) / 3
}

// LastQuarter returns the quarter before the one containing now. In January to
// March that is index 3 of the previous year.
func LastQuarter(now time.Time) (int, int) {
	year, q := Quarter(now)
	if q == 0 {
		return year - 1, 3
	}
	return year, q - 1
}

// QuarterInterval returns the days of quarter q (0-3) of year.
func QuarterInterval(year, q int, loc *time.Location) Interval {
	start := time.Date(year, time.Month(q*3+1), 1, 0, 0, 0, 0, loc)
	return Interval{Start: start, End: start.AddDate(0, 3, -1)}
}

// Resolve translates a date range key into concrete day boundaries relative to
// now. The bool is false when the range does not constrain dates. Custom ranges
// read start and end in DateLayout.
func Resolve(key, start, end string, now time.Time) (Interval, bool, error) {
	today := startOfDay(now)
	loc := today.Location()
	switch key {
	case "", RangeAll:
		return Interval{}, false, nil
	case RangeToday:
		return Interval{Start: today, End: today}, true, nil
	case RangeCurrentWeek:
		first := today.AddDate(0, 0, -int(today.Weekday()))
		return Interval{Start: first, End: first.AddDate(0, 0, 6)}, true, nil
	case RangeLastWeek:
		first := today.AddDate(0, 0, -int(today.Weekday())-7)
		return Interval{Start: first, End: first.AddDate(0, 0, 6)}, true, nil
	case RangeCurrentMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		return Interval{Start: first, End: first.AddDate(0, 1, -1)}, true, nil
	case RangeLastMonth:
		first := time.Date(today.Year(), today.Month()-1, 1, 0, 0, 0, 0, loc)
		return Interval{Start: first, End: first.AddDate(0, 1, -1)}, true, nil
	case RangeCurrentQuarter:
		year, q := Quarter(today)
		return QuarterInterval(year, q, loc), true, nil
	case RangeLastQuarter:
		year, q := LastQuarter(today)
		return QuarterInterval(year, q, loc), true, nil
	case RangeCurrentYear:
		first := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return Interval{Start: first, End: first.AddDate(1, 0, -1)}, true, nil
	case RangeLastYear:
		first := time.Date(today.Year()-1, time.January, 1, 0, 0, 0, 0, loc)
		return Interval{Start: first, End: first.AddDate(1, 0, -1)}, true, nil
	case RangeCustom:
		if start == "" || end == "" {
			return Interval{}, false, ErrIncompleteRange
		}
		from, err := time.ParseInLocation(DateLayout, start, loc)
		if err != nil {
			return Interval{}, false, fmt.Errorf("reports: start date: %w", err)
		}
		to, err := time.ParseInLocation(DateLayout, end, loc)
		if err != nil {
			return Interval{}, false, fmt.Errorf("reports: end date: %w", err)
		}
		if from.After(to) {
			return Interval{}, false, ErrInvertedRange
		}
		return Interval{Start: from, End: to}, true, nil
	}
	return Interval{}, false, fmt.Errorf("%w: %q", ErrUnknownRange, key)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
