// Package calendar handles the dual-calendar dates of the booking flow:
// the store keeps Gregorian YYYY-MM-DD strings, while guests enter and read
// dates in the Jalali calendar. All day arithmetic happens at date
// granularity in the Tehran location.
package calendar

import (
	"fmt"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// DBDate is the storage format for check-in/check-out dates.
const DBDate = "2006-01-02"

func Location() *time.Location {
	return ptime.Iran()
}

// ParseDate accepts a Gregorian YYYY-MM-DD string or a Jalali YYYY/MM/DD
// string and returns the Gregorian instant at midnight Tehran time.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if t, err := time.ParseInLocation(DBDate, s, Location()); err == nil {
		return t, nil
	}

	var year, month, day int
	if _, err := fmt.Sscanf(s, "%d/%d/%d", &year, &month, &day); err == nil {
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 && year >= 1200 && year <= 1600 {
			pt := ptime.Date(year, ptime.Month(month), day, 0, 0, 0, 0, Location())
			return pt.Time(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// FormatDate renders a time in the storage format.
func FormatDate(t time.Time) string {
	return t.In(Location()).Format(DBDate)
}

// FormatJalali renders a time as a Jalali YYYY/MM/DD string for display.
func FormatJalali(t time.Time) string {
	return ptime.New(t.In(Location())).Format("yyyy/MM/dd")
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.In(Location()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, Location())
}

// DaysBetween returns the whole-day difference to - from, floored.
// Negative when to is before from.
func DaysBetween(from, to time.Time) int {
	diff := startOfDay(to).Sub(startOfDay(from))
	days := int(diff.Hours() / 24)
	return days
}

// Nights counts the nights of a [checkIn, checkOut) stay.
func Nights(checkIn, checkOut time.Time) int {
	return DaysBetween(checkIn, checkOut)
}

// Overlaps applies the half-open interval test to two stays: [aStart, aEnd)
// and [bStart, bEnd) share at least one night iff aStart < bEnd && aEnd > bStart.
// Back-to-back stays (one's check-out equals the other's check-in) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
