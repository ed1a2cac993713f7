// Package biztime computes business-day boundaries.
//
// All timestamps are stored and compared in UTC. The business timezone is
// only used to find where a calendar day starts; the boundary is converted
// back to UTC before it reaches a query. The location is always passed in,
// never read from a package global.
package biztime

import (
	"fmt"
	"time"
)

// DefaultTimezone is used when the configuration leaves the timezone empty.
const DefaultTimezone = "UTC"

// Clock returns the current time. Components take a Clock so tests can pin
// the day boundary.
type Clock func() time.Time

// SystemClock is the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

// LoadLocation resolves a timezone name, falling back to DefaultTimezone.
func LoadLocation(tz string) (*time.Location, error) {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("failed to load business timezone %q: %w", tz, err)
	}
	return loc, nil
}

// StartOfDayUTC returns 00:00 of t's calendar day in loc, expressed in UTC.
func StartOfDayUTC(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).UTC()
}

// NextDayStartUTC returns 00:00 of the calendar day after t in loc, in UTC.
func NextDayStartUTC(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc).UTC()
}

// DaysAgoUTC returns now minus the given number of days, in UTC.
func DaysAgoUTC(now time.Time, days int) time.Time {
	return now.UTC().AddDate(0, 0, -days)
}
