package services

import (
	"strconv"
	"strings"
	"time"
)

const (
	// DDayUnknown is the label for open dates that do not parse.
	DDayUnknown = "release date unknown"

	openDateLayout = "2006-01-02"
)

// FieldComputer derives per-entry report fields that depend on the run date.
type FieldComputer struct {
	loc *time.Location
	now func() time.Time
}

// NewFieldComputer creates a FieldComputer that reads the current time from now
// and interprets it in loc (the source's time zone, not UTC or the host zone).
func NewFieldComputer(loc *time.Location, now func() time.Time) *FieldComputer {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &FieldComputer{loc: loc, now: now}
}

// Today returns the current instant in the reference time zone.
func (f *FieldComputer) Today() time.Time {
	return f.now().In(f.loc)
}

// DDay computes the label for openDate against the reference "today".
func (f *FieldComputer) DDay(openDate string) string {
	return ComputeDDay(openDate, f.Today())
}

// ComputeDDay returns "D+n" where the release day itself is D+1, so the day
// before release is D+0. Only the calendar date of today is used, in today's
// own location. Anything that is not YYYY-MM-DD yields DDayUnknown.
func ComputeDDay(openDate string, today time.Time) string {
	open, err := time.Parse(openDateLayout, strings.TrimSpace(openDate))
	if err != nil {
		return DDayUnknown
	}

	return "D+" + strconv.Itoa(daysBetween(open, today)+1)
}

// daysBetween counts calendar days from from's date to to's date.
func daysBetween(from, to time.Time) int {
	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
