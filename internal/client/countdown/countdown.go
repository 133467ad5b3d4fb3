// Package countdown computes the time left until the next anniversary and
// the number of full years since the relationship started.
package countdown

import (
	"strings"
	"time"

	"github.com/couplediaries/couplediaries/internal/common"
)

var layouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006/01/02",
	time.RFC3339,
}

// DefaultDate is used when the stored date cannot be parsed.
var DefaultDate = mustParse(common.DefaultAnniversaryDate)

func mustParse(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// Parse reads a relationship date. Only the calendar date is kept. On
// failure it returns DefaultDate and false.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if d, err := time.Parse(layout, s); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return DefaultDate, false
}

// Result is one evaluation of the countdown.
type Result struct {
	// Date is the anniversary actually used (DefaultDate on fallback).
	Date time.Time
	// Next is the next occurrence of Date's month and day at or after now.
	Next      time.Time
	Remaining time.Duration
	Days      int
	Hours     int
	Minutes   int
	// Years is the number of full years since Date. It is negative for a
	// date in the future.
	Years    int
	Fallback bool
}

// Compute is a pure function of date and now. The next occurrence is
// midnight in now's location; February 29 rolls over to March 1 in common
// years, as time.Date normalizes it.
func Compute(date string, now time.Time) Result {
	d, ok := Parse(date)
	loc := now.Location()

	next := time.Date(now.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	if next.Before(now) {
		next = time.Date(now.Year()+1, d.Month(), d.Day(), 0, 0, 0, 0, loc)
	}

	remaining := next.Sub(now)
	total := int64(remaining / time.Minute)

	return Result{
		Date:      d,
		Next:      next,
		Remaining: remaining,
		Days:      int(total / (24 * 60)),
		Hours:     int(total % (24 * 60) / 60),
		Minutes:   int(total % 60),
		Years:     yearsSince(d, now),
		Fallback:  !ok,
	}
}

func yearsSince(d, now time.Time) int {
	years := now.Year() - d.Year()
	if now.Month() < d.Month() || (now.Month() == d.Month() && now.Day() < d.Day()) {
		years--
	}
	return years
}
