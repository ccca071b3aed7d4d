// Package duedate validates and compares calendar due dates in YYYY-MM-DD form.
//
// All comparisons are made at day granularity in the location of the supplied
// reference time. Nothing in this package reads the wall clock.
package duedate

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layout is the storage and input format of a due date.
const Layout = "2006-01-02"

// DisplayLayout is how due dates are shown to the user.
const DisplayLayout = "2006/01/02"

var (
	ErrFormat   = errors.New("must be in YYYY-MM-DD format")
	ErrNotExist = errors.New("date does not exist")
	ErrPast     = errors.New("past dates cannot be set")
)

var pattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Result mirrors what the UI displays next to a date field.
type Result struct {
	Valid bool
	Error string
}

// Validate checks input against ref. Empty or whitespace-only input is valid
// and means "no due date".
func Validate(input string, ref time.Time) Result {
	if err := Check(input, ref); err != nil {
		return Result{Valid: false, Error: err.Error()}
	}
	return Result{Valid: true}
}

// Check is Validate in error form: nil, ErrFormat, ErrNotExist or ErrPast.
func Check(input string, ref time.Time) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	d, err := Parse(input, ref.Location())
	if err != nil {
		return err
	}
	if d.Before(Day(ref)) {
		return ErrPast
	}
	return nil
}

// Parse returns midnight of the date in loc. A date the calendar would
// normalize (2025-02-30, month 13, month 00) is rejected with ErrNotExist.
func Parse(s string, loc *time.Location) (time.Time, error) {
	if !pattern.MatchString(s) {
		return time.Time{}, ErrFormat
	}
	year, _ := strconv.Atoi(s[0:4])
	month, _ := strconv.Atoi(s[5:7])
	day, _ := strconv.Atoi(s[8:10])

	if loc == nil {
		loc = time.Local
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, ErrNotExist
	}
	return d, nil
}

// Day strips the time of day from t, keeping its location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// String formats t as a due date.
func String(t time.Time) string {
	return t.Format(Layout)
}

// compare reports -1, 0 or 1 for due against today. ok is false when due is
// empty or unparsable.
func compare(due string, today time.Time) (int, bool) {
	if due == "" {
		return 0, false
	}
	d, err := Parse(due, today.Location())
	if err != nil {
		return 0, false
	}
	return d.Compare(Day(today)), true
}

// IsOverdue reports whether due is strictly before today.
func IsOverdue(due string, today time.Time) bool {
	c, ok := compare(due, today)
	return ok && c < 0
}

// IsDueToday reports whether due falls on today.
func IsDueToday(due string, today time.Time) bool {
	c, ok := compare(due, today)
	return ok && c == 0
}

// Display renders due as YYYY/MM/DD, or "" when there is none.
func Display(due string) string {
	if due == "" {
		return ""
	}
	d, err := Parse(due, time.UTC)
	if err != nil {
		return due
	}
	return d.Format(DisplayLayout)
}
