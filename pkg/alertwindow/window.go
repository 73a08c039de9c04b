// Package alertwindow decides whether the current wall-clock time falls inside
// the user's allowed alert window, e.g. 08:00 to 22:00. A window whose end hour
// is not after its start hour wraps over midnight, so 22:00 to 07:00 means
// "from ten in the evening until seven the next morning".
package alertwindow

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
)

// ClockTime is a time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ErrInvalidClock is returned for times that are not "HH:MM".
var ErrInvalidClock = pkgerrors.New("invalid time of day")

// ParseClock parses "HH:MM" (24-hour clock).
func ParseClock(s string) (ClockTime, error) {
	pieces := strings.Split(strings.TrimSpace(s), ":")
	if len(pieces) != 2 {
		return ClockTime{}, pkgerrors.Wrapf(ErrInvalidClock, "%q: expected HH:MM", s)
	}

	hour, err := strconv.Atoi(pieces[0])
	if err != nil {
		return ClockTime{}, pkgerrors.Wrapf(ErrInvalidClock, "hour in %q: %v", s, err)
	}
	minute, err := strconv.Atoi(pieces[1])
	if err != nil {
		return ClockTime{}, pkgerrors.Wrapf(ErrInvalidClock, "minute in %q: %v", s, err)
	}

	if hour < 0 || hour > 23 {
		return ClockTime{}, pkgerrors.Wrapf(ErrInvalidClock, "hour in %q must be between 0 and 23", s)
	}
	if minute < 0 || minute > 59 {
		return ClockTime{}, pkgerrors.Wrapf(ErrInvalidClock, "minute in %q must be between 0 and 59", s)
	}

	return ClockTime{Hour: hour, Minute: minute}, nil
}

// Window is a daily time range.
type Window struct {
	Start ClockTime
	End   ClockTime
}

// Parse builds a Window from two "HH:MM" strings.
func Parse(start, end string) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: s, End: e}, nil
}

// Contains reports whether now is strictly after the start and strictly
// before the end of the window anchored on now's calendar day. The end moves
// to the next day when its hour is not after the start hour.
func (w Window) Contains(now time.Time) bool {
	y, m, d := now.Date()
	loc := now.Location()

	start := time.Date(y, m, d, w.Start.Hour, w.Start.Minute, 0, 0, loc)
	end := time.Date(y, m, d, w.End.Hour, w.End.Minute, 0, 0, loc)
	if w.End.Hour <= w.Start.Hour {
		end = end.AddDate(0, 0, 1)
	}

	return now.After(start) && now.Before(end)
}

func (w Window) String() string {
	return w.Start.String() + "-" + w.End.String()
}
