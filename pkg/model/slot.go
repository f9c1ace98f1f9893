package model

import (
	"fmt"
	"strings"
)

type Day string

const (
	Monday  Day = "MO"
	Tuesday Day = "TU"
	Friday  Day = "FR"
)

// Period is a day and a zero-padded HH:MM start time.
type Period struct {
	Day   Day
	Start string
}

func (p Period) String() string {
	return string(p.Day) + "," + p.Start
}

// Slot is a schedulable unit. Max and Min are the two values given on the
// slot line (coursemax/coursemin or labmax/labmin).
type Slot struct {
	Day   Day
	Start string
	Max   int
	Min   int
}

func (s Slot) Period() Period {
	return Period{Day: s.Day, Start: s.Start}
}

func (s Slot) String() string {
	return fmt.Sprintf("%s,%s,%d,%d", s.Day, s.Start, s.Max, s.Min)
}

// NormalizeTime pads the hour of an H:MM or HH:MM time to two digits.
func NormalizeTime(t string) string {
	t = strings.TrimSpace(t)
	if i := strings.IndexByte(t, ':'); i == 1 {
		return "0" + t
	}
	return t
}
