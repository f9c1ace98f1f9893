package parser

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/rhyrak/go-timetable/internal/grammar"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// The constructors below expect lines that already matched their section
// grammar and do no validation of their own.

func splitFields(line string) []string {
	f := strings.Split(line, ",")
	for i := range f {
		f[i] = strings.TrimSpace(f[i])
	}
	return f
}

// atoi parses a grammar-checked digit string, saturating on overflow.
func atoi(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt
	}
	return n
}

func newPeriod(day, start string) model.Period {
	return model.Period{Day: model.Day(strings.TrimSpace(day)), Start: model.NormalizeTime(start)}
}

// newSlot builds a slot from day, time, max, min fields.
func newSlot(f []string) model.Slot {
	return model.Slot{
		Day:   model.Day(f[0]),
		Start: model.NormalizeTime(f[1]),
		Max:   atoi(f[2]),
		Min:   atoi(f[3]),
	}
}

func newLecture(id string) model.Lecture {
	t := strings.Fields(id)
	return model.Lecture{Department: t[0], Number: t[1], Section: t[3]}
}

// newLab builds a lab and the lecture it belongs to.
func newLab(id string) (model.Lab, model.Lecture) {
	t := strings.Fields(id)
	lab := model.Lab{Department: t[0], Number: t[1]}
	if len(t) == 6 {
		lab.LectureSection = t[3]
		t = t[4:]
	} else {
		t = t[2:]
	}
	lab.Kind = t[0]
	lab.Section = t[1]
	return lab, lab.Parent()
}

func newCourse(id string) model.Course {
	if grammar.IsLabIdentifier(id) {
		lab, _ := newLab(id)
		return lab
	}
	return newLecture(id)
}

func newNotCompatible(line string) model.NotCompatible {
	f := splitFields(line)
	return model.NewNotCompatible(newCourse(f[0]), newCourse(f[1]))
}

func newPair(line string) model.Pair {
	f := splitFields(line)
	return model.NewPair(newCourse(f[0]), newCourse(f[1]))
}

// newCoursePeriod reads the course, day, time lines of Unwanted and
// Partial assignments.
func newCoursePeriod(line string) (model.Course, model.Period) {
	f := splitFields(line)
	return newCourse(f[0]), newPeriod(f[1], f[2])
}

func newPreference(line string) model.Preference {
	f := splitFields(line)
	return model.Preference{
		Period: newPeriod(f[0], f[1]),
		Course: newCourse(f[2]),
		Weight: atoi(f[3]),
	}
}
