package model

import "fmt"

// NotCompatible holds two courses that must not share a slot. The pair is
// unordered: NewNotCompatible(a, b) == NewNotCompatible(b, a).
type NotCompatible struct {
	A Course
	B Course
}

func NewNotCompatible(a, b Course) NotCompatible {
	a, b = ordered(a, b)
	return NotCompatible{A: a, B: b}
}

func (n NotCompatible) String() string {
	return n.A.String() + ", " + n.B.String()
}

// Pair holds two courses that should be scheduled together. Unordered like
// NotCompatible.
type Pair struct {
	A Course
	B Course
}

func NewPair(a, b Course) Pair {
	a, b = ordered(a, b)
	return Pair{A: a, B: b}
}

func (p Pair) String() string {
	return p.A.String() + ", " + p.B.String()
}

// Preference weights placing Course at Period.
type Preference struct {
	Period Period
	Course Course
	Weight int
}

func (p Preference) String() string {
	return fmt.Sprintf("%s, %s, %d", p.Period, p.Course, p.Weight)
}

// PartialAssignment binds a course to a slot declared earlier in the file.
type PartialAssignment struct {
	Course Course
	Slot   Slot
}

func (a PartialAssignment) String() string {
	return a.Course.String() + " = " + a.Slot.String()
}

// Unwanted lists the periods a course must not be placed in.
type Unwanted struct {
	Course  Course
	Periods []Period
}

func ordered(a, b Course) (Course, Course) {
	if b.String() < a.String() {
		return b, a
	}
	return a, b
}
