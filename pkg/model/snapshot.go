package model

import "slices"

// Problem is the read-only result of parsing one problem file. Accessors
// return copies; containers of sections absent from the file are nil.
type Problem struct {
	present map[Section]bool

	name          string
	courseSlots   []Slot
	labSlots      []Slot
	courses       []Lecture
	labs          []Lab
	labParents    []Lecture
	courseLabs    map[Lecture][]Lab
	notCompatible []NotCompatible
	unwanted      []Unwanted
	preferences   []Preference
	pairs         []Pair
	partial       []PartialAssignment
}

// Has reports whether the section appeared in the file.
func (p *Problem) Has(s Section) bool { return p.present[s] }

func (p *Problem) Name() string { return p.name }

func (p *Problem) CourseSlots() []Slot { return slices.Clone(p.courseSlots) }

func (p *Problem) LabSlots() []Slot { return slices.Clone(p.labSlots) }

func (p *Problem) Courses() []Lecture { return slices.Clone(p.courses) }

func (p *Problem) Labs() []Lab { return slices.Clone(p.labs) }

func (p *Problem) NotCompatible() []NotCompatible { return slices.Clone(p.notCompatible) }

func (p *Problem) Preferences() []Preference { return slices.Clone(p.preferences) }

func (p *Problem) Pairs() []Pair { return slices.Clone(p.pairs) }

// Unwanted returns the unwanted periods per course in first-seen order.
func (p *Problem) Unwanted() []Unwanted {
	if p.unwanted == nil {
		return nil
	}
	out := make([]Unwanted, len(p.unwanted))
	for i, u := range p.unwanted {
		out[i] = Unwanted{Course: u.Course, Periods: slices.Clone(u.Periods)}
	}
	return out
}

// UnwantedFor returns the periods c must not be placed in.
func (p *Problem) UnwantedFor(c Course) []Period {
	for _, u := range p.unwanted {
		if u.Course == c {
			return slices.Clone(u.Periods)
		}
	}
	return nil
}

func (p *Problem) PartialAssignments() []PartialAssignment { return slices.Clone(p.partial) }

// AssignmentOf returns the slot c is pre-assigned to.
func (p *Problem) AssignmentOf(c Course) (Slot, bool) {
	for _, a := range p.partial {
		if a.Course == c {
			return a.Slot, true
		}
	}
	return Slot{}, false
}

// CourseLabs returns the lecture to labs index built from the Labs section.
// Keys are synthesized lectures and need not appear in Courses.
func (p *Problem) CourseLabs() map[Lecture][]Lab {
	out := make(map[Lecture][]Lab, len(p.courseLabs))
	for lec, labs := range p.courseLabs {
		out[lec] = slices.Clone(labs)
	}
	return out
}

// LabParents returns the keys of CourseLabs in first-seen order.
func (p *Problem) LabParents() []Lecture { return slices.Clone(p.labParents) }

// LabsOf returns the labs indexed under l.
func (p *Problem) LabsOf(l Lecture) []Lab { return slices.Clone(p.courseLabs[l]) }
