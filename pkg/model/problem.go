package model

import "slices"

// Builder accumulates the entities of one problem file. It is owned by a
// single parse pass; Build hands out an independent read-only Problem.
type Builder struct {
	present map[Section]bool

	name          string
	courseSlots   *orderedSet[Slot]
	labSlots      *orderedSet[Slot]
	coursePeriods map[Period]Slot
	labPeriods    map[Period]Slot
	courses       *orderedSet[Lecture]
	labs          *orderedSet[Lab]
	courseLabs    map[Lecture]*orderedSet[Lab]
	labParents    []Lecture
	notCompatible *orderedSet[NotCompatible]
	unwanted      map[Course]*orderedSet[Period]
	unwantedOrder []Course
	preferences   *orderedSet[Preference]
	pairs         *orderedSet[Pair]
	partial       map[Course]Slot
	partialOrder  []Course
}

func NewBuilder() *Builder {
	return &Builder{
		present:    make(map[Section]bool),
		courseLabs: make(map[Lecture]*orderedSet[Lab]),
	}
}

// Open marks a section as present and allocates its container. Opening a
// section twice keeps the entries collected so far.
func (b *Builder) Open(s Section) {
	b.present[s] = true
	switch s {
	case SectionCourseSlots:
		if b.courseSlots == nil {
			b.courseSlots = newOrderedSet[Slot]()
			b.coursePeriods = make(map[Period]Slot)
		}
	case SectionLabSlots:
		if b.labSlots == nil {
			b.labSlots = newOrderedSet[Slot]()
			b.labPeriods = make(map[Period]Slot)
		}
	case SectionCourses:
		if b.courses == nil {
			b.courses = newOrderedSet[Lecture]()
		}
	case SectionLabs:
		if b.labs == nil {
			b.labs = newOrderedSet[Lab]()
		}
	case SectionNotCompatible:
		if b.notCompatible == nil {
			b.notCompatible = newOrderedSet[NotCompatible]()
		}
	case SectionUnwanted:
		if b.unwanted == nil {
			b.unwanted = make(map[Course]*orderedSet[Period])
		}
	case SectionPreferences:
		if b.preferences == nil {
			b.preferences = newOrderedSet[Preference]()
		}
	case SectionPair:
		if b.pairs == nil {
			b.pairs = newOrderedSet[Pair]()
		}
	case SectionPartialAssignments:
		if b.partial == nil {
			b.partial = make(map[Course]Slot)
		}
	}
}

func (b *Builder) HasName() bool { return b.name != "" }

// SetName records the problem name. It returns false if a name was already set.
func (b *Builder) SetName(name string) bool {
	if b.HasName() {
		return false
	}
	b.present[SectionName] = true
	b.name = name
	return true
}

// AddCourseSlot records a course slot and reports whether it was new.
func (b *Builder) AddCourseSlot(s Slot) bool {
	b.Open(SectionCourseSlots)
	if !b.courseSlots.add(s) {
		return false
	}
	if _, ok := b.coursePeriods[s.Period()]; !ok {
		b.coursePeriods[s.Period()] = s
	}
	return true
}

// AddLabSlot records a lab slot and reports whether it was new.
func (b *Builder) AddLabSlot(s Slot) bool {
	b.Open(SectionLabSlots)
	if !b.labSlots.add(s) {
		return false
	}
	if _, ok := b.labPeriods[s.Period()]; !ok {
		b.labPeriods[s.Period()] = s
	}
	return true
}

// CourseSlotAt returns the first declared course slot starting at p.
func (b *Builder) CourseSlotAt(p Period) (Slot, bool) {
	s, ok := b.coursePeriods[p]
	return s, ok
}

// LabSlotAt returns the first declared lab slot starting at p.
func (b *Builder) LabSlotAt(p Period) (Slot, bool) {
	s, ok := b.labPeriods[p]
	return s, ok
}

func (b *Builder) AddCourse(l Lecture) bool {
	b.Open(SectionCourses)
	return b.courses.add(l)
}

// AddLab records a lab and indexes it under parent, creating the index
// entry when parent has no labs yet.
func (b *Builder) AddLab(lab Lab, parent Lecture) bool {
	b.Open(SectionLabs)
	added := b.labs.add(lab)
	set, ok := b.courseLabs[parent]
	if !ok {
		set = newOrderedSet[Lab]()
		b.courseLabs[parent] = set
		b.labParents = append(b.labParents, parent)
	}
	set.add(lab)
	return added
}

func (b *Builder) AddNotCompatible(n NotCompatible) bool {
	b.Open(SectionNotCompatible)
	return b.notCompatible.add(n)
}

func (b *Builder) AddUnwanted(c Course, p Period) bool {
	b.Open(SectionUnwanted)
	set, ok := b.unwanted[c]
	if !ok {
		set = newOrderedSet[Period]()
		b.unwanted[c] = set
		b.unwantedOrder = append(b.unwantedOrder, c)
	}
	return set.add(p)
}

func (b *Builder) AddPreference(p Preference) bool {
	b.Open(SectionPreferences)
	return b.preferences.add(p)
}

func (b *Builder) AddPair(p Pair) bool {
	b.Open(SectionPair)
	return b.pairs.add(p)
}

// Assign binds c to s. A later binding replaces an earlier one but c keeps
// its first-seen position. replaced reports whether c was bound to a
// different slot, which is then returned as prev.
func (b *Builder) Assign(c Course, s Slot) (prev Slot, replaced bool) {
	b.Open(SectionPartialAssignments)
	prev, ok := b.partial[c]
	if !ok {
		b.partialOrder = append(b.partialOrder, c)
	}
	b.partial[c] = s
	return prev, ok && prev != s
}

// Build returns a snapshot of everything collected so far.
func (b *Builder) Build() *Problem {
	p := &Problem{
		present:     make(map[Section]bool, len(b.present)),
		name:        b.name,
		courseSlots: b.courseSlots.values(),
		labSlots:    b.labSlots.values(),
		courses:     b.courses.values(),
		labs:        b.labs.values(),
		labParents:  slices.Clone(b.labParents),
		courseLabs:  make(map[Lecture][]Lab, len(b.courseLabs)),
	}
	for s, ok := range b.present {
		p.present[s] = ok
	}
	for lec, set := range b.courseLabs {
		p.courseLabs[lec] = set.values()
	}
	if b.notCompatible != nil {
		p.notCompatible = b.notCompatible.values()
	}
	if b.unwanted != nil {
		p.unwanted = make([]Unwanted, 0, len(b.unwantedOrder))
		for _, c := range b.unwantedOrder {
			p.unwanted = append(p.unwanted, Unwanted{Course: c, Periods: b.unwanted[c].values()})
		}
	}
	if b.preferences != nil {
		p.preferences = b.preferences.values()
	}
	if b.pairs != nil {
		p.pairs = b.pairs.values()
	}
	if b.partial != nil {
		p.partial = make([]PartialAssignment, 0, len(b.partialOrder))
		for _, c := range b.partialOrder {
			p.partial = append(p.partial, PartialAssignment{Course: c, Slot: b.partial[c]})
		}
	}
	return p
}
