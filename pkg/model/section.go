package model

// Section identifies one of the ten blocks of a problem file.
type Section int

const (
	SectionName Section = iota
	SectionCourseSlots
	SectionLabSlots
	SectionCourses
	SectionLabs
	SectionNotCompatible
	SectionUnwanted
	SectionPreferences
	SectionPair
	SectionPartialAssignments
)

var sectionNames = [...]string{
	"Name",
	"Course slots",
	"Lab slots",
	"Courses",
	"Labs",
	"Not compatible",
	"Unwanted",
	"Preferences",
	"Pair",
	"Partial assignments",
}

// Sections lists every section in file order.
func Sections() []Section {
	all := make([]Section, len(sectionNames))
	for i := range all {
		all[i] = Section(i)
	}
	return all
}

func (s Section) String() string {
	if s < 0 || int(s) >= len(sectionNames) {
		return "Unknown"
	}
	return sectionNames[s]
}
