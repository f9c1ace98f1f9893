package parser

import (
	"github.com/rhyrak/go-timetable/pkg/model"
)

// Entries renders the contents of one section of p as lines.
func Entries(p *model.Problem, sec model.Section) []string {
	var out []string
	switch sec {
	case model.SectionName:
		if p.Name() != "" {
			out = append(out, p.Name())
		}
	case model.SectionCourseSlots:
		out = stringify(p.CourseSlots())
	case model.SectionLabSlots:
		out = stringify(p.LabSlots())
	case model.SectionCourses:
		out = stringify(p.Courses())
	case model.SectionLabs:
		out = stringify(p.Labs())
	case model.SectionNotCompatible:
		out = stringify(p.NotCompatible())
	case model.SectionUnwanted:
		for _, u := range p.Unwanted() {
			for _, period := range u.Periods {
				out = append(out, u.Course.String()+", "+period.String())
			}
		}
	case model.SectionPreferences:
		out = stringify(p.Preferences())
	case model.SectionPair:
		out = stringify(p.Pairs())
	case model.SectionPartialAssignments:
		out = stringify(p.PartialAssignments())
	}
	return out
}

func stringify[T interface{ String() string }](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.String()
	}
	return out
}
