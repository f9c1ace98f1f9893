package validator

import (
	"fmt"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// Validate cross-checks the sections of a parsed problem.
// Returns false and a report when a check fails. Parsing never depends on it.
func Validate(p *model.Problem) (bool, string) {
	var message string
	var valid bool = true

	declared := make(map[model.Course]bool)
	for _, c := range p.Courses() {
		declared[c] = true
	}
	courseNumbers := make(map[string]bool)
	for _, c := range p.Courses() {
		courseNumbers[c.Department+" "+c.Number] = true
	}
	for _, l := range p.Labs() {
		declared[l] = true
	}

	undeclared := undeclaredReferences(p, declared)
	if len(undeclared) > 0 {
		valid = false
		message += fmt.Sprintf("- There are %d references to undeclared courses or labs:\n", len(undeclared))
		for _, u := range undeclared {
			message += "    " + u + "\n"
		}
	}

	var orphans []model.Lab
	for _, l := range p.Labs() {
		parent := l.Parent()
		if l.LectureSection != "" && !declared[parent] {
			orphans = append(orphans, l)
		} else if l.LectureSection == "" && !courseNumbers[parent.Department+" "+parent.Number] {
			orphans = append(orphans, l)
		}
	}
	if len(orphans) > 0 {
		valid = false
		message += fmt.Sprintf("- There are %d labs without a declared lecture:\n", len(orphans))
		for _, l := range orphans {
			message += fmt.Sprintf("    %s (expected %s)\n", l, l.Parent())
		}
	}

	missingCourseSlots := len(p.Courses()) > 0 && len(p.CourseSlots()) == 0
	missingLabSlots := len(p.Labs()) > 0 && len(p.LabSlots()) == 0
	if missingCourseSlots {
		valid = false
		message += "- Courses are declared but there are no course slots\n"
	}
	if missingLabSlots {
		valid = false
		message += "- Labs are declared but there are no lab slots\n"
	}

	if missingCourseSlots || missingLabSlots {
		message = "[FAIL]: Slot availability check.\n" + message
	} else {
		message = "[  OK]: Slot availability check.\n" + message
	}
	if len(orphans) > 0 {
		message = "[FAIL]: Lab parent check.\n" + message
	} else {
		message = "[  OK]: Lab parent check.\n" + message
	}
	if len(undeclared) > 0 {
		message = "[FAIL]: Declared reference check.\n" + message
	} else {
		message = "[  OK]: Declared reference check.\n" + message
	}

	return valid, message
}

// undeclaredReferences lists constraint entries naming a course or lab that
// is missing from the Courses and Labs sections.
func undeclaredReferences(p *model.Problem, declared map[model.Course]bool) []string {
	var out []string
	check := func(sec model.Section, c model.Course, entry string) {
		if !declared[c] {
			out = append(out, fmt.Sprintf("%s: %s (in %q)", sec, c, entry))
		}
	}
	for _, n := range p.NotCompatible() {
		check(model.SectionNotCompatible, n.A, n.String())
		check(model.SectionNotCompatible, n.B, n.String())
	}
	for _, u := range p.Unwanted() {
		check(model.SectionUnwanted, u.Course, u.Course.String())
	}
	for _, pref := range p.Preferences() {
		check(model.SectionPreferences, pref.Course, pref.String())
	}
	for _, pair := range p.Pairs() {
		check(model.SectionPair, pair.A, pair.String())
		check(model.SectionPair, pair.B, pair.String())
	}
	for _, a := range p.PartialAssignments() {
		check(model.SectionPartialAssignments, a.Course, a.String())
	}
	return out
}
