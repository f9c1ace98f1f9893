package model

import "strings"

// Lab is a lab or tutorial section. LectureSection is empty when the lab is
// not tied to one lecture section (CPSC 433 TUT 01).
type Lab struct {
	Department     string
	Number         string
	LectureSection string
	Kind           string
	Section        string
}

func (l Lab) String() string {
	parts := []string{l.Department, l.Number}
	if l.LectureSection != "" {
		parts = append(parts, KindLecture, l.LectureSection)
	}
	parts = append(parts, l.Kind, l.Section)
	return strings.Join(parts, " ")
}

func (Lab) IsLab() bool { return true }

// Parent synthesizes the lecture this lab belongs to from the lab's own
// fields. The lecture does not have to be declared anywhere.
func (l Lab) Parent() Lecture {
	return Lecture{Department: l.Department, Number: l.Number, Section: l.LectureSection}
}

func (Lab) course() {}
