package model

import "strings"

const (
	KindLecture  = "LEC"
	KindLab      = "LAB"
	KindTutorial = "TUT"
)

// Course is either a Lecture or a Lab. Both implementations are comparable
// and can be used as map keys.
type Course interface {
	String() string
	// IsLab reports whether the course is a lab or tutorial section.
	IsLab() bool
	// Parent returns the lecture the course belongs to. A Lecture is its own parent.
	Parent() Lecture
	course()
}

// Lecture is a course's lecture section, e.g. CPSC 433 LEC 01.
type Lecture struct {
	Department string
	Number     string
	Section    string
}

func (l Lecture) String() string {
	if l.Section == "" {
		return l.Department + " " + l.Number + " " + KindLecture
	}
	return strings.Join([]string{l.Department, l.Number, KindLecture, l.Section}, " ")
}

func (Lecture) IsLab() bool { return false }

func (l Lecture) Parent() Lecture { return l }

func (Lecture) course() {}
