package model

type SlotCSVRow struct {
	Kind  string `csv:"kind"`
	Day   string `csv:"day"`
	Start string `csv:"start"`
	Max   int    `csv:"max"`
	Min   int    `csv:"min"`
}

type CourseCSVRow struct {
	Department     string `csv:"department"`
	Number         string `csv:"number"`
	LectureSection string `csv:"lecture_section"`
	Kind           string `csv:"kind"`
	Section        string `csv:"section"`
	Parent         string `csv:"parent"`
}

type ConstraintCSVRow struct {
	Constraint string `csv:"constraint"`
	Course     string `csv:"course"`
	Other      string `csv:"other"`
	Day        string `csv:"day"`
	Start      string `csv:"start"`
	Weight     string `csv:"weight"`
}
