package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rhyrak/go-timetable/pkg/model"
)

var (
	lec    = model.Lecture{Department: "CPSC", Number: "433", Section: "01"}
	tut    = model.Lab{Department: "CPSC", Number: "433", LectureSection: "01", Kind: model.KindTutorial, Section: "01"}
	slot   = model.Slot{Day: model.Monday, Start: "08:00", Max: 3, Min: 2}
	labFri = model.Slot{Day: model.Friday, Start: "10:00", Max: 2, Min: 1}
)

func TestValidateConsistentProblem(t *testing.T) {
	b := model.NewBuilder()
	b.AddCourseSlot(slot)
	b.AddLabSlot(labFri)
	b.AddCourse(lec)
	b.AddLab(tut, tut.Parent())
	b.AddNotCompatible(model.NewNotCompatible(lec, tut))
	b.Assign(tut, labFri)

	valid, msg := Validate(b.Build())
	assert.True(t, valid, msg)
	assert.Contains(t, msg, "[  OK]: Declared reference check.")
	assert.Contains(t, msg, "[  OK]: Lab parent check.")
	assert.Contains(t, msg, "[  OK]: Slot availability check.")
}

func TestValidateReportsProblems(t *testing.T) {
	ghost := model.Lecture{Department: "SENG", Number: "311", Section: "01"}
	orphan := model.Lab{Department: "CPSC", Number: "567", Kind: model.KindTutorial, Section: "01"}

	b := model.NewBuilder()
	b.AddCourse(lec)
	b.AddLab(orphan, orphan.Parent())
	b.AddPair(model.NewPair(lec, ghost))
	b.AddPreference(model.Preference{Period: slot.Period(), Course: ghost, Weight: 5})

	valid, msg := Validate(b.Build())
	assert.False(t, valid)
	assert.Contains(t, msg, "[FAIL]: Declared reference check.")
	assert.Contains(t, msg, "There are 2 references to undeclared courses or labs")
	assert.Contains(t, msg, "[FAIL]: Lab parent check.")
	assert.Contains(t, msg, "CPSC 567 TUT 01 (expected CPSC 567 LEC)")
	assert.Contains(t, msg, "[FAIL]: Slot availability check.")
	assert.Contains(t, msg, "no course slots")
	assert.Contains(t, msg, "no lab slots")
}
