package csvio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/go-timetable/internal/parser"
	"github.com/rhyrak/go-timetable/pkg/model"
)

const (
	SlotsFile       = "slots.csv"
	CoursesFile     = "courses.csv"
	ConstraintsFile = "constraints.csv"
)

// ExportProblem writes the slots, courses and constraints of the problem
// into dir as three CSV files and returns their paths.
func ExportProblem(p *model.Problem, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	files := []struct {
		name string
		rows any
	}{
		{SlotsFile, slotRows(p)},
		{CoursesFile, courseRows(p)},
		{ConstraintsFile, constraintRows(p)},
	}
	var paths []string
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := writeFile(path, f.rows); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, rows any) error {
	// Remove file if exists
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("replacing %s: %w", path, err)
		}
	}

	out, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer out.Close()

	if err := gocsv.MarshalFile(rows, out); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ExportSlotsString returns the course and lab slots as CSV text.
func ExportSlotsString(p *model.Problem) (string, error) {
	rows := slotRows(p)
	return gocsv.MarshalString(&rows)
}

// ExportConstraintsString returns every constraint section as CSV text.
func ExportConstraintsString(p *model.Problem) (string, error) {
	rows := constraintRows(p)
	return gocsv.MarshalString(&rows)
}

// PrintProblem prints a short per-section listing of the problem.
func PrintProblem(w io.Writer, p *model.Problem) {
	fmt.Fprintf(w, "Problem: %s\n", p.Name())
	for _, sec := range model.Sections() {
		if sec == model.SectionName || !p.Has(sec) {
			continue
		}
		lines := parser.Entries(p, sec)
		fmt.Fprintf(w, "\n%s %s (%d) %s\n", strings.Repeat("-", (32-len(sec.String()))/2), sec, len(lines), strings.Repeat("-", (33-len(sec.String()))/2))
		for _, l := range lines {
			fmt.Fprintf(w, "  %s\n", l)
		}
	}
	labs := p.LabParents()
	if len(labs) > 0 {
		fmt.Fprintf(w, "\nLabs per lecture:\n")
		for _, lec := range labs {
			fmt.Fprintf(w, "  %-16s %d\n", lec, len(p.LabsOf(lec)))
		}
	}
}

func slotRows(p *model.Problem) []*model.SlotCSVRow {
	var rows []*model.SlotCSVRow
	add := func(kind string, slots []model.Slot) {
		for _, s := range slots {
			rows = append(rows, &model.SlotCSVRow{Kind: kind, Day: string(s.Day), Start: s.Start, Max: s.Max, Min: s.Min})
		}
	}
	add("course", p.CourseSlots())
	add("lab", p.LabSlots())
	return rows
}

func courseRows(p *model.Problem) []*model.CourseCSVRow {
	var rows []*model.CourseCSVRow
	for _, c := range p.Courses() {
		rows = append(rows, &model.CourseCSVRow{
			Department: c.Department,
			Number:     c.Number,
			Kind:       model.KindLecture,
			Section:    c.Section,
			Parent:     c.String(),
		})
	}
	for _, l := range p.Labs() {
		rows = append(rows, &model.CourseCSVRow{
			Department:     l.Department,
			Number:         l.Number,
			LectureSection: l.LectureSection,
			Kind:           l.Kind,
			Section:        l.Section,
			Parent:         l.Parent().String(),
		})
	}
	return rows
}

func constraintRows(p *model.Problem) []*model.ConstraintCSVRow {
	var rows []*model.ConstraintCSVRow
	for _, n := range p.NotCompatible() {
		rows = append(rows, &model.ConstraintCSVRow{Constraint: "not_compatible", Course: n.A.String(), Other: n.B.String()})
	}
	for _, pair := range p.Pairs() {
		rows = append(rows, &model.ConstraintCSVRow{Constraint: "pair", Course: pair.A.String(), Other: pair.B.String()})
	}
	for _, u := range p.Unwanted() {
		for _, period := range u.Periods {
			rows = append(rows, &model.ConstraintCSVRow{Constraint: "unwanted", Course: u.Course.String(), Day: string(period.Day), Start: period.Start})
		}
	}
	for _, pref := range p.Preferences() {
		rows = append(rows, &model.ConstraintCSVRow{
			Constraint: "preference",
			Course:     pref.Course.String(),
			Day:        string(pref.Period.Day),
			Start:      pref.Period.Start,
			Weight:     strconv.Itoa(pref.Weight),
		})
	}
	for _, a := range p.PartialAssignments() {
		rows = append(rows, &model.ConstraintCSVRow{Constraint: "partial", Course: a.Course.String(), Day: string(a.Slot.Day), Start: a.Slot.Start})
	}
	return rows
}
