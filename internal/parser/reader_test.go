package parser

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rhyrak/go-timetable/pkg/model"
)

func parseString(t *testing.T, input string, opts Options) (*model.Problem, error) {
	t.Helper()
	return Parse(strings.NewReader(input), opts)
}

func TestParseSample(t *testing.T) {
	input := "Name:\nFall2024\nCourse slots:\nMO,08:00,3,10\nCourses:\nCPSC 233 LEC 01\n"

	p, err := parseString(t, input, Options{})
	require.NoError(t, err)

	assert.Equal(t, "Fall2024", p.Name())
	assert.Equal(t, []model.Slot{{Day: model.Monday, Start: "08:00", Max: 3, Min: 10}}, p.CourseSlots())
	assert.Equal(t, []model.Lecture{{Department: "CPSC", Number: "233", Section: "01"}}, p.Courses())

	for _, sec := range []model.Section{
		model.SectionLabSlots, model.SectionLabs, model.SectionNotCompatible, model.SectionUnwanted,
		model.SectionPreferences, model.SectionPair, model.SectionPartialAssignments,
	} {
		assert.False(t, p.Has(sec), sec.String())
	}
	assert.Nil(t, p.Labs())
	assert.Nil(t, p.Preferences())
	assert.Nil(t, p.Pairs())
	assert.Nil(t, p.PartialAssignments())
	assert.Empty(t, p.CourseLabs())
}

func TestReadFile(t *testing.T) {
	p, err := ReadFile(filepath.Join("testdata", "deptinst1.txt"), Options{})
	require.NoError(t, err)

	assert.Equal(t, "ShortExample", p.Name())
	assert.Len(t, p.CourseSlots(), 3)
	assert.Len(t, p.LabSlots(), 3)
	assert.Len(t, p.Courses(), 4)
	assert.Len(t, p.Labs(), 4)
	assert.Len(t, p.NotCompatible(), 4)
	assert.Len(t, p.Preferences(), 5)
	assert.Len(t, p.Pairs(), 1)

	lec := model.Lecture{Department: "CPSC", Number: "433", Section: "01"}
	assert.Equal(t, []model.Period{{Day: model.Monday, Start: "08:00"}}, p.UnwantedFor(lec))

	seng := model.Lecture{Department: "SENG", Number: "311", Section: "01"}
	slot, ok := p.AssignmentOf(seng)
	require.True(t, ok)
	assert.Equal(t, model.Slot{Day: model.Monday, Start: "08:00", Max: 3, Min: 2}, slot)

	sengTut := model.Lab{Department: "SENG", Number: "311", LectureSection: "01", Kind: "TUT", Section: "01"}
	slot, ok = p.AssignmentOf(sengTut)
	require.True(t, ok)
	assert.Equal(t, model.Slot{Day: model.Friday, Start: "10:00", Max: 2, Min: 1}, slot)

	general := model.Lab{Department: "CPSC", Number: "567", Kind: "TUT", Section: "01"}
	assert.Equal(t, []model.Lab{general}, p.LabsOf(model.Lecture{Department: "CPSC", Number: "567"}))
	assert.Empty(t, p.LabsOf(model.Lecture{Department: "CPSC", Number: "567", Section: "01"}))
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt"), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingFile)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = ReadFile(t.TempDir(), Options{})
	assert.ErrorIs(t, err, ErrMissingFile)
}

func TestParseIdempotent(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "deptinst1.txt"))
	require.NoError(t, err)

	first, err := parseString(t, string(data), Options{})
	require.NoError(t, err)
	second, err := parseString(t, string(data), Options{})
	require.NoError(t, err)

	if diff := cmp.Diff(first, second, cmp.AllowUnexported(model.Problem{})); diff != "" {
		t.Errorf("problems differ (-first +second):\n%s", diff)
	}
}

func TestParseDeduplicatesAndKeepsOrder(t *testing.T) {
	input := `Course slots:
TU, 9:30, 2, 1
MO, 8:00, 3, 2
TU,9:30,2,1
MO, 08:00, 3, 2
Courses:
SENG 311 LEC 01
CPSC 433 LEC 01
SENG  311  LEC  01
Labs:
CPSC 433 LEC 01 TUT 02
CPSC 433 LEC 01 TUT 01
CPSC 433 LEC 01 TUT 02
`
	p, err := parseString(t, input, Options{})
	require.NoError(t, err)

	assert.Equal(t, []model.Slot{
		{Day: model.Tuesday, Start: "09:30", Max: 2, Min: 1},
		{Day: model.Monday, Start: "08:00", Max: 3, Min: 2},
	}, p.CourseSlots())
	assert.Equal(t, []model.Lecture{
		{Department: "SENG", Number: "311", Section: "01"},
		{Department: "CPSC", Number: "433", Section: "01"},
	}, p.Courses())
	assert.Equal(t, []model.Lab{
		{Department: "CPSC", Number: "433", LectureSection: "01", Kind: "TUT", Section: "02"},
		{Department: "CPSC", Number: "433", LectureSection: "01", Kind: "TUT", Section: "01"},
	}, p.Labs())
}

func TestParseCourseLabsIndex(t *testing.T) {
	p, err := parseString(t, "Labs:\nCPSC 457 LEC 02 LAB 05\n", Options{})
	require.NoError(t, err)

	lab := model.Lab{Department: "CPSC", Number: "457", LectureSection: "02", Kind: "LAB", Section: "05"}
	parent := model.Lecture{Department: "CPSC", Number: "457", Section: "02"}

	assert.Equal(t, map[model.Lecture][]model.Lab{parent: {lab}}, p.CourseLabs())
	assert.Equal(t, []model.Lecture{parent}, p.LabParents())
	assert.False(t, p.Has(model.SectionCourses))
}

func TestParseUnorderedPairs(t *testing.T) {
	input := `Not compatible:
CPSC 433 LEC 01, CPSC 567 LEC 01
CPSC 567 LEC 01, CPSC 433 LEC 01
Pair:
CPSC 433 LEC 01 TUT 01, SENG 311 LEC 01
SENG 311 LEC 01,CPSC 433 LEC 01 TUT 01
`
	p, err := parseString(t, input, Options{})
	require.NoError(t, err)
	assert.Len(t, p.NotCompatible(), 1)
	assert.Len(t, p.Pairs(), 1)
}

func TestParseRejectsBadCourseLine(t *testing.T) {
	_, err := parseString(t, "Courses:\nCPSC 433 LEC 01\nCPSC abc LEC 01\n", Options{})
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, KindLineGrammar, perr.Kind)
	assert.Equal(t, model.SectionCourses, perr.Section)
	assert.Equal(t, "CPSC abc LEC 01", perr.Text)
	assert.Equal(t, 3, perr.Line)
	assert.ErrorIs(t, err, ErrLineGrammar)
	assert.Contains(t, err.Error(), "Courses")
	assert.Contains(t, err.Error(), "CPSC abc LEC 01")
}

func TestParseHeadersAreCaseSensitive(t *testing.T) {
	input := "Courses:\nCPSC 433 LEC 01\npair:\nCPSC 433 LEC 01, CPSC 433 LEC 01\n"

	_, err := parseString(t, input, Options{})
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, KindLineGrammar, perr.Kind)
	assert.Equal(t, model.SectionCourses, perr.Section)
	assert.Equal(t, 3, perr.Line)
	assert.Equal(t, "pair:", perr.Text)

	p, err := parseString(t, input, Options{Policy: PolicyCollect})
	require.Error(t, err)
	assert.False(t, p.Has(model.SectionPair))
	assert.Nil(t, p.Pairs())
	assert.Len(t, p.Courses(), 1)
}

func TestParseRejectsUnknownTopLevel(t *testing.T) {
	p, err := parseString(t, "\n\nRandom text\nName:\nX\n", Options{})
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrUnknownHeader)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Line)
	assert.Equal(t, "Random text", perr.Text)
}

func TestParseName(t *testing.T) {
	t.Run("duplicate", func(t *testing.T) {
		_, err := parseString(t, "Name:\nA\nName:\nB\n", Options{})
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("duplicate followed by an invalid name is reported once", func(t *testing.T) {
		p, err := parseString(t, "Name:\nA\nName:\nfoo bar\nCourses:\nCPSC 433 LEC 01\n", Options{Policy: PolicyCollect})
		require.NotNil(t, p)

		var list ErrorList
		require.ErrorAs(t, err, &list)
		require.Len(t, list, 1)
		assert.Equal(t, KindDuplicateName, list[0].Kind)
		assert.Equal(t, "foo bar", list[0].Text)
		assert.NotErrorIs(t, err, ErrUnknownHeader)
		assert.Equal(t, "A", p.Name())
		assert.Len(t, p.Courses(), 1)
	})

	t.Run("missing at end of input", func(t *testing.T) {
		_, err := parseString(t, "Name:\n", Options{})
		assert.ErrorIs(t, err, ErrMissingName)
	})

	t.Run("followed by a header", func(t *testing.T) {
		_, err := parseString(t, "Name:\nCourses:\n", Options{})
		assert.ErrorIs(t, err, ErrMissingName)
	})

	t.Run("blank line", func(t *testing.T) {
		_, err := parseString(t, "Name:\n\nFall2024\n", Options{})
		assert.ErrorIs(t, err, ErrMissingName)
	})

	t.Run("trimmed", func(t *testing.T) {
		p, err := parseString(t, "  Name:  \n   Fall2024   \n", Options{})
		require.NoError(t, err)
		assert.Equal(t, "Fall2024", p.Name())
	})
}

func TestParsePartialAssignments(t *testing.T) {
	slots := "Course slots:\nMO, 8:00, 3, 2\nMO, 8:00, 5, 1\nLab slots:\nFR, 10:00, 2, 1\n"

	t.Run("unresolved slot aborts", func(t *testing.T) {
		_, err := parseString(t, slots+"Partial assignments:\nCPSC 433 LEC 01, TU, 8:00\n", Options{})
		assert.ErrorIs(t, err, ErrUnresolvedAssignment)
	})

	t.Run("labs resolve against lab slots", func(t *testing.T) {
		_, err := parseString(t, slots+"Partial assignments:\nCPSC 433 LEC 01, MO, 8:00\nCPSC 433 TUT 01, MO, 8:00\n", Options{})
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, KindUnresolvedAssignment, perr.Kind)
		assert.Equal(t, "CPSC 433 TUT 01, MO, 8:00", perr.Text)
	})

	t.Run("first declared slot wins", func(t *testing.T) {
		p, err := parseString(t, slots+"Partial assignments:\nCPSC 433 LEC 01, MO, 08:00\n", Options{})
		require.NoError(t, err)
		assert.Equal(t, []model.PartialAssignment{{
			Course: model.Lecture{Department: "CPSC", Number: "433", Section: "01"},
			Slot:   model.Slot{Day: model.Monday, Start: "08:00", Max: 3, Min: 2},
		}}, p.PartialAssignments())
	})

	t.Run("later binding replaces the earlier one", func(t *testing.T) {
		input := slots + "Course slots:\nTU, 9:30, 2, 1\nPartial assignments:\nCPSC 433 LEC 01, MO, 8:00\nSENG 311 LEC 01, MO, 8:00\nCPSC 433 LEC 01, TU, 9:30\n"
		for _, policy := range []Policy{PolicyAbort, PolicyCollect} {
			p, err := parseString(t, input, Options{Policy: policy})
			require.NoError(t, err, policy.String())
			require.NotNil(t, p)

			partial := p.PartialAssignments()
			require.Len(t, partial, 2)
			assert.Equal(t, "CPSC 433 LEC 01 = TU,09:30,2,1", partial[0].String())
			assert.Equal(t, "SENG 311 LEC 01 = MO,08:00,3,2", partial[1].String())
			assert.Len(t, p.CourseSlots(), 3)
		}
	})

	t.Run("replacement is logged", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		input := "Course slots:\nMO, 8:00, 3, 2\nTU, 9:30, 2, 1\nPartial assignments:\nCPSC 433 LEC 01, MO, 8:00\nCPSC 433 LEC 01, MO, 8:00\nCPSC 433 LEC 01, TU, 9:30\n"
		p, err := parseString(t, input, Options{Logger: zap.New(core)})
		require.NoError(t, err)

		slot, ok := p.AssignmentOf(model.Lecture{Department: "CPSC", Number: "433", Section: "01"})
		require.True(t, ok)
		assert.Equal(t, "TU,09:30,2,1", slot.String())

		replaced := logs.FilterMessage("partial assignment replaced").All()
		require.Len(t, replaced, 1)
		assert.Equal(t, int64(7), replaced[0].ContextMap()["line"])
	})
}

func TestParseCollectPolicy(t *testing.T) {
	input := `Name:
Test
Course slots:
MO, 8:00, 3, 2
WE, 8:00, 3, 2
Courses:
CPSC 433 LEC 01
CPSC abc LEC 01
garbage
Partial assignments:
CPSC 433 LEC 01, TU, 8:00
CPSC 433 LEC 01, MO, 8:00
`
	p, err := parseString(t, input, Options{Policy: PolicyCollect})
	require.Error(t, err)
	require.NotNil(t, p)

	var list ErrorList
	require.ErrorAs(t, err, &list)
	require.Len(t, list, 4)
	assert.Equal(t, []int{5, 8, 9, 11}, []int{list[0].Line, list[1].Line, list[2].Line, list[3].Line})
	assert.Equal(t, model.SectionCourseSlots, list[0].Section)
	assert.ErrorIs(t, err, ErrUnresolvedAssignment)

	assert.Equal(t, "Test", p.Name())
	assert.Len(t, p.CourseSlots(), 1)
	assert.Len(t, p.Courses(), 1)
	assert.Len(t, p.PartialAssignments(), 1)
}

func TestParseRepeatedSectionsMerge(t *testing.T) {
	input := "Courses:\nCPSC 433 LEC 01\nLabs:\nCPSC 433 TUT 01\nCourses:\nCPSC 433 LEC 02\nCPSC 433 LEC 01\n"
	p, err := parseString(t, input, Options{})
	require.NoError(t, err)
	assert.Len(t, p.Courses(), 2)
}

func TestParseEmptySection(t *testing.T) {
	p, err := parseString(t, "Courses:\nLabs:\n", Options{})
	require.NoError(t, err)
	assert.True(t, p.Has(model.SectionCourses))
	assert.True(t, p.Has(model.SectionLabs))
	assert.Empty(t, p.Courses())
}

func TestParseVerboseEchoes(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	input := "Name:\nFall2024\nCourses:\nCPSC 233 LEC 01\n"

	quiet, err := parseString(t, input, Options{Logger: zap.New(core)})
	require.NoError(t, err)
	assert.Zero(t, logs.Len())

	loud, err := parseString(t, input, Options{Logger: zap.New(core), Verbose: true})
	require.NoError(t, err)
	assert.Equal(t, quiet.Courses(), loud.Courses())

	assert.Equal(t, 1, logs.FilterMessage("CPSC 233 LEC 01").Len())
	assert.Equal(t, 1, logs.FilterMessage("Fall2024").Len())
	sections := logs.FilterMessage("parsed section").All()
	require.Len(t, sections, 1)
	assert.Equal(t, "Courses", sections[0].ContextMap()["section"])
}

func TestPolicy(t *testing.T) {
	p, err := ParsePolicy("Collect")
	require.NoError(t, err)
	assert.Equal(t, PolicyCollect, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyAbort, p)

	_, err = ParsePolicy("retry")
	assert.ErrorContains(t, err, "retry")
}
