package parser

import (
	"strings"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/grammar"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// handler consumes the body of one section.
type handler func(s *session) error

// recordFunc folds one grammar-conformant line into the builder.
type recordFunc func(s *session, line string) *ParseError

var handlers = [...]handler{
	model.SectionName:               readName,
	model.SectionCourseSlots:        section(model.SectionCourseSlots, recordCourseSlot),
	model.SectionLabSlots:           section(model.SectionLabSlots, recordLabSlot),
	model.SectionCourses:            section(model.SectionCourses, recordCourse),
	model.SectionLabs:               section(model.SectionLabs, recordLab),
	model.SectionNotCompatible:      section(model.SectionNotCompatible, recordNotCompatible),
	model.SectionUnwanted:           section(model.SectionUnwanted, recordUnwanted),
	model.SectionPreferences:        section(model.SectionPreferences, recordPreference),
	model.SectionPair:               section(model.SectionPair, recordPair),
	model.SectionPartialAssignments: section(model.SectionPartialAssignments, recordPartialAssignment),
}

// section builds the common handler loop: a line of the section's own
// grammar is recorded, a header ends the section without being consumed,
// a blank line is skipped and anything else is rejected.
func section(sec model.Section, record recordFunc) handler {
	return func(s *session) error {
		s.b.Open(sec)
		for {
			line, ok := s.cur.peek()
			if !ok {
				break
			}
			trimmed := strings.TrimSpace(line)
			switch {
			case grammar.MatchLine(sec, line):
				s.cur.next()
				s.echo(trimmed)
				if perr := record(s, trimmed); perr != nil {
					if err := s.fail(perr); err != nil {
						return err
					}
				}
			case grammar.IsHeader(line):
				s.dump(sec)
				return nil
			case trimmed != "":
				s.cur.next()
				if err := s.fail(&ParseError{Kind: KindLineGrammar, Section: sec, Line: s.cur.num, Text: trimmed}); err != nil {
					return err
				}
			default:
				s.cur.next()
			}
		}
		s.dump(sec)
		return s.cur.err()
	}
}

// readName accepts exactly one single-token line right after the header.
func readName(s *session) error {
	header := s.cur.num
	line, ok := s.cur.peek()
	trimmed := strings.TrimSpace(line)
	isName := ok && !grammar.IsHeader(trimmed) && grammar.MatchLine(model.SectionName, trimmed)

	if s.b.HasName() {
		if ok && trimmed != "" && !grammar.IsHeader(trimmed) {
			s.cur.next()
		}
		return s.fail(&ParseError{Kind: KindDuplicateName, Section: model.SectionName, Line: header, Text: trimmed})
	}
	if !isName {
		perr := &ParseError{Kind: KindMissingName, Section: model.SectionName, Line: header}
		if ok && trimmed != "" && !grammar.IsHeader(trimmed) {
			s.cur.next()
			perr.Line = s.cur.num
			perr.Text = trimmed
		}
		return s.fail(perr)
	}

	s.cur.next()
	s.b.SetName(trimmed)
	s.echo(trimmed)
	return nil
}

func recordCourseSlot(s *session, line string) *ParseError {
	s.b.AddCourseSlot(newSlot(splitFields(line)))
	return nil
}

func recordLabSlot(s *session, line string) *ParseError {
	s.b.AddLabSlot(newSlot(splitFields(line)))
	return nil
}

func recordCourse(s *session, line string) *ParseError {
	s.b.AddCourse(newLecture(line))
	return nil
}

func recordLab(s *session, line string) *ParseError {
	s.b.AddLab(newLab(line))
	return nil
}

func recordNotCompatible(s *session, line string) *ParseError {
	s.b.AddNotCompatible(newNotCompatible(line))
	return nil
}

func recordUnwanted(s *session, line string) *ParseError {
	s.b.AddUnwanted(newCoursePeriod(line))
	return nil
}

func recordPreference(s *session, line string) *ParseError {
	s.b.AddPreference(newPreference(line))
	return nil
}

func recordPair(s *session, line string) *ParseError {
	s.b.AddPair(newPair(line))
	return nil
}

// recordPartialAssignment binds the course to the first slot declared for
// the same day and time, looking in lab slots for labs and course slots
// for lectures. The last line for a course wins.
func recordPartialAssignment(s *session, line string) *ParseError {
	c, p := newCoursePeriod(line)
	var (
		slot  model.Slot
		found bool
	)
	if c.IsLab() {
		slot, found = s.b.LabSlotAt(p)
	} else {
		slot, found = s.b.CourseSlotAt(p)
	}
	if !found {
		return &ParseError{Kind: KindUnresolvedAssignment, Section: model.SectionPartialAssignments, Line: s.cur.num, Text: line}
	}
	if prev, replaced := s.b.Assign(c, slot); replaced {
		s.log.Warn("partial assignment replaced",
			zap.Int("line", s.cur.num),
			zap.Stringer("course", c),
			zap.Stringer("previous", prev),
			zap.Stringer("slot", slot),
		)
	}
	return nil
}
