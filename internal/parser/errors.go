package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rhyrak/go-timetable/pkg/model"
)

var (
	ErrMissingFile          = errors.New("input file not found")
	ErrUnknownHeader        = errors.New("unrecognized input")
	ErrLineGrammar          = errors.New("line does not match section grammar")
	ErrMissingName          = errors.New("name could not be found")
	ErrDuplicateName        = errors.New("name already set")
	ErrUnresolvedAssignment = errors.New("partial assignment references an undeclared slot")
)

type ErrorKind int

const (
	KindUnknownHeader ErrorKind = iota
	KindLineGrammar
	KindMissingName
	KindDuplicateName
	KindUnresolvedAssignment
)

var kindErrors = [...]error{
	KindUnknownHeader:        ErrUnknownHeader,
	KindLineGrammar:          ErrLineGrammar,
	KindMissingName:          ErrMissingName,
	KindDuplicateName:        ErrDuplicateName,
	KindUnresolvedAssignment: ErrUnresolvedAssignment,
}

// noSection marks errors raised outside any section.
const noSection model.Section = -1

// ParseError reports one rejected line.
type ParseError struct {
	Kind    ErrorKind
	Section model.Section
	Line    int
	Text    string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindUnknownHeader:
		return fmt.Sprintf("line %d: could not parse: %s", e.Line, e.Text)
	case KindLineGrammar:
		return fmt.Sprintf("line %d: failed to parse line in %s: %s", e.Line, e.Section, e.Text)
	default:
		if e.Text == "" {
			return fmt.Sprintf("line %d: %s: %v", e.Line, e.Section, e.Unwrap())
		}
		return fmt.Sprintf("line %d: %s: %v: %s", e.Line, e.Section, e.Unwrap(), e.Text)
	}
}

// Unwrap returns the sentinel error of the kind so errors.Is works.
func (e *ParseError) Unwrap() error {
	if int(e.Kind) < 0 || int(e.Kind) >= len(kindErrors) {
		return nil
	}
	return kindErrors[e.Kind]
}

// ErrorList is returned under PolicyCollect when any line was rejected.
type ErrorList []*ParseError

func (l ErrorList) Error() string {
	if len(l) == 1 {
		return l[0].Error()
	}
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d parse errors:\n%s", len(l), strings.Join(msgs, "\n"))
}

func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}
