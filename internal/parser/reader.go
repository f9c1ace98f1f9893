package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/grammar"
	"github.com/rhyrak/go-timetable/pkg/model"
)

type session struct {
	cur  *cursor
	b    *model.Builder
	opts Options
	log  *zap.Logger
	errs ErrorList
}

// ReadFile opens path, parses it and closes it again. A path that does not
// name a readable file yields an error matching ErrMissingFile.
func ReadFile(path string, opts Options) (*model.Problem, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMissingFile, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrMissingFile, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMissingFile, path, err)
	}
	defer f.Close()

	opts.Logger = opts.logger().With(zap.String("file", path))
	return Parse(f, opts)
}

// Parse reads a problem from r in a single pass.
//
// Under PolicyAbort the first rejected line ends the pass and Parse returns
// a nil Problem with a *ParseError. Under PolicyCollect the Problem is
// returned together with an ErrorList of every rejected line, or a nil
// error if there were none.
func Parse(r io.Reader, opts Options) (*model.Problem, error) {
	s := &session{
		cur:  newCursor(r),
		b:    model.NewBuilder(),
		opts: opts,
		log:  opts.logger(),
	}
	if err := s.run(); err != nil {
		return nil, err
	}
	p := s.b.Build()
	if len(s.errs) > 0 {
		return p, s.errs
	}
	return p, nil
}

// run is the dispatcher: it hands each header to its section handler and
// rejects any other non-blank line.
func (s *session) run() error {
	for {
		line, ok := s.cur.next()
		if !ok {
			if err := s.cur.err(); err != nil {
				return fmt.Errorf("reading line %d: %w", s.cur.num+1, err)
			}
			return nil
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		sec, ok := grammar.MatchHeader(trimmed)
		if !ok {
			if err := s.fail(&ParseError{Kind: KindUnknownHeader, Section: noSection, Line: s.cur.num, Text: trimmed}); err != nil {
				return err
			}
			continue
		}
		s.echo(trimmed)
		if err := handlers[sec](s); err != nil {
			return err
		}
	}
}

// fail applies the policy to a rejected line. A non-nil result ends the pass.
func (s *session) fail(perr *ParseError) error {
	if s.opts.Policy == PolicyAbort {
		return perr
	}
	s.log.Warn("rejected line",
		zap.Int("line", perr.Line),
		zap.Stringer("section", perr.Section),
		zap.String("text", perr.Text),
		zap.Error(perr),
	)
	s.errs = append(s.errs, perr)
	return nil
}

func (s *session) echo(line string) {
	if s.opts.Verbose {
		s.log.Info(line, zap.Int("line", s.cur.num))
	}
}

// dump echoes the contents parsed so far for a section.
func (s *session) dump(sec model.Section) {
	if !s.opts.Verbose {
		return
	}
	entries := Entries(s.b.Build(), sec)
	s.log.Info("parsed section",
		zap.Stringer("section", sec),
		zap.Int("count", len(entries)),
		zap.Strings("entries", entries),
	)
}
