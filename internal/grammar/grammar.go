package grammar

import (
	"regexp"
	"strings"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// Token patterns.
const (
	DayCourse = `\s*(?:MO|TU)\s*`
	DayLab    = `\s*(?:MO|TU|FR)\s*`
	Time      = `\s*(?:[0-1]?[0-9]|2[0-3]):[0-5][0-9]\s*`
	Value     = `\s*\d+\s*`
	Course    = `\s*(?:CPSC|SENG)\s+\d+\s+LEC\s+\d+\s*`
	Lab       = `\s*(?:CPSC|SENG)\s+\d+\s+(?:LEC\s+\d+\s+)?(?:LAB|TUT)\s+\d+\s*`
	Name      = `\s*\S+\s*`
	Header    = `\s*(Name|Course\s+slots|Lab\s+slots|Courses|Labs|Not\s+compatible|Unwanted|Preferences|Pair|Partial\s+assignments):\s*`
)

var (
	courseOrLab = "(?:" + Course + "|" + Lab + ")"

	headerRE = whole(Header)
	nameRE   = whole(Name)
	labRE    = whole(Lab)
	tutLabRE = regexp.MustCompile(`\b(?:LAB|TUT)\b`)

	lines = map[model.Section]*regexp.Regexp{
		model.SectionName:               nameRE,
		model.SectionCourseSlots:        whole(DayCourse + "," + Time + "," + Value + "," + Value),
		model.SectionLabSlots:           whole(DayLab + "," + Time + "," + Value + "," + Value),
		model.SectionCourses:            whole(Course),
		model.SectionLabs:               labRE,
		model.SectionNotCompatible:      whole(courseOrLab + "," + courseOrLab),
		model.SectionUnwanted:           whole("(?:" + Course + "," + DayCourse + "|" + Lab + "," + DayLab + ")," + Time),
		model.SectionPreferences:        whole("(?:" + DayCourse + "," + Time + "," + Course + "|" + DayLab + "," + Time + "," + Lab + ")," + Value),
		model.SectionPair:               whole(courseOrLab + "," + courseOrLab),
		model.SectionPartialAssignments: whole("(?:" + Course + "," + DayCourse + "|" + Lab + "," + DayLab + ")," + Time),
	}

	headerSections = map[string]model.Section{}
)

func init() {
	for _, s := range model.Sections() {
		headerSections[headerKey(s.String())] = s
	}
}

func whole(pattern string) *regexp.Regexp {
	return regexp.MustCompile("^(?:" + pattern + ")$")
}

// headerKey collapses inner whitespace of a header keyword.
func headerKey(keyword string) string {
	return strings.Join(strings.Fields(keyword), " ")
}

// MatchHeader reports which section header line introduces, if any.
func MatchHeader(line string) (model.Section, bool) {
	m := headerRE.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	s, ok := headerSections[headerKey(m[1])]
	return s, ok
}

// IsHeader reports whether line is any of the ten section headers.
func IsHeader(line string) bool {
	return headerRE.MatchString(line)
}

// MatchLine reports whether line conforms to the grammar of section s.
func MatchLine(s model.Section, line string) bool {
	re, ok := lines[s]
	return ok && re.MatchString(line)
}

// IsLabIdentifier reports whether an identifier names a lab or tutorial.
func IsLabIdentifier(id string) bool {
	return tutLabRE.MatchString(id)
}
