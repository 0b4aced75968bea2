package libemit

import (
	"regexp"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"github.com/tidwall/match"
)

const globSeparator = '.'

type (
	// Key addresses a set of listeners. It is either a Name, which is stored and compared as is,
	// or a *Pattern, which is resolved against the names already stored at the time of the call.
	Key interface {
		// Match reports whether the stored event name is addressed by this key.
		Match(name string) bool
		String() string

		exact() (string, bool)
	}

	// Name is an exact event key.
	Name string

	// PatternKind tells how a Pattern matches names.
	PatternKind uint8

	// Pattern is a key that matches stored event names. Patterns are never stored themselves.
	Pattern struct {
		kind   PatternKind
		source string
		match  func(string) bool
	}
)

const (
	// PatternRegexp is a regular expression searched within the name.
	PatternRegexp PatternKind = iota + 1
	// PatternGlob is a dot separated glob.
	PatternGlob
	// PatternWildcard is a flat wildcard.
	PatternWildcard
)

func (k PatternKind) String() string {
	switch k {
	case PatternRegexp:
		return "regexp"
	case PatternGlob:
		return "glob"
	case PatternWildcard:
		return "wildcard"
	default:
		return "unknown"
	}
}

// Match reports whether name equals n.
func (n Name) Match(name string) bool { return string(n) == name }

// String returns the name itself.
func (n Name) String() string { return string(n) }

func (n Name) exact() (string, bool) { return string(n), true }

// Regexp compiles expr into a pattern key. Like a search, the expression matches if it is found
// anywhere in the event name; anchor it with ^ and $ to match whole names.
func Regexp(expr string) (*Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPattern, "regexp %q: %s", expr, err)
	}
	return RegexpOf(re), nil
}

// MustRegexp is like Regexp but panics if expr does not compile.
func MustRegexp(expr string) *Pattern {
	p, err := Regexp(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// RegexpOf wraps an already compiled expression.
func RegexpOf(re *regexp.Regexp) *Pattern {
	return &Pattern{
		kind:   PatternRegexp,
		source: re.String(),
		match:  re.MatchString,
	}
}

// Glob compiles a dot separated glob. "*" matches within one segment, "**" across segments,
// and "?", "[...]" and "{a,b}" have their usual meaning.
//
//	user.*       matches user.created, not user.profile.updated
//	user.**      matches both
func Glob(pattern string) (*Pattern, error) {
	g, err := glob.Compile(pattern, globSeparator)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPattern, "glob %q: %s", pattern, err)
	}
	return &Pattern{
		kind:   PatternGlob,
		source: pattern,
		match:  g.Match,
	}, nil
}

// MustGlob is like Glob but panics on a malformed pattern.
func MustGlob(pattern string) *Pattern {
	p, err := Glob(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// Wildcard builds a flat wildcard key: "*" matches any run of characters, dots included, and
// "?" a single one.
func Wildcard(pattern string) *Pattern {
	return &Pattern{
		kind:   PatternWildcard,
		source: pattern,
		match: func(name string) bool {
			return match.Match(name, pattern)
		},
	}
}

// Kind returns the pattern flavour, or zero for a nil pattern.
func (p *Pattern) Kind() PatternKind {
	if p == nil {
		return 0
	}
	return p.kind
}

// Match reports whether name is addressed by the pattern. A nil pattern matches nothing.
func (p *Pattern) Match(name string) bool {
	if p == nil || p.match == nil {
		return false
	}
	return p.match(name)
}

// String returns the flavour and source, e.g. "glob:user.*".
func (p *Pattern) String() string {
	if p == nil {
		return "<nil>"
	}
	return p.kind.String() + ":" + p.source
}

func (p *Pattern) exact() (string, bool) { return "", false }

// isNilKey reports whether key is absent, including a nil *Pattern left behind by an ignored
// Regexp or Glob error.
func isNilKey(key Key) bool {
	if key == nil {
		return true
	}
	p, ok := key.(*Pattern)
	return ok && p == nil
}
