package libemit

import (
	"regexp"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameMatchesOnlyItself(t *testing.T) {
	k := Name("foo")

	assert.True(t, k.Match("foo"))
	assert.False(t, k.Match("foobar"))
	assert.Equal(t, "foo", k.String())

	name, ok := k.exact()
	assert.True(t, ok)
	assert.Equal(t, "foo", name)
}

func TestRegexpSearchesWithinName(t *testing.T) {
	p, err := Regexp("ba[rz]")
	require.NoError(t, err)

	assert.True(t, p.Match("bar"))
	assert.True(t, p.Match("baz"))
	assert.True(t, p.Match("foobar"))
	assert.False(t, p.Match("foo"))
	assert.Equal(t, PatternRegexp, p.Kind())
	assert.Equal(t, "regexp:ba[rz]", p.String())

	_, ok := p.exact()
	assert.False(t, ok)
}

func TestRegexpAnchored(t *testing.T) {
	p := RegexpOf(regexp.MustCompile("^ba[rz]$"))

	assert.True(t, p.Match("bar"))
	assert.False(t, p.Match("foobar"))
}

func TestRegexpInvalid(t *testing.T) {
	_, err := Regexp("ba[rz")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPattern))

	assert.Panics(t, func() { MustRegexp("(") })
}

func TestGlobSegments(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"user.*", "user.created", true},
		{"user.*", "user.profile.updated", false},
		{"user.**", "user.profile.updated", true},
		{"user.?reated", "user.created", true},
		{"user.{created,deleted}", "user.deleted", true},
		{"user.{created,deleted}", "user.updated", false},
		{"ba[rz]", "baz", true},
		{"ba[rz]", "bat", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.name, func(t *testing.T) {
			p := MustGlob(tt.pattern)
			assert.Equal(t, tt.want, p.Match(tt.name))
		})
	}
}

func TestGlobInvalid(t *testing.T) {
	_, err := Glob("user.[")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPattern))

	assert.Panics(t, func() { MustGlob("ba[") })
}

func TestWildcardIsFlat(t *testing.T) {
	p := Wildcard("user*")

	assert.True(t, p.Match("user"))
	assert.True(t, p.Match("user.profile.updated"))
	assert.False(t, p.Match("admin.user"))
	assert.True(t, Wildcard("ba?").Match("baz"))
	assert.Equal(t, PatternWildcard, p.Kind())
	assert.Equal(t, "wildcard:user*", p.String())
}

func TestNilPattern(t *testing.T) {
	var p *Pattern

	assert.False(t, p.Match("foo"))
	assert.Equal(t, "<nil>", p.String())
	assert.Equal(t, PatternKind(0), p.Kind())
	assert.True(t, isNilKey(p))
	assert.True(t, isNilKey(nil))
	assert.False(t, isNilKey(Name("")))
	assert.False(t, isNilKey(Wildcard("*")))
}

func TestPatternKindString(t *testing.T) {
	assert.Equal(t, "glob", PatternGlob.String())
	assert.Equal(t, "unknown", PatternKind(0).String())
}
