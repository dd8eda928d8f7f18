// Package placeholder decides whether a call argument stands in for data that
// is not known yet at planning time: an incomplete path, a templating marker,
// or an empty sentinel.
//
// The analyzer only depends on the Detector interface, so new patterns can be
// plugged in without touching dependency inference.
package placeholder

import (
	"fmt"
	"regexp"
	"strings"
)

// Detector reports whether value, bound to the given role, is unresolved.
type Detector interface {
	IsPlaceholder(role string, value any) bool
}

// DetectorFunc adapts an ordinary function to the Detector interface.
type DetectorFunc func(role string, value any) bool

// IsPlaceholder implements Detector.
func (f DetectorFunc) IsPlaceholder(role string, value any) bool {
	return f(role, value)
}

// DefaultMarkers are substrings that mark a value of any role as a stand-in.
var DefaultMarkers = []string{
	"{previous",
	"{{",
	"${",
	"[tbd]",
	"[待定]",
}

// DefaultPathMarkers are substrings that only mark values of path roles.
// Free text may mention them legitimately.
var DefaultPathMarkers = []string{
	"/path/to/",
	"/path/",
	`\path\`,
	"./output/",
	"output/xxx",
	"{attachment}",
	"{file_path}",
	"{image_path}",
	"[attachment]",
	"[file]",
	"[附件]",
	"[文件]",
}

// DefaultSentinels are whole values that mean "nothing here yet".
var DefaultSentinels = []string{"none", "null", "nil", "{}", "[]", "undefined"}

// DefaultPathRoles are the roles whose values are expected to be concrete paths.
var DefaultPathRoles = []string{"attachment", "file_path", "image_path"}

var (
	windowsAbs = regexp.MustCompile(`^[A-Za-z]:[\\/]`)
	trailerSep = regexp.MustCompile(`[\\/]$`)
)

// PatternDetector is the default Detector. Markers and sentinels are compared
// case-insensitively.
type PatternDetector struct {
	markers     []string
	roleMarkers map[string][]string
	pathMarkers []string
	sentinels   []string
	patterns    []*regexp.Regexp
	pathRoles   map[string]struct{}
}

// Option configures a PatternDetector.
type Option func(*PatternDetector)

// WithMarkers adds substrings that flag a value as a placeholder.
func WithMarkers(markers ...string) Option {
	return func(d *PatternDetector) {
		for _, m := range markers {
			d.markers = append(d.markers, strings.ToLower(m))
		}
	}
}

// WithMarkersForRole adds substrings that flag a placeholder only when the
// value is bound to role.
func WithMarkersForRole(role string, markers ...string) Option {
	return func(d *PatternDetector) {
		for _, m := range markers {
			d.roleMarkers[role] = append(d.roleMarkers[role], strings.ToLower(m))
		}
	}
}

// WithPathMarkers adds substrings that flag a placeholder for every path role.
func WithPathMarkers(markers ...string) Option {
	return func(d *PatternDetector) {
		for _, m := range markers {
			d.pathMarkers = append(d.pathMarkers, strings.ToLower(m))
		}
	}
}

// WithSentinels adds whole-value sentinels.
func WithSentinels(sentinels ...string) Option {
	return func(d *PatternDetector) {
		for _, s := range sentinels {
			d.sentinels = append(d.sentinels, strings.ToLower(s))
		}
	}
}

// WithPatterns adds regular expressions matched against the raw value.
func WithPatterns(patterns ...*regexp.Regexp) Option {
	return func(d *PatternDetector) {
		d.patterns = append(d.patterns, patterns...)
	}
}

// WithPathRoles adds roles whose values must be absolute file paths.
func WithPathRoles(roles ...string) Option {
	return func(d *PatternDetector) {
		for _, r := range roles {
			d.pathRoles[r] = struct{}{}
		}
	}
}

// NewPatternDetector returns a detector loaded with the default markers,
// sentinels and path roles, plus whatever the options add.
func NewPatternDetector(opts ...Option) *PatternDetector {
	d := &PatternDetector{
		roleMarkers: make(map[string][]string),
		pathRoles:   make(map[string]struct{}),
	}
	WithMarkers(DefaultMarkers...)(d)
	WithPathMarkers(DefaultPathMarkers...)(d)
	WithSentinels(DefaultSentinels...)(d)
	WithPathRoles(DefaultPathRoles...)(d)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// IsPlaceholder implements Detector.
func (d *PatternDetector) IsPlaceholder(role string, value any) bool {
	if value == nil {
		return true
	}

	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		raw = fmt.Sprint(v)
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return true
	}
	lower := strings.ToLower(trimmed)
	for _, s := range d.sentinels {
		if lower == s {
			return true
		}
	}
	if containsAny(lower, d.markers) || containsAny(lower, d.roleMarkers[role]) {
		return true
	}
	for _, p := range d.patterns {
		if p.MatchString(trimmed) {
			return true
		}
	}

	if _, ok := d.pathRoles[role]; ok {
		return containsAny(lower, d.pathMarkers) || !isConcretePath(trimmed)
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// isConcretePath accepts absolute paths that end in a file name.
func isConcretePath(p string) bool {
	if !strings.HasPrefix(p, "/") && !windowsAbs.MatchString(p) {
		return false
	}
	return !trailerSep.MatchString(p)
}
