package placeholder

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatternDetector_Defaults(t *testing.T) {
	d := NewPatternDetector()

	testCases := []struct {
		name  string
		role  string
		value any
		want  bool
	}{
		{"nil value", "attachment", nil, true},
		{"empty string", "content", "", true},
		{"whitespace", "content", "   ", true},
		{"none sentinel", "content", "None", true},
		{"empty object sentinel", "data", "{}", true},
		{"empty slice", "data", []any{}, true},
		{"empty map", "data", map[string]any{}, true},
		{"path marker", "attachment", "/path/to/", true},
		{"path marker with file", "attachment", "/path/to/report.docx", true},
		{"template marker", "attachment", "{file_path}", true},
		{"previous result marker", "content", "{previous_result}", true},
		{"double brace template", "content", "{{ step.output }}", true},
		{"bracketed marker", "file_path", "[附件]", true},
		{"relative path", "file_path", "report.docx", true},
		{"directory only", "file_path", "/home/alice/docs/", true},
		{"windows directory only", "image_path", `C:\Users\alice\`, true},
		{"absolute unix path", "file_path", "/home/alice/report.docx", false},
		{"absolute windows path", "attachment", `C:\Users\alice\report.docx`, false},
		{"plain content", "content", "see attached", false},
		{"relative text for non-path role", "content", "report.docx", false},
		{"prose mentioning a path marker", "content", "files live under ./output/ on the share", false},
		{"prose mentioning a path segment", "data", "see /path/ in the docs", false},
		{"number", "data", 42, false},
		{"non-empty slice", "data", []any{"x"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, d.IsPlaceholder(tc.role, tc.value))
		})
	}
}

func TestPatternDetector_Options(t *testing.T) {
	d := NewPatternDetector(
		WithMarkers("<PENDING>"),
		WithSentinels("n/a"),
		WithPatterns(regexp.MustCompile(`^result_of\(.+\)$`)),
		WithPathRoles("video_path"),
	)

	assert.True(t, d.IsPlaceholder("content", "value is <pending>"))
	assert.True(t, d.IsPlaceholder("content", "N/A"))
	assert.True(t, d.IsPlaceholder("content", "result_of(search)"))
	assert.True(t, d.IsPlaceholder("video_path", "clip.mp4"))
	assert.False(t, d.IsPlaceholder("video_path", "/tmp/clip.mp4"))
}

func TestPatternDetector_RoleScopedMarkers(t *testing.T) {
	d := NewPatternDetector(
		WithMarkersForRole("content", "lorem ipsum"),
		WithPathMarkers("/tmp/scratch/"),
	)

	assert.True(t, d.IsPlaceholder("content", "Lorem ipsum dolor"))
	assert.False(t, d.IsPlaceholder("data", "lorem ipsum dolor"))
	assert.True(t, d.IsPlaceholder("attachment", "/tmp/scratch/out.pdf"))
	assert.False(t, d.IsPlaceholder("content", "/tmp/scratch/out.pdf"))
}

func TestDetectorFunc(t *testing.T) {
	var d Detector = DetectorFunc(func(role string, value any) bool {
		return role == "attachment"
	})
	assert.True(t, d.IsPlaceholder("attachment", "/home/a.txt"))
	assert.False(t, d.IsPlaceholder("content", ""))
}
