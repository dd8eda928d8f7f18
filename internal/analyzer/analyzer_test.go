package analyzer

import (
	"context"
	"testing"

	"github.com/specialistvlad/callplan/internal/catalog"
	"github.com/specialistvlad/callplan/internal/placeholder"
	"github.com/stretchr/testify/assert"
)

func entry(node, op string, args map[string]any) Entry {
	return Entry{Node: node, Operation: op, Arguments: args}
}

func TestAnalyze_RoleMatch(t *testing.T) {
	cat := catalog.New(
		catalog.Spec{Name: "contact_lookup", Output: catalog.CategoryData, Provides: []string{"content", "contact_info"}},
		catalog.Spec{Name: "send_email", Output: catalog.CategoryStatus, Requires: []string{"content", "contact_info"}},
	)
	a := New(cat, nil)

	edges := a.Analyze(context.Background(), []Entry{
		entry("contact_lookup", "contact_lookup", map[string]any{"name": "Alice"}),
		entry("send_email", "send_email", map[string]any{"to": "", "content": "hi"}),
	})

	assert.Equal(t, []Edge{{From: "contact_lookup", To: "send_email", Rule: RuleRoleMatch}}, edges)
}

func TestAnalyze_PlaceholderArgument(t *testing.T) {
	cat := catalog.Empty()
	cat.Register(catalog.Spec{Name: "render", Output: catalog.CategoryFilePath})
	cat.Register(catalog.Spec{Name: "lookup", Output: catalog.CategoryData})
	cat.Register(catalog.Spec{Name: "notify", Output: catalog.CategoryStatus})
	a := New(cat, nil)

	t.Run("fires for file producing predecessors only", func(t *testing.T) {
		edges := a.Analyze(context.Background(), []Entry{
			entry("render", "render", nil),
			entry("lookup", "lookup", nil),
			entry("notify", "notify", map[string]any{"attachment": "/path/to/"}),
		})
		assert.Equal(t, []Edge{{From: "render", To: "notify", Rule: RulePlaceholder}}, edges)
	})

	t.Run("empty sentinel counts as unresolved", func(t *testing.T) {
		edges := a.Analyze(context.Background(), []Entry{
			entry("render", "render", nil),
			entry("notify", "notify", map[string]any{"image_path": ""}),
		})
		assert.Len(t, edges, 1)
	})

	t.Run("concrete path does not fire", func(t *testing.T) {
		edges := a.Analyze(context.Background(), []Entry{
			entry("render", "render", nil),
			entry("notify", "notify", map[string]any{"file_path": "/home/alice/report.pdf"}),
		})
		assert.Empty(t, edges)
	})

	t.Run("absent argument does not fire", func(t *testing.T) {
		edges := a.Analyze(context.Background(), []Entry{
			entry("render", "render", nil),
			entry("notify", "notify", map[string]any{"to": "bob"}),
		})
		assert.Empty(t, edges)
	})
}

func TestAnalyze_EmptyContent(t *testing.T) {
	cat := catalog.Empty()
	cat.Register(catalog.Spec{Name: "fetch", Output: catalog.CategoryData})
	cat.Register(catalog.Spec{Name: "status", Output: catalog.CategoryStatus})
	cat.Register(catalog.Spec{Name: "write", Output: catalog.CategoryFilePath, Requires: []string{"content"}})
	a := New(cat, nil)

	testCases := []struct {
		name string
		args map[string]any
		want int
	}{
		{"missing argument", map[string]any{}, 1},
		{"empty argument", map[string]any{"content": ""}, 1},
		{"placeholder argument", map[string]any{"content": "{previous_result}"}, 1},
		{"concrete argument", map[string]any{"content": "hello"}, 0},
		{"prose mentioning an output folder", map[string]any{"content": "results go to ./output/ tonight"}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			edges := a.Analyze(context.Background(), []Entry{
				entry("status", "status", nil),
				entry("fetch", "fetch", nil),
				entry("write", "write", tc.args),
			})
			assert.Len(t, edges, tc.want)
			for _, e := range edges {
				assert.Equal(t, Edge{From: "fetch", To: "write", Rule: RuleEmptyContent}, e)
			}
		})
	}
}

func TestAnalyze_EmptyContentRequiresDeclaredRole(t *testing.T) {
	cat := catalog.Empty()
	cat.Register(catalog.Spec{Name: "fetch", Output: catalog.CategoryData})
	cat.Register(catalog.Spec{Name: "speak", Output: catalog.CategoryStatus})
	a := New(cat, nil)

	edges := a.Analyze(context.Background(), []Entry{
		entry("fetch", "fetch", nil),
		entry("speak", "speak", map[string]any{"content": ""}),
	})
	assert.Empty(t, edges)
}

func TestAnalyze_RulesDoNotDuplicate(t *testing.T) {
	// save_document matches by role and by the placeholder path rule.
	a := New(catalog.New(), nil)
	edges := a.Analyze(context.Background(), []Entry{
		entry("save_document", "save_document", map[string]any{"content": "report text"}),
		entry("send_email", "send_email", map[string]any{"attachment": "/path/to/", "content": "see attached"}),
	})
	assert.Equal(t, []Edge{{From: "save_document", To: "send_email", Rule: RuleRoleMatch}}, edges)
}

func TestAnalyze_OnlyForwardEdges(t *testing.T) {
	// The consumer comes first, so nothing can feed it.
	a := New(catalog.New(), nil)
	edges := a.Analyze(context.Background(), []Entry{
		entry("send_email", "send_email", map[string]any{"attachment": "/path/to/"}),
		entry("save_document", "save_document", map[string]any{"content": "x"}),
	})
	assert.Empty(t, edges)
}

func TestAnalyze_UsesOperationNotNodeName(t *testing.T) {
	a := New(catalog.New(), nil)
	edges := a.Analyze(context.Background(), []Entry{
		entry("generate_image_0", "generate_image", nil),
		entry("generate_image_1", "generate_image", nil),
		entry("send_email_2", "send_email", map[string]any{"attachment": "{file_path}"}),
	})
	assert.Equal(t, []Edge{
		{From: "generate_image_0", To: "send_email_2", Rule: RuleRoleMatch},
		{From: "generate_image_1", To: "send_email_2", Rule: RuleRoleMatch},
	}, edges)
}

func TestAnalyze_UnknownOperations(t *testing.T) {
	a := New(catalog.New(), nil)
	edges := a.Analyze(context.Background(), []Entry{
		entry("unknown", "", map[string]any{"content": ""}),
		entry("mystery", "mystery", map[string]any{"attachment": "/path/to/"}),
	})
	assert.Empty(t, edges)
}

func TestAnalyze_CustomDetector(t *testing.T) {
	cat := catalog.Empty()
	cat.Register(catalog.Spec{Name: "render", Output: catalog.CategoryFilePath})
	cat.Register(catalog.Spec{Name: "notify", Output: catalog.CategoryStatus})

	never := placeholder.DetectorFunc(func(string, any) bool { return false })
	a := New(cat, never)

	edges := a.Analyze(context.Background(), []Entry{
		entry("render", "render", nil),
		entry("notify", "notify", map[string]any{"attachment": "/path/to/"}),
	})
	assert.Empty(t, edges)
}

func TestAnalyze_NoOverlap(t *testing.T) {
	a := New(catalog.New(), nil)
	edges := a.Analyze(context.Background(), []Entry{
		entry("get_weather", "get_weather", map[string]any{"city": "Paris"}),
		entry("play_music", "play_music", nil),
	})
	assert.Empty(t, edges)
}
