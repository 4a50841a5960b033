package scoring

import (
	"encoding/json"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "bare JSON object",
			content: `{"summary": "fine"}`,
			want:    `{"summary": "fine"}`,
		},
		{
			name:    "markdown fenced block",
			content: "Here is my assessment:\n```json\n{\"summary\": \"fine\"}\n```\nHope that helps!",
			want:    `{"summary": "fine"}`,
		},
		{
			name:    "fence without language tag",
			content: "```\n{\"summary\": \"fine\"}\n```",
			want:    `{"summary": "fine"}`,
		},
		{
			name:    "prose-wrapped object",
			content: `Sure! The result is {"summary": "fine"} as requested.`,
			want:    `{"summary": "fine"}`,
		},
		{
			name:    "trailing comma removed",
			content: `{"items": ["a", "b",], "n": 1,}`,
			want:    `{"items": ["a", "b"], "n": 1}`,
		},
		{
			name:    "no JSON at all",
			content: "I cannot evaluate this image.",
			want:    "",
		},
		{
			name:    "empty input",
			content: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ExtractJSON(tt.content)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExtractJSONStripsComments(t *testing.T) {
	t.Parallel()

	content := `{
  "summary": "fine", // overall take
  "url": "https://example.com" // not a comment target
}`

	got := ExtractJSON(content)

	var parsed map[string]string
	if err := json.Unmarshal([]byte(got), &parsed); err != nil {
		t.Fatalf("cleaned output must be valid JSON: %v\n%s", err, got)
	}
	if parsed["url"] != "https://example.com" {
		t.Errorf("URL inside string value was damaged: %q", parsed["url"])
	}
}

func TestExtractJSONNestedBraces(t *testing.T) {
	t.Parallel()

	content := `{"dimensions": {"typography": {"score": 4, "findings": "ok"}}, "overallScore": 4}`

	got := ExtractJSON(content)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(got), &parsed); err != nil {
		t.Fatalf("nested object extraction broke JSON: %v", err)
	}
	if parsed["overallScore"].(float64) != 4 {
		t.Errorf("unexpected overallScore: %v", parsed["overallScore"])
	}
}
