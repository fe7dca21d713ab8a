package draft

import "testing"

func TestSanitizeOutput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "clean content unchanged",
			input: `{"task_id": "1.1"}`,
			want:  `{"task_id": "1.1"}`,
		},
		{
			name:  "strips preamble",
			input: "Here is the journal entry you asked for:\n\n{\"task_id\": \"1.1\"}",
			want:  `{"task_id": "1.1"}`,
		},
		{
			name:  "strips signoff",
			input: "{\"task_id\": \"1.1\"}\n\nLet me know if you need anything else!",
			want:  `{"task_id": "1.1"}`,
		},
		{
			name:  "strips enclosing fence",
			input: "```json\n{\"task_id\": \"1.1\"}\n```",
			want:  `{"task_id": "1.1"}`,
		},
		{
			name:  "preamble then fence",
			input: "Sure, here you go:\n\n```json\n{\"task_id\": \"1.1\"}\n```",
			want:  `{"task_id": "1.1"}`,
		},
		{
			name:  "empty input",
			input: "   ",
			want:  "",
		},
		{
			name:  "content starting like a preamble is kept after limit",
			input: "Here is one\nHere is two\nHere is three\nreal content",
			want:  "real content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeOutput(tt.input); got != tt.want {
				t.Errorf("SanitizeOutput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
