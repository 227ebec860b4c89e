package structcall

import "testing"

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "clean object",
			input: `{"a": 1}`,
			want:  `{"a": 1}`,
		},
		{
			name:  "whitespace padded",
			input: "\n  {\"a\": 1}\n",
			want:  `{"a": 1}`,
		},
		{
			name:  "markdown fenced",
			input: "```json\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "prose around object",
			input: `Here is the result: {"a": 1} hope that helps`,
			want:  `{"a": 1}`,
		},
		{
			name:  "stray brace after object",
			input: `{"a": 1} trailing }`,
			want:  `{"a": 1}`,
		},
		{
			name:  "braces inside string literal",
			input: `noise { "msg": "use {braces} carefully" } noise`,
			want:  `{ "msg": "use {braces} carefully" }`,
		},
		{
			name:  "nested object",
			input: `prefix {"a": {"b": 2}} suffix`,
			want:  `{"a": {"b": 2}}`,
		},
		{
			name:    "no json at all",
			input:   "I cannot answer in JSON, sorry.",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "unbalanced braces",
			input:   `{"a": 1`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
