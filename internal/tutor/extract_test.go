package tutor

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{
			name:   "fenced",
			text:   "Here you go:\n```json\n[{\"a\":1},{\"a\":2}]\n```\nGood luck!",
			want:   `[{"a":1},{"a":2}]`,
			wantOK: true,
		},
		{
			name:   "fence wins over surrounding brackets",
			text:   "[note] ```json\n[1]\n``` [x]",
			want:   "[1]",
			wantOK: true,
		},
		{
			name:   "bracket fallback",
			text:   "Sure! [{\"question\":\"q\"}] Hope that helps.",
			want:   `[{"question":"q"}]`,
			wantOK: true,
		},
		{
			name:   "unclosed fence falls back to brackets",
			text:   "```json\n[1, 2]",
			want:   "[1, 2]",
			wantOK: true,
		},
		{
			name:   "neither",
			text:   "I cannot help with that.",
			wantOK: false,
		},
		{
			name:   "closing bracket before opening",
			text:   "] oops [",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ExtractJSON() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ExtractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Run("fenced array of two objects", func(t *testing.T) {
		text := "```json\n[{\"question\":\"one\",\"answer\":\"A\"},{\"question\":\"two\",\"answer\":\"B\"}]\n```"
		got, ok := DecodeJSON[[]Question](text)
		if !ok {
			t.Fatal("DecodeJSON() ok = false")
		}
		if len(got) != 2 || got[0].Question != "one" || got[1].Answer != "B" {
			t.Errorf("DecodeJSON() = %+v", got)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		if _, ok := DecodeJSON[[]Question]("[{\"question\": }]"); ok {
			t.Error("DecodeJSON() ok = true for malformed JSON")
		}
	})

	t.Run("no payload", func(t *testing.T) {
		if _, ok := DecodeJSON[[]Question]("nothing here"); ok {
			t.Error("DecodeJSON() ok = true without payload")
		}
	})

	t.Run("wrong shape", func(t *testing.T) {
		if _, ok := DecodeJSON[[]Question]("```json\n{\"question\":\"q\"}\n```"); ok {
			t.Error("DecodeJSON() ok = true for an object where a list was expected")
		}
	})
}
