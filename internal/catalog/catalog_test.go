package catalog_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/p-n-ai/pai-learn/internal/catalog"
)

func TestLoad_Default(t *testing.T) {
	c, err := catalog.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := map[string]map[string][]string{
		"Class 10": {
			"Physics":   {"Motion in a Straight Line", "Gravity"},
			"Chemistry": {"The Atom"},
		},
	}
	if got := c.Structure(); !reflect.DeepEqual(got, want) {
		t.Errorf("Structure() = %v, want %v", got, want)
	}
}

func TestStructure_Stable(t *testing.T) {
	c, err := catalog.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	first := c.Structure()
	first["Class 10"]["Physics"][0] = "mutated by caller"

	second := c.Structure()
	if second["Class 10"]["Physics"][0] != "Motion in a Straight Line" {
		t.Error("Structure() result should not alias catalog state")
	}
	if !reflect.DeepEqual(second, c.Structure()) {
		t.Error("Structure() should be stable across calls")
	}
}

func TestVideo(t *testing.T) {
	c, err := catalog.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name                  string
		class, subject, topic string
		want                  string
		wantOK                bool
	}{
		{"known topic", "Class 10", "Physics", "Gravity", "https://youtu.be/1_ZFWFFoPu8?si=6_5G83t6V0I7B5CV", true},
		{"unknown topic", "Class 10", "Physics", "Unknown Topic", "", false},
		{"unknown subject", "Class 10", "Biology", "Gravity", "", false},
		{"unknown class", "Class 9", "Physics", "Gravity", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Video(tt.class, tt.subject, tt.topic)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Video() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	os.WriteFile(path, []byte(`
classes:
  - name: Class 9
    subjects:
      - name: Mathematics
        topics:
          - name: Linear Equations
            video: https://www.youtube.com/watch?v=abc123
          - name: Polynomials
`), 0o644)

	c, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if url, ok := c.Video("Class 9", "Mathematics", "Linear Equations"); !ok || url != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("Video() = (%q, %v)", url, ok)
	}
	if _, ok := c.Video("Class 9", "Mathematics", "Polynomials"); ok {
		t.Error("topic without a video should report not found")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "classes: [unclosed"},
		{"empty class name", "classes:\n  - name: ''\n"},
		{"duplicate subject", `
classes:
  - name: Class 10
    subjects:
      - name: Physics
      - name: Physics
`},
		{"duplicate topic", `
classes:
  - name: Class 10
    subjects:
      - name: Physics
        topics:
          - name: Gravity
          - name: Gravity
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := catalog.Parse([]byte(tt.yaml)); err == nil {
				t.Error("Parse() should return error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := catalog.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load() should return error for a missing file")
	}
}
