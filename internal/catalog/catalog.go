// Package catalog holds the static class → subject → topic taxonomy and the
// fixed introductory video for each topic.
package catalog

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is an immutable, in-memory taxonomy. It is safe for concurrent use.
type Catalog struct {
	classes []Class
	videos  map[videoKey]string
}

type videoKey struct {
	class, subject, topic string
}

// Load reads a catalog from a YAML file. An empty path loads the built-in
// catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse builds a catalog from YAML. Names must be non-empty and unique at
// each level.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	c := &Catalog{
		classes: f.Classes,
		videos:  make(map[videoKey]string),
	}

	seenClass := make(map[string]bool)
	topics := 0
	for _, cl := range f.Classes {
		if cl.Name == "" || seenClass[cl.Name] {
			return nil, fmt.Errorf("class name %q is empty or duplicated", cl.Name)
		}
		seenClass[cl.Name] = true

		seenSubject := make(map[string]bool)
		for _, sub := range cl.Subjects {
			if sub.Name == "" || seenSubject[sub.Name] {
				return nil, fmt.Errorf("%s: subject name %q is empty or duplicated", cl.Name, sub.Name)
			}
			seenSubject[sub.Name] = true

			for _, tp := range sub.Topics {
				key := videoKey{cl.Name, sub.Name, tp.Name}
				if _, dup := c.videos[key]; tp.Name == "" || dup {
					return nil, fmt.Errorf("%s/%s: topic name %q is empty or duplicated", cl.Name, sub.Name, tp.Name)
				}
				c.videos[key] = tp.Video
				topics++
			}
		}
	}

	slog.Info("catalog loaded", "classes", len(f.Classes), "topics", topics)
	return c, nil
}

// Structure returns class → subject → topic names for client navigation.
// Video URLs are omitted. Topic order follows the catalog file.
func (c *Catalog) Structure() map[string]map[string][]string {
	out := make(map[string]map[string][]string, len(c.classes))
	for _, cl := range c.classes {
		subjects := make(map[string][]string, len(cl.Subjects))
		for _, sub := range cl.Subjects {
			names := make([]string, 0, len(sub.Topics))
			for _, tp := range sub.Topics {
				names = append(names, tp.Name)
			}
			subjects[sub.Name] = names
		}
		out[cl.Name] = subjects
	}
	return out
}

// Video returns the fixed video URL for a topic. The boolean is false when
// any of the three keys is unknown or the topic has no video.
func (c *Catalog) Video(class, subject, topic string) (string, bool) {
	url, ok := c.videos[videoKey{class, subject, topic}]
	if !ok || url == "" {
		return "", false
	}
	return url, true
}
