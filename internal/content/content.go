// Package content supplies the ordered payload list attached to nodes.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/san-kum/constellation/internal/scene"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for extensions Load does not know.
var ErrUnsupportedFormat = errors.New("content: unsupported file format")

// ErrEmpty is returned when a content file parses to no entries.
var ErrEmpty = errors.New("content: no entries")

// File is the on-disk shape of a content list.
type File struct {
	Nodes []scene.Payload `yaml:"nodes" toml:"nodes" json:"nodes"`
}

// Default returns the built-in list.
func Default() []scene.Payload {
	return []scene.Payload{
		{Title: "Spaced repetition, measured", Date: "2024-11-02", Preview: "A year of review logs and what the forgetting curve looked like.", Destination: "https://example.com/notes/spaced-repetition"},
		{Title: "Dallas to Zurich", Date: "2024-08-19", Preview: "Notes from the move.", Destination: "https://example.com/notes/dallas-zurich"},
		{Title: "Deck: linear algebra", Date: "2024-06-30", Preview: "Flashcards for eigenvalues, SVD and friends."},
		{Title: "Reading list", Date: "2024-05-12", Destination: "https://example.com/reading"},
		{Title: "Nearest neighbours by hand", Date: "2024-03-07", Preview: "Why brute force is fine below a few thousand points.", Destination: "https://example.com/notes/knn"},
		{Title: "Deck: German A2", Date: "2024-02-21", Preview: "Verb tables and everyday phrases."},
		{Title: "Feedback", Date: "2023-12-01", Preview: "Send a note.", Destination: "https://example.com/feedback"},
		{Title: "About", Date: "2023-10-15", Destination: "https://example.com/about"},
	}
}

// Load reads a payload list from a YAML, JSON or TOML file, picked by
// extension. YAML and JSON accept both a bare list and a {nodes: [...]}
// document; TOML takes [[nodes]] tables.
func Load(path string) ([]scene.Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var (
		list []scene.Payload
		file File
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &list); err != nil {
			if err := yaml.Unmarshal(data, &file); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
			list = file.Nodes
		}
	case ".json":
		if err := json.Unmarshal(data, &list); err != nil {
			if err := json.Unmarshal(data, &file); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
			list = file.Nodes
		}
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		list = file.Nodes
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}

	for i, p := range list {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%s: entry %d: %w", path, i, err)
		}
	}
	return list, nil
}

// Save writes a payload list as a YAML document.
func Save(path string, payloads []scene.Payload) error {
	data, err := yaml.Marshal(File{Nodes: payloads})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
