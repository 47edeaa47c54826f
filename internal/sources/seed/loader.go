package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
)

// File is the top-level structure of a seed file.
type File struct {
	Bookmarks []Entry `yaml:"bookmarks"`
}

// Entry is one bookmark in a seed file.
type Entry struct {
	Title  string     `yaml:"title"`
	URL    string     `yaml:"url"`
	Desc   string     `yaml:"desc"`
	Rating seedRating `yaml:"rating"`
}

// Input converts the entry into a create payload.
func (e Entry) Input() domain.Input {
	return domain.Input{
		Title:  e.Title,
		URL:    e.URL,
		Desc:   e.Desc,
		Rating: e.Rating.Rating,
	}
}

// seedRating reads a YAML scalar with the same coercion as a submitted rating.
type seedRating struct {
	domain.Rating
}

// UnmarshalYAML applies the JSON rules by resolved tag: numbers and booleans
// like their JSON forms, strings by their leading digits.
func (r *seedRating) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: rating must be a scalar", n.Line)
	}

	switch n.ShortTag() {
	case "!!null":
		r.Rating = domain.Rating{}
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return fmt.Errorf("line %d: rating: %w", n.Line, err)
		}
		r.Rating = domain.BoolRating(b)
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return fmt.Errorf("line %d: rating: %w", n.Line, err)
		}
		r.Rating = domain.NumberRating(f)
	default:
		r.Rating = domain.ParseRating(n.Value)
	}
	return nil
}

// Loader handles loading and parsing of a seed file
type Loader struct {
	filePath string
}

// NewLoader creates a new seed loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the seed file.
func (l *Loader) Load() (File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return File{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes seed YAML.
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("failed to parse seed yaml: %w", err)
	}
	return f, nil
}

// Check validates every entry without touching a store.
func (f File) Check() error {
	for i, e := range f.Bookmarks {
		if err := domain.Validate(e.Input()); err != nil {
			return entryError(i, e, err)
		}
	}
	return nil
}

func entryError(i int, e Entry, err error) error {
	return fmt.Errorf("seed entry %d (%q): %w", i, e.Title, err)
}
