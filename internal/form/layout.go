// Package form holds the declarative description of the Anlage V schedule:
// which display fields exist on which page, where they sit and what they show.
package form

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// PageCount is fixed; the container only knows two pages.
	PageCount = 2

	FieldHeight   float32 = 19
	FieldTextSize float32 = 10
)

var ErrInvalidLayout = errors.New("invalid form layout")

//go:embed data/anlage_v.yaml
var builtinLayout []byte

// Field describes one read-only display field.
type Field struct {
	ID    string  `yaml:"id"`
	X     float32 `yaml:"x"`
	Y     float32 `yaml:"y"`
	Width float32 `yaml:"width"`
	Value string  `yaml:"value"`
}

// PageLayout is the ordered field list of one printable page.
type PageLayout struct {
	ID     string  `yaml:"id"`
	Title  string  `yaml:"title"`
	Fields []Field `yaml:"fields"`
}

// Layout is the whole form: page size plus both pages.
type Layout struct {
	Name   string       `yaml:"name"`
	Width  float32      `yaml:"width"`
	Height float32      `yaml:"height"`
	Pages  []PageLayout `yaml:"pages"`
}

// Default returns the built-in Anlage V layout.
func Default() (*Layout, error) {
	return Parse(builtinLayout, "builtin")
}

// LoadFile reads a YAML layout from disk.
func LoadFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("form: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Load returns the layout at path, or the built-in one when path is empty.
func Load(path string) (*Layout, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Parse decodes and validates a YAML layout. source is only used in errors.
func Parse(data []byte, source string) (*Layout, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidLayout, source)
	}

	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidLayout, source, err)
	}

	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return &l, nil
}

// Validate enforces the structural rules every layout must satisfy.
func (l *Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: form size %gx%g", ErrInvalidLayout, l.Width, l.Height)
	}
	if len(l.Pages) != PageCount {
		return fmt.Errorf("%w: want %d pages, got %d", ErrInvalidLayout, PageCount, len(l.Pages))
	}

	for i, p := range l.Pages {
		seen := make(map[string]bool, len(p.Fields))
		for _, f := range p.Fields {
			id := strings.TrimSpace(f.ID)
			switch {
			case id == "":
				return fmt.Errorf("%w: page %d has a field without id", ErrInvalidLayout, i)
			case seen[id]:
				return fmt.Errorf("%w: page %d field %q defined twice", ErrInvalidLayout, i, id)
			case f.Width <= 0:
				return fmt.Errorf("%w: page %d field %q has width %g", ErrInvalidLayout, i, id, f.Width)
			case f.X < 0 || f.Y < 0 || f.X+f.Width > l.Width || f.Y+FieldHeight > l.Height:
				return fmt.Errorf("%w: page %d field %q outside the form", ErrInvalidLayout, i, id)
			}
			seen[id] = true
		}
	}
	return nil
}

// Page returns the layout of page idx.
func (l *Layout) Page(idx int) (PageLayout, bool) {
	if idx < 0 || idx >= len(l.Pages) {
		return PageLayout{}, false
	}
	return l.Pages[idx], true
}

// Field looks up a field by id.
func (p PageLayout) Field(id string) (Field, bool) {
	for _, f := range p.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}
