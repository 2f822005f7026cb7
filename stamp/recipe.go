// Package stamp runs batch mail-merge jobs: one stamped copy of a PDF
// template per input record, driven by a YAML recipe.
package stamp

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jamespreed/pdf-quick-text/coords"
	"github.com/jamespreed/pdf-quick-text/fonts"
)

// Recipe describes one batch job: the template, where outputs go, how each
// output file is named, and the fields stamped onto every copy.
type Recipe struct {
	Template string  `yaml:"template"`
	OutDir   string  `yaml:"out_dir"`
	Name     Source  `yaml:"name"`
	Fields   []Field `yaml:"fields"`
}

// Source yields a per-record string: either a record column by name or a
// JavaScript expression evaluated with the record bound as `record`.
// Exactly one of the two must be set.
type Source struct {
	Column string `yaml:"column"`
	Expr   string `yaml:"expr"`
}

func (s Source) set() bool { return s.Column != "" || s.Expr != "" }

func (s Source) validate(what string) error {
	if s.Column != "" && s.Expr != "" {
		return fmt.Errorf("%s: column and expr are mutually exclusive", what)
	}
	if !s.set() {
		return fmt.Errorf("%s: one of column or expr is required", what)
	}
	return nil
}

// Field places one piece of text on the template. Text comes from a literal,
// a record column, or an expression (exactly one). Position is measured in
// Unit from the bottom-left corner, or from the top-left when FromTop is
// set. A nil Page stamps every page.
type Field struct {
	Page    *int        `yaml:"page"`
	X       float64     `yaml:"x"`
	Y       float64     `yaml:"y"`
	Unit    coords.Unit `yaml:"unit"`
	FromTop bool        `yaml:"from_top"`
	Size    float64     `yaml:"size"`
	Font    string      `yaml:"font"`
	Text    string      `yaml:"text"`
	Column  string      `yaml:"column"`
	Expr    string      `yaml:"expr"`
}

// Defaults applied to fields that leave them out, matching the library's
// AddText conventions.
const (
	DefaultSize = 11.0
	DefaultFont = fonts.TimesRoman
)

// ParseRecipe decodes and validates a YAML recipe. Unknown keys are
// rejected so typos fail loudly instead of silently dropping a field.
func ParseRecipe(data []byte) (*Recipe, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var r Recipe
	if err := dec.Decode(&r); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse recipe: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks the recipe and fills in field defaults.
func (r *Recipe) Validate() error {
	if r.Template == "" {
		return fmt.Errorf("recipe: template is required")
	}
	if r.OutDir == "" {
		return fmt.Errorf("recipe: out_dir is required")
	}
	if err := r.Name.validate("recipe name"); err != nil {
		return err
	}
	if len(r.Fields) == 0 {
		return fmt.Errorf("recipe: at least one field is required")
	}
	for i := range r.Fields {
		f := &r.Fields[i]
		if err := f.validate(i); err != nil {
			return err
		}
	}
	return nil
}

func (f *Field) validate(i int) error {
	sources := 0
	if f.Text != "" {
		sources++
	}
	if f.Column != "" {
		sources++
	}
	if f.Expr != "" {
		sources++
	}
	if sources != 1 {
		return fmt.Errorf("field %d: exactly one of text, column or expr is required", i)
	}
	if f.Page != nil && *f.Page < 0 {
		return fmt.Errorf("field %d: page %d is negative", i, *f.Page)
	}
	if !f.Unit.Valid() {
		return fmt.Errorf("field %d: unknown unit %q", i, f.Unit)
	}
	if f.Size == 0 {
		f.Size = DefaultSize
	}
	if f.Size < 0 {
		return fmt.Errorf("field %d: size %v is negative", i, f.Size)
	}
	if f.Font == "" {
		f.Font = string(DefaultFont)
	}
	if _, err := fonts.Parse(f.Font); err != nil {
		return fmt.Errorf("field %d: %w", i, err)
	}
	return nil
}
