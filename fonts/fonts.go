// Package fonts defines the set of base fonts available for text stamping:
// the fourteen standard Type 1 fonts every conforming PDF reader ships.
package fonts

import (
	"fmt"
	"strings"
)

// Font is the PDF BaseFont name of a standard Type 1 font.
type Font string

const (
	Courier              Font = "Courier"
	CourierBold          Font = "Courier-Bold"
	CourierOblique       Font = "Courier-Oblique"
	CourierBoldOblique   Font = "Courier-BoldOblique"
	Helvetica            Font = "Helvetica"
	HelveticaBold        Font = "Helvetica-Bold"
	HelveticaOblique     Font = "Helvetica-Oblique"
	HelveticaBoldOblique Font = "Helvetica-BoldOblique"
	TimesRoman           Font = "Times-Roman"
	TimesBold            Font = "Times-Bold"
	TimesItalic          Font = "Times-Italic"
	TimesBoldItalic      Font = "Times-BoldItalic"
	Symbol               Font = "Symbol"
	ZapfDingbats         Font = "ZapfDingbats"
)

var standard = []Font{
	Courier, CourierBold, CourierOblique, CourierBoldOblique,
	Helvetica, HelveticaBold, HelveticaOblique, HelveticaBoldOblique,
	TimesRoman, TimesBold, TimesItalic, TimesBoldItalic,
	Symbol, ZapfDingbats,
}

// byKey maps a normalized name (lower case, separators stripped) to a font.
// Both the BaseFont spelling ("Times-Roman") and the compact spelling
// ("timesroman") normalize to the same key.
var byKey = func() map[string]Font {
	m := make(map[string]Font, len(standard))
	for _, f := range standard {
		m[normalize(string(f))] = f
	}
	return m
}()

func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "-", "")
	name = strings.ReplaceAll(name, "_", "")
	name = strings.ReplaceAll(name, " ", "")
	return name
}

// Parse resolves a font name to one of the standard fonts. Matching ignores
// case, spaces, hyphens and underscores, so "courier", "Courier-Bold" and
// "times roman" all resolve.
func Parse(name string) (Font, error) {
	if f, ok := byKey[normalize(name)]; ok {
		return f, nil
	}
	return "", &UnsupportedFontError{Name: name}
}

// Valid reports whether f is one of the standard fonts.
func (f Font) Valid() bool {
	_, ok := byKey[normalize(string(f))]
	return ok
}

// BaseFont returns the PDF BaseFont name, e.g. "Times-Roman".
func (f Font) BaseFont() string { return string(f) }

func (f Font) String() string { return string(f) }

// Standard returns the fourteen standard fonts in a fixed order.
func Standard() []Font {
	out := make([]Font, len(standard))
	copy(out, standard)
	return out
}

// UnsupportedFontError reports a font name outside the standard set.
type UnsupportedFontError struct {
	Name string
}

func (e *UnsupportedFontError) Error() string {
	return fmt.Sprintf("font %q is not one of the standard fonts", e.Name)
}
