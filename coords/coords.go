// Package coords provides page-space coordinate and unit helpers. PDF user
// space measures in points from the bottom-left corner of the page.
package coords

// PointsPerInch is the resolution of PDF user space.
const PointsPerInch = 72.0

// CmPerInch converts metric positions to inches.
const CmPerInch = 2.54

// Point is a position in page space, in points from the bottom-left corner.
type Point struct {
	X, Y float64
}

// Unit names a measurement unit accepted for stamp positions.
type Unit string

const (
	UnitPoints Unit = "pt"
	UnitInches Unit = "in"
	UnitCm     Unit = "cm"
)

// ToPoints converts a value in u to points.
func ToPoints(v float64, u Unit) float64 {
	switch u {
	case UnitInches:
		return InchesToPoints(v)
	case UnitCm:
		return CmToPoints(v)
	default:
		return v
	}
}

// Valid reports whether u is a known unit. The empty unit is valid and
// means points.
func (u Unit) Valid() bool {
	switch u {
	case UnitPoints, UnitInches, UnitCm, "":
		return true
	}
	return false
}

func InchesToPoints(in float64) float64 { return in * PointsPerInch }

func CmToPoints(cm float64) float64 { return cm / CmPerInch * PointsPerInch }

// FromTopLeft converts a position measured from the top-left corner of a
// page of the given height into bottom-left page space.
func FromTopLeft(xFromLeft, yFromTop, pageHeight float64) Point {
	return Point{X: xFromLeft, Y: pageHeight - yFromTop}
}

// US Letter, the fallback page size when a document reports no media box.
const (
	LetterWidth  = 612.0
	LetterHeight = 792.0
)
