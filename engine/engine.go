// Package engine defines the contract between the stamping session and the
// underlying PDF engine: loading raw bytes into a page-addressable document,
// drawing text onto a page, and serializing the result. The production
// implementation delegates to pdfcpu; object graphs, xref tables and content
// stream syntax never cross this boundary.
package engine

import (
	"fmt"
	"io"

	"github.com/jamespreed/pdf-quick-text/fonts"
)

// Engine loads raw PDF bytes into an editable document.
type Engine interface {
	Load(data []byte) (Document, error)
}

// Document is a loaded PDF accepting page-scoped text stamps.
type Document interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// PageSize returns the width and height in points of the page at the
	// zero-based index.
	PageSize(pageIndex int) (width, height float64, err error)

	// DrawText stamps text onto the page at the zero-based index. x and y
	// are measured in points from the bottom-left corner of the page.
	// Empty text is a no-op.
	DrawText(pageIndex int, text string, x, y, size float64, font fonts.Font) error

	// WriteTo serializes the current state of the document. It does not
	// change the document; repeated calls in the same state produce the
	// same bytes.
	WriteTo(w io.Writer) (int64, error)
}

// InvalidDocumentError reports bytes the engine could not load as a PDF.
type InvalidDocumentError struct {
	Err error
}

func (e *InvalidDocumentError) Error() string {
	return fmt.Sprintf("invalid PDF document: %v", e.Err)
}

func (e *InvalidDocumentError) Unwrap() error { return e.Err }

// PageIndexError reports a page reference outside [0, PageCount).
type PageIndexError struct {
	Index     int
	PageCount int
}

func (e *PageIndexError) Error() string {
	return fmt.Sprintf("page index %d out of range [0, %d)", e.Index, e.PageCount)
}

// InvalidSizeError reports a non-positive font size.
type InvalidSizeError struct {
	Size float64
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("font size %v must be positive", e.Size)
}
