// Package session implements page-scoped text stamping over a PDF template.
//
// A Session wraps an immutable template and a working copy loaded through
// the engine. Edits follow a strict open/add/close discipline: exactly one
// page may be open at a time, text stamps buffer against the open page and
// commit into the working document on ClosePage. Save serializes the
// committed state; Reset discards it and reloads the template. The state
// machine never auto-corrects misuse, and a failed call leaves the session
// exactly as it was.
//
// A Session is not safe for concurrent use; confine it to one goroutine or
// serialize access externally. Template bytes may be shared across sessions.
package session

import (
	"fmt"
	"io"
	"os"

	"github.com/jamespreed/pdf-quick-text/coords"
	"github.com/jamespreed/pdf-quick-text/engine"
	"github.com/jamespreed/pdf-quick-text/fonts"
	"github.com/jamespreed/pdf-quick-text/observability"
)

type state int

const (
	stateIdle state = iota
	stateEditing
)

// textOp is one buffered stamp against the open page. Coordinates are
// points from the bottom-left corner.
type textOp struct {
	text string
	x, y float64
	size float64
	font fonts.Font
}

// Session coordinates page-scoped edits and serialization for one template.
type Session struct {
	template []byte
	eng      engine.Engine
	doc      engine.Document

	state   state
	page    int // open page index, meaningful only while editing
	pending []textOp

	log observability.Logger
}

// Option configures a Session at construction.
type Option func(*Session)

// WithEngine replaces the default pdfcpu engine.
func WithEngine(e engine.Engine) Option {
	return func(s *Session) { s.eng = e }
}

// WithLogger attaches a structured logger. The default discards everything.
func WithLogger(l observability.Logger) Option {
	return func(s *Session) { s.log = l }
}

// New loads template into a fresh session. The bytes are copied; the caller
// may reuse the slice. Returns *engine.InvalidDocumentError when the engine
// rejects the template.
func New(template []byte, opts ...Option) (*Session, error) {
	s := &Session{
		template: append([]byte(nil), template...),
		eng:      engine.NewPDFCPU(),
		log:      observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	doc, err := s.eng.Load(s.template)
	if err != nil {
		return nil, err
	}
	s.doc = doc
	s.log.Debug("template loaded", observability.Int("pages", doc.PageCount()))
	return s, nil
}

// PageCount returns the number of pages in the template.
func (s *Session) PageCount() int { return s.doc.PageCount() }

// PageSize returns the width and height in points of the page at the
// zero-based index.
func (s *Session) PageSize(index int) (width, height float64, err error) {
	return s.doc.PageSize(index)
}

// CurrentPage returns the open page index, or false when no page is open.
func (s *Session) CurrentPage() (int, bool) {
	if s.state != stateEditing {
		return 0, false
	}
	return s.page, true
}

// OpenPage opens the zero-based page index for editing. Exactly one page
// may be open at a time.
func (s *Session) OpenPage(index int) error {
	if s.state == stateEditing {
		return &PageAlreadyOpenError{Open: s.page}
	}
	if index < 0 || index >= s.doc.PageCount() {
		return &engine.PageIndexError{Index: index, PageCount: s.doc.PageCount()}
	}
	s.state = stateEditing
	s.page = index
	s.pending = s.pending[:0]
	return nil
}

// AddText buffers a stamp of text on the open page at (x, y) points from
// the bottom-left corner. The font name is resolved against the standard
// set, so both "courier" and "Courier-Bold" spellings work. Empty text is a
// valid no-op. Nothing reaches the document until ClosePage.
func (s *Session) AddText(text string, x, y, size float64, font fonts.Font) error {
	if s.state != stateEditing {
		return &NoPageOpenError{}
	}
	if size <= 0 {
		return &engine.InvalidSizeError{Size: size}
	}
	resolved, err := fonts.Parse(string(font))
	if err != nil {
		return err
	}
	s.pending = append(s.pending, textOp{text: text, x: x, y: y, size: size, font: resolved})
	return nil
}

// AddTextInches buffers a stamp positioned in inches from the left and top
// edges of the open page.
func (s *Session) AddTextInches(text string, fromLeft, fromTop, size float64, font fonts.Font) error {
	if s.state != stateEditing {
		return &NoPageOpenError{}
	}
	p := coords.FromTopLeft(
		coords.InchesToPoints(fromLeft),
		coords.InchesToPoints(fromTop),
		s.openPageHeight(),
	)
	return s.AddText(text, p.X, p.Y, size, font)
}

// AddTextCm buffers a stamp positioned in centimeters from the left and top
// edges of the open page.
func (s *Session) AddTextCm(text string, fromLeft, fromTop, size float64, font fonts.Font) error {
	if s.state != stateEditing {
		return &NoPageOpenError{}
	}
	p := coords.FromTopLeft(
		coords.CmToPoints(fromLeft),
		coords.CmToPoints(fromTop),
		s.openPageHeight(),
	)
	return s.AddText(text, p.X, p.Y, size, font)
}

// openPageHeight reports the open page's height, falling back to US Letter
// when the engine cannot say.
func (s *Session) openPageHeight() float64 {
	_, h, err := s.doc.PageSize(s.page)
	if err != nil || h <= 0 {
		return coords.LetterHeight
	}
	return h
}

// ClosePage commits the buffered stamps into the working document and
// returns the session to idle. On an engine failure the page stays open
// with the uncommitted stamps still buffered.
func (s *Session) ClosePage() error {
	if s.state != stateEditing {
		return &NoPageOpenError{}
	}
	for len(s.pending) > 0 {
		op := s.pending[0]
		if err := s.doc.DrawText(s.page, op.text, op.x, op.y, op.size, op.font); err != nil {
			return fmt.Errorf("commit page %d: %w", s.page, err)
		}
		s.pending = s.pending[1:]
	}
	s.log.Debug("page closed", observability.Int("page", s.page))
	s.state = stateIdle
	s.pending = nil
	return nil
}

// Save serializes the committed state of the working document to w. It does
// not change session state and may be called repeatedly. Fails with
// *PageStillOpenError while a page is open.
func (s *Session) Save(w io.Writer) error {
	if s.state == stateEditing {
		return &PageStillOpenError{Open: s.page}
	}
	n, err := s.doc.WriteTo(w)
	if err != nil {
		return fmt.Errorf("serialize document: %w", err)
	}
	s.log.Debug("document saved", observability.Int("bytes", int(n)))
	return nil
}

// SaveFile writes the committed state to path. No file is created when a
// page is still open; a partially written file is removed on error.
func (s *Session) SaveFile(path string) error {
	if s.state == stateEditing {
		return &PageStillOpenError{Open: s.page}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := s.Save(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Reset discards every committed edit and reloads the working document from
// the template bytes. Fails with *PageStillOpenError while a page is open;
// close (or never open) the page so that discarding state is an explicit
// choice, never an accident.
func (s *Session) Reset() error {
	if s.state == stateEditing {
		return &PageStillOpenError{Open: s.page}
	}
	doc, err := s.eng.Load(s.template)
	if err != nil {
		return err
	}
	s.doc = doc
	s.log.Debug("session reset")
	return nil
}
