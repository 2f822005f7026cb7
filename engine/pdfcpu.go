package engine

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/jamespreed/pdf-quick-text/fonts"
)

// PDFCPU is the production Engine backed by github.com/pdfcpu/pdfcpu. Text
// is stamped through pdfcpu's watermark machinery with absolute bottom-left
// positioning; documents are kept as serialized bytes between operations, so
// serialization is trivially repeatable.
type PDFCPU struct {
	conf *model.Configuration
}

// NewPDFCPU returns an engine with pdfcpu's default (relaxed) configuration.
func NewPDFCPU() *PDFCPU {
	return &PDFCPU{conf: model.NewDefaultConfiguration()}
}

func (e *PDFCPU) Load(data []byte) (Document, error) {
	ctx, err := api.ReadContext(bytes.NewReader(data), e.conf)
	if err != nil {
		return nil, &InvalidDocumentError{Err: err}
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, &InvalidDocumentError{Err: err}
	}
	dims, err := ctx.PageDims()
	if err != nil {
		return nil, &InvalidDocumentError{Err: err}
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	return &pdfcpuDocument{
		conf:      e.conf,
		data:      buf,
		pageCount: ctx.PageCount,
		dims:      dims,
	}, nil
}

type pdfcpuDocument struct {
	conf      *model.Configuration
	data      []byte
	pageCount int
	dims      []types.Dim
}

func (d *pdfcpuDocument) PageCount() int { return d.pageCount }

func (d *pdfcpuDocument) PageSize(pageIndex int) (float64, float64, error) {
	if pageIndex < 0 || pageIndex >= d.pageCount {
		return 0, 0, &PageIndexError{Index: pageIndex, PageCount: d.pageCount}
	}
	dim := d.dims[pageIndex]
	return dim.Width, dim.Height, nil
}

func (d *pdfcpuDocument) DrawText(pageIndex int, text string, x, y, size float64, font fonts.Font) error {
	if pageIndex < 0 || pageIndex >= d.pageCount {
		return &PageIndexError{Index: pageIndex, PageCount: d.pageCount}
	}
	if size <= 0 {
		return &InvalidSizeError{Size: size}
	}
	if !font.Valid() {
		return &fonts.UnsupportedFontError{Name: string(font)}
	}
	if text == "" {
		return nil
	}

	// pdfcpu takes the font size in whole points.
	points := int(math.Round(size))
	if points < 1 {
		points = 1
	}
	desc := fmt.Sprintf(
		"fontname:%s, points:%d, scalefactor:1 abs, position:bl, offset:%.2f %.2f, rotation:0, opacity:1",
		font.BaseFont(), points, x, y,
	)
	wm, err := api.TextWatermark(text, desc, true, false, types.POINTS)
	if err != nil {
		return fmt.Errorf("build text stamp: %w", err)
	}

	var out bytes.Buffer
	pages := []string{strconv.Itoa(pageIndex + 1)}
	if err := api.AddWatermarks(bytes.NewReader(d.data), &out, pages, wm, d.conf); err != nil {
		return fmt.Errorf("stamp page %d: %w", pageIndex, err)
	}
	d.data = out.Bytes()
	return nil
}

func (d *pdfcpuDocument) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.data)
	return int64(n), err
}
