package document

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// LabelReader supplies native page labels for a document, one entry per page.
// An empty string means the page has no native label. Implemented by the
// textlayer package.
type LabelReader interface {
	PageLabels(path string) ([]string, error)
}

// FitzLoader opens PDF documents with MuPDF via go-fitz.
type FitzLoader struct {
	labels  LabelReader
	enhance bool
	logger  *zap.Logger
}

// NewFitzLoader creates a loader. labels may be nil, in which case every page
// gets a synthesized fallback label downstream.
func NewFitzLoader(labels LabelReader, enhance bool, logger *zap.Logger) *FitzLoader {
	return &FitzLoader{
		labels:  labels,
		enhance: enhance,
		logger:  logger,
	}
}

func (l *FitzLoader) Open(path string) (Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrUnreadable, path, err)
	}

	var labels []string
	if l.labels != nil {
		labels, err = l.labels.PageLabels(path)
		if err != nil {
			// Labels are cosmetic; synthesized fallbacks cover every page.
			l.logger.Warn("Failed to read native page labels",
				zap.String("file", path),
				zap.Error(err))
			labels = nil
		}
	}

	return &fitzDocument{
		doc:     doc,
		labels:  labels,
		enhance: l.enhance,
	}, nil
}

type fitzDocument struct {
	doc     *fitz.Document
	labels  []string
	enhance bool
}

func (d *fitzDocument) NumPages() int {
	return d.doc.NumPage()
}

func (d *fitzDocument) Page(i int) (Page, error) {
	if i < 0 || i >= d.doc.NumPage() {
		return Page{}, fmt.Errorf("page index %d out of range", i)
	}
	bounds, err := d.doc.Bound(i)
	if err != nil {
		return Page{}, fmt.Errorf("page %d bounds: %w", i+1, err)
	}
	var label string
	if i < len(d.labels) {
		label = d.labels[i]
	}
	return Page{Index: i, Label: label, Bounds: bounds}, nil
}

func (d *fitzDocument) Rasterize(i int, scale float64) (Bitmap, error) {
	if scale <= 0 {
		return Bitmap{}, fmt.Errorf("%w: non-positive scale %v", ErrRasterize, scale)
	}
	bounds, err := d.doc.Bound(i)
	if err != nil {
		return Bitmap{}, fmt.Errorf("%w: page %d bounds: %v", ErrRasterize, i+1, err)
	}

	dpi := RenderDPI(scale)
	img, err := d.doc.ImageDPI(i, dpi)
	if err != nil {
		return Bitmap{}, fmt.Errorf("%w: page %d at %.0f dpi: %v", ErrRasterize, i+1, dpi, err)
	}

	var src image.Image = img
	if d.enhance {
		src = Enhance(img)
	}

	var buf bytes.Buffer
	encoder := png.Encoder{CompressionLevel: png.NoCompression}
	if err := encoder.Encode(&buf, src); err != nil {
		return Bitmap{}, fmt.Errorf("%w: page %d png encode: %v", ErrRasterize, i+1, err)
	}

	return Bitmap{PNG: buf.Bytes(), Bounds: bounds, DPI: int(dpi)}, nil
}

func (d *fitzDocument) Close() error {
	return d.doc.Close()
}
