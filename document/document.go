package document

import (
	"errors"
	"fmt"
	"image"
)

// NativeDPI is the resolution go-fitz renders at when no scaling is applied.
// The pipeline's render scale multiplies this value, so a scale of 0.5 yields
// a 150 DPI raster.
const NativeDPI = 300

var (
	// ErrUnreadable means the source could not be opened as a valid
	// multi-page document. A run cannot proceed past this.
	ErrUnreadable = errors.New("document unreadable")

	// ErrRasterize means a single page could not be rendered. The page is
	// recorded with empty text and traversal continues.
	ErrRasterize = errors.New("page rasterization failed")
)

// Page is a read-only view of one page of an open document. Label carries the
// document's native page label and is empty when the document does not define
// one; callers fall back to FallbackLabel.
type Page struct {
	Index  int
	Label  string
	Bounds image.Rectangle
}

// Bitmap is the rasterized rendering of exactly one page. Bounds are the
// logical page bounds, not the raster grid, so positional results can be
// mapped back to page coordinates if ever needed.
type Bitmap struct {
	PNG    []byte
	Bounds image.Rectangle
	DPI    int
}

// Document exposes ordered page access over an open source. Page indices are
// zero-based and follow the source's native ordering.
type Document interface {
	NumPages() int
	Page(i int) (Page, error)
	Rasterize(i int, scale float64) (Bitmap, error)
	Close() error
}

// Loader opens a source location as a Document.
type Loader interface {
	Open(path string) (Document, error)
}

// FallbackLabel synthesizes a label for a page without a native one, using
// the page's 1-based position.
func FallbackLabel(index int) string {
	return fmt.Sprintf("Page %d", index+1)
}

// RenderDPI converts the pipeline-wide render scale into a raster resolution.
func RenderDPI(scale float64) float64 {
	return scale * NativeDPI
}
