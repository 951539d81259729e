package textlayer

// Extractor reads what a PDF already carries without rasterization: the
// embedded text layer and the document's native page labels.
type Extractor interface {
	// PageTexts returns the embedded text of every page in order. Entries
	// are empty for pages without a text layer.
	PageTexts(path string) ([]string, error)

	// PageLabels returns the native label of every page in order, or nil
	// when the document defines no page labels.
	PageLabels(path string) ([]string, error)
}

// Client wraps the Extractor interface for easy swapping of implementations.
type Client struct {
	extractor Extractor
}

// NewClient creates a new text layer client with the given extractor implementation.
func NewClient(extractor Extractor) *Client {
	return &Client{
		extractor: extractor,
	}
}

// PageTexts extracts the embedded text layer of every page.
func (c *Client) PageTexts(path string) ([]string, error) {
	return c.extractor.PageTexts(path)
}

// PageLabels reads the document's native page labels.
func (c *Client) PageLabels(path string) ([]string, error) {
	return c.extractor.PageLabels(path)
}
