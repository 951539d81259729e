package textlayer

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LedongthucExtractor implements Extractor using github.com/ledongthuc/pdf.
type LedongthucExtractor struct{}

// NewLedongthucExtractor creates a new instance of LedongthucExtractor.
func NewLedongthucExtractor() *LedongthucExtractor {
	return &LedongthucExtractor{}
}

// PageTexts extracts the embedded text layer of each page. Pages that fail to
// decode yield an empty entry rather than failing the document.
func (e *LedongthucExtractor) PageTexts(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	numPages := r.NumPage()
	fonts := make(map[string]*pdf.Font)
	texts := make([]string, numPages)

	for i := 1; i <= numPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}
		text, pageErr := p.GetPlainText(fonts)
		if pageErr != nil {
			continue
		}
		texts[i-1] = strings.TrimSpace(text)
	}
	return texts, nil
}

// PageLabels resolves the /PageLabels number tree from the document catalog.
// Returns nil when the document defines no labels.
func (e *LedongthucExtractor) PageLabels(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	tree := r.Trailer().Key("Root").Key("PageLabels")
	if tree.IsNull() {
		return nil, nil
	}

	var ranges []labelRange
	collectRanges(tree, &ranges)
	if len(ranges) == 0 {
		return nil, nil
	}
	return buildLabels(ranges, r.NumPage()), nil
}

func collectRanges(node pdf.Value, out *[]labelRange) {
	kids := node.Key("Kids")
	for i := 0; i < kids.Len(); i++ {
		collectRanges(kids.Index(i), out)
	}

	nums := node.Key("Nums")
	for i := 0; i+1 < nums.Len(); i += 2 {
		if nums.Index(i).Kind() != pdf.Integer {
			continue
		}
		dict := nums.Index(i + 1)
		lr := labelRange{
			start: int(nums.Index(i).Int64()),
			first: 1,
		}
		if s := dict.Key("S"); s.Kind() == pdf.Name {
			lr.style = s.Name()
		}
		if p := dict.Key("P"); p.Kind() == pdf.String {
			lr.prefix = p.RawString()
		}
		if st := dict.Key("St"); st.Kind() == pdf.Integer {
			lr.first = int(st.Int64())
		}
		*out = append(*out, lr)
	}
}
