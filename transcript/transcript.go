// Package transcript accumulates per-page recognized text into a single
// ordered collection and persists it as one human-readable artifact.
package transcript

// Entry is one page's contribution: its label and the recognized text, which
// may be empty when the page had no detectable text or failed to rasterize.
type Entry struct {
	Label string
	Text  string
}

// Transcript is a label-to-text mapping ordered by page position. Only the
// pipeline's aggregation step mutates it; once persisted it is discarded.
type Transcript struct {
	entries []Entry
	index   map[string]int
}

func New() *Transcript {
	return &Transcript{index: make(map[string]int)}
}

// Add inserts the pair in traversal order. A colliding label overwrites the
// earlier entry's text in place; labels are not deduplicated.
func (t *Transcript) Add(label, text string) {
	if i, ok := t.index[label]; ok {
		t.entries[i].Text = text
		return
	}
	t.index[label] = len(t.entries)
	t.entries = append(t.entries, Entry{Label: label, Text: text})
}

func (t *Transcript) Len() int {
	return len(t.entries)
}

// Entries returns the accumulated pairs in insertion order.
func (t *Transcript) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Text returns the recognized text for a label and whether the label exists.
func (t *Transcript) Text(label string) (string, bool) {
	i, ok := t.index[label]
	if !ok {
		return "", false
	}
	return t.entries[i].Text, true
}
