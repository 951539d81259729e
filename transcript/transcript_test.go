package transcript

import (
	"testing"
)

func TestAddPreservesInsertionOrder(t *testing.T) {
	tr := New()
	tr.Add("Cover", "front matter")
	tr.Add("Page 2", "")
	tr.Add("Appendix", "tables")

	entries := tr.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	wantLabels := []string{"Cover", "Page 2", "Appendix"}
	for i, want := range wantLabels {
		if entries[i].Label != want {
			t.Errorf("entry %d: expected label %q, got %q", i, want, entries[i].Label)
		}
	}
}

func TestAddCollisionOverwritesInPlace(t *testing.T) {
	tr := New()
	tr.Add("Intro", "first")
	tr.Add("Body", "middle")
	tr.Add("Intro", "second")

	if tr.Len() != 2 {
		t.Fatalf("expected 2 entries after collision, got %d", tr.Len())
	}

	entries := tr.Entries()
	if entries[0].Label != "Intro" || entries[0].Text != "second" {
		t.Errorf("expected colliding label to keep position with new text, got %+v", entries[0])
	}
	if entries[1].Label != "Body" {
		t.Errorf("expected Body to remain second, got %q", entries[1].Label)
	}

	text, ok := tr.Text("Intro")
	if !ok || text != "second" {
		t.Errorf("expected lookup to return overwritten text, got %q (found=%v)", text, ok)
	}
}

func TestRender(t *testing.T) {
	testCases := []struct {
		name    string
		entries []Entry
		want    string
	}{
		{
			name: "TwoPagesWithText",
			entries: []Entry{
				{Label: "Cover", Text: "hello\nworld"},
				{Label: "Page 2", Text: "more"},
			},
			want: "Cover\nhello\nworld\nPage 2\nmore\n",
		},
		{
			name: "EmptyBodyKeepsLabel",
			entries: []Entry{
				{Label: "Page 1", Text: ""},
			},
			want: "Page 1\n\n",
		},
		{
			name:    "EmptyTranscript",
			entries: nil,
			want:    "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tr := New()
			for _, e := range tc.entries {
				tr.Add(e.Label, e.Text)
			}
			if got := Render(tr); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
