package textlayer

import (
	"sort"
	"strconv"
	"strings"
)

// labelRange is one entry of the /PageLabels number tree: a numbering style
// that applies from page index start until the next range begins.
type labelRange struct {
	start  int    // zero-based index of the first page in the range
	style  string // D, R, r, A or a; empty means prefix-only labels
	prefix string
	first  int // label number of the first page in the range
}

// buildLabels expands label ranges into one label per page. Pages before the
// first range keep an empty label so callers synthesize a fallback.
func buildLabels(ranges []labelRange, pages int) []string {
	sorted := append([]labelRange(nil), ranges...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	labels := make([]string, pages)
	for ri, lr := range sorted {
		end := pages
		if ri+1 < len(sorted) && sorted[ri+1].start < end {
			end = sorted[ri+1].start
		}
		for p := lr.start; p < end && p >= 0; p++ {
			labels[p] = formatLabel(lr, p-lr.start)
		}
	}
	return labels
}

func formatLabel(lr labelRange, offset int) string {
	n := lr.first + offset
	var num string
	switch lr.style {
	case "D":
		num = strconv.Itoa(n)
	case "R":
		num = roman(n)
	case "r":
		num = strings.ToLower(roman(n))
	case "A":
		num = letters(n)
	case "a":
		num = strings.ToLower(letters(n))
	}
	return lr.prefix + num
}

var romanValues = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func roman(n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			b.WriteString(rv.symbol)
			n -= rv.value
		}
	}
	return b.String()
}

// letters renders the PDF alphabetic style: A..Z for 1..26, then AA..ZZ,
// AAA and so on.
func letters(n int) string {
	if n <= 0 {
		return ""
	}
	repeat := (n-1)/26 + 1
	ch := byte('A' + (n-1)%26)
	return strings.Repeat(string(ch), repeat)
}
