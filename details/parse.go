// Package details turns the loosely structured "details" text of a step into
// typed blocks.
//
// The generator is asked to write outlines like
//
//	--- Where to find the SDK path ---
//	1. Open Android Studio.
//	   a. Go to More Actions -> SDK Manager.
//
// but it frequently runs everything together on one line, so item markers are
// first moved onto their own lines before lines are classified.
package details

import (
	"iter"
	"regexp"
	"slices"
	"strings"
)

type Kind int

const (
	Paragraph Kind = iota
	Header
	LetteredItem
	NumberedItem
)

func (k Kind) String() string {
	switch k {
	case Header:
		return "header"
	case LetteredItem:
		return "lettered"
	case NumberedItem:
		return "numbered"
	default:
		return "paragraph"
	}
}

// Block is one renderable line. Marker is the item letter or number and is
// empty for headers and paragraphs.
type Block struct {
	Kind   Kind
	Marker string
	Text   string
}

const headerMarker = "---"

var headerRe = regexp.MustCompile(headerMarker + `.*?` + headerMarker)

// Parse returns all blocks of s. An empty or blank s yields no blocks.
func Parse(s string) []Block {
	return slices.Collect(Blocks(s))
}

// Blocks yields the blocks of s in input order.
func Blocks(s string) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		for _, line := range strings.Split(normalize(s), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !yield(classify(line)) {
				return
			}
		}
	}
}

// normalize puts every header and item marker on its own line.
// Headers are cut out first so markers inside them are left alone.
func normalize(s string) string {
	var b strings.Builder
	last := 0
	for _, loc := range headerRe.FindAllStringIndex(s, -1) {
		b.WriteString(breakItems(s[last:loc[0]]))
		b.WriteByte('\n')
		b.WriteString(s[loc[0]:loc[1]])
		b.WriteByte('\n')
		last = loc[1]
	}
	b.WriteString(breakItems(s[last:]))
	return b.String()
}

// breakItems inserts a line break before each item marker. A marker may be
// glued to the text before it ("steps:1.", "Studio.2.", "window:a.") but
// never to a letter or digit, so "e.g.", "v1.2" and "file.txt" stay intact.
func breakItems(s string) string {
	out := make([]byte, 0, len(s)+8)
	for i := 0; i < len(s); i++ {
		if i > 0 && canPrecede(s, i) && markerLen(s[i:]) > 0 {
			out = trimTrailingBlanks(out)
			out = append(out, '\n')
		}
		out = append(out, s[i])
	}
	return string(out)
}

// canPrecede reports whether s[i-1] may come right before a marker at s[i].
func canPrecede(s string, i int) bool {
	prev := s[i-1]
	switch {
	case isSpace(prev):
		return true
	case prev == ':' || prev == ';' || prev == ')':
		return true
	case prev == '.':
		// only numbered items follow a full stop, and not inside "18.2."
		return isDigit(s[i]) && (i < 2 || !isDigit(s[i-2]))
	}
	return false
}

// markerLen returns the length of the item marker at the start of s
// ("a." or "12."), or 0. A marker must be followed by whitespace or the end
// of the text, which keeps "e.g." or "2.5" intact.
func markerLen(s string) int {
	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	if n == 0 {
		if len(s) < 2 || !isLower(s[0]) {
			return 0
		}
		n = 1
	}
	if n >= len(s) || s[n] != '.' {
		return 0
	}
	n++
	if n < len(s) && !isSpace(s[n]) {
		return 0
	}
	return n
}

func classify(line string) Block {
	if len(line) >= 2*len(headerMarker) &&
		strings.HasPrefix(line, headerMarker) &&
		strings.HasSuffix(line, headerMarker) {
		text := strings.TrimSuffix(strings.TrimPrefix(line, headerMarker), headerMarker)
		return Block{Kind: Header, Text: strings.TrimSpace(text)}
	}

	n := markerLen(line)
	if n == 0 || n == len(line) {
		return Block{Kind: Paragraph, Text: line}
	}
	marker := line[:n-1]
	text := strings.TrimSpace(line[n:])
	if isLower(marker[0]) {
		return Block{Kind: LetteredItem, Marker: marker, Text: text}
	}
	return Block{Kind: NumberedItem, Marker: marker, Text: text}
}

func trimTrailingBlanks(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}
	return b
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
func isLower(c byte) bool { return 'a' <= c && c <= 'z' }
