// Package scan locates delimited blocks inside raw source text. It knows
// nothing about what the blocks mean; callers hand the extracted text to the
// doc comment parser or the binding extractor.
package scan

import "strings"

// Block is a span of source text between a pair of delimiters. Start and End
// are byte offsets of the inner content within the original text.
type Block struct {
	Text  string
	Start int
	End   int
}

// CommentBlocks returns every span delimited by open/close markers, in order
// of appearance. The markers do not nest, so the first close marker after an
// open marker terminates the block. Unterminated trailing blocks are dropped.
func CommentBlocks(src, open, close string) []Block {
	var blocks []Block
	pos := 0
	for {
		i := strings.Index(src[pos:], open)
		if i < 0 {
			return blocks
		}
		start := pos + i + len(open)
		j := strings.Index(src[start:], close)
		if j < 0 {
			return blocks
		}
		blocks = append(blocks, Block{
			Text:  src[start : start+j],
			Start: start,
			End:   start + j,
		})
		pos = start + j + len(close)
	}
}

// CallBlock scans src from start (just past an opening parenthesis) until the
// matching close, tracking nesting depth so parenthesized default values and
// nested calls do not terminate the scan early. It returns the inner content
// and the offset just past the closing parenthesis. Malformed input where the
// depth never returns to zero consumes the remainder of the text.
func CallBlock(src string, start int) (string, int) {
	depth := 1
	pos := start
	for pos < len(src) && depth > 0 {
		switch src[pos] {
		case '(':
			depth++
		case ')':
			depth--
		}
		pos++
	}
	if depth > 0 {
		return src[start:], len(src)
	}
	return src[start : pos-1], pos
}

// SplitArgs splits a parameter list on commas at template depth zero, so
// types like std::map<K, V> stay intact. Empty segments are dropped.
func SplitArgs(s string) []string {
	var args []string
	depth := 0
	var cur strings.Builder
	for _, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				if a := strings.TrimSpace(cur.String()); a != "" {
					args = append(args, a)
				}
				cur.Reset()
				continue
			}
		}
		cur.WriteRune(r)
	}
	if a := strings.TrimSpace(cur.String()); a != "" {
		args = append(args, a)
	}
	return args
}
