// @lixen: #focus{render[text]}
package render

import (
	"io"
	"strings"
)

// TextFrame is one frame's character-art: ordered rows of Cols glyphs each
// Rows may carry color escapes, so byte length is not a glyph count
type TextFrame struct {
	rows []string
	cols int
}

// NewTextFrame assembles mapped rows into a frame buffer
func NewTextFrame(rows []string, cols int) TextFrame {
	return TextFrame{rows: rows, cols: cols}
}

func (t TextFrame) Rows() []string { return t.rows }

// Cols returns the glyph count of every row
func (t TextFrame) Cols() int { return t.cols }

// Height returns the row count
func (t TextFrame) Height() int { return len(t.rows) }

// String joins rows, each terminated by a newline
func (t TextFrame) String() string {
	var sb strings.Builder
	n := 0
	for _, r := range t.rows {
		n += len(r) + 1
	}
	sb.Grow(n)
	for _, r := range t.rows {
		sb.WriteString(r)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteTo writes the newline-terminated rows to w
func (t TextFrame) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, r := range t.rows {
		n, err := io.WriteString(w, r)
		total += int64(n)
		if err != nil {
			return total, err
		}
		n, err = io.WriteString(w, "\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
