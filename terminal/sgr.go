// @lixen: #focus{sys[term,ansi]}
package terminal

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Cell is one visible glyph of a parsed row
type Cell struct {
	Rune    rune
	Fg      RGB
	Colored bool // Fg is set; otherwise the display default applies
}

// ParseSGRRow splits a row into cells, applying the SGR foreground sequences
// emitted by AppendFg and resets. Unsupported SGR parameters are ignored,
// other escape sequences are rejected.
func ParseSGRRow(row string) ([]Cell, error) {
	cells := make([]Cell, 0, len(row))
	var fg RGB
	colored := false

	for i := 0; i < len(row); {
		if row[i] != 0x1b {
			r, size := utf8.DecodeRuneInString(row[i:])
			cells = append(cells, Cell{Rune: r, Fg: fg, Colored: colored})
			i += size
			continue
		}

		if i+1 >= len(row) || row[i+1] != '[' {
			return nil, fmt.Errorf("offset %d: bare escape", i)
		}
		end := strings.IndexByte(row[i+2:], 'm')
		if end < 0 {
			return nil, fmt.Errorf("offset %d: unterminated or non-SGR sequence", i)
		}
		params := row[i+2 : i+2+end]
		i += 2 + end + 1

		var err error
		fg, colored, err = applySGR(params, fg, colored)
		if err != nil {
			return nil, err
		}
	}
	return cells, nil
}

func applySGR(params string, fg RGB, colored bool) (RGB, bool, error) {
	if params == "" {
		return RGB{}, false, nil
	}
	fields := strings.Split(params, ";")
	for k := 0; k < len(fields); k++ {
		n, err := strconv.Atoi(fields[k])
		if err != nil {
			return fg, colored, fmt.Errorf("sgr %q: %w", params, err)
		}
		switch n {
		case 0:
			fg, colored = RGB{}, false
		case 39:
			colored = false
		case 38:
			if k+2 < len(fields) && fields[k+1] == "5" {
				idx, err := parseChannel(fields[k+2])
				if err != nil {
					return fg, colored, fmt.Errorf("sgr %q: %w", params, err)
				}
				fg, colored = PaletteRGB(idx), true
				k += 2
				continue
			}
			if k+4 < len(fields) && fields[k+1] == "2" {
				var ch [3]uint8
				for j := range ch {
					ch[j], err = parseChannel(fields[k+2+j])
					if err != nil {
						return fg, colored, fmt.Errorf("sgr %q: %w", params, err)
					}
				}
				fg, colored = RGB{ch[0], ch[1], ch[2]}, true
				k += 4
				continue
			}
			return fg, colored, fmt.Errorf("sgr %q: incomplete extended color", params)
		}
	}
	return fg, colored, nil
}

func parseChannel(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}
