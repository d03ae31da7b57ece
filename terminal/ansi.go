// @lixen: #focus{sys[term,ansi]}
package terminal

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	csiReset = []byte("\x1b[0m")
	csiClear = []byte("\x1b[2J\x1b[H")
	csiHome  = []byte("\x1b[H")
	csiRIS   = []byte("\x1bc") // Reset to Initial State (emergency)

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	// Screen modes
	csiAltScreenExit = []byte("\x1b[?1049l")
	csiAutoWrapOn    = []byte("\x1b[?7h")

	// Color prefixes
	csiFg256 = []byte("\x1b[38;5;") // followed by N m
	csiFgRGB = []byte("\x1b[38;2;") // followed by R;G;B m
)

// Exported copies for callers that write whole sequences
var (
	SeqReset      = string(csiReset)
	SeqClear      = string(csiClear)
	SeqHome       = string(csiHome)
	SeqCursorHide = string(csiCursorHide)
	SeqCursorShow = string(csiCursorShow)
)

// appendInt appends a non-negative integer without allocation
// Optimized for color channel values (0-255)
func appendInt(b []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		return append(b, byte(n)+'0')
	}
	if n < 100 {
		return append(b, byte(n/10)+'0', byte(n%10)+'0')
	}
	if n < 1000 {
		return append(b, byte(n/100)+'0', byte(n/10%10)+'0', byte(n%10)+'0')
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	return append(b, buf[i:]...)
}

// AppendFg appends the SGR foreground sequence for c in the given mode
func AppendFg(b []byte, c RGB, mode ColorMode) []byte {
	if mode == ColorMode256 {
		b = append(b, csiFg256...)
		b = appendInt(b, int(RGBTo256(c)))
		return append(b, 'm')
	}
	b = append(b, csiFgRGB...)
	b = appendInt(b, int(c.R))
	b = append(b, ';')
	b = appendInt(b, int(c.G))
	b = append(b, ';')
	b = appendInt(b, int(c.B))
	return append(b, 'm')
}

// AppendColored appends glyph wrapped in a foreground color and a reset
func AppendColored(b []byte, glyph byte, c RGB, mode ColorMode) []byte {
	b = AppendFg(b, c, mode)
	b = append(b, glyph)
	return append(b, csiReset...)
}
