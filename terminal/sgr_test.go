package terminal

import "testing"

func TestParseSGRRow_Plain(t *testing.T) {
	cells, err := ParseSGRRow("@#. ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 4 {
		t.Fatalf("got %d cells, want 4", len(cells))
	}
	for i, c := range cells {
		if c.Colored {
			t.Errorf("cell %d unexpectedly colored", i)
		}
	}
	if cells[1].Rune != '#' {
		t.Errorf("cell 1 rune = %q, want '#'", cells[1].Rune)
	}
}

func TestParseSGRRow_RoundTrip(t *testing.T) {
	var row []byte
	colors := []RGB{{1, 2, 3}, {255, 255, 255}, {90, 0, 200}}
	for _, c := range colors {
		row = AppendColored(row, 'x', c, ColorModeTrueColor)
	}

	cells, err := ParseSGRRow(string(row))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != len(colors) {
		t.Fatalf("got %d cells, want %d", len(cells), len(colors))
	}
	for i, c := range cells {
		if !c.Colored || c.Fg != colors[i] || c.Rune != 'x' {
			t.Errorf("cell %d = %+v, want fg %v", i, c, colors[i])
		}
	}
}

func TestParseSGRRow_Palette(t *testing.T) {
	row := AppendColored(nil, 'o', RGB{255, 0, 0}, ColorMode256)
	cells, err := ParseSGRRow(string(row))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 1 || cells[0].Fg != (RGB{255, 0, 0}) {
		t.Errorf("got %+v", cells)
	}
}

func TestParseSGRRow_Malformed(t *testing.T) {
	for _, row := range []string{
		"\x1b",
		"\x1b[38;2;1;2",
		"\x1b[38;2;1;2m",
		"\x1b[38;2;1;2;300mx",
		"\x1b]0;title\x07",
	} {
		if _, err := ParseSGRRow(row); err == nil {
			t.Errorf("ParseSGRRow(%q): expected error", row)
		}
	}
}
