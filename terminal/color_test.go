package terminal

import "testing"

func TestRGBTo256(t *testing.T) {
	tests := []struct {
		c    RGB
		want uint8
	}{
		{RGB{0, 0, 0}, 16},
		{RGB{255, 255, 255}, 231},
		{RGB{255, 0, 0}, 196},
		{RGB{0, 255, 0}, 46},
		{RGB{0, 0, 255}, 21},
		{RGB{128, 128, 128}, 244},
	}
	for _, tt := range tests {
		if got := RGBTo256(tt.c); got != tt.want {
			t.Errorf("RGBTo256(%v) = %d, want %d", tt.c, got, tt.want)
		}
	}
}

func TestPaletteRGBRoundTrip(t *testing.T) {
	// Every cube entry must map back to itself
	for idx := 16; idx < grayscaleStart; idx++ {
		c := PaletteRGB(uint8(idx))
		if got := RGBTo256(c); got != uint8(idx) {
			t.Errorf("cube index %d: RGB %v maps to %d", idx, c, got)
		}
	}
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{"truecolor", ColorModeTrueColor, false},
		{"24bit", ColorModeTrueColor, false},
		{"", ColorModeTrueColor, false},
		{"256", ColorMode256, false},
		{"16", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseColorMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColorMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColorMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	got, err := ParseHexColor("#ff8000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := (RGB{255, 128, 0}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	if got, err := ParseHexColor("fff"); err != nil || got != RGBWhite {
		t.Errorf("short form: got %v, %v", got, err)
	}

	if _, err := ParseHexColor("#zzzzzz"); err == nil {
		t.Error("expected error for invalid hex")
	}
}

func TestDetectColorMode(t *testing.T) {
	for _, k := range []string{"KITTY_WINDOW_ID", "KONSOLE_VERSION", "ITERM_SESSION_ID", "ALACRITTY_WINDOW_ID", "WEZTERM_PANE"} {
		t.Setenv(k, "")
	}

	t.Setenv("COLORTERM", "truecolor")
	t.Setenv("TERM", "xterm")
	if got := DetectColorMode(); got != ColorModeTrueColor {
		t.Errorf("COLORTERM=truecolor: got %v", got)
	}

	t.Setenv("COLORTERM", "")
	if got := DetectColorMode(); got != ColorMode256 {
		t.Errorf("plain xterm: got %v", got)
	}

	t.Setenv("TERM", "xterm-direct")
	if got := DetectColorMode(); got != ColorModeTrueColor {
		t.Errorf("TERM=xterm-direct: got %v", got)
	}
}
