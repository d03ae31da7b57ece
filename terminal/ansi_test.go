package terminal

import (
	"strconv"
	"testing"
)

func TestAppendInt(t *testing.T) {
	for _, n := range []int{0, 7, 10, 99, 100, 255, 999, 1000, 123456} {
		got := string(appendInt(nil, n))
		if want := strconv.Itoa(n); got != want {
			t.Errorf("appendInt(%d) = %q, want %q", n, got, want)
		}
	}
	if got := string(appendInt(nil, -4)); got != "0" {
		t.Errorf("negative input: got %q, want %q", got, "0")
	}
}

func TestAppendColored(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		mode ColorMode
		want string
	}{
		{"truecolor", RGB{12, 200, 7}, ColorModeTrueColor, "\x1b[38;2;12;200;7m#\x1b[0m"},
		{"palette white", RGBWhite, ColorMode256, "\x1b[38;5;231m#\x1b[0m"},
		{"palette black", RGBBlack, ColorMode256, "\x1b[38;5;16m#\x1b[0m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(AppendColored(nil, '#', tt.c, tt.mode))
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
