// @lixen: #focus{render[font]}
package render

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// ErrNoFont is returned when every candidate of a font chain failed
var ErrNoFont = errors.New("no usable font in chain")

// FontSource is one font-resolution strategy of a fallback chain
type FontSource interface {
	Name() string
	Face(size int) (font.Face, error)
}

// fileFont loads a TrueType file from an explicit path
type fileFont struct {
	path string
}

// FileFont resolves a TrueType font file by path
func FileFont(path string) FontSource {
	return fileFont{path: path}
}

func (f fileFont) Name() string { return f.path }

func (f fileFont) Face(size int) (font.Face, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// systemFont searches the platform font directories for a file name
type systemFont struct {
	names []string
	dirs  []string
}

// SystemFont resolves the first of names found under the platform font directories
func SystemFont(names ...string) FontSource {
	return systemFont{names: names, dirs: fontDirs()}
}

func (s systemFont) Name() string { return strings.Join(s.names, ",") }

func (s systemFont) Face(size int) (font.Face, error) {
	for _, name := range s.names {
		if path, ok := findFontFile(s.dirs, name); ok {
			return fileFont{path: path}.Face(size)
		}
	}
	return nil, fmt.Errorf("%s: %w", s.Name(), fs.ErrNotExist)
}

// findFontFile walks dirs for a case-insensitive base name match
func findFontFile(dirs []string, name string) (string, bool) {
	var found string
	for _, dir := range dirs {
		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable subtrees are skipped
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if !d.IsDir() && strings.EqualFold(d.Name(), name) {
				found = path
				return fs.SkipAll
			}
			return nil
		})
		if found != "" {
			return found, true
		}
	}
	return "", false
}

func fontDirs() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		return []string{filepath.Join(os.Getenv("WINDIR"), "Fonts")}
	case "darwin":
		return []string{"/System/Library/Fonts", "/Library/Fonts", filepath.Join(home, "Library", "Fonts")}
	default:
		return []string{
			"/usr/share/fonts",
			"/usr/local/share/fonts",
			filepath.Join(home, ".fonts"),
			filepath.Join(home, ".local", "share", "fonts"),
		}
	}
}

// builtinFont is the guaranteed-available 7x13 bitmap face
type builtinFont struct{}

// Builtin returns the terminal fallback that never fails; the size is fixed at 13px
func Builtin() FontSource {
	return builtinFont{}
}

func (builtinFont) Name() string { return "builtin" }

func (builtinFont) Face(int) (font.Face, error) {
	return basicfont.Face7x13, nil
}

// DefaultChain tries preferred files, then common monospace/CJK system fonts, then the builtin face
func DefaultChain(preferred ...string) []FontSource {
	chain := make([]FontSource, 0, len(preferred)+2)
	for _, p := range preferred {
		chain = append(chain, FileFont(p))
	}
	return append(chain,
		SystemFont("DejaVuSansMono.ttf", "simhei.ttf", "Arial Unicode.ttf"),
		Builtin(),
	)
}

// ResolveFont evaluates the chain in order and returns the first face that loads
func ResolveFont(chain []FontSource, size int) (font.Face, string, error) {
	for _, src := range chain {
		face, err := src.Face(size)
		if err == nil {
			return face, src.Name(), nil
		}
		logrus.WithFields(logrus.Fields{
			"font":  src.Name(),
			"error": err,
		}).Debug("Font candidate unavailable, trying next")
	}
	return nil, "", ErrNoFont
}
