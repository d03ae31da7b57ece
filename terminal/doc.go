// @lixen: #focus{sys[term]}
// Package terminal provides the ANSI vocabulary shared by the glyph mapper and
// the playback displays.
//
// Features:
//   - True color (24-bit) and 256-color palette SGR emission
//   - Parsing of the SGR subset emitted by this package back into cells
//   - Color capability detection from the environment
//   - Emergency terminal restoration after a crash
//
// Sequences are emitted directly; terminfo/termcap are not consulted.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
