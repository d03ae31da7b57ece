// @lixen: #focus{sys[store]}
// Package framestore buffers rasterized frames between rendering and encoding.
//
// Frames are keyed by a strictly increasing sequence number starting at 1.
// Two strategies are provided: a disk store that bounds memory on long videos,
// and a memory store for short clips.
package framestore

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

var (
	ErrOutOfOrder = errors.New("sequence number is not the next in order")
	ErrNotFound   = errors.New("frame not stored")
	ErrClosed     = errors.New("store is closed")
)

// Store holds sequenced frames until they are encoded
type Store interface {
	// Put stores img under seq, which must be Len()+1
	Put(seq int, img image.Image) error
	// Get returns the frame stored under seq
	Get(seq int) (image.Image, error)
	// Len returns the number of stored frames
	Len() int
	// Close releases all stored frames; it never fails
	Close()
}

// Kind names a store strategy
type Kind string

const (
	KindDisk   Kind = "disk"
	KindMemory Kind = "memory"
)

// ParseKind resolves a strategy name; empty selects disk
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindDisk, nil
	case KindDisk, KindMemory:
		return k, nil
	default:
		return "", fmt.Errorf("unknown frame store %q (use disk or memory)", s)
	}
}

// New creates a store of the given kind; dir is the parent for disk stores ("" = OS temp)
func New(kind Kind, dir string) (Store, error) {
	switch kind {
	case KindDisk, "":
		return NewDisk(dir)
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown frame store %q (use disk or memory)", kind)
	}
}

func checkSeq(seq, stored int) error {
	if seq != stored+1 {
		return fmt.Errorf("%w: got %d, want %d", ErrOutOfOrder, seq, stored+1)
	}
	return nil
}
