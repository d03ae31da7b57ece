package framestore

import (
	"fmt"
	"image"
)

// Memory keeps frames in a slice
type Memory struct {
	frames []image.Image
	closed bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Put(seq int, img image.Image) error {
	if m.closed {
		return ErrClosed
	}
	if err := checkSeq(seq, len(m.frames)); err != nil {
		return err
	}
	m.frames = append(m.frames, img)
	return nil
}

func (m *Memory) Get(seq int) (image.Image, error) {
	if m.closed {
		return nil, ErrClosed
	}
	if seq < 1 || seq > len(m.frames) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, seq)
	}
	return m.frames[seq-1], nil
}

func (m *Memory) Len() int { return len(m.frames) }

func (m *Memory) Close() {
	m.frames = nil
	m.closed = true
}
