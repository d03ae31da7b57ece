package framestore

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// FileName returns the zero-padded file name of a sequence number
// Padding keeps lexical and numeric order aligned
func FileName(seq int) string {
	return fmt.Sprintf("frame_%05d.png", seq)
}

// Disk stores frames as PNG files in a private temporary directory
type Disk struct {
	dir     string
	count   int
	encoder png.Encoder
	once    sync.Once
	closed  bool
}

// NewDisk creates the temporary directory under parent ("" = OS temp)
func NewDisk(parent string) (*Disk, error) {
	dir, err := os.MkdirTemp(parent, "vidascii-*")
	if err != nil {
		return nil, fmt.Errorf("create frame store: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"dir": dir,
	}).Debug("Disk frame store created")
	return &Disk{dir: dir, encoder: png.Encoder{CompressionLevel: png.BestSpeed}}, nil
}

// Dir returns the backing directory
func (d *Disk) Dir() string { return d.dir }

func (d *Disk) Put(seq int, img image.Image) error {
	if d.closed {
		return ErrClosed
	}
	if err := checkSeq(seq, d.count); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(d.dir, FileName(seq)))
	if err != nil {
		return fmt.Errorf("store frame %d: %w", seq, err)
	}
	w := bufio.NewWriter(f)
	if err := d.encoder.Encode(w, img); err != nil {
		f.Close()
		return fmt.Errorf("encode frame %d: %w", seq, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write frame %d: %w", seq, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close frame %d: %w", seq, err)
	}

	d.count = seq
	return nil
}

func (d *Disk) Get(seq int) (image.Image, error) {
	if d.closed {
		return nil, ErrClosed
	}
	if seq < 1 || seq > d.count {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, seq)
	}

	f, err := os.Open(filepath.Join(d.dir, FileName(seq)))
	if err != nil {
		return nil, fmt.Errorf("open frame %d: %w", seq, err)
	}
	defer f.Close()

	img, err := png.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode frame %d: %w", seq, err)
	}
	return img, nil
}

func (d *Disk) Len() int { return d.count }

// Close removes the directory; failures are logged and swallowed
func (d *Disk) Close() {
	d.once.Do(func() {
		d.closed = true
		if err := os.RemoveAll(d.dir); err != nil {
			logrus.WithFields(logrus.Fields{
				"dir":   d.dir,
				"error": err,
			}).Debug("Frame store cleanup failed")
		}
	})
}
