// @lixen: #focus{flow[sink,video]}
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lixenwraith/vidascii/config"
	"github.com/lixenwraith/vidascii/framestore"
	"github.com/lixenwraith/vidascii/glyph"
	"github.com/lixenwraith/vidascii/render"
	"github.com/sirupsen/logrus"
)

// Converter renders every frame to a bitmap, buffers the bitmaps in a
// framestore, then encodes them in sequence order into the output file
type Converter struct {
	cfg        config.Config
	src        Source
	newWriter  WriterFactory
	rasterizer *render.Rasterizer
	progress   io.Writer
	life       lifecycle
}

// NewConverter resolves the font chain; src is owned by the converter from here on
func NewConverter(cfg config.Config, src Source, newWriter WriterFactory, chain []render.FontSource) (*Converter, error) {
	opts, err := cfg.RasterOptions()
	if err != nil {
		return nil, err
	}
	r, err := render.NewRasterizer(opts, chain)
	if err != nil {
		return nil, fmt.Errorf("rasterizer: %w", err)
	}
	return &Converter{
		cfg:        cfg,
		src:        src,
		newWriter:  newWriter,
		rasterizer: r,
		life:       lifecycle{sink: "video"},
	}, nil
}

// SetProgressOutput enables the progress bar on w
func (c *Converter) SetProgressOutput(w io.Writer) { c.progress = w }

// State returns the current lifecycle state
func (c *Converter) State() State { return c.life.state }

// Run converts the whole source; the source and the frame store are always released
func (c *Converter) Run(ctx context.Context) (res Result, err error) {
	c.life.to(StateOpened)
	defer c.life.to(StateClosed)
	defer c.src.Close()

	kind, err := c.cfg.StoreKind()
	if err != nil {
		return res, err
	}
	store, err := framestore.New(kind, c.cfg.TempDir)
	if err != nil {
		return res, fmt.Errorf("frame store: %w", err)
	}
	defer store.Close()

	log := logrus.WithFields(c.cfg.Fields())
	log.WithField("font", c.rasterizer.FontName()).Info("Converting")

	res, err = c.render(ctx, store)
	if err != nil {
		return res, err
	}
	if store.Len() == 0 {
		if res.ReadErr != nil {
			return res, fmt.Errorf("%w: %v", ErrNoFrames, res.ReadErr)
		}
		return res, ErrNoFrames
	}

	c.life.to(StateFinalizing)
	if err := c.encode(ctx, store, &res); err != nil {
		return res, err
	}

	log.WithFields(logrus.Fields{
		"frames": res.Frames,
		"fps":    res.FPS,
		"size":   fmt.Sprintf("%dx%d", res.Width, res.Height),
	}).Info("Conversion complete")
	return res, nil
}

// render maps and rasterizes frames into store until the source ends
func (c *Converter) render(ctx context.Context, store framestore.Store) (Result, error) {
	var res Result
	bar := newProgress(c.progress, c.src.FrameCount(), "rendering")

	for seq := 1; ; seq++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		f, err := c.src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if c.cfg.Strict {
				return res, fmt.Errorf("frame %d: %w", seq, err)
			}
			logrus.WithError(err).WithField("frame", seq).Warn("Read failed, stopping early")
			res.ReadErr = err
			break
		}
		c.life.to(StateProcessing)

		tf, err := renderPlain(f, c.cfg.Width, c.cfg.Contrast, glyph.Dense)
		if err != nil {
			return res, fmt.Errorf("frame %d: %w", seq, err)
		}
		if err := store.Put(seq, c.rasterizer.Rasterize(tf)); err != nil {
			return res, fmt.Errorf("store frame %d: %w", seq, err)
		}
		res.Frames++
		bar.Add(1)
	}
	bar.Finish()
	return res, nil
}

// encode writes stored bitmaps in order; a failed output file is removed
func (c *Converter) encode(ctx context.Context, store framestore.Store, res *Result) (err error) {
	first, err := store.Get(1)
	if err != nil {
		return err
	}
	b := first.Bounds()
	res.Width, res.Height = b.Dx(), b.Dy()

	res.FPS = c.cfg.FPS
	if res.FPS <= 0 {
		res.FPS = c.src.FPS()
	}
	if res.FPS <= 0 {
		logrus.WithField("fps", DefaultFPS).Warn("Source frame rate unknown, using default")
		res.FPS = DefaultFPS
	}

	w, err := c.newWriter(c.cfg.Output, c.cfg.Codec, res.FPS, res.Width, res.Height)
	if err != nil {
		return fmt.Errorf("open writer: %w", err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("finalize output: %w", cerr)
		}
		if err != nil {
			c.removeOutput()
		}
	}()

	bar := newProgress(c.progress, store.Len(), "encoding")
	for seq := 1; seq <= store.Len(); seq++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := store.Get(seq)
		if err != nil {
			return err
		}
		if err := w.WriteFrame(img); err != nil {
			return fmt.Errorf("write frame %d: %w", seq, err)
		}
		bar.Add(1)
	}
	bar.Finish()
	return nil
}

func (c *Converter) removeOutput() {
	if err := os.Remove(c.cfg.Output); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).WithField("output", c.cfg.Output).Debug("Partial output not removed")
	}
}
