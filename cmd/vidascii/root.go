package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lixenwraith/vidascii/audio"
	"github.com/lixenwraith/vidascii/config"
	"github.com/lixenwraith/vidascii/display"
	"github.com/lixenwraith/vidascii/pipeline"
	"github.com/lixenwraith/vidascii/render"
	"github.com/lixenwraith/vidascii/video"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cfg, envErr := config.Load()
	if envErr != nil {
		cfg = config.Default()
	}

	cmd := &cobra.Command{
		Use:   "vidascii -i INPUT [-o OUTPUT]",
		Short: "Render video as character art",
		Long: "Render video frames as character art, either encoded into a new video file\n" +
			"(--output) or played in the terminal. Every flag can also be set through a\n" +
			config.EnvPrefix + "* environment variable, e.g. " + config.EnvPrefix + "WIDTH=120.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if envErr != nil {
				return envErr
			}
			return run(cmd.Context(), cfg, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVarP(&cfg.Input, "input", "i", cfg.Input, "input video path (required)")
	f.StringVarP(&cfg.Output, "output", "o", cfg.Output, "output video path; omit to play in the terminal")
	f.IntVarP(&cfg.Width, "width", "w", cfg.Width, "character columns")
	f.Float64Var(&cfg.FPS, "fps", cfg.FPS, "output frame rate (0 = source rate)")
	f.BoolVar(&cfg.Color, "color", cfg.Color, "colored terminal output")
	f.BoolVar(&cfg.Dense, "dense", cfg.Dense, "dense glyph ramp for terminal playback")
	f.IntVar(&cfg.FontSize, "font-size", cfg.FontSize, "rasterized glyph size in pixels")
	f.Float64Var(&cfg.CharSpacing, "char-spacing", cfg.CharSpacing, "horizontal cell width as a multiple of the font size")
	f.Float64Var(&cfg.Contrast, "contrast", cfg.Contrast, "contrast factor")
	f.StringVar(&cfg.ColorMode, "color-mode", cfg.ColorMode, "truecolor, 256 or auto")
	f.StringVar(&cfg.Codec, "codec", cfg.Codec, "output fourcc: mp4v, avc1 or mjpg")
	f.StringArrayVar(&cfg.Fonts, "font", cfg.Fonts, "preferred TrueType font file (repeatable)")
	f.StringVar(&cfg.Store, "store", cfg.Store, "temporary frame store: disk or memory")
	f.StringVar(&cfg.TempDir, "temp-dir", cfg.TempDir, "parent directory for the disk store")
	f.StringVar(&cfg.Foreground, "fg", cfg.Foreground, "rasterized glyph color")
	f.StringVar(&cfg.Background, "bg", cfg.Background, "rasterized background color")
	f.BoolVar(&cfg.Screen, "screen", cfg.Screen, "full-screen playback (q, Esc or Ctrl-C to stop)")
	f.BoolVar(&cfg.Audio, "audio", cfg.Audio, "play the soundtrack during terminal playback")
	f.IntVar(&cfg.Volume, "volume", cfg.Volume, "soundtrack volume 0..100")
	f.BoolVar(&cfg.Strict, "strict", cfg.Strict, "treat mid-stream read errors as fatal")
	f.BoolVar(&cfg.Debug, "debug", cfg.Debug, "write a debug log to logs/vidascii.log")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "stderr log level without --debug")

	return cmd
}

func run(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	if cfg.Input != "" {
		if _, err := os.Stat(cfg.Input); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("input file %q does not exist", cfg.Input)
			}
			return fmt.Errorf("input file %q: %w", cfg.Input, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logFile, err := config.SetupLogging(cfg.Debug, cfg.LogLevel)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}
	logrus.WithFields(cfg.Fields()).Debug("Configuration resolved")

	if cfg.VideoMode() {
		return convert(ctx, cfg, stdout, stderr)
	}
	return play(ctx, cfg, stdout, stderr)
}

func openWriter(path, codec string, fps float64, width, height int) (pipeline.FrameWriter, error) {
	w, err := video.NewWriter(path, codec, fps, width, height)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func convert(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	src, err := video.Open(ctx, cfg.Input)
	if err != nil {
		return err
	}

	conv, err := pipeline.NewConverter(cfg, src, openWriter, render.DefaultChain(cfg.Fonts...))
	if err != nil {
		src.Close()
		return err
	}
	conv.SetProgressOutput(stderr)

	res, err := conv.Run(ctx)
	if err != nil {
		return err
	}
	if res.ReadErr != nil {
		fmt.Fprintf(stderr, "warning: stopped after frame %d: %v\n", res.Frames, res.ReadErr)
	}
	fmt.Fprintf(stdout, "wrote %d frames to %s (%dx%d at %.2f fps)\n", res.Frames, cfg.Output, res.Width, res.Height, res.FPS)
	return nil
}

func play(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	src, err := video.Open(ctx, cfg.Input)
	if err != nil {
		return err
	}

	var disp pipeline.Display
	if cfg.Screen {
		s, err := display.NewScreen()
		if err != nil {
			src.Close()
			return err
		}
		disp = s
	} else {
		a := display.NewANSI(stdout)
		a.CheckWidth(cfg.Width)
		disp = a
	}

	player, err := pipeline.NewPlayer(cfg, src, disp)
	if err != nil {
		disp.Close()
		src.Close()
		return err
	}

	if cfg.Audio {
		if snd := openSoundtrack(ctx, cfg, src.Info()); snd != nil {
			player.SetSoundtrack(snd)
		}
	}

	res, err := player.Run(ctx)
	if err != nil {
		return err
	}
	if res.ReadErr != nil {
		fmt.Fprintf(stderr, "warning: stopped after frame %d: %v\n", res.Frames, res.ReadErr)
	}
	return nil
}

// openSoundtrack returns nil when playback should continue without sound
func openSoundtrack(ctx context.Context, cfg config.Config, info video.Info) *audio.Player {
	if !info.HasAudio {
		logrus.WithField("input", cfg.Input).Warn("No audio track, playing without sound")
		return nil
	}
	stream, err := video.OpenAudio(ctx, cfg.Input, int(audio.SampleRate))
	if err != nil {
		logrus.WithError(err).Warn("Audio extraction failed, playing without sound")
		return nil
	}
	p, err := audio.NewPlayer(stream, cfg.VolumeScale())
	if err != nil {
		logrus.WithError(err).Warn("Soundtrack unreadable, playing without sound")
		return nil
	}
	return p
}
