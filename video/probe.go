// @lixen: #focus{io[video,probe]}
// Package video decodes and encodes containers through the ffmpeg binary.
package video

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

var ErrNoVideoStream = errors.New("no video stream")

// Info describes the first video stream of a container
type Info struct {
	Width      int
	Height     int
	FPS        float64
	FrameCount int
	Duration   float64
	HasAudio   bool
}

type probeResult struct {
	Streams []struct {
		CodecType    string `json:"codec_type"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		RFrameRate   string `json:"r_frame_rate"`
		AvgFrameRate string `json:"avg_frame_rate"`
		NbFrames     string `json:"nb_frames"`
		Duration     string `json:"duration"`
		Tags         struct {
			Rotate string `json:"rotate"`
		} `json:"tags"`
		SideDataList []sideData `json:"side_data_list"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

type sideData struct {
	Rotation float64 `json:"rotation"`
}

// Probe reads stream metadata with ffprobe
func Probe(path string) (Info, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return Info{}, fmt.Errorf("probe %s: %w", path, err)
	}
	return parseProbe([]byte(out))
}

func parseProbe(data []byte) (Info, error) {
	var pr probeResult
	if err := json.Unmarshal(data, &pr); err != nil {
		return Info{}, fmt.Errorf("parse probe output: %w", err)
	}

	var info Info
	found := false
	for _, s := range pr.Streams {
		switch s.CodecType {
		case "audio":
			info.HasAudio = true
		case "video":
			if found {
				continue
			}
			found = true
			info.Width = s.Width
			info.Height = s.Height
			// ffmpeg autorotates on decode, so quarter turns swap the frame size
			if quarterTurn(s.Tags.Rotate, s.SideDataList) {
				info.Width, info.Height = info.Height, info.Width
			}
			info.FPS = parseRate(s.AvgFrameRate)
			if info.FPS == 0 {
				info.FPS = parseRate(s.RFrameRate)
			}
			info.FrameCount, _ = strconv.Atoi(s.NbFrames)
			info.Duration, _ = strconv.ParseFloat(s.Duration, 64)
		}
	}
	if !found {
		return Info{}, ErrNoVideoStream
	}
	if info.Width <= 0 || info.Height <= 0 {
		return Info{}, fmt.Errorf("invalid video dimensions %dx%d", info.Width, info.Height)
	}

	if info.Duration == 0 {
		info.Duration, _ = strconv.ParseFloat(pr.Format.Duration, 64)
	}
	// Some containers omit nb_frames; estimate from duration
	if info.FrameCount == 0 && info.Duration > 0 && info.FPS > 0 {
		info.FrameCount = int(math.Round(info.Duration * info.FPS))
	}
	return info, nil
}

// quarterTurn reports a display rotation of 90 or 270 degrees in either sign.
// Display matrix side data wins over the legacy rotate tag.
func quarterTurn(tag string, sides []sideData) bool {
	deg := 0
	if v, err := strconv.Atoi(strings.TrimSpace(tag)); err == nil {
		deg = v
	}
	for _, sd := range sides {
		if sd.Rotation != 0 {
			deg = int(math.Round(sd.Rotation))
			break
		}
	}
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg == 90 || deg == 270
}

// parseRate parses "num/den" or plain decimal rates; invalid input yields 0
func parseRate(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !ok {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}
