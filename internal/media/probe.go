package media

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Prober reads the duration of a local media file in seconds.
type Prober func(path string) (float64, error)

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// FFProbe runs ffprobe on path.
func FFProbe(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, errors.WithMessage(err, "ffprobe failed")
	}
	return parseProbe(out)
}

func parseProbe(out string) (float64, error) {
	var parsed probeOutput
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return 0, errors.Wrap(err, "decode ffprobe output")
	}
	if parsed.Format.Duration == "" {
		return 0, errors.New("ffprobe output has no duration")
	}
	d, err := strconv.ParseFloat(parsed.Format.Duration, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse duration %q", parsed.Format.Duration)
	}
	return d, nil
}
