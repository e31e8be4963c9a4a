package youtube

import (
	"fmt"
	"math"
	"regexp"

	"github.com/sosodev/duration"

	"github.com/Taichi-iskw/ytmeta/internal/errors"
	"github.com/Taichi-iskw/ytmeta/internal/model"
)

// durationPattern accepts time-only ISO 8601 durations such as PT1H2M3S
var durationPattern = regexp.MustCompile(`^PT(\d+H)?(\d+M)?(\d+(\.\d+)?S)?$`)

// liveDuration is what the API reports for live broadcasts and upcoming premieres
const liveDuration = "P0D"

// NormalizeDuration rewrites a time-only ISO 8601 duration into zero-padded HH:MM:SS.
// Missing components render as 00. Anything else, including day or week components, is rejected.
func NormalizeDuration(s string) (string, error) {
	if s == liveDuration {
		return "", errors.New(errors.CodeInvalidArg,
			fmt.Sprintf("unsupported duration format: %q (live broadcast or upcoming premiere without a duration)", s))
	}
	if s == "PT" || !durationPattern.MatchString(s) {
		return "", errors.New(errors.CodeInvalidArg, fmt.Sprintf("unsupported duration format: %q", s))
	}

	d, err := duration.Parse(s)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInvalidArg, fmt.Sprintf("invalid duration: %q", s))
	}

	if d.Hours > math.MaxInt32 || d.Minutes > math.MaxInt32 || d.Seconds > math.MaxInt32 {
		return "", errors.New(errors.CodeInvalidArg, fmt.Sprintf("duration out of range: %q", s))
	}

	return fmt.Sprintf("%02d:%02d:%02d", int(d.Hours), int(d.Minutes), int(d.Seconds)), nil
}

// NormalizeDurations rewrites every present duration of records in place
func NormalizeDurations(records map[string]*model.VideoMetadata) error {
	for id, record := range records {
		if record == nil || record.Duration == nil {
			continue
		}
		normalized, err := NormalizeDuration(*record.Duration)
		if err != nil {
			return errors.Wrap(err, errors.CodeInvalidArg, fmt.Sprintf("video %s", id))
		}
		record.Duration = &normalized
	}
	return nil
}
