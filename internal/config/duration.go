package config

import (
	"encoding"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Duration accepts Go durations ("1m30s") or plain seconds ("90", "1.5").
type Duration time.Duration

var _ encoding.TextUnmarshaler = (*Duration)(nil)

func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		return errors.New("empty duration")
	}
	if parsed, err := time.ParseDuration(raw); err == nil {
		if parsed < 0 {
			return errors.New("negative duration")
		}
		*d = Duration(parsed)
		return nil
	}
	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		if secs < 0 {
			return errors.New("negative duration")
		}
		*d = Duration(time.Duration(secs * float64(time.Second)))
		return nil
	}
	return errors.New("invalid duration")
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
