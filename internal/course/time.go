package course

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Normalize converts free-form time text to canonical "HH:MM".
// Accepted forms: "HH:MM", "HH.MM", or a bare hour ("9" -> "09:00").
// Blank input normalizes to "", the valid "unset" sentinel.
//
// A single-digit minute component is read as a decimal fraction of an
// hour ("16.5" -> "16:30"), because that is how people type half hours.
// Longer components are literal minutes, right-padded and cut to two
// characters ("16.03" -> "16:03"). The asymmetry is intentional.
func Normalize(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var hh, mm string
	switch {
	case strings.Contains(text, ":"):
		hh, mm = splitTime(text, ":")
	case strings.Contains(text, "."):
		hh, mm = splitTime(text, ".")
	default:
		hh, mm = text, "00"
	}

	for len(hh) < 2 {
		hh = "0" + hh
	}

	if len(mm) == 1 {
		m := 0
		if f, err := strconv.ParseFloat("0."+mm, 64); err == nil {
			m = int(math.Round(f * 60))
		}
		mm = strconv.Itoa(m)
	}
	mm = (mm + "00")[:2]

	return hh + ":" + mm
}

func splitTime(text, sep string) (hh, mm string) {
	parts := strings.SplitN(text, sep, 3)
	hh = parts[0]
	if len(parts) > 1 {
		mm = parts[1]
	}
	return hh, mm
}

// ParseMinutes normalizes text and converts it to minutes since
// midnight. Non-numeric hour or minute fields return an error, the
// caller decides whether that is fatal.
func ParseMinutes(text string) (int, error) {
	n := Normalize(text)
	hh, mm, ok := strings.Cut(n, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, text)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, text)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, text)
	}
	return h*60 + m, nil
}

// MinutesToTime converts minutes since midnight to "HH:MM".
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Overlap reports whether two half-open intervals intersect.
// Intervals that touch at an endpoint do not overlap.
func Overlap[T int | int64](aStart, aEnd, bStart, bEnd T) bool {
	return max(aStart, bStart) < min(aEnd, bEnd)
}
