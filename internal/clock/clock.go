// Package clock parses and formats 12-hour time-of-day input as typed by
// restaurant staff into the reservation form.
package clock

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type Meridiem string

const (
	AM Meridiem = "AM"
	PM Meridiem = "PM"
)

const (
	MinutesPerDay = 24 * 60

	maxLiveDigits = 4
)

// Clock is a 12-hour reading without its meridiem.
type Clock struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// String formats c as H:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%d:%02d", c.Hour, c.Minute)
}

var colonForm = regexp.MustCompile(`^(\d{1,2}):(\d{0,2})$`)

// Parse reads a 1-2 digit hour, an optional colon and a 0-2 digit minute.
// Out-of-range values are clamped rather than rejected. Input without a colon
// is interpreted with the same rules as Live, so "130" reads as 1:30, except
// that a leading zero belongs to the hour: "0030" reads as 00:30 and clamps
// to 1:30.
func Parse(text string) (Clock, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Clock{}, false
	}

	if !strings.Contains(s, ":") {
		if len(s) > maxLiveDigits || !isDigits(s) {
			return Clock{}, false
		}
		s = splitDigits(s)
	}

	m := colonForm.FindStringSubmatch(s)
	if m == nil {
		return Clock{}, false
	}

	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}

	return Clock{
		Hour:   clamp(hour, 1, 12),
		Minute: clamp(minute, 0, 59),
	}, true
}

// Normalize parses text and returns it in canonical H:MM form.
func Normalize(text string) (string, bool) {
	c, ok := Parse(text)
	if !ok {
		return "", false
	}
	return c.String(), true
}

// Live turns a running digit buffer into the best partial time to display
// while the user is still typing. Non-digits are ignored and at most four
// significant digits are kept.
//
//	"1"    -> "1"
//	"12"   -> "12"
//	"13"   -> "1:3"
//	"17"   -> "1:07"
//	"1230" -> "12:30"
func Live(buffer string) string {
	digits := make([]byte, 0, maxLiveDigits)
	for i := 0; i < len(buffer) && len(digits) < maxLiveDigits; i++ {
		c := buffer[i]
		if c < '0' || c > '9' {
			continue
		}
		if len(digits) == 0 && c == '0' {
			continue
		}
		digits = append(digits, c)
	}

	if len(digits) == 0 {
		return ""
	}

	hourLen := 1
	if len(digits) >= 2 {
		if h := int(digits[0]-'0')*10 + int(digits[1]-'0'); h >= 10 && h <= 12 {
			hourLen = 2
		}
	}

	hour := string(digits[:hourLen])
	rest := digits[hourLen:]
	if len(rest) == 0 {
		return hour
	}

	var minute string
	if rest[0] > '5' {
		minute = "0" + string(rest[0])
	} else {
		minute = string(rest[:min(2, len(rest))])
		if n, _ := strconv.Atoi(minute); len(minute) == 2 && n > 59 {
			minute = "59"
		}
	}

	return hour + ":" + minute
}

// ParseMeridiem accepts AM/PM in any case, with or without dots.
func ParseMeridiem(text string) (Meridiem, bool) {
	s := strings.ToUpper(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, " ", "")

	switch Meridiem(s) {
	case AM:
		return AM, true
	case PM:
		return PM, true
	}

	return "", false
}

// MinutesOfDay converts a 12-hour reading to minutes since midnight.
func MinutesOfDay(c Clock, m Meridiem) int {
	h := c.Hour % 12
	if m == PM {
		h += 12
	}
	return h*60 + c.Minute
}

// FromMinutes is the inverse of MinutesOfDay. Values outside a day wrap.
func FromMinutes(total int) (Clock, Meridiem) {
	total %= MinutesPerDay
	if total < 0 {
		total += MinutesPerDay
	}

	h24 := total / 60
	mer := AM
	if h24 >= 12 {
		mer = PM
	}

	h := h24 % 12
	if h == 0 {
		h = 12
	}

	return Clock{Hour: h, Minute: total % 60}, mer
}

// splitDigits inserts the colon into a digits-only time.
func splitDigits(s string) string {
	if s[0] == '0' {
		if len(s) <= 2 {
			return s + ":"
		}
		return s[:len(s)-2] + ":" + s[len(s)-2:]
	}

	s = Live(s)
	if !strings.Contains(s, ":") {
		s += ":"
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
