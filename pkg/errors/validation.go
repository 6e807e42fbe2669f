package errors

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// maxEventIDLength bounds event identifiers used as store keys and URL segments.
const maxEventIDLength = 128

// ValidateEventID validates an event identifier for use as a storage key and
// URL path segment.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - Maximum length of 128 characters
//   - Only letters, digits, '-', '_' and '.'
//   - No path traversal sequences
func ValidateEventID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidEventID, "event id cannot be empty")
	}
	if len(id) > maxEventIDLength {
		return New(ErrCodeInvalidEventID, "event id too long (max %d characters)", maxEventIDLength)
	}
	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidEventID, "event id contains invalid sequence %q", "..")
	}
	for _, r := range id {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.') {
			return New(ErrCodeInvalidEventID, "event id contains invalid character %q", r)
		}
	}
	return nil
}

// ValidateDay validates a calendar day in YYYY-MM-DD form. An empty day is
// allowed and means "no day filter".
func ValidateDay(day string) error {
	if day == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return New(ErrCodeInvalidDay, "invalid day %q (expected YYYY-MM-DD)", day)
	}
	return nil
}

// ValidateTimezone validates an IANA timezone name. An empty name is allowed
// and resolves to UTC.
func ValidateTimezone(name string) error {
	if name == "" {
		return nil
	}
	if _, err := time.LoadLocation(name); err != nil {
		return Wrap(ErrCodeInvalidTimezone, err, "unknown timezone %q", name)
	}
	return nil
}

var colorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a CSS hex color (#rgb or #rrggbb). An empty color
// is allowed; it falls through to the next color source.
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if !colorRe.MatchString(color) {
		return New(ErrCodeInvalidColor, "invalid color %q (expected #rgb or #rrggbb)", color)
	}
	return nil
}

var clockRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateClock validates a wall-clock time in HH:MM form (00:00 to 23:59).
func ValidateClock(s string) error {
	if !clockRe.MatchString(s) {
		return New(ErrCodeInvalidClock, "invalid clock time %q (expected HH:MM)", s)
	}
	return nil
}
