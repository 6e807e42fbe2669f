package errors

import "testing"

func TestValidateEventID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"simple", "gophercon-2025", false},
		{"dots and underscores", "conf_eu.2025", false},
		{"empty", "", true},
		{"traversal", "../etc", true},
		{"slash", "a/b", true},
		{"space", "go con", true},
		{"non-ascii", "café", true},
		{"too long", string(make([]byte, 200)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEventID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEventID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidEventID) {
				t.Errorf("expected ErrCodeInvalidEventID, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateDay(t *testing.T) {
	tests := []struct {
		day     string
		wantErr bool
	}{
		{"", false},
		{"2025-06-10", false},
		{"2025-02-30", true},
		{"10.06.2025", true},
		{"2025-6-1", true},
	}
	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			err := ValidateDay(tt.day)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDay(%q) error = %v, wantErr %v", tt.day, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	if err := ValidateTimezone(""); err != nil {
		t.Errorf("empty timezone should be valid: %v", err)
	}
	if err := ValidateTimezone("UTC"); err != nil {
		t.Errorf("UTC should be valid: %v", err)
	}
	err := ValidateTimezone("Mars/Olympus")
	if !Is(err, ErrCodeInvalidTimezone) {
		t.Errorf("expected ErrCodeInvalidTimezone, got %v", err)
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		color   string
		wantErr bool
	}{
		{"", false},
		{"#fff", false},
		{"#00ADD8", false},
		{"red", true},
		{"#12345", true},
		{"00ADD8", true},
		{"#GGGGGG", true},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			err := ValidateColor(tt.color)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.color, err, tt.wantErr)
			}
		})
	}
}

func TestValidateClock(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"09:30", false},
		{"9:30", false},
		{"19:00", false},
		{"23:59", false},
		{"24:00", true},
		{"25:00", true},
		{"12:60", true},
		{"noon", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := ValidateClock(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidEventID,
		ErrCodeInvalidDay,
		ErrCodeInvalidTimezone,
		ErrCodeInvalidClock,
		ErrCodeInvalidColor,
		ErrCodeInvalidFormat,
		ErrCodeInvalidSchedule,
		ErrCodeNotFound,
		ErrCodeEventNotFound,
		ErrCodeFileNotFound,
		ErrCodeStorage,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
