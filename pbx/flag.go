package pbx

import "fmt"

// Flag is a boolean-like field value. Besides yes and no, build settings
// and a few fields accept the warning levels YES_ERROR and YES_AGGRESSIVE.
type Flag uint8

const (
	FlagNo Flag = iota
	FlagYes
	FlagYesError
	FlagYesAggressive
)

// FlagStyle is the textual encoding of a flag occurrence.
type FlagStyle uint8

const (
	StyleNumeric FlagStyle = iota // 0 / 1
	StyleWord                     // NO / YES / YES_ERROR / YES_AGGRESSIVE
)

// Bool reports whether f is any form of yes.
func (f Flag) Bool() bool { return f != FlagNo }

// String returns the word form of f.
func (f Flag) String() string {
	switch f {
	case FlagNo:
		return "NO"
	case FlagYes:
		return "YES"
	case FlagYesError:
		return "YES_ERROR"
	case FlagYesAggressive:
		return "YES_AGGRESSIVE"
	default:
		return fmt.Sprintf("Flag(%d)", int(f))
	}
}

// Format encodes f in style. The warning levels have no numeric form and
// always use the word form.
func (f Flag) Format(style FlagStyle) string {
	if style == StyleNumeric {
		switch f {
		case FlagNo:
			return "0"
		case FlagYes:
			return "1"
		}
	}
	return f.String()
}

// FlagOf converts a Go bool.
func FlagOf(b bool) Flag {
	if b {
		return FlagYes
	}
	return FlagNo
}

// ParseFlag decodes a flag and reports the style it was written in.
func ParseFlag(s string) (Flag, FlagStyle, bool) {
	switch s {
	case "0":
		return FlagNo, StyleNumeric, true
	case "1":
		return FlagYes, StyleNumeric, true
	case "NO":
		return FlagNo, StyleWord, true
	case "YES":
		return FlagYes, StyleWord, true
	case "YES_ERROR":
		return FlagYesError, StyleWord, true
	case "YES_AGGRESSIVE":
		return FlagYesAggressive, StyleWord, true
	}
	return FlagNo, StyleNumeric, false
}
