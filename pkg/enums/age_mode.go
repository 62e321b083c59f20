package enums

import "fmt"

// AgeMode selects the copy register served to a client. AgeModeAdultos is the
// neutral register and the mandatory fallback for every registry lookup.
type AgeMode string

const (
	AgeModeNinos   AgeMode = "ninos"
	AgeModeJovenes AgeMode = "jovenes"
	AgeModeAdultos AgeMode = "adultos"
)

var validAgeModes = []AgeMode{
	AgeModeNinos,
	AgeModeJovenes,
	AgeModeAdultos,
}

// String implements fmt.Stringer.
func (a AgeMode) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AgeMode.
func (a AgeMode) IsValid() bool {
	for _, candidate := range validAgeModes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAgeMode converts raw input into an AgeMode.
func ParseAgeMode(value string) (AgeMode, error) {
	for _, candidate := range validAgeModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid age mode %q", value)
}
