package visitor

import "fmt"

// FieldHardwareID is the wire key carrying the device identifier.
const FieldHardwareID = "hardware_id"

const maxHardwareIDLen = 64

// HardwareID identifies the physical access device (e.g. a badge reader) a
// registration is bound to. It is not secret.
type HardwareID string

// ParseHardwareID accepts 1 to 64 ASCII letters or digits.
func ParseHardwareID(s string) (HardwareID, error) {
	if s == "" {
		return "", invalid(FieldHardwareID, "must not be empty")
	}
	if len(s) > maxHardwareIDLen {
		return "", invalid(FieldHardwareID, fmt.Sprintf("must be at most %d characters", maxHardwareIDLen))
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return "", invalid(FieldHardwareID, "must contain only ASCII letters and digits")
		}
	}
	return HardwareID(s), nil
}

func (h HardwareID) String() string { return string(h) }
