package filebyte

import (
	"fmt"
	"strings"
)

// SizeUnit selects how byte counts are rendered. All units use binary
// (1024-based) scaling.
type SizeUnit int

const (
	// UnitAuto picks the largest unit keeping the displayed value >= 1.
	UnitAuto SizeUnit = iota
	// UnitBytes renders raw byte counts.
	UnitBytes
	// UnitKB renders kilobytes (KiB scale).
	UnitKB
	// UnitMB renders megabytes.
	UnitMB
	// UnitGB renders gigabytes.
	UnitGB
	// UnitTB renders terabytes.
	UnitTB
)

const sizeStep = 1024

// ParseSizeUnit parses a unit from its CLI spellings.
func ParseSizeUnit(s string) (SizeUnit, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return UnitAuto, nil
	case "b", "bytes":
		return UnitBytes, nil
	case "kb", "kilobytes":
		return UnitKB, nil
	case "mb", "megabytes":
		return UnitMB, nil
	case "gb", "gigabytes":
		return UnitGB, nil
	case "tb", "terabytes":
		return UnitTB, nil
	default:
		return 0, fmt.Errorf("invalid size unit %q", s)
	}
}

// label returns the unit suffix.
func (u SizeUnit) label() string {
	switch u {
	case UnitKB:
		return "KB"
	case UnitMB:
		return "MB"
	case UnitGB:
		return "GB"
	case UnitTB:
		return "TB"
	default:
		return "B"
	}
}

// divisor returns the number of bytes per displayed unit.
func (u SizeUnit) divisor() int64 {
	switch u {
	case UnitKB:
		return sizeStep
	case UnitMB:
		return sizeStep * sizeStep
	case UnitGB:
		return sizeStep * sizeStep * sizeStep
	case UnitTB:
		return sizeStep * sizeStep * sizeStep * sizeStep
	default:
		return 1
	}
}

// FormatSize renders bytes in the requested unit. UnitAuto picks the
// largest unit where the value is at least 1, so 1023 renders in bytes
// and 1024 renders as "1 KB". Fixed units divide by the corresponding
// power of 1024 and keep at most two decimal places.
func FormatSize(bytes int64, unit SizeUnit) string {
	if unit == UnitAuto {
		unit = autoUnit(bytes)
	}

	if unit == UnitBytes {
		return fmt.Sprintf("%d B", bytes)
	}

	value := float64(bytes) / float64(unit.divisor())

	return fmt.Sprintf("%s %s", trimZeros(fmt.Sprintf("%.2f", value)), unit.label())
}

// autoUnit returns the largest unit keeping the displayed value >= 1.
func autoUnit(bytes int64) SizeUnit {
	switch {
	case bytes >= sizeStep*sizeStep*sizeStep*sizeStep:
		return UnitTB
	case bytes >= sizeStep*sizeStep*sizeStep:
		return UnitGB
	case bytes >= sizeStep*sizeStep:
		return UnitMB
	case bytes >= sizeStep:
		return UnitKB
	default:
		return UnitBytes
	}
}

// trimZeros drops trailing fractional zeros, so "1.00" renders as "1" and
// "1.50" as "1.5".
func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}

	s = strings.TrimRight(s, "0")

	return strings.TrimSuffix(s, ".")
}
