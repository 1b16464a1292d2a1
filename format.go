package main

import "fmt"

// VolumePlaceholder is displayed whenever no valid volume exists,
// either invalid input or an exactly-zero result. A dash avoids
// implying that a zero-volume stone is a valid answer.
const VolumePlaceholder = "—"

// scientificBelowM3 is the threshold under which volumes are shown in
// scientific notation: small offcuts would otherwise round to a wall
// of zeroes in fixed-point.
const scientificBelowM3 = 1e-4

// FormatVolumeMM3 converts an internal mm³ volume to its m³ display
// string: the placeholder for exact zero, scientific notation with 4
// fractional digits below 1×10⁻⁴ m³, fixed-point with 6 fractional
// digits otherwise.
func FormatVolumeMM3(mm3 float64) string {
	m3 := mm3 / 1e9
	switch {
	case m3 == 0:
		return VolumePlaceholder
	case m3 < scientificBelowM3:
		return fmt.Sprintf("%.4e", m3)
	default:
		return fmt.Sprintf("%.6f", m3)
	}
}
