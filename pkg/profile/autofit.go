package profile

import "math"

// AutoFitRadius returns the bullnose radius whose quarter circle is
// tangent to both the top and the outer side of the slab and passes
// through the inner lip corner (Lw in from the side, T down from the
// top). Setting the distance from the candidate centre (r in from both
// tangent faces) to that corner equal to r gives
//
//	r² - 2(Lw+T)r + (Lw²+T²) = 0
//
// whose smaller root is the tangent fit. Both inputs must be positive;
// callers guard with the same invariant the validator enforces.
func AutoFitRadius(lw, t float64) float64 {
	return lw + t - math.Sqrt(2*lw*t)
}
