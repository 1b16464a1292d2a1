package profile

import "fmt"

// ValidationError describes a single invariant violation on a Params
// field. Invalid input is a normal, expected return value, never an
// error in the Go sense.
type ValidationError struct {
	Field   string `json:"field"`   // offending Params field, lowercase
	Message string `json:"message"` // human-readable description
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks every Params invariant independently and returns all
// violations in one pass, so the caller can report every problem at
// once. An empty slice means the parameter set is valid and may be
// handed to the volume calculator and the projectors, which do not
// re-check. This function is read-only.
func Validate(p Params) []ValidationError {
	var errs []ValidationError

	positive := []struct {
		field string
		value float64
	}{
		{"l", p.L},
		{"w", p.W},
		{"t", p.T},
		{"lw", p.Lw},
		{"lh", p.Lh},
	}
	for _, c := range positive {
		if c.value <= 0 {
			errs = append(errs, ValidationError{
				Field:   c.field,
				Message: fmt.Sprintf("is %.4f, must be positive", c.value),
			})
		}
	}

	if p.EdgeDepth < 0 {
		errs = append(errs, ValidationError{
			Field:   "edge_depth",
			Message: fmt.Sprintf("is %.4f, must not be negative", p.EdgeDepth),
		})
	} else if p.EdgeDepth > 0 && p.T > 0 && p.EdgeDepth >= p.T {
		errs = append(errs, ValidationError{
			Field:   "edge_depth",
			Message: fmt.Sprintf("is %.4f, must be less than the slab thickness %.4f", p.EdgeDepth, p.T),
		})
	}

	if p.Lw > 0 && p.W > 0 && p.Lw >= p.W {
		errs = append(errs, ValidationError{
			Field:   "lw",
			Message: fmt.Sprintf("lip width %.4f must be less than the slab width %.4f", p.Lw, p.W),
		})
	}

	if p.Quantity < 1 {
		errs = append(errs, ValidationError{
			Field:   "quantity",
			Message: fmt.Sprintf("is %d, must be at least 1", p.Quantity),
		})
	}

	return errs
}

// IsValid reports whether p satisfies every invariant.
func IsValid(p Params) bool {
	return len(Validate(p)) == 0
}
