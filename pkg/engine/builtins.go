package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/ashlar/pkg/profile"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms Ashlar script source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: auto-fit -> auto_fit
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when the hyphen sits between identifier characters (not a
		// minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_bullnose) and plain strings
// ("bullnose").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toEdgeType converts a keyword or string to a profile.EdgeType.
func toEdgeType(s zygo.Sexp) (profile.EdgeType, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected edge keyword (:chamfer, :bullnose): %w", err)
	}
	switch name {
	case "chamfer":
		return profile.EdgeChamfer, nil
	case "bullnose":
		return profile.EdgeBullnose, nil
	}
	return 0, fmt.Errorf("invalid edge %q, expected chamfer or bullnose", name)
}

// toFlag interprets a flag value: a bare trailing keyword (nil) and
// bool true both enable, bool false disables. Anything else is an
// error rather than a silent enable.
func toFlag(s zygo.Sexp) (bool, error) {
	switch v := s.(type) {
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return true, nil
		}
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the Ashlar script builtins into a zygomys
// environment. The builtins append line items to the provided Quote
// during evaluation; validation and volume computation happen after
// the run, in finalize.
//
// Source code must be preprocessed with preprocessSource() first so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, q *Quote) {

	// -----------------------------------------------------------------------
	// (profile :name "sill" :length 1000 :width 700 :thickness 100
	//          :lip-width 150 :lip-height 200
	//          :edge :bullnose :edge-depth 50 :quantity 2)
	//
	// :auto-fit true replaces :edge-depth with the tangent-fit radius.
	// -----------------------------------------------------------------------
	env.AddFunction("profile", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		item := Item{Params: profile.Params{EdgeType: profile.EdgeChamfer, Quantity: 1}}

		if v, ok := pa.kw["name"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("profile: name: %w", err)
			}
			item.Name = s
		}

		numeric := []struct {
			kw   string
			dest *float64
		}{
			{"length", &item.Params.L},
			{"width", &item.Params.W},
			{"thickness", &item.Params.T},
			{"lip-width", &item.Params.Lw},
			{"lip-height", &item.Params.Lh},
			{"edge-depth", &item.Params.EdgeDepth},
		}
		for _, n := range numeric {
			if v, ok := pa.kw[n.kw]; ok {
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("profile: %s: %w", n.kw, err)
				}
				*n.dest = f
			}
		}

		if v, ok := pa.kw["edge"]; ok {
			et, err := toEdgeType(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("profile: edge: %w", err)
			}
			item.Params.EdgeType = et
		}

		if v, ok := pa.kw["quantity"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("profile: quantity: %w", err)
			}
			item.Params.Quantity = n
		}

		if v, ok := pa.kw["auto-fit"]; ok {
			on, err := toFlag(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("profile: auto-fit: %w", err)
			}
			if on && item.Params.Lw > 0 && item.Params.T > 0 {
				item.Params.EdgeDepth = profile.AutoFitRadius(item.Params.Lw, item.Params.T)
			}
		}

		q.Items = append(q.Items, item)
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (auto-fit 150 100) → the bullnose radius tangent to the top and
	// side faces that passes through the inner lip corner.
	// -----------------------------------------------------------------------
	env.AddFunction("auto_fit", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("auto-fit: want (auto-fit lip-width thickness), got %d args", len(args))
		}
		lw, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("auto-fit: lip-width: %w", err)
		}
		t, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("auto-fit: thickness: %w", err)
		}
		if lw <= 0 || t <= 0 {
			return zygo.SexpNull, fmt.Errorf("auto-fit: lip-width and thickness must be positive")
		}
		return &zygo.SexpFloat{Val: profile.AutoFitRadius(lw, t)}, nil
	})
}
