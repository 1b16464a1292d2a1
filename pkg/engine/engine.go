// Package engine provides the Lisp batch-quoting engine for Ashlar.
// It wraps zygomys in a sandboxed environment and evaluates a script
// describing one or more stone profiles into a Quote: per-item
// validation findings, closed-form volumes, and a batch total.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/ashlar/pkg/profile"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Item is one line of a quote: the profile a script declared, its
// validation findings, and, when valid, its computed volume.
type Item struct {
	Name       string                    `json:"name,omitempty"`
	Params     profile.Params            `json:"params"`
	Violations []profile.ValidationError `json:"violations,omitempty"`
	Volume     profile.Breakdown         `json:"volume"`
}

// Valid reports whether the item passed validation.
func (it Item) Valid() bool {
	return len(it.Violations) == 0
}

// Quote is the full result of evaluating a script: line items in
// declaration order plus the total over the valid ones, in mm³.
type Quote struct {
	Items    []Item  `json:"items"`
	TotalMM3 float64 `json:"total_mm3"`
}

// Engine wraps the zygomys interpreter. It is safe for concurrent use;
// each call to Evaluate creates a fresh sandboxed environment for
// determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate takes Lisp source code and produces a Quote.
//
// Return semantics:
//   - On success: returns quote + nil errors + nil error
//   - On parse/eval failure: returns nil quote + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
//
// A profile that fails validation is not an eval failure; it becomes a
// quote item carrying its violations.
func (e *Engine) Evaluate(source string) (*Quote, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		q, evalErrs, err := e.evaluate(source)
		ch <- evalResult{quote: q, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*Quote, []EvalError, error) {
	q := &Quote{}

	// Empty source is a valid script that produces an empty quote.
	if strings.TrimSpace(source) == "" {
		return q, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem
	// or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, q)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	finalize(q)
	return q, nil, nil
}

// finalize validates every declared item and computes volumes for the
// valid ones. Runs once, after the script has produced all items.
func finalize(q *Quote) {
	for i := range q.Items {
		it := &q.Items[i]
		it.Violations = profile.Validate(it.Params)
		if len(it.Violations) > 0 {
			continue
		}
		it.Volume = profile.Volume(it.Params)
		q.TotalMM3 += it.Volume.Total
	}
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError
// values, extracting line numbers from the message where possible.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
