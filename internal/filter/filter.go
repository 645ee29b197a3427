package filter

import (
	"strings"
	"time"

	"github.com/google/cel-go/cel"

	"github.com/max-niederman/beryl/pkg/crystal"
)

// Filter wraps a compiled CEL program evaluated per crystal. The zero value
// and filters built from an empty expression match everything.
//
// Available variables:
//
//	raw        uint  the full 64-bit value
//	timestamp  int   ms since the epoch
//	generator  int   generator id
//	counter    int   per-millisecond counter
//	time_ms    int   absolute unix ms (epoch applied)
//	now_ms     int   evaluation time in unix ms
type Filter struct {
	prog    cel.Program
	enabled bool
}

// New compiles expr. Empty input yields a match-all filter.
func New(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Filter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("raw", cel.UintType),
		cel.Variable("timestamp", cel.IntType),
		cel.Variable("generator", cel.IntType),
		cel.Variable("counter", cel.IntType),
		cel.Variable("time_ms", cel.IntType),
		cel.Variable("now_ms", cel.IntType),
	)
	if err != nil {
		return Filter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return Filter{}, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return Filter{}, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return Filter{}, err
	}
	return Filter{prog: prog, enabled: true}, nil
}

// Eval reports whether the crystal passes the filter. Evaluation errors and
// non-boolean results count as non-matches.
func (f Filter) Eval(c crystal.Crystal, epoch time.Time) bool {
	if !f.enabled {
		return true
	}
	out, _, err := f.prog.Eval(map[string]any{
		"raw":       uint64(c),
		"timestamp": c.Timestamp(),
		"generator": int64(c.Generator()),
		"counter":   int64(c.Counter()),
		"time_ms":   c.Time(epoch).UnixMilli(),
		"now_ms":    time.Now().UnixMilli(),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
