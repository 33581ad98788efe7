// Package body translates Ada function bodies into C statement blocks.
//
// Translation is a first-match walk over a fixed, ordered rule table. A rule
// matches when its marker text occurs anywhere in the body; there is no
// parsing. Bodies that match no rule get a placeholder that still compiles.
package body

import (
	"fmt"
	"strings"

	"github.com/zurustar/ada2c/pkg/translator/params"
)

// Placeholder is emitted for bodies that match no rule.
const Placeholder = "    // TODO: Convert this Ada code to C\n    return 0.0f;"

// Rule pairs a marker with the C block it produces.
type Rule struct {
	Name   string
	Marker string
	render func(Operands) string
}

// Render produces the C block for the given operands.
func (r Rule) Render(ops Operands) string {
	return r.render(ops)
}

// Operands holds the lower-cased parameter names a template refers to.
type Operands struct {
	names []string
}

// NewOperands lower-cases the declared parameter names.
func NewOperands(ps []params.Parameter) Operands {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = strings.ToLower(p.Name)
	}
	return Operands{names: names}
}

// At returns the i-th name, or fallback when the list is too short.
func (o Operands) At(i int, fallback string) string {
	if i < len(o.names) && o.names[i] != "" {
		return o.names[i]
	}
	return fallback
}

func binary(op string) func(Operands) string {
	return func(o Operands) string {
		return fmt.Sprintf("    return %s %s %s;", o.At(0, "a"), op, o.At(1, "b"))
	}
}

// rules is ordered by priority. Arithmetic first, then library calls.
var rules = []Rule{
	{Name: "add", Marker: "return A + B", render: binary("+")},
	{Name: "subtract", Marker: "return A - B", render: binary("-")},
	{Name: "multiply", Marker: "return A * B", render: binary("*")},
	{Name: "divide", Marker: "return A / B", render: func(o Operands) string {
		a, b := o.At(0, "a"), o.At(1, "b")
		return fmt.Sprintf("    if (%s == 0.0f) {\n"+
			"        return NAN;  // Ada would raise Constraint_Error\n"+
			"    }\n"+
			"    return %s / %s;", b, a, b)
	}},
	{Name: "sqrt", Marker: "Ada.Numerics.Elementary_Functions.Sqrt", render: func(o Operands) string {
		x := o.At(0, "x")
		return fmt.Sprintf("    if (%s < 0.0f) {\n"+
			"        return NAN;  // Ada would raise Argument_Error\n"+
			"    }\n"+
			"    return sqrtf(%s);", x, x)
	}},
	{Name: "power", Marker: `Ada.Numerics.Elementary_Functions."**"`, render: func(o Operands) string {
		return fmt.Sprintf("    return powf(%s, %s);", o.At(0, "base"), o.At(1, "exponent"))
	}},
	{Name: "abs", Marker: "abs(", render: func(o Operands) string {
		return fmt.Sprintf("    return fabsf(%s);", o.At(0, "x"))
	}},
	// 同値の場合は最初の引数を返す
	{Name: "max", Marker: "Float'Max", render: func(o Operands) string {
		a, b := o.At(0, "a"), o.At(1, "b")
		return fmt.Sprintf("    return %s > %s ? %s : %s;", a, b, a, b)
	}},
	{Name: "min", Marker: "Float'Min", render: func(o Operands) string {
		a, b := o.At(0, "a"), o.At(1, "b")
		return fmt.Sprintf("    return %s < %s ? %s : %s;", a, b, a, b)
	}},
}

// Rules returns a copy of the rule table in priority order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Match returns the first rule whose marker occurs in body.
func Match(body string) (Rule, bool) {
	for _, r := range rules {
		if strings.Contains(body, r.Marker) {
			return r, true
		}
	}
	return Rule{}, false
}

// Translate returns the C statement block for body, or Placeholder.
func Translate(body string, ps []params.Parameter) string {
	r, ok := Match(body)
	if !ok {
		return Placeholder
	}
	return r.Render(NewOperands(ps))
}
