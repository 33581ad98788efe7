package body

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func finite() gopter.Gen {
	return gen.Float32Range(-1e6, 1e6)
}

// 加算の本体は常にガードなしの a + b を返す
func TestProperty_AdditionIsUnguarded(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	block := Translate("begin return A + B; ", twoFloats)

	properties.Property("a + b", prop.ForAll(
		func(a, b float32) bool {
			v, err := evalC(block, map[string]float32{"a": a, "b": b})
			return err == nil && v == a+b
		},
		finite(), finite(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// 除数が 0.0 なら NaN、それ以外は n / d
func TestProperty_DivisionGuard(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	block := Translate("begin return A / B; ", twoFloats)

	properties.Property("zero divisor yields NaN", prop.ForAll(
		func(n float32) bool {
			v, err := evalC(block, map[string]float32{"a": n, "b": 0})
			return err == nil && math.IsNaN(float64(v))
		},
		finite(),
	))

	properties.Property("nonzero divisor yields the quotient", prop.ForAll(
		func(n, d float32) bool {
			v, err := evalC(block, map[string]float32{"a": n, "b": d})
			return err == nil && v == n/d
		},
		finite(),
		finite().SuchThat(func(d float32) bool { return d != 0 }),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// 負数なら NaN、非負なら r*r が v にほぼ等しい
func TestProperty_SqrtGuard(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	block := Translate("begin return Ada.Numerics.Elementary_Functions.Sqrt (X); ", oneFloat)

	properties.Property("negative argument yields NaN", prop.ForAll(
		func(x float32) bool {
			v, err := evalC(block, map[string]float32{"x": x})
			return err == nil && math.IsNaN(float64(v))
		},
		gen.Float32Range(-1e6, -1e-6),
	))

	properties.Property("non-negative argument yields the root", prop.ForAll(
		func(x float32) bool {
			r, err := evalC(block, map[string]float32{"x": x})
			if err != nil || math.IsNaN(float64(r)) {
				return false
			}
			diff := math.Abs(float64(r)*float64(r) - float64(x))
			return diff <= 1e-5*math.Max(1, float64(x))
		},
		gen.Float32Range(0, 1e6),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// 等しい入力に対して max と min はどちらも a を返す
func TestProperty_MinMaxTieBreak(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	maxBlock := Translate("return Float'Max (A, B);", twoFloats)
	minBlock := Translate("return Float'Min (A, B);", twoFloats)

	properties.Property("equal inputs return a", prop.ForAll(
		func(a float32) bool {
			env := map[string]float32{"a": a, "b": a}
			mx, err1 := evalC(maxBlock, env)
			mn, err2 := evalC(minBlock, env)
			return err1 == nil && err2 == nil && mx == a && mn == a
		},
		finite(),
	))

	properties.Property("max and min order their inputs", prop.ForAll(
		func(a, b float32) bool {
			env := map[string]float32{"a": a, "b": b}
			mx, err1 := evalC(maxBlock, env)
			mn, err2 := evalC(minBlock, env)
			return err1 == nil && err2 == nil && mx >= mn &&
				(mx == a || mx == b) && (mn == a || mn == b)
		},
		finite(), finite(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// マーカーの前後に何があっても、そのマーカーの規則が選ばれる
func TestProperty_MarkerContainment(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	all := Rules()
	properties.Property("alpha noise never changes the chosen rule", prop.ForAll(
		func(idx int, prefix, suffix string) bool {
			r := all[idx]
			got, ok := Match(prefix + " " + r.Marker + " " + suffix)
			return ok && got.Name == r.Name
		},
		gen.IntRange(0, len(all)-1),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("translation is deterministic", prop.ForAll(
		func(s string) bool {
			return Translate(s, twoFloats) == Translate(s, twoFloats)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
