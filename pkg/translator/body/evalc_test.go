package body

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// evalC runs a C statement block produced by this package with float
// semantics. Only the statement shapes the rule table emits are understood.

var (
	guardLine   = regexp.MustCompile(`^if \((\w+) (==|<) 0\.0f\) \{$`)
	binaryRet   = regexp.MustCompile(`^return (\w+) ([-+*/]) (\w+);$`)
	callRet     = regexp.MustCompile(`^return (sqrtf|fabsf)\((\w+)\);$`)
	powRet      = regexp.MustCompile(`^return powf\((\w+), (\w+)\);$`)
	ternaryRet  = regexp.MustCompile(`^return (\w+) ([<>]) (\w+) \? (\w+) : (\w+);$`)
	nanRet      = regexp.MustCompile(`^return NAN;( *//.*)?$`)
	constantRet = regexp.MustCompile(`^return 0\.0f;$`)
)

func evalC(block string, env map[string]float32) (float32, error) {
	lookup := func(name string) (float32, error) {
		v, ok := env[name]
		if !ok {
			return 0, fmt.Errorf("undefined identifier %q", name)
		}
		return v, nil
	}

	lines := strings.Split(block, "\n")
	skipping := false
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if line == "}" {
			skipping = false
			continue
		}
		if skipping {
			continue
		}

		if m := guardLine.FindStringSubmatch(line); m != nil {
			v, err := lookup(m[1])
			if err != nil {
				return 0, err
			}
			taken := v == 0
			if m[2] == "<" {
				taken = v < 0
			}
			skipping = !taken
			continue
		}
		if nanRet.MatchString(line) {
			return float32(math.NaN()), nil
		}
		if constantRet.MatchString(line) {
			return 0, nil
		}
		if m := binaryRet.FindStringSubmatch(line); m != nil {
			a, err := lookup(m[1])
			if err != nil {
				return 0, err
			}
			b, err := lookup(m[3])
			if err != nil {
				return 0, err
			}
			switch m[2] {
			case "+":
				return a + b, nil
			case "-":
				return a - b, nil
			case "*":
				return a * b, nil
			default:
				return a / b, nil
			}
		}
		if m := callRet.FindStringSubmatch(line); m != nil {
			x, err := lookup(m[2])
			if err != nil {
				return 0, err
			}
			if m[1] == "sqrtf" {
				return float32(math.Sqrt(float64(x))), nil
			}
			return float32(math.Abs(float64(x))), nil
		}
		if m := powRet.FindStringSubmatch(line); m != nil {
			base, err := lookup(m[1])
			if err != nil {
				return 0, err
			}
			exp, err := lookup(m[2])
			if err != nil {
				return 0, err
			}
			return float32(math.Pow(float64(base), float64(exp))), nil
		}
		if m := ternaryRet.FindStringSubmatch(line); m != nil {
			vals := make([]float32, 4)
			for i, name := range []string{m[1], m[3], m[4], m[5]} {
				v, err := lookup(name)
				if err != nil {
					return 0, err
				}
				vals[i] = v
			}
			cond := vals[0] > vals[1]
			if m[2] == "<" {
				cond = vals[0] < vals[1]
			}
			if cond {
				return vals[2], nil
			}
			return vals[3], nil
		}
		return 0, fmt.Errorf("unsupported statement %q", line)
	}
	return 0, fmt.Errorf("block has no return")
}
