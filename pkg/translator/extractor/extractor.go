// Package extractor finds Ada function definitions in raw source text.
//
// A definition has the shape
//
//	function NAME ( PARAMS ) return TYPE is BODY end NAME;
//
// matched case-insensitively, with BODY allowed to span lines. The closing
// name must repeat the opening one. Anything that does not fit is skipped.
package extractor

import (
	"regexp"
	"strings"
)

// FunctionUnit is one extracted, not yet translated function definition.
type FunctionUnit struct {
	Name          string
	RawParams     string
	RawReturnType string
	RawBody       string

	// Offset is the byte offset of the "function" keyword in the source.
	Offset int
}

// Diagnostic describes a function header that did not yield a FunctionUnit.
type Diagnostic struct {
	Name    string
	Offset  int
	Line    int // 1-indexed
	Column  int // 1-indexed, in bytes
	Message string
}

var (
	// headerPattern matches "function NAME (" anywhere in the text.
	headerPattern = regexp.MustCompile(`(?i)function\s+(\w+)\s*\(`)

	// signaturePattern must be applied at a ')' candidate.
	signaturePattern = regexp.MustCompile(`(?i)^\)\s*return\s+(\w+)\s+is\s*`)
)

// Extract returns the function units of source in discovery order.
// It never fails; zero units is a valid result.
func Extract(source string) []FunctionUnit {
	units, _ := Scan(source)
	return units
}

// Scan is Extract plus a diagnostic for every header that was dropped.
// Diagnostics never influence the returned units.
func Scan(source string) ([]FunctionUnit, []Diagnostic) {
	units := []FunctionUnit{}
	var diags []Diagnostic

	pos := 0
	for pos < len(source) {
		loc := headerPattern.FindStringSubmatchIndex(source[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[0]
		name := source[pos+loc[2] : pos+loc[3]]
		paramsStart := pos + loc[1]

		unit, end, reason := matchAt(source, start, name, paramsStart)
		if reason != "" {
			diags = append(diags, newDiagnostic(source, start, name, reason))
			// 失敗した候補の次の位置から再走査する
			pos = start + 1
			continue
		}
		units = append(units, unit)
		pos = end
	}

	return units, diags
}

// matchAt tries to complete a definition whose header ends at paramsStart.
// It returns the unit, the offset just past "end NAME;", or a non-empty reason.
func matchAt(source string, start int, name string, paramsStart int) (FunctionUnit, int, string) {
	for i := paramsStart; i < len(source); i++ {
		if source[i] != ')' {
			continue
		}
		sig := signaturePattern.FindStringSubmatchIndex(source[i:])
		if sig == nil {
			continue
		}

		bodyStart := i + sig[1]
		terminator := terminatorFor(name)
		term := terminator.FindStringIndex(source[bodyStart:])
		if term == nil {
			// 後ろの ')' を選んでも本体の探索範囲が狭まるだけなので打ち切る
			return FunctionUnit{}, 0, "missing \"end " + name + ";\""
		}

		return FunctionUnit{
			Name:          name,
			RawParams:     source[paramsStart:i],
			RawReturnType: source[i+sig[2] : i+sig[3]],
			RawBody:       source[bodyStart : bodyStart+term[0]],
			Offset:        start,
		}, bodyStart + term[1], ""
	}

	return FunctionUnit{}, 0, "missing \"return TYPE is\" after parameter list"
}

// terminatorFor builds the "end NAME;" matcher. The name is compared
// case-insensitively.
func terminatorFor(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)end\s+` + regexp.QuoteMeta(name) + `;`)
}

func newDiagnostic(source string, offset int, name, reason string) Diagnostic {
	line, column := Position(source, offset)
	return Diagnostic{
		Name:    name,
		Offset:  offset,
		Line:    line,
		Column:  column,
		Message: "function " + name + " skipped: " + reason,
	}
}

// Position converts a byte offset into a 1-indexed line and column.
func Position(source string, offset int) (int, int) {
	if offset > len(source) {
		offset = len(source)
	}
	prefix := source[:offset]
	line := strings.Count(prefix, "\n") + 1
	column := offset - strings.LastIndex(prefix, "\n")
	return line, column
}
