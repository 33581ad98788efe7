// Package translator provides the Ada to C translation pipeline.
// This file defines the Diagnostic type for reporting skipped definitions.
package translator

import (
	"fmt"
	"strings"

	"github.com/zurustar/ada2c/pkg/translator/extractor"
)

// Diagnostic reports a function header that was skipped during extraction.
// Diagnostics are informational: the translation result is the same whether
// or not anyone looks at them.
type Diagnostic struct {
	// File is the source file name, empty for in-memory sources.
	File string

	// Function is the name found in the skipped header.
	Function string

	// Line is the 1-indexed line number of the "function" keyword.
	Line int

	// Column is the 1-indexed column number of the "function" keyword.
	Column int

	// Message is the human-readable description.
	Message string

	// Context contains the source code around the header,
	// with a pointer (^) indicating the column.
	Context string
}

// Error implements the error interface so diagnostics can be logged or
// collected alongside other errors.
func (d *Diagnostic) Error() string {
	loc := fmt.Sprintf("line %d, column %d", d.Line, d.Column)
	if d.File != "" {
		loc = d.File + ": " + loc
	}
	if d.Context != "" {
		return fmt.Sprintf("%s: %s\n%s", loc, d.Message, d.Context)
	}
	return fmt.Sprintf("%s: %s", loc, d.Message)
}

func newDiagnostic(file, source string, d extractor.Diagnostic) *Diagnostic {
	return &Diagnostic{
		File:     file,
		Function: d.Name,
		Line:     d.Line,
		Column:   d.Column,
		Message:  d.Message,
		Context:  GenerateErrorContext(source, d.Line, d.Column),
	}
}

// GenerateErrorContext generates source code context around a location.
// It includes 2 lines before and 2 lines after the line, with line numbers
// and a pointer (^) indicating the column.
//
// Example output:
//
//	  1 | package body Library is
//	  2 |
//	> 3 | function Add(A, B : Float) return Float is
//	      ^
//	  4 | begin
//	  5 |    return A + B;
func GenerateErrorContext(source string, line, column int) string {
	if source == "" || line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}

	start := line - 3
	if start < 0 {
		start = 0
	}
	end := line + 2
	if end > len(lines) {
		end = len(lines)
	}

	var buf strings.Builder

	lineNumWidth := len(fmt.Sprintf("%d", end))

	for i := start; i < end; i++ {
		lineNum := i + 1
		lineContent := strings.TrimRight(lines[i], "\r")

		if lineNum == line {
			buf.WriteString(fmt.Sprintf("> %*d | %s\n", lineNumWidth, lineNum, lineContent))
			// "> " + 行番号 + " | " の幅だけ字下げする
			pointerIndent := 2 + lineNumWidth + 3
			if column > 0 {
				buf.WriteString(fmt.Sprintf("%s%s^\n", strings.Repeat(" ", pointerIndent), strings.Repeat(" ", column-1)))
			} else {
				buf.WriteString(fmt.Sprintf("%s^\n", strings.Repeat(" ", pointerIndent)))
			}
		} else {
			buf.WriteString(fmt.Sprintf("  %*d | %s\n", lineNumWidth, lineNum, lineContent))
		}
	}

	return buf.String()
}
