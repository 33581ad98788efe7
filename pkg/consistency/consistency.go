// Package consistency compares a generated implementation with a
// hand-maintained one. The result is only reported, never fed back into
// translation.
package consistency

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Report is the outcome of a comparison.
type Report struct {
	// Reference is the path of the hand-maintained file.
	Reference string
	// Skipped is set when the reference file does not exist.
	Skipped bool
	// Match is true when the normalized generated text occurs in the reference.
	Match bool
}

// Check reports whether generated, with every generatedHeader reference
// replaced by canonicalHeader, is contained verbatim in existing.
func Check(generated, existing, generatedHeader, canonicalHeader string) bool {
	normalized := generated
	if generatedHeader != "" && generatedHeader != canonicalHeader {
		normalized = strings.ReplaceAll(generated, generatedHeader, canonicalHeader)
	}
	return strings.Contains(existing, normalized)
}

// CheckFile runs Check against the contents of the file at reference.
// A missing reference file yields a skipped report, not an error.
func CheckFile(generated, reference, generatedHeader, canonicalHeader string) (*Report, error) {
	r := &Report{Reference: reference}

	data, err := os.ReadFile(reference)
	if errors.Is(err, fs.ErrNotExist) {
		r.Skipped = true
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read reference %s: %w", reference, err)
	}

	r.Match = Check(generated, string(data), generatedHeader, canonicalHeader)
	return r, nil
}
