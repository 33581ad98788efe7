// Package codegen renders the C header and implementation files.
package codegen

import (
	"strings"

	"github.com/zurustar/ada2c/pkg/translator/model"
)

// Options controls the file names that appear inside the artifacts.
type Options struct {
	// HeaderName is the name the implementation includes; the include guard
	// is derived from it.
	HeaderName string
	// Generator is named in the provenance comment.
	Generator string
}

// DefaultOptions returns the names used by the Ada math library build.
func DefaultOptions() Options {
	return Options{
		HeaderName: "ada_math.h",
		Generator:  "ada2c",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.HeaderName == "" {
		o.HeaderName = d.HeaderName
	}
	if o.Generator == "" {
		o.Generator = d.Generator
	}
	return o
}

// Guard derives an include guard from a header file name: "ada_math.h" -> "ADA_MATH_H".
func Guard(headerName string) string {
	var b strings.Builder
	for i, r := range strings.ToUpper(headerName) {
		switch {
		case r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Header renders the header file: include guard, C linkage block and one
// prototype per function in input order.
func Header(fns []model.Function, opts Options) string {
	opts = opts.withDefaults()
	guard := Guard(opts.HeaderName)

	var b strings.Builder
	b.WriteString("#ifndef " + guard + "\n")
	b.WriteString("#define " + guard + "\n")
	b.WriteString("\n")
	b.WriteString("#ifdef __cplusplus\n")
	b.WriteString("extern \"C\" {\n")
	b.WriteString("#endif\n")
	b.WriteString("\n")

	for _, f := range fns {
		b.WriteString(f.Declaration() + ";\n")
	}

	b.WriteString("\n")
	b.WriteString("#ifdef __cplusplus\n")
	b.WriteString("}\n")
	b.WriteString("#endif\n")
	b.WriteString("\n")
	b.WriteString("#endif /* " + guard + " */\n")
	return b.String()
}

// Implementation renders the C source file: fixed preamble followed by each
// definition and a blank line.
func Implementation(fns []model.Function, opts Options) string {
	opts = opts.withDefaults()

	var b strings.Builder
	b.WriteString(Preamble(opts))
	for _, f := range fns {
		b.WriteString(f.Definition() + "\n\n")
	}
	return b.String()
}

// Preamble is the part of the implementation that precedes the definitions.
func Preamble(opts Options) string {
	opts = opts.withDefaults()
	return "#include \"" + opts.HeaderName + "\"\n" +
		"#include <math.h>\n" +
		"\n" +
		"// Auto-generated from Ada source - DO NOT EDIT MANUALLY\n" +
		"// Generated by " + opts.Generator + "\n" +
		"\n"
}
