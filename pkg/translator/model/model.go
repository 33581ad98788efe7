// Package model holds the translatable representation of one Ada function.
package model

import (
	"strings"

	"github.com/zurustar/ada2c/pkg/translator/body"
	"github.com/zurustar/ada2c/pkg/translator/ctype"
	"github.com/zurustar/ada2c/pkg/translator/extractor"
	"github.com/zurustar/ada2c/pkg/translator/params"
)

// SymbolPrefix keeps generated names clear of the C math library.
const SymbolPrefix = "ada_"

// Function is one Ada function ready for rendering. Treat it as read-only.
type Function struct {
	Name       string
	Parameters []params.Parameter
	ReturnType string // Ada type name
	Body       string // raw Ada body, kept for idiom matching
}

// New builds a Function from an extracted unit.
func New(unit extractor.FunctionUnit) Function {
	return Function{
		Name:       unit.Name,
		Parameters: params.Parse(unit.RawParams),
		ReturnType: unit.RawReturnType,
		Body:       unit.RawBody,
	}
}

// Symbol returns the C symbol name.
func (f Function) Symbol() string {
	return SymbolPrefix + strings.ToLower(f.Name)
}

// Declaration renders the prototype without the trailing ';'.
func (f Function) Declaration() string {
	cParams := make([]string, 0, len(f.Parameters))
	for _, p := range f.Parameters {
		cParams = append(cParams, ctype.Map(p.DeclaredType).String()+" "+strings.ToLower(p.Name))
	}

	paramList := "void"
	if len(cParams) > 0 {
		paramList = strings.Join(cParams, ", ")
	}

	return ctype.Map(f.ReturnType).String() + " " + f.Symbol() + "(" + paramList + ")"
}

// Definition renders the full C function.
func (f Function) Definition() string {
	return f.Declaration() + " {\n" + f.Translate() + "\n}"
}

// Translate returns the C statement block for the body.
func (f Function) Translate() string {
	return body.Translate(f.Body, f.Parameters)
}

// Signature is a short human readable form, e.g. "Add(A, B) -> Float".
func (f Function) Signature() string {
	return f.Name + "(" + strings.Join(params.Names(f.Parameters), ", ") + ") -> " + f.ReturnType
}
