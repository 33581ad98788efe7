// Package ctype maps Ada type names to C value types.
package ctype

// Type is a C value type produced by the mapper.
type Type int

const (
	// Float is also the mapping for every unrecognized Ada type.
	Float Type = iota
	Int
	Bool
	CharPtr
)

var names = [...]string{
	Float:   "float",
	Int:     "int",
	Bool:    "bool",
	CharPtr: "char*",
}

// String returns the C spelling of the type.
func (t Type) String() string {
	if t < 0 || int(t) >= len(names) {
		return names[Float]
	}
	return names[t]
}

// adaTypes is the fixed Ada -> C table. Lookup is exact and case-sensitive.
var adaTypes = map[string]Type{
	"Float":   Float,
	"Integer": Int,
	"Boolean": Bool,
	"String":  CharPtr,
}

// Map returns the C type for an Ada type name, defaulting to Float.
func Map(adaType string) Type {
	t, _ := Lookup(adaType)
	return t
}

// Lookup is Map with an extra result reporting whether adaType is in the table.
func Lookup(adaType string) (Type, bool) {
	t, ok := adaTypes[adaType]
	if !ok {
		return Float, false
	}
	return t, true
}
