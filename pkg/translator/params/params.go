// Package params parses Ada formal parameter lists such as "A, B : Float; N : Integer".
package params

import "strings"

// Parameter is one formal parameter. DeclaredType is the Ada type text as written.
type Parameter struct {
	Name         string
	DeclaredType string
}

// Parse splits raw into parameters, preserving declaration order.
// Groups are separated by ';' and a group without ':' is dropped.
func Parse(raw string) []Parameter {
	params := []Parameter{}
	if strings.TrimSpace(raw) == "" {
		return params
	}

	for _, group := range strings.Split(raw, ";") {
		namesPart, typePart, ok := strings.Cut(group, ":")
		if !ok {
			continue
		}
		declaredType := strings.TrimSpace(typePart)
		for _, name := range strings.Split(namesPart, ",") {
			params = append(params, Parameter{
				Name:         strings.TrimSpace(name),
				DeclaredType: declaredType,
			})
		}
	}

	return params
}

// Names returns the parameter names in order.
func Names(params []Parameter) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}
