package signature

import (
	"go/types"
	"strings"
)

// Param is one method parameter.
type Param struct {
	Name       string     `json:"name,omitempty"`
	TypeString string     `json:"type"`
	Type       types.Type `json:"-"`
}

// IsContext reports whether the parameter is a context.Context.
func (p Param) IsContext() bool {
	return isContext(p.Type)
}

// IsText reports whether the parameter's underlying type is string.
func (p Param) IsText() bool {
	if p.Type == nil {
		return false
	}

	basic, ok := p.Type.Underlying().(*types.Basic)

	return ok && basic.Info()&types.IsString != 0
}

// Result is one method result.
type Result struct {
	TypeString string     `json:"type"`
	Type       types.Type `json:"-"`
}

// IsError reports whether the result is the predeclared error type.
func (r Result) IsError() bool {
	return r.Type != nil && types.Identical(r.Type, types.Universe.Lookup("error").Type())
}

// NamedID returns "import/path.Name" for results of a named type and "" otherwise.
func (r Result) NamedID() string {
	named, ok := r.Type.(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return ""
	}

	return named.Obj().Pkg().Path() + "." + named.Obj().Name()
}

// Method is an immutable method signature.
// A trailing error result stands for the declared failure of the method.
type Method struct {
	Name     string   `json:"name"`
	Params   []Param  `json:"params"`
	Results  []Result `json:"results"`
	Variadic bool     `json:"variadic,omitempty"`
	Owner    string   `json:"owner"`
}

// Key identifies the method inside a flattened set: its name and parameter types.
func (m Method) Key() string {
	var sb strings.Builder
	sb.WriteString(m.Name)
	sb.WriteByte('(')

	for i, p := range m.Params {
		if i > 0 {
			sb.WriteByte(',')
		}

		if m.Variadic && i == len(m.Params)-1 {
			sb.WriteString("...")
		}

		sb.WriteString(p.TypeString)
	}

	sb.WriteByte(')')

	return sb.String()
}

// Signature is Key followed by the result types.
func (m Method) Signature() string {
	results := make([]string, len(m.Results))
	for i, r := range m.Results {
		results[i] = r.TypeString
	}

	return m.Key() + " (" + strings.Join(results, ",") + ")"
}

// ReturnsError reports whether the last result is an error.
func (m Method) ReturnsError() bool {
	return len(m.Results) > 0 && m.Results[len(m.Results)-1].IsError()
}

// Void reports whether the method has no results.
func (m Method) Void() bool {
	return len(m.Results) == 0
}

// ContextParam returns the index of the first context.Context parameter or -1.
func (m Method) ContextParam() int {
	for i, p := range m.Params {
		if p.IsContext() {
			return i
		}
	}

	return -1
}

// PrimaryParam returns the index of the first parameter that is not a context.Context or -1.
func (m Method) PrimaryParam() int {
	for i, p := range m.Params {
		if !p.IsContext() {
			return i
		}
	}

	return -1
}

// Interface models one interface definition.
type Interface struct {
	ID      string       `json:"id"`
	PkgPath string       `json:"pkgPath"`
	Name    string       `json:"name"`
	Own     []Method     `json:"own"`
	Parents []*Interface `json:"parents,omitempty"`
	Type    *types.Named `json:"-"`
}

// Flatten returns the own methods followed by the methods of the parents, depth-first.
// A key appears once, taken from the first (most-derived) declaration encountered.
func (i *Interface) Flatten() []Method {
	seen := make(map[string]struct{})
	methods := make([]Method, 0, len(i.Own))

	var walk func(*Interface)
	walk = func(current *Interface) {
		for _, m := range current.Own {
			key := m.Key()
			if _, dup := seen[key]; dup {
				continue
			}

			seen[key] = struct{}{}
			methods = append(methods, m)
		}

		for _, parent := range current.Parents {
			walk(parent)
		}
	}
	walk(i)

	return methods
}

// Lookup returns the flattened method with the given name.
func (i *Interface) Lookup(name string) (Method, bool) {
	for _, m := range i.Flatten() {
		if m.Name == name {
			return m, true
		}
	}

	return Method{}, false
}

func isContext(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()

	return obj.Pkg() != nil && obj.Pkg().Path() == "context" && obj.Name() == "Context"
}
