package generator

import (
	"text/template"
)

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by sqlspygen. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
{{- if .Break}}
{{end}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)

// GeneratedSettings are the decorator settings this file was generated with.
var GeneratedSettings = spy.Settings{
	ObjectTag:   {{printf "%q" .ObjectTag}},
	DurationTag: {{printf "%q" .DurationTag}},
	Trap:        {{.Trap}},
	Format:      {{.Formatter}},
}

// Decorators maps every decorated interface to its decorator constructor.
var Decorators = spy.NewTable()

func init() {
{{- range .Decorators}}
	Decorators.Register(reflect.TypeFor[{{.Interface}}](), {{printf "%q" .TypeName}}, func(t *spy.Tracer, v any) any {
		return New{{.TypeName}}(t, v.({{.Interface}}))
	})
{{- end}}
}
{{range .Decorators}}
{{.Source}}
{{- end}}
`))

var decoratorTemplate = template.Must(template.New("decorator").Parse(`
// {{.TypeName}} decorates {{.Interface}}.
type {{.TypeName}} struct {
	obj     *spy.Object
	wrapped {{.Interface}}
}

// New{{.TypeName}} decorates w and logs the creation.
func New{{.TypeName}}(t *spy.Tracer, w {{.Interface}}) *{{.TypeName}} {
	return new{{.TypeName}}(spy.NewObject(t, {{printf "%q" .TypeName}}), w)
}

func new{{.TypeName}}(obj *spy.Object, w {{.Interface}}) *{{.TypeName}} {
	d := &{{.TypeName}}{obj: obj, wrapped: w}
	d.obj.Created(context.Background())

	return d
}

func wrap{{.TypeName}}(parent spy.Decorated, v {{.Interface}}) {{.Interface}} {
	if v == nil {
		return nil
	}

	if d, ok := v.(*{{.TypeName}}); ok {
		return d
	}

	return new{{.TypeName}}(spy.NewChildObject(parent, {{printf "%q" .TypeName}}), v)
}

// SpyObject returns the identity the decorator logs under.
func (d *{{.TypeName}}) SpyObject() *spy.Object { return d.obj }

// String returns the object tag.
func (d *{{.TypeName}}) String() string { return d.obj.String() }

// Unwrap returns the decorated value.
func (d *{{.TypeName}}) Unwrap() {{.Interface}} { return d.wrapped }
{{range .Methods}}
{{template "method" .}}
{{end}}
{{- define "method"}}
// {{.Name}} implements {{.Implements}}.
func (d *{{.TypeName}}) {{.Name}}({{.Params}}){{.ResultsDecl}} {
{{- if .Facet}}
	w, ok := d.wrapped.({{.Facet}})
	if !ok {
{{- if .Void}}
		{{.Fallback}}(d{{.FallbackArgs}})

		return
{{- else}}
		return {{.Fallback}}(d{{.FallbackArgs}})
{{- end}}
	}
{{end}}
	call := d.obj.{{.Start}}
	defer call.Recover()
{{- if .Trap}}
	call.Trap({{.Trap}})
{{- end}}
{{if .ErrorOnly}}
	if err := {{.Invoke}}; err != nil {
		call.Fail(err)
		return err
	}

	call.Done()

	return nil
{{- else if .Void}}
	{{.Invoke}}
	call.Done()
{{- else if .ReturnsError}}
	{{.Values}}, err := {{.Invoke}}
	if err != nil {
		call.Fail(err)
		return {{.Values}}, err
	}
{{range .Wraps}}
	{{.}}
{{- end}}
	call.Return({{.Values}})

	return {{.Values}}, nil
{{- else}}
	{{.Values}} := {{.Invoke}}
{{- range .Wraps}}
	{{.}}
{{- end}}
	call.Return({{.Values}})

	return {{.Values}}
{{- end}}
}
{{- end}}
`))
