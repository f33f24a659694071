package generator

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"slices"
	"strconv"
	"strings"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy/signature"
)

const spyPkgPath = "github.com/AntonStoeckl/sqlspy-go/sqlspy/spy"

var reservedMethods = []string{"SpyObject", "String", "Unwrap"}

// File is the outcome of GenerateFile.
type File struct {
	Source     []byte
	Decorators []string
	Failures   map[string]error
}

// Generator renders decorators into one output package.
// A Generator is not safe for concurrent use.
type Generator struct {
	cfg     Config
	imports *importSet
	targets map[string]string
}

// New creates a Generator for cfg whose decorators wrap results of the interfaces in definitions.
func New(cfg Config, definitions []Definition) *Generator {
	g := &Generator{
		cfg:     cfg,
		imports: newImportSet(cfg.PackagePath),
		targets: make(map[string]string, len(definitions)),
	}

	// fixed names used by the templates
	g.imports.add("context", "context")
	g.imports.add("reflect", "reflect")
	g.imports.add(spyPkgPath, "spy")

	for _, def := range definitions {
		g.targets[def.Interface.ID] = def.TypeName
	}

	return g
}

type decoratorView struct {
	TypeName  string
	Interface string
	Methods   []methodView
	Source    string
}

type methodView struct {
	TypeName     string
	Name         string
	Implements   string
	Params       string
	ResultsDecl  string
	Facet        string
	Fallback     string
	FallbackArgs string
	Start        string
	Trap         string
	Invoke       string
	Values       string
	Wraps        []string
	Void         bool
	ErrorOnly    bool
	ReturnsError bool
}

// Generate renders the decorator of def. The result is a gofmt'ed declaration list without package
// clause and imports.
func (g *Generator) Generate(def Definition) ([]byte, error) {
	view, err := g.render(def)
	if err != nil {
		return nil, err
	}

	return []byte(view.Source), nil
}

func (g *Generator) render(def Definition) (decoratorView, error) {
	view, err := g.decorator(def)
	if err != nil {
		return decoratorView{}, err
	}

	var buf bytes.Buffer
	if err = decoratorTemplate.Execute(&buf, view); err != nil {
		return decoratorView{}, err
	}

	source, err := format.Source(buf.Bytes())
	if err != nil {
		return decoratorView{}, err
	}

	view.Source = string(source)

	return view, nil
}

func (g *Generator) decorator(def Definition) (decoratorView, error) {
	view := decoratorView{
		TypeName:  def.TypeName,
		Interface: g.interfaceName(def.Interface),
	}

	seen := make(map[string]signature.Method)

	add := func(m signature.Method, implements string, facet *Facet) error {
		if slices.Contains(reservedMethods, m.Name) {
			return errors.Join(ErrReservedMethod, fmt.Errorf("%s.%s", def.Interface.ID, m.Name))
		}

		if existing, ok := seen[m.Name]; ok {
			if existing.Signature() == m.Signature() {
				return nil
			}

			return errors.Join(ErrMethodConflict, fmt.Errorf("%s and %s", existing.Signature(), m.Signature()))
		}

		if facet != nil && facet.Fallbacks[m.Name] == "" {
			return errors.Join(ErrMissingFallback, fmt.Errorf("%s.%s on %s", implements, m.Name, def.TypeName))
		}

		seen[m.Name] = m
		view.Methods = append(view.Methods, g.method(def, m, implements, facet))

		return nil
	}

	for _, m := range def.Interface.Flatten() {
		if err := add(m, view.Interface, nil); err != nil {
			return decoratorView{}, err
		}
	}

	for i := range def.Facets {
		facet := &def.Facets[i]
		facetName := g.interfaceName(facet.Interface)

		for _, m := range facet.Interface.Flatten() {
			if err := add(m, facetName, facet); err != nil {
				return decoratorView{}, err
			}
		}
	}

	return view, nil
}

func (g *Generator) method(def Definition, m signature.Method, implements string, facet *Facet) methodView {
	view := methodView{
		TypeName:     def.TypeName,
		Name:         m.Name,
		Implements:   implements,
		Void:         m.Void(),
		ReturnsError: m.ReturnsError(),
	}
	view.ErrorOnly = view.ReturnsError && len(m.Results) == 1

	params := make([]string, len(m.Params))
	callArgs := make([]string, len(m.Params))
	var described []string
	ctxArg := ""

	for i, p := range m.Params {
		name := "a" + strconv.Itoa(i)
		typ := g.imports.typeString(p.Type)
		callArgs[i] = name

		if m.Variadic && i == len(m.Params)-1 {
			typ = "..." + strings.TrimPrefix(typ, "[]")
			callArgs[i] = name + "..."
		}

		params[i] = name + " " + typ

		if p.IsContext() {
			if ctxArg == "" {
				ctxArg = name
			}

			continue
		}

		described = append(described, name)
	}

	view.Params = strings.Join(params, ", ")

	describedArgs := ""
	if len(described) > 0 {
		describedArgs = ", " + strings.Join(described, ", ")
	}

	if ctxArg != "" {
		view.Start = "StartContext(" + ctxArg + ", " + strconv.Quote(m.Name) + describedArgs + ")"
	} else {
		view.Start = "Start(" + strconv.Quote(m.Name) + describedArgs + ")"
	}

	if primary := m.PrimaryParam(); def.Trap && primary >= 0 && m.Params[primary].IsText() {
		view.Trap = "a" + strconv.Itoa(primary)
		if m.Params[primary].Type.String() != "string" {
			view.Trap = "string(" + view.Trap + ")"
		}
	}

	results := make([]string, len(m.Results))
	var values []string

	for i, r := range m.Results {
		results[i] = g.imports.typeString(r.Type)

		if view.ReturnsError && i == len(m.Results)-1 {
			continue
		}

		value := "r" + strconv.Itoa(i)
		values = append(values, value)

		if target, ok := g.targets[r.NamedID()]; ok {
			view.Wraps = append(view.Wraps, value+" = wrap"+target+"(d, "+value+")")
		}
	}

	view.Values = strings.Join(values, ", ")

	switch len(results) {
	case 0:
	case 1:
		view.ResultsDecl = " " + results[0]
	default:
		view.ResultsDecl = " (" + strings.Join(results, ", ") + ")"
	}

	receiver := "d.wrapped"
	if facet != nil {
		receiver = "w"
		view.Facet = implements
		view.Fallback = g.imports.reference(facet.Fallbacks[m.Name])

		if len(callArgs) > 0 {
			view.FallbackArgs = ", " + strings.Join(callArgs, ", ")
		}
	}

	view.Invoke = receiver + "." + m.Name + "(" + strings.Join(callArgs, ", ") + ")"

	return view
}

func (g *Generator) interfaceName(model *signature.Interface) string {
	if model.Type != nil {
		return g.imports.typeString(model.Type)
	}

	return g.imports.reference(model.ID)
}

// GenerateFile renders all decorators of cfg that can be generated from models into one gofmt'ed file.
// Decorators that fail are left out and reported in File.Failures. Results of a failed decorator's
// interface are not wrapped by the others.
func GenerateFile(cfg Config, models signature.Models) (File, error) {
	if err := cfg.Validate(); err != nil {
		return File{}, err
	}

	if cfg.Formatter == "" {
		cfg.Formatter = DefaultFormatter
	}

	definitions, failures := Definitions(cfg, models)

	for {
		g := New(cfg, definitions)

		views := make([]decoratorView, 0, len(definitions))
		var failed []string

		for _, def := range definitions {
			view, err := g.render(def)
			if err != nil {
				failures[def.TypeName] = err
				failed = append(failed, def.TypeName)

				continue
			}

			views = append(views, view)
		}

		if len(failed) > 0 {
			definitions = slices.DeleteFunc(definitions, func(def Definition) bool {
				return slices.Contains(failed, def.TypeName)
			})

			continue // the others must not wrap into a decorator that does not exist
		}

		if len(views) == 0 {
			return File{Failures: failures}, ErrNothingGenerated
		}

		source, err := g.file(views)
		if err != nil {
			return File{}, err
		}

		file := File{Source: source, Failures: failures}
		for _, view := range views {
			file.Decorators = append(file.Decorators, view.TypeName)
		}

		return file, nil
	}
}

type fileView struct {
	Package     string
	Imports     []importSpec
	ObjectTag   string
	DurationTag string
	Trap        bool
	Formatter   string
	Decorators  []decoratorView
}

func (g *Generator) file(views []decoratorView) ([]byte, error) {
	formatter := g.imports.reference(g.cfg.Formatter)

	view := fileView{
		Package:     g.cfg.Package,
		Imports:     g.imports.specs(),
		ObjectTag:   g.cfg.ObjectTag,
		DurationTag: g.cfg.DurationTag,
		Trap:        g.cfg.Trap,
		Formatter:   formatter,
		Decorators:  views,
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, view); err != nil {
		return nil, err
	}

	return format.Source(buf.Bytes())
}
