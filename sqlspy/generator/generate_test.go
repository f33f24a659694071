package generator_test

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy/generator"
	"github.com/AntonStoeckl/sqlspy-go/sqlspy/signature"
)

const fixtureSource = `package fixture

import "context"

type Query string

type Conn interface {
	Prepare(query Query) (Stmt, error)
	Begin() (Tx, error)
	Close() error
}

type Stmt interface {
	Close() error
	Exec(args ...any) (Result, error)
	NumInput() int
}

type Result interface {
	RowsAffected() (int64, error)
}

type Tx interface {
	Commit() error
}

type PrepareContexter interface {
	PrepareContext(ctx context.Context, query string) (Stmt, error)
}

type Pinger interface {
	Ping(ctx context.Context)
}

type Closer interface {
	Close() error
}

type Conflicting interface {
	Close()
}

type Named interface {
	String() string
}
`

const fixturePath = "example.com/fixture"

func givenModels(t *testing.T) signature.Models {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "fixture.go", fixtureSource, parser.SkipObjectResolution)
	require.NoError(t, err)

	pkg, err := (&types.Config{Importer: importer.Default()}).Check(fixturePath, fset, []*ast.File{file}, nil)
	require.NoError(t, err)

	models := signature.Models{
		Interfaces: make(map[string]*signature.Interface),
		Failures:   make(map[string]error),
	}

	for _, name := range []string{"Conn", "Stmt", "Result", "Tx", "PrepareContexter", "Pinger", "Closer", "Conflicting", "Named"} {
		model, buildErr := signature.FromPackage(pkg, name)
		require.NoError(t, buildErr)
		models.Interfaces[fixturePath+"."+name] = model
	}

	return models
}

func givenConfig() generator.Config {
	return generator.Config{
		Package:     "spyfixture",
		PackagePath: "example.com/spyfixture",
		Formatter:   generator.DefaultFormatter,
		ObjectTag:   "spy_id",
		DurationTag: "spy_duration_ms",
		Trap:        true,
		Decorators: []generator.DecoratorConfig{
			{
				Name:      "Conn",
				Interface: fixturePath + ".Conn",
				Facets: []generator.FacetConfig{
					{
						Interface: fixturePath + ".PrepareContexter",
						Fallbacks: map[string]string{"PrepareContext": "connPrepareContextFallback"},
					},
					{
						Interface: fixturePath + ".Pinger",
						Fallbacks: map[string]string{"Ping": "example.com/fallbacks.Ping"},
					},
					{Interface: fixturePath + ".Closer"},
				},
			},
			{Name: "Stmt", Interface: fixturePath + ".Stmt"},
			{Name: "Result", Interface: fixturePath + ".Result"},
			{Name: "Tx", Interface: fixturePath + ".Tx"},
		},
	}
}

// methodsOf returns "Receiver.Method" for every method declared in src.
func methodsOf(t *testing.T, src []byte) []string {
	t.Helper()

	file, err := parser.ParseFile(token.NewFileSet(), "generated.go", src, 0)
	require.NoError(t, err, string(src))

	var methods []string
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil {
			continue
		}

		star, isStar := fn.Recv.List[0].Type.(*ast.StarExpr)
		require.True(t, isStar)
		methods = append(methods, star.X.(*ast.Ident).Name+"."+fn.Name.Name)
	}

	return methods
}

func Test_GenerateFile_EmitsOneDecoratorPerInterface(t *testing.T) {
	file, err := generator.GenerateFile(givenConfig(), givenModels(t))

	require.NoError(t, err)
	assert.Empty(t, file.Failures)
	assert.Equal(t, []string{"Conn", "Stmt", "Result", "Tx"}, file.Decorators)

	methods := methodsOf(t, file.Source)
	assert.Subset(t, methods, []string{
		"Conn.Prepare", "Conn.Begin", "Conn.Close", "Conn.PrepareContext", "Conn.Ping",
		"Conn.SpyObject", "Conn.String", "Conn.Unwrap",
		"Stmt.Close", "Stmt.Exec", "Stmt.NumInput",
		"Result.RowsAffected",
		"Tx.Commit",
	})

	closeCount := 0
	for _, m := range methods {
		if m == "Conn.Close" {
			closeCount++
		}
	}
	assert.Equal(t, 1, closeCount, "a facet method with an identical signature is not generated twice")
}

func Test_GenerateFile_WritesHeaderImportsAndRegistrations(t *testing.T) {
	file, err := generator.GenerateFile(givenConfig(), givenModels(t))
	require.NoError(t, err)

	src := string(file.Source)

	assert.Contains(t, src, "// Code generated by sqlspygen. DO NOT EDIT.")
	assert.Contains(t, src, "package spyfixture")
	assert.Contains(t, src, `"example.com/fixture"`)
	assert.Contains(t, src, `"example.com/fallbacks"`)
	assert.Contains(t, src, `"github.com/AntonStoeckl/sqlspy-go/sqlspy"`)
	assert.Contains(t, src, `Format:      sqlspy.FormatArg,`)
	assert.Contains(t, src, `Decorators.Register(reflect.TypeFor[fixture.Conn](), "Conn", func(t *spy.Tracer, v any) any {`)
	assert.Contains(t, src, `return NewConn(t, v.(fixture.Conn))`)
}

func Test_GenerateFile_FollowsCallProtocol(t *testing.T) {
	file, err := generator.GenerateFile(givenConfig(), givenModels(t))
	require.NoError(t, err)

	src := string(file.Source)

	// description, trap on a named string type, rewrap of a decorated result
	assert.Contains(t, src, `call := d.obj.Start("Prepare", a0)`)
	assert.Contains(t, src, `call.Trap(string(a0))`)
	assert.Contains(t, src, `r0 = wrapStmt(d, r0)`)
	assert.Contains(t, src, `r0 = wrapTx(d, r0)`)
	assert.Contains(t, src, `r0 = wrapResult(d, r0)`)
	assert.Contains(t, src, `func wrapStmt(parent spy.Decorated, v fixture.Stmt) fixture.Stmt {`)
	assert.Contains(t, src, `return newStmt(spy.NewChildObject(parent, "Stmt"), v)`)

	// context parameters drive the call context and stay out of the description
	assert.Contains(t, src, `call := d.obj.StartContext(a0, "PrepareContext", a1)`)
	assert.Contains(t, src, `call.Trap(a1)`)
	assert.Contains(t, src, `call := d.obj.StartContext(a0, "Ping")`)

	// facets fall back when the wrapped value lacks them
	assert.Contains(t, src, `w, ok := d.wrapped.(fixture.PrepareContexter)`)
	assert.Contains(t, src, `return connPrepareContextFallback(d, a0, a1)`)
	assert.Contains(t, src, `fallbacks.Ping(d, a0)`)

	// variadic parameters are forwarded unchanged
	assert.Contains(t, src, `func (d *Stmt) Exec(a0 ...any) (fixture.Result, error)`)
	assert.Contains(t, src, `r0, err := d.wrapped.Exec(a0...)`)

	// results without error, and calls without value
	assert.Contains(t, src, `r0 := d.wrapped.NumInput()`)
	assert.Contains(t, src, `if err := d.wrapped.Commit(); err != nil {`)
	assert.Contains(t, src, `call.Done()`)
	assert.Contains(t, src, `defer call.Recover()`)
}

func Test_GenerateFile_IsolatesFailingDecorators(t *testing.T) {
	cfg := givenConfig()
	cfg.Decorators = append(cfg.Decorators,
		generator.DecoratorConfig{Name: "Named", Interface: fixturePath + ".Named"},
		generator.DecoratorConfig{Name: "Missing", Interface: fixturePath + ".Missing"},
		generator.DecoratorConfig{
			Name:      "Broken",
			Interface: fixturePath + ".Closer",
			Facets: []generator.FacetConfig{
				{Interface: fixturePath + ".Conflicting", Fallbacks: map[string]string{"Close": "x"}},
			},
		},
	)

	file, err := generator.GenerateFile(cfg, givenModels(t))

	require.NoError(t, err)
	assert.Equal(t, []string{"Conn", "Stmt", "Result", "Tx"}, file.Decorators)
	require.Len(t, file.Failures, 3)
	assert.ErrorIs(t, file.Failures["Named"], generator.ErrReservedMethod)
	assert.ErrorIs(t, file.Failures["Missing"], generator.ErrInterfaceNotLoaded)
	assert.ErrorIs(t, file.Failures["Broken"], generator.ErrMethodConflict)
	assert.NotEmpty(t, methodsOf(t, file.Source))
}

func Test_GenerateFile_DoesNotWrapIntoFailedDecorators(t *testing.T) {
	cfg := givenConfig()
	cfg.Decorators[1].Facets = []generator.FacetConfig{{Interface: fixturePath + ".Pinger"}}

	file, err := generator.GenerateFile(cfg, givenModels(t))

	require.NoError(t, err)
	assert.ErrorIs(t, file.Failures["Stmt"], generator.ErrMissingFallback)
	assert.NotContains(t, string(file.Source), "wrapStmt")
	assert.Contains(t, string(file.Source), "r0 = wrapTx(d, r0)")
}

func Test_GenerateFile_ShouldFail_WhenNothingCanBeGenerated(t *testing.T) {
	cfg := givenConfig()
	cfg.Decorators = []generator.DecoratorConfig{{Name: "Named", Interface: fixturePath + ".Named"}}

	file, err := generator.GenerateFile(cfg, givenModels(t))

	assert.ErrorIs(t, err, generator.ErrNothingGenerated)
	assert.ErrorIs(t, file.Failures["Named"], generator.ErrReservedMethod)
}

func Test_GenerateFile_SkipsTrap_WhenDisabledForDecorator(t *testing.T) {
	disabled := false
	cfg := givenConfig()
	cfg.Decorators[0].Trap = &disabled

	file, err := generator.GenerateFile(cfg, givenModels(t))

	require.NoError(t, err)
	assert.NotContains(t, string(file.Source), "call.Trap(")
}

func Test_Generate_RendersSingleDecorator(t *testing.T) {
	cfg := givenConfig()
	definitions, failures := generator.Definitions(cfg, givenModels(t))
	require.Empty(t, failures)

	source, err := generator.New(cfg, definitions).Generate(definitions[3])

	require.NoError(t, err)
	assert.Contains(t, string(source), "type Tx struct {")
	assert.Contains(t, string(source), "func NewTx(t *spy.Tracer, w fixture.Tx) *Tx {")
	assert.NotContains(t, string(source), "package ")
}

func Test_Definitions_CarryPerDecoratorSettingsOnly(t *testing.T) {
	disabled := false
	cfg := givenConfig()
	cfg.Decorators[1].Trap = &disabled
	models := givenModels(t)

	definitions, failures := generator.Definitions(cfg, models)

	require.Empty(t, failures)
	require.Len(t, definitions, 4)
	assert.Equal(t, generator.Definition{
		Interface: models.Interfaces[fixturePath+".Stmt"],
		TypeName:  "Stmt",
		Trap:      false,
	}, definitions[1])
	assert.True(t, definitions[0].Trap)
	assert.Len(t, definitions[0].Facets, 3)
}

func Test_GenerateFile_TakesFileSettingsFromConfig(t *testing.T) {
	cfg := givenConfig()
	cfg.ObjectTag = "conn_id"
	cfg.DurationTag = "elapsed_ms"

	file, err := generator.GenerateFile(cfg, givenModels(t))

	require.NoError(t, err)
	assert.Contains(t, string(file.Source), `ObjectTag:   "conn_id",`)
	assert.Contains(t, string(file.Source), `DurationTag: "elapsed_ms",`)
}
