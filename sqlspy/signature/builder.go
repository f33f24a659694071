package signature

import (
	"errors"
	"fmt"
	"go/types"
)

// FromNamed builds the model of a named interface type, including its embedded interfaces.
func FromNamed(named *types.Named) (*Interface, error) {
	return fromNamed(named, make(map[string]*Interface))
}

// FromPackage builds the model of the interface called name declared in pkg.
func FromPackage(pkg *types.Package, name string) (*Interface, error) {
	obj := pkg.Scope().Lookup(name)
	if obj == nil {
		return nil, errors.Join(ErrTypeNotFound, fmt.Errorf("%s.%s", pkg.Path(), name))
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil, errors.Join(ErrNotInterface, fmt.Errorf("%s.%s", pkg.Path(), name))
	}

	return FromNamed(named)
}

func fromNamed(named *types.Named, cache map[string]*Interface) (*Interface, error) {
	id := typeID(named)
	if model, ok := cache[id]; ok {
		return model, nil
	}

	iface, ok := named.Underlying().(*types.Interface)
	if !ok {
		return nil, errors.Join(ErrNotInterface, fmt.Errorf("%s", id))
	}

	model := &Interface{
		ID:   id,
		Name: named.Obj().Name(),
		Type: named,
	}

	if pkg := named.Obj().Pkg(); pkg != nil {
		model.PkgPath = pkg.Path()
	}

	for i := range iface.NumExplicitMethods() {
		model.Own = append(model.Own, methodOf(iface.ExplicitMethod(i), id))
	}

	for i := range iface.NumEmbeddeds() {
		embedded, isNamed := iface.EmbeddedType(i).(*types.Named)
		if !isNamed || !types.IsInterface(embedded) {
			return nil, errors.Join(ErrUnsupportedEmbed, fmt.Errorf("%s embeds %s", id, iface.EmbeddedType(i)))
		}

		parent, err := fromNamed(embedded, cache)
		if err != nil {
			return nil, err
		}

		model.Parents = append(model.Parents, parent)
	}

	cache[id] = model

	return model, nil
}

func methodOf(fn *types.Func, owner string) Method {
	sig := fn.Type().(*types.Signature)

	m := Method{
		Name:     fn.Name(),
		Variadic: sig.Variadic(),
		Owner:    owner,
	}

	for i := range sig.Params().Len() {
		v := sig.Params().At(i)
		m.Params = append(m.Params, Param{Name: v.Name(), Type: v.Type(), TypeString: types.TypeString(v.Type(), nil)})
	}

	for i := range sig.Results().Len() {
		v := sig.Results().At(i)
		m.Results = append(m.Results, Result{Type: v.Type(), TypeString: types.TypeString(v.Type(), nil)})
	}

	return m
}

func typeID(named *types.Named) string {
	if pkg := named.Obj().Pkg(); pkg != nil {
		return pkg.Path() + "." + named.Obj().Name()
	}

	return named.Obj().Name()
}
