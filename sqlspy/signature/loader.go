package signature

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/tools/go/packages"
)

const loadMode = packages.NeedName | packages.NeedTypes | packages.NeedTypesInfo

// Models is the outcome of a Load call.
// A reference that could not be modelled appears in Failures and not in Interfaces.
type Models struct {
	Interfaces map[string]*Interface
	Failures   map[string]error
}

// Load loads the referenced interfaces. A reference has the form "import/path.Name",
// e.g. "database/sql/driver.Conn". dir is the working directory for package resolution, "" meaning
// the current one.
//
// The returned error is only set when the package loader itself fails; per-reference problems are
// reported in Models.Failures so that one broken reference does not hide the others.
func Load(ctx context.Context, dir string, refs ...string) (Models, error) {
	models := Models{
		Interfaces: make(map[string]*Interface),
		Failures:   make(map[string]error),
	}

	byPkg := make(map[string][]string)
	var paths []string

	for _, ref := range refs {
		pkgPath, _, err := SplitReference(ref)
		if err != nil {
			models.Failures[ref] = err
			continue
		}

		if _, known := byPkg[pkgPath]; !known {
			paths = append(paths, pkgPath)
		}

		byPkg[pkgPath] = append(byPkg[pkgPath], ref)
	}

	if len(paths) == 0 {
		return models, nil
	}

	cfg := &packages.Config{Context: ctx, Dir: dir, Mode: loadMode}

	pkgs, err := packages.Load(cfg, paths...)
	if err != nil {
		return models, errors.Join(ErrPackageLoadFailed, err)
	}

	loaded := make(map[string]*packages.Package, len(pkgs))
	for _, pkg := range pkgs {
		loaded[pkg.PkgPath] = pkg
	}

	for _, pkgPath := range paths {
		pkg, ok := loaded[pkgPath]
		for _, ref := range byPkg[pkgPath] {
			switch {
			case !ok || pkg.Types == nil:
				models.Failures[ref] = errors.Join(ErrPackageLoadFailed, fmt.Errorf("%s", pkgPath))
			case len(pkg.Errors) > 0:
				models.Failures[ref] = errors.Join(ErrPackageLoadFailed, pkg.Errors[0])
			default:
				_, name, _ := SplitReference(ref)

				model, buildErr := FromPackage(pkg.Types, name)
				if buildErr != nil {
					models.Failures[ref] = buildErr
					continue
				}

				models.Interfaces[ref] = model
			}
		}
	}

	return models, nil
}

// SplitReference splits "import/path.Name" into its package path and type name.
func SplitReference(ref string) (pkgPath, name string, err error) {
	slash := strings.LastIndex(ref, "/")
	dot := strings.LastIndex(ref, ".")

	if dot <= slash || dot == 0 || dot == len(ref)-1 {
		return "", "", errors.Join(ErrInvalidReference, fmt.Errorf("%q", ref))
	}

	return ref[:dot], ref[dot+1:], nil
}
