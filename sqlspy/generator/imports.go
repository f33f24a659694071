package generator

import (
	"go/types"
	"path"
	"slices"
	"strconv"
	"strings"
)

type importSpec struct {
	Alias string
	Path  string
	Break bool
}

// importSet tracks the imports of a generated file and hands out collision-free local names.
type importSet struct {
	self    string
	byPath  map[string]string
	byName  map[string]string
	pkgName map[string]string
}

func newImportSet(self string) *importSet {
	return &importSet{
		self:    self,
		byPath:  make(map[string]string),
		byName:  make(map[string]string),
		pkgName: make(map[string]string),
	}
}

// add records pkgPath and returns its local name.
func (s *importSet) add(pkgPath, name string) string {
	if pkgPath == s.self {
		return ""
	}

	if local, ok := s.byPath[pkgPath]; ok {
		return local
	}

	local := name
	for i := 2; ; i++ {
		if _, taken := s.byName[local]; !taken {
			break
		}

		local = name + strconv.Itoa(i)
	}

	s.byPath[pkgPath] = local
	s.byName[local] = pkgPath
	s.pkgName[pkgPath] = name

	return local
}

func (s *importSet) qualifier(pkg *types.Package) string {
	return s.add(pkg.Path(), pkg.Name())
}

// typeString renders t as seen from the generated file.
func (s *importSet) typeString(t types.Type) string {
	return types.TypeString(t, s.qualifier)
}

// reference renders "import/path.Name" as seen from the generated file.
func (s *importSet) reference(ref string) string {
	dot := strings.LastIndex(ref, ".")
	if dot <= strings.LastIndex(ref, "/") {
		return ref // local identifier
	}

	pkgPath, name := ref[:dot], ref[dot+1:]

	local := s.add(pkgPath, guessPackageName(pkgPath))
	if local == "" {
		return name
	}

	return local + "." + name
}

func (s *importSet) specs() []importSpec {
	specs := make([]importSpec, 0, len(s.byPath))

	for pkgPath, local := range s.byPath {
		spec := importSpec{Path: pkgPath}
		if local != s.pkgName[pkgPath] {
			spec.Alias = local
		}

		specs = append(specs, spec)
	}

	// standard library first, then a separate group for everything else
	slices.SortFunc(specs, func(a, b importSpec) int {
		if sa, sb := isStdlib(a.Path), isStdlib(b.Path); sa != sb {
			if sa {
				return -1
			}

			return 1
		}

		return strings.Compare(a.Path, b.Path)
	})

	for i := range specs {
		if !isStdlib(specs[i].Path) {
			specs[i].Break = i > 0
			break
		}
	}

	return specs
}

func isStdlib(pkgPath string) bool {
	first, _, _ := strings.Cut(pkgPath, "/")
	return !strings.Contains(first, ".")
}

// guessPackageName derives the conventional package name from an import path.
func guessPackageName(pkgPath string) string {
	base := path.Base(pkgPath)

	if strings.HasPrefix(base, "v") {
		if _, err := strconv.Atoi(base[1:]); err == nil && path.Dir(pkgPath) != "." {
			base = path.Base(path.Dir(pkgPath))
		}
	}

	return strings.NewReplacer("-", "", ".", "").Replace(base)
}
