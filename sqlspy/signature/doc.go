// Package signature derives method signature models from Go interface definitions.
//
// An Interface records the methods an interface declares itself and the interfaces it embeds.
// Flatten produces the method set a decorator has to implement: every (name, parameter types) pair
// exactly once, the most-derived declaration winning.
//
// Models are built from go/types objects, either handed in directly (FromNamed, FromPackage) or
// loaded with golang.org/x/tools/go/packages (Load).
package signature
