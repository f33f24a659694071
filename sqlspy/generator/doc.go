// Package generator emits decorator source code for Go interfaces.
//
// For every configured interface the generator writes one decorator type that logs each call through
// the spy runtime and forwards it unchanged to the wrapped value. Results of another decorated interface
// are wrapped again, so a decorated driver.Conn hands out decorated statements, transactions and rows.
//
// Optional interfaces (facets) are implemented on the decorator as well. When the wrapped value lacks a
// facet, the method calls a hand-written fallback from the output package instead of the wrapped value.
//
// A decorator that cannot be generated is reported in File.Failures; the others are still written.
package generator
