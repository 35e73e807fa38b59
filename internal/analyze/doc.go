// Package analyze is a checker over Go source.
//
// It loads packages with golang.org/x/tools/go/packages and answers
// checker.Checker queries from go/types:
//   - structs and interfaces with methods are objects; unexported fields are
//     private members and fields tagged omitempty are optional
//   - interfaces made only of embedded interfaces are intersections, and
//     type-set constraints are unions
//   - slices and arrays are arrays, maps and channels are generics, and
//     functions are callables whose multiple results form a tuple
//   - named struct types from packages outside the load are opaque
//
// Type handles are interned with typeutil.Map so equal types share an ID.
package analyze
