package vars

import (
	"reflect"
)

// Decl names a declared variable and its type as reported to the engine.
type Decl struct {
	Name string
	Type string
}

var (
	publicDecls []Decl
	globalDecls []Decl
)

// Public declares a variable the engine shows in the editor and returns a handle on it.
// Call it from package-level var initializers.
func Public[T Value](name string) Var[T] {
	publicDecls = append(publicDecls, Decl{Name: name, Type: TypeName[T]()})
	return New[T](name)
}

// Global declares a variable shared by every vehicle.
func Global[T Value](name string) Var[T] {
	globalDecls = append(globalDecls, Decl{Name: name, Type: TypeName[T]()})
	return New[T](name)
}

// PublicDecls returns the public variables in declaration order.
func PublicDecls() []Decl { return append([]Decl(nil), publicDecls...) }

// GlobalDecls returns the global variables in declaration order.
func GlobalDecls() []Decl { return append([]Decl(nil), globalDecls...) }

// Pairs converts declarations into the (name, type) tuples the engine reads.
func Pairs(decls []Decl) [][2]string {
	out := make([][2]string, len(decls))
	for i, d := range decls {
		out[i] = [2]string{d.Name, d.Type}
	}
	return out
}

// TypeName returns the engine's name for T.
func TypeName[T Value]() string {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Int32:
		return "i32"
	case reflect.Int64:
		return "i64"
	case reflect.Uint32:
		return "u32"
	case reflect.Uint64:
		return "u64"
	case reflect.Float32:
		return "f32"
	case reflect.Float64:
		return "f64"
	case reflect.Bool:
		return "bool"
	case reflect.String:
		return "string"
	default:
		return "content_id"
	}
}

// FromPairs is the inverse of Pairs.
func FromPairs(pairs [][2]string) []Decl {
	out := make([]Decl, len(pairs))
	for i, p := range pairs {
		out[i] = Decl{Name: p[0], Type: p[1]}
	}
	return out
}
