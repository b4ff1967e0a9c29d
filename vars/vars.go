// Package vars reads and writes the host variables of the vehicle a script runs in.
//
// Integer types share the i64 storage and float types the f64 storage; names are global
// to the vehicle.
package vars

import (
	"reflect"

	"github.com/lotus-sim/lotus-script-go/content"
	"github.com/lotus-sim/lotus-script-go/ffi"
	"github.com/lotus-sim/lotus-script-go/sys"
)

// Value is the set of types a variable can hold.
type Value interface {
	~int32 | ~int64 | ~uint32 | ~uint64 | ~float32 | ~float64 | ~bool | ~string | content.ID
}

// GetI64 returns an integer variable; unset variables read as 0.
func GetI64(name string) int64 {
	return withName(name, func(n ffi.Handle) int64 { return sys.Imports().GetI64(n) })
}

// SetI64 sets an integer variable.
func SetI64(name string, value int64) {
	withName(name, func(n ffi.Handle) struct{} { sys.Imports().SetI64(n, value); return struct{}{} })
}

// GetF64 returns a float variable.
func GetF64(name string) float64 {
	return withName(name, func(n ffi.Handle) float64 { return sys.Imports().GetF64(n) })
}

// SetF64 sets a float variable.
func SetF64(name string, value float64) {
	withName(name, func(n ffi.Handle) struct{} { sys.Imports().SetF64(n, value); return struct{}{} })
}

// GetBool returns a boolean variable.
func GetBool(name string) bool {
	return withName(name, func(n ffi.Handle) bool { return sys.Imports().GetBool(n) != 0 })
}

// SetBool sets a boolean variable.
func SetBool(name string, value bool) {
	var v int32
	if value {
		v = 1
	}
	withName(name, func(n ffi.Handle) struct{} { sys.Imports().SetBool(n, v); return struct{}{} })
}

// GetString returns a string variable.
func GetString(name string) string {
	return withName(name, func(n ffi.Handle) string {
		return ffi.Consume[string](sys.Memory(), sys.Imports().GetString(n))
	})
}

// SetString sets a string variable.
func SetString(name, value string) {
	mem := sys.Memory()
	scope := ffi.NewScope()
	defer scope.Release()
	sys.Imports().SetString(scope.Encode(mem, name), scope.Encode(mem, value))
}

// GetContentID returns a content identifier variable.
func GetContentID(name string) content.ID {
	return withName(name, func(n ffi.Handle) content.ID {
		return ffi.Consume[content.ID](sys.Memory(), sys.Imports().GetContentID(n))
	})
}

// SetContentID sets a content identifier variable.
func SetContentID(name string, value content.ID) {
	mem := sys.Memory()
	scope := ffi.NewScope()
	defer scope.Release()
	sys.Imports().SetContentID(scope.Encode(mem, name), scope.Encode(mem, value))
}

func withName[R any](name string, fn func(ffi.Handle) R) R {
	obj := ffi.Encode(sys.Memory(), name)
	defer obj.Release()
	return fn(obj.Handle())
}

// Var is a typed handle on a named variable.
type Var[T Value] struct {
	name string
}

// New returns a handle on the variable called name.
func New[T Value](name string) Var[T] {
	return Var[T]{name: name}
}

// Name returns the variable name.
func (v Var[T]) Name() string { return v.name }

// Get reads the variable.
func (v Var[T]) Get() T {
	var out T
	rv := reflect.ValueOf(&out).Elem()
	switch rv.Kind() {
	case reflect.Int32, reflect.Int64:
		rv.SetInt(GetI64(v.name))
	case reflect.Uint32, reflect.Uint64:
		rv.SetUint(uint64(GetI64(v.name)))
	case reflect.Float32, reflect.Float64:
		rv.SetFloat(GetF64(v.name))
	case reflect.Bool:
		rv.SetBool(GetBool(v.name))
	case reflect.String:
		rv.SetString(GetString(v.name))
	default:
		rv.Set(reflect.ValueOf(GetContentID(v.name)))
	}
	return out
}

// Set writes the variable.
func (v Var[T]) Set(value T) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int32, reflect.Int64:
		SetI64(v.name, rv.Int())
	case reflect.Uint32, reflect.Uint64:
		SetI64(v.name, int64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		SetF64(v.name, rv.Float())
	case reflect.Bool:
		SetBool(v.name, rv.Bool())
	case reflect.String:
		SetString(v.name, rv.String())
	default:
		SetContentID(v.name, any(value).(content.ID))
	}
}
