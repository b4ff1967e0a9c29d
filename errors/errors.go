package errors

import (
	"fmt"
	"strings"
)

// Phase is the stage of a boundary crossing that failed.
type Phase string

const (
	PhaseEncode   Phase = "encode"   // Go value to codec buffer
	PhaseDecode   Phase = "decode"   // codec buffer to Go value
	PhaseDispatch Phase = "dispatch" // message probing and handling
	PhaseHost     Phase = "host"     // host import implementation
	PhaseLinking  Phase = "linking"  // guest import resolution
	PhaseLoad     Phase = "load"     // guest module loading
	PhaseRuntime  Phase = "runtime"  // guest export calls
	PhaseDeploy   Phase = "deploy"   // build and copy tooling
)

// Kind is the category of failure.
type Kind string

const (
	KindTypeMismatch   Kind = "type_mismatch"
	KindInvalidData    Kind = "invalid_data"
	KindAllocation     Kind = "allocation"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindHandler        Kind = "handler"
	KindMissingImport  Kind = "missing_import"
	KindMissingExport  Kind = "missing_export"
	KindInstantiation  Kind = "instantiation"
	KindInvalidInput   Kind = "invalid_input"
	KindNotInitialized Kind = "not_initialized"
)

// Error is the structured error used by the SDK, the host and the tooling.
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Meta   string
	Detail string
}

// Error renders "[phase] kind: Go type T, message ns:id - detail (caused by: ...)".
func (e *Error) Error() string {
	var subject []string
	if e.GoType != "" {
		subject = append(subject, "Go type "+e.GoType)
	}
	if e.Meta != "" {
		subject = append(subject, "message "+e.Meta)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Phase, e.Kind)
	sep := ": "
	if len(subject) > 0 {
		b.WriteString(sep)
		b.WriteString(strings.Join(subject, ", "))
		sep = " - "
	}
	if e.Detail != "" {
		b.WriteString(sep)
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.Cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error with the same Phase and Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Phase == t.Phase && e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Meta sets the message identity
func (b *Builder) Meta(m string) *Builder {
	b.err.Meta = m
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// TypeMismatch reports a message whose meta is not the one goType declares.
func TypeMismatch(phase Phase, goType, meta string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		GoType: goType,
		Meta:   meta,
	}
}

// EncodeFailed creates an error for a value the codec could not serialize
func EncodeFailed(phase Phase, goType string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		GoType: goType,
		Detail: "serialize value",
		Cause:  cause,
	}
}

// DecodeFailed creates an error for a buffer that does not decode into goType
func DecodeFailed(phase Phase, goType string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		GoType: goType,
		Detail: "deserialize value",
		Cause:  cause,
	}
}

// AllocationFailed reports an allocator that could not reserve size bytes.
func AllocationFailed(phase Phase, size uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes (align 8)", size),
		Value:  size,
	}
}

// OutOfBounds creates an error for a region outside linear memory
func OutOfBounds(phase Phase, ptr, size, memSize uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("region [%d, %d) outside memory of %d bytes", ptr, uint64(ptr)+uint64(size), memSize),
		Value:  ptr,
	}
}

// Wrap attaches phase, kind and detail to cause.
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// MissingImport represents a single unresolved guest import
type MissingImport struct {
	Module   string // e.g., "messages"
	Function string // e.g., "take"
}

// MissingImportsError is returned when a guest imports host functions the host does not provide
type MissingImportsError struct {
	Imports []MissingImport
}

// NewMissingImportsError creates an error from a list of "module#function" strings
func NewMissingImportsError(imports []string) *MissingImportsError {
	result := &MissingImportsError{
		Imports: make([]MissingImport, 0, len(imports)),
	}
	for _, imp := range imports {
		mod, fn := parseImportKey(imp)
		result.Imports = append(result.Imports, MissingImport{
			Module:   mod,
			Function: fn,
		})
	}
	return result
}

func parseImportKey(key string) (module, function string) {
	mod, fn, found := strings.Cut(key, "#")
	if found {
		return mod, fn
	}
	return key, ""
}

func (e *MissingImportsError) Error() string {
	if len(e.Imports) == 0 {
		return "[linking] missing_import: no imports specified"
	}

	var modules []string
	funcs := make(map[string][]string)
	for _, imp := range e.Imports {
		if _, seen := funcs[imp.Module]; !seen {
			modules = append(modules, imp.Module)
		}
		funcs[imp.Module] = append(funcs[imp.Module], imp.Function)
	}

	lines := []string{fmt.Sprintf("missing %d host function(s):", len(e.Imports))}
	for _, mod := range modules {
		lines = append(lines, "", "  "+mod+":")
		for _, fn := range funcs[mod] {
			lines = append(lines, "    - "+fn)
		}
	}
	return strings.Join(lines, "\n")
}

// Is matches any *MissingImportsError.
func (e *MissingImportsError) Is(target error) bool {
	_, ok := target.(*MissingImportsError)
	return ok
}

// NotInitialized reports use of component before it was installed.
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// MissingExport creates an error for a guest export the host requires
func MissingExport(name string) *Error {
	return &Error{
		Phase:  PhaseLinking,
		Kind:   KindMissingExport,
		Detail: fmt.Sprintf("guest does not export %q", name),
	}
}

// InvalidInput reports a caller-supplied value that cannot be used.
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Instantiation reports a guest module that failed to instantiate.
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindInstantiation,
		Detail: "instantiate module",
		Cause:  cause,
	}
}

// Load reports a guest module that could not be read or compiled.
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}
