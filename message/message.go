package message

import (
	"fmt"
	"reflect"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lotus-sim/lotus-script-go/errors"
)

// Message is a typed value together with its type identity and provenance.
// Messages are built per send and discarded after local dispatch.
type Message struct {
	meta   Meta
	source Source
	value  any
}

// New wraps v in a Message with the default source.
func New(v Type) (*Message, error) {
	tree, err := toTree(v)
	if err != nil {
		return nil, &SerializationError{Reason: err.Error()}
	}
	return &Message{meta: v.MessageMeta(), value: tree}, nil
}

// FromTree builds a Message from an already generic payload.
func FromTree(meta Meta, source Source, value any) *Message {
	return &Message{meta: meta, source: source, value: normalize(value)}
}

// Meta returns the type identity the message was built with.
func (m *Message) Meta() Meta { return m.meta }

// Source returns how the message reached this script.
func (m *Message) Source() Source { return m.source }

// Payload returns the generic payload tree. Callers must not modify it.
func (m *Message) Payload() any { return m.value }

// WithSource returns a shallow copy of m delivered through src.
func (m *Message) WithSource(src Source) *Message {
	c := *m
	c.source = src
	return &c
}

func (m *Message) String() string {
	if c, ok := m.source.CrossedCoupling(); ok {
		return fmt.Sprintf("%s via %s: %v", m.meta, c, m.value)
	}
	return fmt.Sprintf("%s: %v", m.meta, m.value)
}

type wireMessage struct {
	Meta   Meta   `msgpack:"meta"`
	Source Source `msgpack:"source"`
	Value  any    `msgpack:"value"`
}

var (
	_ msgpack.CustomEncoder = (*Message)(nil)
	_ msgpack.CustomDecoder = (*Message)(nil)
)

func (m *Message) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(wireMessage{Meta: m.meta, Source: m.source, Value: m.value})
}

func (m *Message) DecodeMsgpack(dec *msgpack.Decoder) error {
	var w wireMessage
	if err := dec.Decode(&w); err != nil {
		return err
	}
	m.meta, m.source, m.value = w.Meta, w.Source, normalize(w.Value)
	return nil
}

// ErrInvalidType matches, under errors.Is, the error Value returns for a message of
// another type.
var ErrInvalidType = errors.New(errors.PhaseDispatch, errors.KindTypeMismatch).
	Detail("invalid message type").
	Build()

// SerializationError reports a payload whose meta matched but whose tree did not decode.
type SerializationError struct {
	Reason string
}

func (e *SerializationError) Error() string {
	return "serialization error: " + e.Reason
}

// HandlerError wraps an error returned by the caller's own handler.
type HandlerError struct {
	Err error
}

func (e *HandlerError) Error() string {
	return "handler error: " + e.Err.Error()
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// metaOf returns T's meta. For a pointer type the meta comes from a fresh element, so
// Value[*Foo] works like Value[Foo].
func metaOf[T Type]() Meta {
	if t := reflect.TypeFor[T](); t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface().(T).MessageMeta()
	}
	var zero T
	return zero.MessageMeta()
}

// HasType reports whether m was built from a value with T's meta.
func HasType[T Type](m *Message) bool {
	return m.meta == metaOf[T]()
}

// Value decodes the payload as T. It returns an error matching ErrInvalidType when the
// meta differs, a *SerializationError when the payload does not decode or leaves out a
// required struct field, and the value otherwise.
func Value[T Type](m *Message) (T, error) {
	var v T
	if want := metaOf[T](); m.meta != want {
		return v, errors.New(errors.PhaseDispatch, errors.KindTypeMismatch).
			GoType(reflect.TypeFor[T]().String()).
			Meta(m.meta.String()).
			Detail("invalid message type, want %s", want).
			Build()
	}
	if err := fromTree(m.value, &v); err != nil {
		return v, &SerializationError{Reason: err.Error()}
	}
	return v, nil
}

// Handle calls fn with the decoded payload when m has type T and reports whether it did.
// A type mismatch is (false, nil) and fn is not called. Decode failures come back as
// (false, *SerializationError); an error from fn comes back as (true, *HandlerError).
func Handle[T Type](m *Message, fn func(T) error) (bool, error) {
	if !HasType[T](m) {
		return false, nil
	}
	v, err := Value[T](m)
	if err != nil {
		return false, err
	}
	if err := fn(v); err != nil {
		return true, &HandlerError{Err: err}
	}
	return true, nil
}
