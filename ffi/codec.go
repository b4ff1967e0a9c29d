package ffi

import (
	"bytes"
	"reflect"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// fallbackTag lets plain Go structs tagged for JSON keep their wire names.
const fallbackTag = "json"

var bufPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

const maxPooledBuffer = 64 * 1024

// Marshal encodes v as MessagePack with struct fields written as named maps.
func Marshal(v any) ([]byte, error) {
	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		if buf.Cap() <= maxPooledBuffer {
			bufPool.Put(buf)
		}
	}()

	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)

	enc.Reset(buf)
	enc.SetCustomStructTag(fallbackTag)
	enc.UseCompactInts(true)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// Unmarshal decodes MessagePack data into v. Unlike Decode it reports failures, for callers
// that read buffers from the other side without trusting them.
func Unmarshal(data []byte, v any) error {
	dec := msgpack.GetDecoder()
	defer msgpack.PutDecoder(dec)

	dec.Reset(bytes.NewReader(data))
	dec.SetCustomStructTag(fallbackTag)
	return dec.Decode(v)
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

func typeNameOf(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
