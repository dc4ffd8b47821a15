package debugformat

import (
	"math"
	"reflect"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/k0kubun/pp/v3"
	"github.com/modern-go/reflect2"
)

// Stringifier renders a field value. An error or an empty result drops the field.
type Stringifier interface {
	Stringify(v any) (string, error)
}

// StringifierFunc adapts a function to Stringifier.
type StringifierFunc func(v any) (string, error)

func (f StringifierFunc) Stringify(v any) (string, error) {
	return f(v)
}

// map keys are sorted so equal values always render the same way
var jsonAPI = func() jsoniter.API {
	api := jsoniter.Config{
		EscapeHTML:  false,
		SortMapKeys: true,
	}.Froze()
	api.RegisterExtension(&finiteFloats{})
	return api
}()

// finiteFloats writes NaN and ±Inf as null at any depth instead of failing
// the whole value.
type finiteFloats struct {
	jsoniter.DummyExtension
}

func (finiteFloats) DecorateEncoder(typ reflect2.Type, encoder jsoniter.ValEncoder) jsoniter.ValEncoder {
	switch typ.Kind() {
	case reflect.Float32:
		return &floatEncoder{ValEncoder: encoder, read: func(ptr unsafe.Pointer) float64 {
			return float64(*(*float32)(ptr))
		}}
	case reflect.Float64:
		return &floatEncoder{ValEncoder: encoder, read: func(ptr unsafe.Pointer) float64 {
			return *(*float64)(ptr)
		}}
	}
	return encoder
}

type floatEncoder struct {
	jsoniter.ValEncoder
	read func(ptr unsafe.Pointer) float64
}

func (e *floatEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	if f := e.read(ptr); math.IsNaN(f) || math.IsInf(f, 0) {
		stream.WriteNil()
		return
	}
	e.ValEncoder.Encode(ptr, stream)
}

// JSONStringifier renders values as compact JSON.
type JSONStringifier struct{}

func (JSONStringifier) Stringify(v any) (string, error) {
	return jsonAPI.MarshalToString(v)
}

// PrettyStringifier renders values with github.com/k0kubun/pp, one
// structure member per line.
type PrettyStringifier struct {
	Color bool
}

func (p PrettyStringifier) Stringify(v any) (string, error) {
	printer := pp.New()
	printer.SetColoringEnabled(p.Color)
	return printer.Sprint(v), nil
}
