package json

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

// appendFloat formats f the way encoding/json does, except that a value
// with no fractional part keeps a trailing ".0" so it decodes as a float.
func appendFloat(b []byte, f float64, bits int) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("json: unsupported value: %s", strconv.FormatFloat(f, 'g', -1, bits))
	}

	format := byte('f')
	if abs := math.Abs(f); abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) || bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			format = 'e'
		}
	}

	start := len(b)
	b = strconv.AppendFloat(b, f, format, -1, bits)
	if format == 'f' && bytes.IndexByte(b[start:], '.') < 0 {
		b = append(b, '.', '0')
	}
	return b, nil
}

// floatEncoder writes float32 or float64 values through appendFloat.
type floatEncoder struct {
	bits int
}

func (e floatEncoder) value(ptr unsafe.Pointer) float64 {
	if e.bits == 32 {
		return float64(*(*float32)(ptr))
	}
	return *(*float64)(ptr)
}

func (e floatEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return e.value(ptr) == 0
}

func (e floatEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	b, err := appendFloat(stream.Buffer(), e.value(ptr), e.bits)
	if err != nil {
		stream.Error = err
		return
	}
	stream.SetBuffer(b)
}

// floatExtension installs floatEncoder for both float widths on one API.
func floatExtension() jsoniter.EncoderExtension {
	return jsoniter.EncoderExtension{
		reflect2.TypeOf(float32(0)): floatEncoder{bits: 32},
		reflect2.TypeOf(float64(0)): floatEncoder{bits: 64},
	}
}

// floatLiteral marshals through appendFloat for encoding/json.
type floatLiteral struct {
	f    float64
	bits int
}

func (l floatLiteral) MarshalJSON() ([]byte, error) {
	return appendFloat(nil, l.f, l.bits)
}

// literalFloats rewrites the floats held by an untyped tree so encoding/json
// writes them with appendFloat. Typed values are left to encoding/json.
func literalFloats(v any) any {
	switch t := v.(type) {
	case float64:
		return floatLiteral{f: t, bits: 64}
	case float32:
		return floatLiteral{f: float64(t), bits: 32}
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = literalFloats(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = literalFloats(e)
		}
		return out
	}
	return v
}
