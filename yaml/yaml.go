// Package yaml provides a YAML codec implementation.
package yaml

import (
	"math"
	"strconv"

	"github.com/zoobzio/parcel"
	"gopkg.in/yaml.v3"
)

// ContentType is the MIME type for YAML payloads.
const ContentType = "application/x-yaml"

// yamlCodec implements parcel.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec.
func New() parcel.Codec {
	return &yamlCodec{}
}

// Provider returns the optional YAML provider.
func Provider() parcel.Provider {
	return parcel.Provider{
		Name: "yaml",
		Candidates: []parcel.Candidate{
			{Name: "gopkg.in/yaml.v3", Load: func() (parcel.Codec, error) { return New(), nil }},
		},
	}
}

// Name returns the serializer name.
func (c *yamlCodec) Name() string {
	return "yaml"
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return ContentType
}

// ContentEncoding returns utf-8; YAML is text.
func (c *yamlCodec) ContentEncoding() string {
	return parcel.EncodingUTF8
}

// Marshal encodes v as YAML. Floats held by untyped maps and lists are
// written as !!float scalars so that 3.0 does not come back as 3.
func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(tagFloats(v))
}

// Unmarshal decodes YAML data into v.
func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// floatScalar marshals a float so that it always resolves to !!float.
type floatScalar struct {
	f    float64
	bits int
}

func (s floatScalar) MarshalYAML() (any, error) {
	if math.IsNaN(s.f) || math.IsInf(s.f, 0) {
		return s.f, nil
	}
	value := strconv.FormatFloat(s.f, 'g', -1, s.bits)
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		value += ".0"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: value}, nil
}

func tagFloats(v any) any {
	switch t := v.(type) {
	case float64:
		return floatScalar{f: t, bits: 64}
	case float32:
		return floatScalar{f: float64(t), bits: 32}
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = tagFloats(e)
		}
		return out
	case map[any]any:
		out := make(map[any]any, len(t))
		for k, e := range t {
			out[k] = tagFloats(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = tagFloats(e)
		}
		return out
	}
	return v
}
