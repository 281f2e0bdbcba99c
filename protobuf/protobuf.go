// Package protobuf provides a Protocol Buffers codec implementation.
//
// Values that implement proto.Message are marshaled as-is. Any other value is
// carried as a google.protobuf.Value, which supports nested maps, lists,
// strings, bools and numbers. Numbers travel as doubles, so integers come back
// as float64.
package protobuf

import (
	"fmt"

	"github.com/zoobzio/parcel"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ContentType is the MIME type for Protocol Buffers payloads.
const ContentType = "application/x-protobuf"

type protoCodec struct {
	mo proto.MarshalOptions
	uo proto.UnmarshalOptions
}

// New returns a Protocol Buffers codec with deterministic marshaling.
func New() parcel.Codec {
	return &protoCodec{
		mo: proto.MarshalOptions{Deterministic: true},
		uo: proto.UnmarshalOptions{},
	}
}

// Provider returns the optional Protocol Buffers provider.
func Provider() parcel.Provider {
	return parcel.Provider{
		Name: "protobuf",
		Candidates: []parcel.Candidate{
			{Name: "google.golang.org/protobuf", Load: func() (parcel.Codec, error) { return New(), nil }},
		},
	}
}

func (p *protoCodec) Name() string            { return "protobuf" }
func (p *protoCodec) ContentType() string     { return ContentType }
func (p *protoCodec) ContentEncoding() string { return parcel.EncodingBinary }

func (p *protoCodec) Marshal(v any) ([]byte, error) {
	if msg, ok := v.(proto.Message); ok {
		return p.mo.Marshal(msg)
	}
	val, err := structpb.NewValue(v)
	if err != nil {
		return nil, fmt.Errorf("protobuf: %T cannot be carried as a struct value: %w", v, err)
	}
	return p.mo.Marshal(val)
}

func (p *protoCodec) Unmarshal(data []byte, v any) error {
	switch target := v.(type) {
	case proto.Message:
		return p.uo.Unmarshal(data, target)
	case *any:
		var val structpb.Value
		if err := p.uo.Unmarshal(data, &val); err != nil {
			return err
		}
		*target = val.AsInterface()
		return nil
	default:
		return fmt.Errorf("protobuf: target does not implement proto.Message: %T", v)
	}
}
