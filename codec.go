package parcel

import (
	"fmt"
	"reflect"
)

// codecEncoder adapts a Codec's Marshal to an EncodeFunc.
func codecEncoder(c Codec) EncodeFunc {
	return c.Marshal
}

// codecDecoder adapts a Codec's Unmarshal to a DecodeFunc.
// The decoded tree is normalized with Canonical.
func codecDecoder(c Codec) DecodeFunc {
	return func(data []byte) (any, error) {
		var v any
		if err := c.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return Canonical(v), nil
	}
}

// roundTrip checks that a codec can encode a small value and decode it back
// to an equal canonical tree.
func roundTrip(c Codec) error {
	probe := map[string]any{"probe": "ok"}

	b, err := c.Marshal(probe)
	if err != nil {
		return newCodecError(ErrPayloadEncode, c.Name(), c.ContentType(), err)
	}

	var out any
	if err := c.Unmarshal(b, &out); err != nil {
		return newCodecError(ErrPayloadDecode, c.Name(), c.ContentType(), err)
	}
	if got := Canonical(out); !reflect.DeepEqual(got, Canonical(probe)) {
		return newCodecError(ErrPayloadDecode, c.Name(), c.ContentType(), fmt.Errorf("round trip returned %v", got))
	}
	return nil
}
