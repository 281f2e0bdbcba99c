package parcel

import (
	"context"
	"time"
)

// Decode turns an Envelope back into a value.
//
// An empty content type is treated as application/data and an empty content
// encoding as utf-8. Bodies in a byte-preserving encoding (binary,
// ascii-8bit) stay []byte; all others are decoded to a string first. When no
// decoder is registered for the content type that []byte or string is
// returned unchanged.
func (r *Registry) Decode(ctx context.Context, env Envelope) (any, error) {
	start := time.Now()
	v, passThrough, err := r.decode(env)
	emitDecodeComplete(ctx, env, passThrough, time.Since(start), err)
	return v, err
}

func (r *Registry) decode(env Envelope) (any, bool, error) {
	contentType := env.ContentType
	if contentType == "" {
		contentType = ContentTypeData
	}
	charset := normalizeEncoding(env.ContentEncoding)

	var payload any = env.Body
	if !isBytePreserving(charset) {
		text, err := decodeText(env.Body, charset)
		if err != nil {
			return nil, false, err
		}
		payload = text
	}

	dec, ok := r.decoder(contentType)
	if !ok {
		return payload, true, nil
	}

	var data []byte
	switch p := payload.(type) {
	case string:
		data = []byte(p)
	case []byte:
		data = p
	}

	v, err := dec(data)
	if err != nil {
		return nil, false, newCodecError(ErrPayloadDecode, "", contentType, err)
	}
	return v, false, nil
}
