package parcel

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"
)

// Envelope is the unit exchanged between producer and consumer.
type Envelope struct {
	ContentType     string
	ContentEncoding string
	Body            []byte
}

// Encode turns msg into an Envelope. An empty serializer means none was
// requested: Raw and Text messages are then passed through and Values use
// the default codec.
func (r *Registry) Encode(ctx context.Context, msg Message, serializer string) (Envelope, error) {
	start := time.Now()
	env, name, err := r.encode(msg, serializer)
	emitEncodeComplete(ctx, name, env, time.Since(start), err)
	return env, err
}

// EncodeValue infers the message kind of v and encodes it.
func (r *Registry) EncodeValue(ctx context.Context, v any, serializer string) (Envelope, error) {
	return r.Encode(ctx, MessageOf(v), serializer)
}

func (r *Registry) encode(msg Message, serializer string) (Envelope, string, error) {
	if msg.kind == KindText && (serializer == "" || serializer == SerializerRaw) && !utf8.ValidString(msg.text) {
		return Envelope{}, serializer, fmt.Errorf("%w: text is not valid UTF-8 at byte %d", ErrUnsupportedMessage, invalidUTF8Offset([]byte(msg.text)))
	}

	switch {
	case msg.kind == KindRaw && serializer == "":
		return Envelope{
			ContentType:     ContentTypeData,
			ContentEncoding: EncodingBinary,
			Body:            msg.raw,
		}, "", nil

	case msg.kind == KindText && serializer == "":
		return Envelope{
			ContentType:     ContentTypeText,
			ContentEncoding: EncodingUTF8,
			Body:            []byte(msg.text),
		}, "", nil

	case serializer == SerializerRaw:
		switch msg.kind {
		case KindText:
			return Envelope{
				ContentType:     ContentTypeData,
				ContentEncoding: EncodingUTF8,
				Body:            []byte(msg.text),
			}, serializer, nil
		case KindRaw:
			return Envelope{
				ContentType:     ContentTypeData,
				ContentEncoding: EncodingBinary,
				Body:            msg.raw,
			}, serializer, nil
		default:
			return Envelope{}, serializer, fmt.Errorf("%w: %s message with serializer %q", ErrUnsupportedMessage, msg.kind, serializer)
		}
	}

	e, err := r.resolve(serializer)
	if err != nil {
		return Envelope{}, serializer, err
	}

	body, err := e.Encode(msg.Payload())
	if err != nil {
		return Envelope{}, e.Name, newCodecError(ErrPayloadEncode, e.Name, e.ContentType, err)
	}

	return Envelope{
		ContentType:     e.ContentType,
		ContentEncoding: e.ContentEncoding,
		Body:            body,
	}, e.Name, nil
}
