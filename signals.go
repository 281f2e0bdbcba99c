package parcel

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for registry events.
var (
	SignalCodecRegistered   = capitan.NewSignal("parcel.codec.registered", "Encoder or decoder registered")
	SignalDefaultSet        = capitan.NewSignal("parcel.default.set", "Default serializer selected")
	SignalProbeAttempt      = capitan.NewSignal("parcel.probe.attempt", "Codec candidate probed")
	SignalProviderInstalled = capitan.NewSignal("parcel.provider.installed", "Codec provider installed")
	SignalProviderSkipped   = capitan.NewSignal("parcel.provider.skipped", "Codec provider unavailable")
	SignalEncodeComplete    = capitan.NewSignal("parcel.encode.complete", "Encode operation finished")
	SignalDecodeComplete    = capitan.NewSignal("parcel.decode.complete", "Decode operation finished")
	SignalDecodePassThrough = capitan.NewSignal("parcel.decode.passthrough", "Payload returned without a decoder")
)

// Keys for typed event data.
var (
	KeyName            = capitan.NewStringKey("name")
	KeyCandidate       = capitan.NewStringKey("candidate")
	KeyContentType     = capitan.NewStringKey("content_type")
	KeyContentEncoding = capitan.NewStringKey("content_encoding")
	KeySize            = capitan.NewIntKey("size")
	KeyDuration        = capitan.NewDurationKey("duration")
	KeyError           = capitan.NewErrorKey("error")
)

// emitRegistered emits an event when an encoder or decoder is registered.
func emitRegistered(ctx context.Context, name, contentType, contentEncoding string) {
	capitan.Emit(ctx, SignalCodecRegistered,
		KeyName.Field(name),
		KeyContentType.Field(contentType),
		KeyContentEncoding.Field(contentEncoding),
	)
}

// emitDefaultSet emits an event when the default serializer changes.
func emitDefaultSet(ctx context.Context, name, contentType string) {
	capitan.Emit(ctx, SignalDefaultSet,
		KeyName.Field(name),
		KeyContentType.Field(contentType),
	)
}

// emitProbeAttempt emits an event for each candidate tried during Install.
func emitProbeAttempt(ctx context.Context, provider, candidate string, err error) {
	fields := []capitan.Field{
		KeyName.Field(provider),
		KeyCandidate.Field(candidate),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalProbeAttempt, fields...)
	} else {
		capitan.Emit(ctx, SignalProbeAttempt, fields...)
	}
}

// emitProviderResult emits an event once a provider is installed or skipped.
func emitProviderResult(ctx context.Context, provider, candidate string, err error) {
	if err != nil {
		capitan.Error(ctx, SignalProviderSkipped,
			KeyName.Field(provider),
			KeyError.Field(err),
		)
		return
	}
	capitan.Emit(ctx, SignalProviderInstalled,
		KeyName.Field(provider),
		KeyCandidate.Field(candidate),
	)
}

// emitEncodeComplete emits an event when encode finishes.
func emitEncodeComplete(ctx context.Context, name string, env Envelope, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyName.Field(name),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalEncodeComplete, fields...)
		return
	}
	fields = append(fields,
		KeyContentType.Field(env.ContentType),
		KeyContentEncoding.Field(env.ContentEncoding),
		KeySize.Field(len(env.Body)),
	)
	capitan.Emit(ctx, SignalEncodeComplete, fields...)
}

// emitDecodeComplete emits an event when decode finishes.
// Pass-through decodes are reported on SignalDecodePassThrough instead.
func emitDecodeComplete(ctx context.Context, env Envelope, passThrough bool, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(env.ContentType),
		KeyContentEncoding.Field(env.ContentEncoding),
		KeySize.Field(len(env.Body)),
		KeyDuration.Field(duration),
	}
	switch {
	case err != nil:
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDecodeComplete, fields...)
	case passThrough:
		capitan.Emit(ctx, SignalDecodePassThrough, fields...)
	default:
		capitan.Emit(ctx, SignalDecodeComplete, fields...)
	}
}
