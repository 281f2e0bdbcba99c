package parcel

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Entry is a registered encoder with the wire labels it produces.
type Entry struct {
	Name            string
	ContentType     string
	ContentEncoding string
	Encode          EncodeFunc
}

// Registry maps serializer names to encoders and content types to decoders.
//
// Encoders and decoders live in separate keyspaces: several serializer names
// may target the same content type, but only one decoder is kept per content
// type. Registration overwrites, last writer wins.
//
// A Registry is meant to be populated during startup and shared afterwards.
// Reads and writes are guarded, so late registration does not race, but
// callers should not rely on changing codecs while traffic is flowing.
type Registry struct {
	mu       sync.RWMutex
	encoders map[string]Entry
	decoders map[string]DecodeFunc
	fallback *Entry
}

// New returns an empty registry with no default codec.
func New() *Registry {
	return &Registry{
		encoders: make(map[string]Entry),
		decoders: make(map[string]DecodeFunc),
	}
}

// Register stores enc under name and dec under contentType. Either function
// may be nil for encode-only or decode-only registration. An empty
// contentEncoding means utf-8.
func (r *Registry) Register(name string, enc EncodeFunc, dec DecodeFunc, contentType, contentEncoding string) error {
	if enc == nil && dec == nil {
		return nil
	}
	if contentType == "" {
		return fmt.Errorf("%w: %q has no content type", ErrInvalidRegistration, name)
	}
	if enc != nil && name == "" {
		return fmt.Errorf("%w: encoder for %s has no name", ErrInvalidRegistration, contentType)
	}
	if contentEncoding == "" {
		contentEncoding = EncodingUTF8
	}

	r.mu.Lock()
	if enc != nil {
		r.encoders[name] = Entry{
			Name:            name,
			ContentType:     contentType,
			ContentEncoding: contentEncoding,
			Encode:          enc,
		}
	}
	if dec != nil {
		r.decoders[contentType] = dec
	}
	r.mu.Unlock()

	emitRegistered(context.Background(), name, contentType, contentEncoding)
	return nil
}

// RegisterCodec registers both directions of c under its own name and labels.
func (r *Registry) RegisterCodec(c Codec) error {
	return r.Register(c.Name(), codecEncoder(c), codecDecoder(c), c.ContentType(), c.ContentEncoding())
}

// SetDefault makes the named encoder the one used when Encode is called
// without a serializer. It fails with ErrCodecNotRegistered when the name is
// unknown; startup code should treat that as fatal.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	e, ok := r.encoders[name]
	if !ok {
		r.mu.Unlock()
		return newRegistryError(ErrCodecNotRegistered, name)
	}
	r.fallback = &e
	r.mu.Unlock()

	emitDefaultSet(context.Background(), name, e.ContentType)
	return nil
}

// Lookup returns the encoder entry registered under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.encoders[name]
	return e, ok
}

// Default returns the default encoder entry, if one was set.
func (r *Registry) Default() (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.fallback == nil {
		return Entry{}, false
	}
	return *r.fallback, true
}

// HasDecoder reports whether a decoder is registered for contentType.
func (r *Registry) HasDecoder(contentType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.decoders[contentType]
	return ok
}

// Names returns the registered serializer names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.encoders))
	for name := range r.encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ContentTypes returns the content types that have a decoder, sorted.
func (r *Registry) ContentTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.decoders))
	for ct := range r.decoders {
		types = append(types, ct)
	}
	sort.Strings(types)
	return types
}

// resolve picks the encoder for serializer, or the default when it is empty.
func (r *Registry) resolve(serializer string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if serializer != "" {
		e, ok := r.encoders[serializer]
		if !ok {
			return Entry{}, newRegistryError(ErrCodecNotRegistered, serializer)
		}
		return e, nil
	}
	if r.fallback == nil {
		return Entry{}, newRegistryError(ErrNoDefaultCodec, "")
	}
	return *r.fallback, nil
}

// decoder returns the decoder for contentType, if any.
func (r *Registry) decoder(contentType string) (DecodeFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dec, ok := r.decoders[contentType]
	return dec, ok
}
