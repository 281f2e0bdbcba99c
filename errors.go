package parcel

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrCodecNotRegistered indicates a serializer name has no encoder entry.
	ErrCodecNotRegistered = errors.New("codec not registered")

	// ErrNoDefaultCodec indicates an encode without a serializer before any default was set.
	ErrNoDefaultCodec = errors.New("no default codec")

	// ErrCharacterDecode indicates payload bytes are not valid in the declared content encoding.
	ErrCharacterDecode = errors.New("character decode failed")

	// ErrPayloadEncode indicates a registered encoder rejected the value.
	ErrPayloadEncode = errors.New("payload encode failed")

	// ErrPayloadDecode indicates a registered decoder rejected the payload.
	ErrPayloadDecode = errors.New("payload decode failed")

	// ErrInvalidRegistration indicates a registration is missing its name or content type.
	ErrInvalidRegistration = errors.New("invalid registration")

	// ErrUnsupportedMessage indicates the message kind cannot be carried by the requested serializer.
	ErrUnsupportedMessage = errors.New("unsupported message")

	// ErrNoCandidate indicates none of a required provider's candidates could be loaded.
	ErrNoCandidate = errors.New("no codec candidate available")
)

// RegistryError represents a failed lookup in the registry.
// It wraps a sentinel error with the serializer name involved.
type RegistryError struct {
	Err  error  // Underlying sentinel error (ErrCodecNotRegistered, ErrNoDefaultCodec)
	Name string // Serializer name that was requested, empty for the default slot
}

func (e *RegistryError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %q", e.Err.Error(), e.Name)
	}
	return e.Err.Error()
}

func (e *RegistryError) Unwrap() error {
	return e.Err
}

// CharsetError represents a failure to turn payload bytes into text.
type CharsetError struct {
	Encoding string // Declared content encoding
	Cause    error  // Original error from the charset layer
}

func (e *CharsetError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (encoding %s): %v", ErrCharacterDecode.Error(), e.Encoding, e.Cause)
	}
	return fmt.Sprintf("%s (encoding %s)", ErrCharacterDecode.Error(), e.Encoding)
}

func (e *CharsetError) Unwrap() error {
	return ErrCharacterDecode
}

// CodecError represents an encoder or decoder failure.
type CodecError struct {
	Err         error  // Underlying sentinel error (ErrPayloadEncode, ErrPayloadDecode)
	Name        string // Serializer name, when known
	ContentType string // Content type the codec was selected for
	Cause       error  // Original error from the codec
}

func (e *CodecError) Error() string {
	label := e.ContentType
	if e.Name != "" {
		label = e.Name
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %v", e.Err.Error(), label, e.Cause)
	}
	return fmt.Sprintf("%s (%s)", e.Err.Error(), label)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// newRegistryError creates a RegistryError for lookup failures.
func newRegistryError(sentinel error, name string) error {
	return &RegistryError{
		Err:  sentinel,
		Name: name,
	}
}

// newCharsetError creates a CharsetError for character decode failures.
func newCharsetError(encoding string, cause error) error {
	return &CharsetError{
		Encoding: encoding,
		Cause:    cause,
	}
}

// newCodecError creates a CodecError for encode/decode failures.
func newCodecError(sentinel error, name, contentType string, cause error) error {
	return &CodecError{
		Err:         sentinel,
		Name:        name,
		ContentType: contentType,
		Cause:       cause,
	}
}
