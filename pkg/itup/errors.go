package itup

import "github.com/cockroachdb/errors"

var (
	// ErrTupleTooLarge is returned when an encoded tuple would not fit in
	// the 13-bit size field.
	ErrTupleTooLarge = errors.New("itup: tuple too large")
	// ErrMalformedTuple is returned when a tuple's header disagrees with its
	// buffer or with the schema used to read it.
	ErrMalformedTuple = errors.New("itup: malformed tuple")
	// ErrAttrOutOfRange is returned for attribute numbers or counts outside
	// the schema.
	ErrAttrOutOfRange = errors.New("itup: attribute out of range")
	// ErrValueLength is returned when a datum does not match its attribute's
	// declared width.
	ErrValueLength = errors.New("itup: value length mismatch")
	// ErrTooManyAttributes is returned when a schema exceeds MaxKeyAttributes.
	ErrTooManyAttributes = errors.New("itup: too many attributes")
	// ErrInvalidAttribute is returned for attribute definitions the format
	// cannot represent.
	ErrInvalidAttribute = errors.New("itup: invalid attribute definition")
)
