// Package perr defines the error kinds shared across the shredding,
// assembly, and file-format layers.
package perr

import "fmt"

// Kind classifies a parquetcore error so callers can branch on it with
// errors.Is against the sentinel values below.
type Kind int

const (
	_ Kind = iota
	// KindSchemaMismatch marks a required field missing, a non-repeated
	// field given an array, or any other record/schema type mismatch.
	KindSchemaMismatch
	// KindCorruptStream marks bad magic, level/value overflow, length
	// mismatches, or unknown enum tags encountered while reading.
	KindCorruptStream
	// KindUnsupported marks an encoding or page type this core doesn't
	// implement (dictionary/delta encodings, DICTIONARY_PAGE, INDEX_PAGE,
	// LZO).
	KindUnsupported
	// KindIO marks a failure from the underlying byte source.
	KindIO
	// KindInvalidConfig marks a schema or writer configuration error
	// detectable without reading any record (missing typeLength, unknown
	// primitive type, empty or duplicate field names, empty groups).
	KindInvalidConfig
)

func (k Kind) String() string {
	switch k {
	case KindSchemaMismatch:
		return "SchemaMismatch"
	case KindCorruptStream:
		return "CorruptStream"
	case KindUnsupported:
		return "Unsupported"
	case KindIO:
		return "IO"
	case KindInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// Error is a typed error carrying one of the Kind values above.
type Error struct {
	Kind Kind
	Msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.err }

// Is lets errors.Is(err, perr.SchemaMismatch) match any *Error of that kind,
// not just the sentinel values themselves.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel values for use with errors.Is.
var (
	SchemaMismatch = &Error{Kind: KindSchemaMismatch, Msg: "schema mismatch"}
	CorruptStream  = &Error{Kind: KindCorruptStream, Msg: "corrupt stream"}
	Unsupported    = &Error{Kind: KindUnsupported, Msg: "unsupported"}
	IO             = &Error{Kind: KindIO, Msg: "io"}
	InvalidConfig  = &Error{Kind: KindInvalidConfig, Msg: "invalid config"}
)

// New builds an error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches kind and message context to an underlying error while
// keeping it reachable via errors.Unwrap/errors.As.
func Wrap(kind Kind, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), err: err}
}
