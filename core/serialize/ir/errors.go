// Package ir defines the plain-data intermediate representation that
// every file-format codec parses into (or emits from), plus the Lower/
// Raise functions converting between it and the live document model
// (spec.md §4.7 "Pipeline": "file → parse to IR → validate → lower to
// registry. Save is the inverse.").
package ir

import "github.com/pkg/errors"

// ParseErrorKind enumerates the parse-failure categories of spec.md §7.
type ParseErrorKind int

const (
	MissingField ParseErrorKind = iota
	WrongType
	InvalidEnum
	ExternalTilesetNotFound
	ExternalTilesetUnreadable
	ImageNotFound
	CorruptTileData
	UnknownCompression
	UnknownEncoding
	UnsupportedVersion
)

func (k ParseErrorKind) String() string {
	switch k {
	case MissingField:
		return "missing-field"
	case WrongType:
		return "wrong-type"
	case InvalidEnum:
		return "invalid-enum"
	case ExternalTilesetNotFound:
		return "external-tileset-not-found"
	case ExternalTilesetUnreadable:
		return "external-tileset-unreadable"
	case ImageNotFound:
		return "image-not-found"
	case CorruptTileData:
		return "corrupt-tile-data"
	case UnknownCompression:
		return "unknown-compression"
	case UnknownEncoding:
		return "unknown-encoding"
	case UnsupportedVersion:
		return "unsupported-version"
	default:
		return "unknown"
	}
}

// ParseError carries a typed parse failure with a source location, so the
// dispatcher can surface it to the UI as a notification rather than
// aborting the process (spec.md §7 "Propagation").
type ParseError struct {
	Kind    ParseErrorKind
	Path    string
	Line    int // 0 when unavailable
	Field   string
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return errors.Errorf("%s:%d: %s (%s): %s", e.Path, e.Line, e.Kind, e.Field, e.Message).Error()
	}
	return errors.Errorf("%s: %s (%s): %s", e.Path, e.Kind, e.Field, e.Message).Error()
}

// NewParseError constructs a ParseError with no known line.
func NewParseError(kind ParseErrorKind, path, field, message string) *ParseError {
	return &ParseError{Kind: kind, Path: path, Field: field, Message: message}
}

// IOErrorKind enumerates the I/O failure categories of spec.md §7.
type IOErrorKind int

const (
	FileNotFound IOErrorKind = iota
	PermissionDenied
	WriteFailed
)

// IOError wraps a file-system failure encountered while reading or
// writing a document.
type IOError struct {
	Kind IOErrorKind
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return errors.Wrapf(e.Err, "%s: %s", e.Path, ioErrorKindString(e.Kind)).Error()
}

func (e *IOError) Unwrap() error { return e.Err }

func ioErrorKindString(k IOErrorKind) string {
	switch k {
	case FileNotFound:
		return "file not found"
	case PermissionDenied:
		return "permission denied"
	case WriteFailed:
		return "write failed"
	default:
		return "io error"
	}
}

// CompressionError wraps a zlib/zstd round-trip failure.
type CompressionError struct {
	Algorithm string
	Err       error
}

func (e *CompressionError) Error() string {
	return errors.Wrapf(e.Err, "%s compression failed", e.Algorithm).Error()
}

func (e *CompressionError) Unwrap() error { return e.Err }
