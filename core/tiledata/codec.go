// Package tiledata implements the on-disk tile-layer payload codec shared
// by every dialect: plain decimal ids, and base64-encoded little-endian
// 32-bit ids optionally compressed with zlib or zstd (spec.md §4.7 "Tile
// Format"). Grounded on the teacher's data.go/compression.go/encoding.go.
package tiledata

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/DataDog/zstd"
	"github.com/pkg/errors"

	"github.com/mapeditor/tactile-core/core/ident"
)

// Encoding identifies how tile ids are textually represented on disk.
type Encoding int

const (
	EncodingPlain Encoding = iota
	EncodingBase64
)

func (e Encoding) String() string {
	switch e {
	case EncodingPlain:
		return "plain"
	case EncodingBase64:
		return "base64"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// ParseEncoding converts a dialect string ("csv"/"plain" or "base64") to an
// Encoding value.
func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "", "csv", "plain":
		return EncodingPlain, nil
	case "base64":
		return EncodingBase64, nil
	default:
		return 0, errors.Errorf("unknown tile encoding %q", s)
	}
}

// Compression identifies the payload compression algorithm, applicable
// only when Encoding is base64.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionZlib
	CompressionZstd
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZlib:
		return "zlib"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", int(c))
	}
}

// ParseCompression converts a dialect string to a Compression value.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "", "none":
		return CompressionNone, nil
	case "zlib":
		return CompressionZlib, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, errors.Errorf("unknown tile compression %q", s)
	}
}

// Format bundles the encoding/compression choice and compressor levels
// persisted with a map (spec.md §3 "tile_format").
type Format struct {
	Encoding    Encoding
	Compression Compression
	ZlibLevel   int // -1 for library default
	ZstdLevel   int
}

// DefaultFormat matches Tiled's own default: base64 + zlib.
func DefaultFormat() Format {
	return Format{Encoding: EncodingBase64, Compression: CompressionZlib, ZlibLevel: -1, ZstdLevel: 3}
}

// Decode parses a raw tile-layer payload (already trimmed of surrounding
// whitespace) into exactly `count` tile ids.
func Decode(format Format, payload []byte, count int) ([]ident.TileID, error) {
	switch format.Encoding {
	case EncodingPlain:
		return decodePlain(payload, count)
	case EncodingBase64:
		return decodeBase64(format.Compression, payload, count)
	default:
		return nil, errors.Errorf("unknown tile encoding %q", format.Encoding)
	}
}

// Encode renders `tiles` as a dialect payload per format.
func Encode(format Format, tiles []ident.TileID) ([]byte, error) {
	switch format.Encoding {
	case EncodingPlain:
		return encodePlain(tiles), nil
	case EncodingBase64:
		return encodeBase64(format, tiles)
	default:
		return nil, errors.Errorf("unknown tile encoding %q", format.Encoding)
	}
}

func decodePlain(payload []byte, count int) ([]ident.TileID, error) {
	trimmed := strings.TrimSpace(string(payload))
	out := make([]ident.TileID, count)
	if trimmed == "" {
		return out, nil
	}
	fields := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r' || r == '\t' || r == ' '
	})
	if len(fields) != count {
		return nil, errors.Errorf("corrupt tile data: expected %d values, got %d", count, len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 32)
		if err != nil {
			return nil, errors.Wrap(err, "corrupt tile data")
		}
		out[i] = ident.TileID(v)
	}
	return out, nil
}

func encodePlain(tiles []ident.TileID) []byte {
	var sb strings.Builder
	for i, t := range tiles {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(int64(t), 10))
	}
	return []byte(sb.String())
}

func decodeBase64(comp Compression, payload []byte, count int) ([]ident.TileID, error) {
	trimmed := bytes.TrimSpace(payload)
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(trimmed)))
	n, err := base64.StdEncoding.Decode(raw, trimmed)
	if err != nil {
		return nil, errors.Wrap(err, "corrupt tile data: invalid base64")
	}
	raw = raw[:n]

	buf, err := inflate(raw, comp, count*4)
	if err != nil {
		return nil, err
	}

	out := make([]ident.TileID, count)
	reader := bytes.NewReader(buf)
	for i := range out {
		var v uint32
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return nil, errors.Wrap(err, "corrupt tile data: truncated payload")
		}
		out[i] = ident.TileID(v)
	}
	return out, nil
}

func inflate(src []byte, comp Compression, expect int) ([]byte, error) {
	switch comp {
	case CompressionNone:
		if len(src) != expect {
			return nil, errors.Errorf("corrupt tile data: expected %d raw bytes, got %d", expect, len(src))
		}
		return src, nil
	case CompressionZlib:
		r, err := zlib.NewReader(bytes.NewReader(src))
		if err != nil {
			return nil, errors.Wrap(err, "zlib: failed to open reader")
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(err, "zlib: decompression failed")
		}
		return out, nil
	case CompressionZstd:
		r := zstd.NewReader(bytes.NewReader(src))
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(err, "zstd: decompression failed")
		}
		return out, nil
	default:
		return nil, errors.Errorf("unknown tile compression %q", comp)
	}
}

func encodeBase64(format Format, tiles []ident.TileID) ([]byte, error) {
	var raw bytes.Buffer
	for _, t := range tiles {
		if err := binary.Write(&raw, binary.LittleEndian, uint32(t)); err != nil {
			return nil, err
		}
	}

	compressed, err := deflate(raw.Bytes(), format)
	if err != nil {
		return nil, err
	}

	out := make([]byte, base64.StdEncoding.EncodedLen(len(compressed)))
	base64.StdEncoding.Encode(out, compressed)
	return out, nil
}

func deflate(src []byte, format Format) ([]byte, error) {
	switch format.Compression {
	case CompressionNone:
		return src, nil
	case CompressionZlib:
		var buf bytes.Buffer
		level := format.ZlibLevel
		if level < -2 || level > 9 {
			level = zlib.DefaultCompression
		}
		w, err := zlib.NewWriterLevel(&buf, level)
		if err != nil {
			return nil, errors.Wrap(err, "zlib: failed to open writer")
		}
		if _, err := w.Write(src); err != nil {
			return nil, errors.Wrap(err, "zlib: compression failed")
		}
		if err := w.Close(); err != nil {
			return nil, errors.Wrap(err, "zlib: compression failed")
		}
		return buf.Bytes(), nil
	case CompressionZstd:
		level := format.ZstdLevel
		if level <= 0 {
			level = zstd.DefaultCompression
		}
		out, err := zstd.CompressLevel(nil, src, level)
		if err != nil {
			return nil, errors.Wrap(err, "zstd: compression failed")
		}
		return out, nil
	default:
		return nil, errors.Errorf("unknown tile compression %q", format.Compression)
	}
}
