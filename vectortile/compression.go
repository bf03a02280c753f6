package vectortile

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Compression identifies the byte-level encoding wrapped around a
// serialized tile in archive storage.
type Compression uint8

const (
	CompressionUnknown Compression = iota
	CompressionNone
	CompressionGzip
	CompressionZlib
	CompressionZstd
)

var ErrUnknownCompression = errors.New("tinymvt: unknown compression")

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZlib:
		return "zlib"
	case CompressionZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// ParseCompression maps a compression name to its Compression value.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "none":
		return CompressionNone, nil
	case "gzip":
		return CompressionGzip, nil
	case "zlib", "deflate":
		return CompressionZlib, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return CompressionUnknown, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
	}
}

// Detect sniffs the compression of stored tile bytes from their magic
// numbers. MBTiles archives carry no compression metadata, so sniffing is
// the only way to tell. Plain protobuf data reports CompressionNone.
func Detect(data []byte) Compression {
	switch {
	case len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b:
		return CompressionGzip
	case len(data) >= 4 && data[0] == 0x28 && data[1] == 0xb5 && data[2] == 0x2f && data[3] == 0xfd:
		return CompressionZstd
	case len(data) >= 2 && data[0] == 0x78 && (uint32(data[0])<<8|uint32(data[1]))%31 == 0:
		return CompressionZlib
	default:
		return CompressionNone
	}
}

// Shared zstd coders; EncodeAll and DecodeAll are safe for concurrent use,
// and construction with default options cannot fail.
var (
	zstdEncoder, _ = zstd.NewWriter(nil)
	zstdDecoder, _ = zstd.NewReader(nil)
)

// Compress wraps serialized tile bytes with the given compression.
func Compress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionZlib:
		var buf bytes.Buffer
		w := zlib.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionZstd:
		return zstdEncoder.EncodeAll(data, nil), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}

// Decompress undoes Compress. Pass CompressionUnknown to detect the
// compression from the data itself.
func Decompress(data []byte, c Compression) ([]byte, error) {
	if c == CompressionUnknown {
		c = Detect(data)
	}
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case CompressionZlib:
		r, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case CompressionZstd:
		return zstdDecoder.DecodeAll(data, nil)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}
