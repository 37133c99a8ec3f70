// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"bytes"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies a compression container around input data.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionGzip
	CompressionLZ4
	CompressionSnappy
)

// String returns the lowercase name of a compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionGzip:
		return "gzip"
	case CompressionLZ4:
		return "lz4"
	case CompressionSnappy:
		return "snappy"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// ParseCompression parses a compression name.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "gzip", "gz":
		return CompressionGzip, nil
	case "lz4":
		return CompressionLZ4, nil
	case "snappy":
		return CompressionSnappy, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

var (
	zstdMagic   = []byte{0x28, 0xb5, 0x2f, 0xfd}
	gzipMagic   = []byte{0x1f, 0x8b}
	lz4Magic    = []byte{0x04, 0x22, 0x4d, 0x18}
	snappyMagic = []byte{0xff, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}
)

// DetectCompression identifies the compression of data by its magic
// number.
func DetectCompression(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(data, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(data, lz4Magic):
		return CompressionLZ4
	case bytes.HasPrefix(data, snappyMagic):
		return CompressionSnappy
	default:
		return CompressionNone
	}
}

// zstdDecoder and zstdEncoder are shared. zstd.Decoder and
// zstd.Encoder are safe for concurrent use via DecodeAll/EncodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("ingest: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("ingest: zstd decoder initialization failed: " + err.Error())
	}
}

// Decompress detects the compression of data and returns the
// decompressed bytes along with the compression found. Uncompressed
// input is returned unchanged (no copy).
func Decompress(data []byte) ([]byte, Compression, error) {
	compression := DetectCompression(data)
	decompressed, err := DecompressWith(data, compression)
	return decompressed, compression, err
}

// DecompressWith decompresses data that is known to use compression.
func DecompressWith(data []byte, compression Compression) ([]byte, error) {
	var (
		result []byte
		err    error
	)
	switch compression {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		result, err = zstdDecoder.DecodeAll(data, nil)
	case CompressionGzip:
		var reader *gzip.Reader
		reader, err = gzip.NewReader(bytes.NewReader(data))
		if err == nil {
			result, err = io.ReadAll(reader)
		}
	case CompressionLZ4:
		result, err = io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	case CompressionSnappy:
		result, err = io.ReadAll(snappy.NewReader(bytes.NewReader(data)))
	default:
		return nil, fmt.Errorf("unsupported compression: %s", compression)
	}
	if err != nil {
		return nil, fmt.Errorf("%s decompress: %w", compression, err)
	}
	return result, nil
}

// Compress wraps data in the given compression's stream format. Every
// output is recognized by DetectCompression.
func Compress(data []byte, compression Compression) ([]byte, error) {
	if compression == CompressionZstd {
		return zstdEncoder.EncodeAll(data, nil), nil
	}

	var buffer bytes.Buffer
	var writer io.WriteCloser
	switch compression {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		writer = gzip.NewWriter(&buffer)
	case CompressionLZ4:
		writer = lz4.NewWriter(&buffer)
	case CompressionSnappy:
		writer = snappy.NewBufferedWriter(&buffer)
	default:
		return nil, fmt.Errorf("unsupported compression: %s", compression)
	}
	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("%s compress: %w", compression, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%s compress: %w", compression, err)
	}
	return buffer.Bytes(), nil
}
