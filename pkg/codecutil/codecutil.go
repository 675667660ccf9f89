// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codecutil

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// IsZstd reports whether data begins with a zstd frame.
func IsZstd(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}

// ZstdCompress compresses the file at src into dst.
func ZstdCompress(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	encoder, err := zstd.NewWriter(dstFile)
	if err != nil {
		return fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	if _, err := io.Copy(encoder, srcFile); err != nil {
		encoder.Close()
		return fmt.Errorf("failed to compress file: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to flush zstd encoder: %w", err)
	}
	return nil
}

// ZstdEncode compresses data in memory.
func ZstdEncode(data []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	defer encoder.Close()
	return encoder.EncodeAll(data, nil), nil
}

// ZstdDecode reads a zstd stream from r to the end.
func ZstdDecode(r io.Reader) ([]byte, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer decoder.Close()

	if err := decoder.Reset(r); err != nil {
		return nil, fmt.Errorf("failed to reset decoder: %w", err)
	}

	var buf bytes.Buffer
	if _, err := decoder.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	return buf.Bytes(), nil
}
