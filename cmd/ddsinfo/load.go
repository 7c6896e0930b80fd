package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/woozymasta/ddsview/internal/edds"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// source is an input file reduced to a plain DDS buffer.
type source struct {
	data []byte
	zstd bool
	edds bool
}

// loadTexture reads path and unwraps it with unwrap.
func loadTexture(path string) (source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return source{}, err
	}

	src, err := unwrap(raw)
	if err != nil {
		return source{}, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// unwrap strips an outer zstd frame and flattens an EDDS container, leaving
// bytes for ddsview.Parse. Anything else is passed through untouched so the
// validator reports on it.
func unwrap(raw []byte) (source, error) {
	src := source{data: raw}

	if bytes.HasPrefix(raw, zstdMagic) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return source{}, err
		}
		defer dec.Close()

		if src.data, err = dec.DecodeAll(raw, nil); err != nil {
			return source{}, fmt.Errorf("zstd: %w", err)
		}
		src.zstd = true
	}

	if edds.IsEDDS(src.data) {
		flat, err := edds.Flatten(src.data)
		if err != nil {
			return source{}, fmt.Errorf("edds: %w", err)
		}
		src.data = flat
		src.edds = true
	}

	return src, nil
}

// writeOutput writes data to path, zstd-compressing it when path ends in ".zst".
func writeOutput(path string, data []byte) error {
	if strings.HasSuffix(path, ".zst") {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return err
		}
		data = enc.EncodeAll(data, nil)
		if err := enc.Close(); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0o644)
}
