package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz/lzma"
)

// Compression is a whole-file wrapper recognised by its suffix.
type Compression int

const (
	None Compression = iota
	Zstd
	LZMA
)

var suffixes = map[Compression]string{
	Zstd: ".zst",
	LZMA: ".lzma",
}

func (c Compression) String() string {
	switch c {
	case Zstd:
		return "zstd"
	case LZMA:
		return "lzma"
	}
	return "none"
}

// splitCompression strips a known compression suffix from path.
func splitCompression(path string) (string, Compression) {
	lower := strings.ToLower(path)
	for c, s := range suffixes {
		if strings.HasSuffix(lower, s) {
			return path[:len(path)-len(s)], c
		}
	}
	return path, None
}

func (c Compression) decode(data []byte) ([]byte, error) {
	switch c {
	case Zstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decoder: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decode: %w", err)
		}
		return out, nil
	case LZMA:
		lr, err := lzma.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("lzma reader: %w", err)
		}
		out, err := io.ReadAll(lr)
		if err != nil {
			return nil, fmt.Errorf("lzma decode: %w", err)
		}
		return out, nil
	}
	return data, nil
}

func (c Compression) encode(data []byte) ([]byte, error) {
	switch c {
	case Zstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd encoder: %w", err)
		}
		out := enc.EncodeAll(data, nil)
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("zstd encode: %w", err)
		}
		return out, nil
	case LZMA:
		var buf bytes.Buffer
		lw, err := lzma.NewWriter(&buf)
		if err != nil {
			return nil, fmt.Errorf("lzma writer: %w", err)
		}
		if _, err := lw.Write(data); err != nil {
			return nil, fmt.Errorf("lzma encode: %w", err)
		}
		if err := lw.Close(); err != nil {
			return nil, fmt.Errorf("lzma encode: %w", err)
		}
		return buf.Bytes(), nil
	}
	return data, nil
}
