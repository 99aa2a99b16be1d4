package storage

import (
	"fmt"
	"github.com/klauspost/compress/zstd"
	"livevote/internal/storage/interfaces"
)

// maxDocumentSize caps what a status file may decompress to. A vote status
// document is a few dozen bytes; anything near this is a corrupted file.
const maxDocumentSize = 1 << 20

// StatusCodec compresses the small JSON documents kept per device.
type StatusCodec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (c *StatusCodec) Compress(doc []byte) ([]byte, error) {
	return c.encoder.EncodeAll(doc, nil), nil
}

func (c *StatusCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty status file")
	}
	return c.decoder.DecodeAll(data, nil)
}

func (c *StatusCodec) Close() {
	_ = c.encoder.Close()
	c.decoder.Close()
}

func NewZstdCompressor() (interfaces.CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxDocumentSize),
	)
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &StatusCodec{encoder: encoder, decoder: decoder}, nil
}
