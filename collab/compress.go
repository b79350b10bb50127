package collab

import "github.com/klauspost/compress/zstd"

// encoder/decoder are process-wide: zstd's stateless EncodeAll/DecodeAll
// calls are safe for concurrent use, and a fresh encoder per message would
// throw away its dictionary warm-up.
var (
	encoder, _ = zstd.NewWriter(nil)
	decoder, _ = zstd.NewReader(nil)
)

// compressPayload compresses a wire Action before it is written to a
// socket.
func compressPayload(b []byte) []byte {
	return encoder.EncodeAll(b, make([]byte, 0, len(b)))
}

// decompressPayload reverses compressPayload.
func decompressPayload(b []byte) ([]byte, error) {
	return decoder.DecodeAll(b, nil)
}
