// Package wire reads protobuf wire-format primitives straight off a raw
// payload, without decoding the surrounding message. It exists for the
// raw-fallback extraction path, where only the leading bytes of the stream
// are ever touched.
package wire

import (
	"google.golang.org/protobuf/encoding/protowire"

	errspkg "github.com/drblury/protostamp/internal/runtime/errors"
)

// Decoder is a forward-only cursor over a serialized protobuf payload. The
// payload is not copied; callers must not mutate it while decoding.
type Decoder struct {
	buf []byte
	off int
}

// NewDecoder positions a cursor at the start of the payload.
func NewDecoder(payload []byte) *Decoder {
	return &Decoder{buf: payload}
}

// ReadUvarint decodes one base-128 varint at the cursor and advances past it.
// It fails with a DecodeError when the stream ends before a byte with the
// continuation bit clear (truncation) or when the encoding spans more than
// ten bytes (the value would not fit in 64 bits). Overflow is rejected, never
// wrapped or silently truncated.
func (d *Decoder) ReadUvarint() (uint64, error) {
	v, n := protowire.ConsumeVarint(d.buf[d.off:])
	if n < 0 {
		return 0, &errspkg.DecodeError{Op: "varint", Err: protowire.ParseError(n)}
	}
	d.off += n
	return v, nil
}

// SkipTag reads one field tag (field number plus wire type, itself a varint)
// and discards it. The tag is not inspected: raw-fallback extraction assumes
// the first field is a varint-encoded numeric and only needs the cursor moved
// past its tag. That assumption is the caller's precondition, not something
// this method verifies.
func (d *Decoder) SkipTag() error {
	_, n := protowire.ConsumeVarint(d.buf[d.off:])
	if n < 0 {
		return &errspkg.DecodeError{Op: "tag", Err: protowire.ParseError(n)}
	}
	d.off += n
	return nil
}

// Offset reports how many bytes have been consumed so far.
func (d *Decoder) Offset() int { return d.off }
