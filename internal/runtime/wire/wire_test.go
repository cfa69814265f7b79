package wire

import (
	"bytes"
	"errors"
	"testing"

	errspkg "github.com/drblury/protostamp/internal/runtime/errors"
)

func TestReadUvarint(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		want    uint64
	}{
		{"single byte", []byte{0x00}, 0},
		{"single byte max", []byte{0x7f}, 127},
		{"two bytes", []byte{0x80, 0x01}, 128},
		{"five bytes", []byte{0xb0, 0xea, 0xd9, 0xaf, 0x61}, 26138277168},
		{
			"max uint64",
			[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01},
			1<<64 - 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(tt.payload)
			got, err := d.ReadUvarint()
			if err != nil {
				t.Fatalf("ReadUvarint failed: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ReadUvarint = %d, want %d", got, tt.want)
			}
			if d.Offset() != len(tt.payload) {
				t.Fatalf("offset = %d, want %d", d.Offset(), len(tt.payload))
			}
		})
	}
}

func TestReadUvarintErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
	}{
		{"empty", nil},
		{"truncated single", []byte{0x80}},
		{"truncated multi", []byte{0xff, 0xff, 0xff}},
		{"overflow continuation past ten bytes", append(bytes.Repeat([]byte{0xff}, 10), 0x01)},
		{"overflow in tenth byte", append(bytes.Repeat([]byte{0xff}, 9), 0x02)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(tt.payload)
			_, err := d.ReadUvarint()
			var decodeErr *errspkg.DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected DecodeError, got %v", err)
			}
			if d.Offset() != 0 {
				t.Fatalf("failed read must not advance the cursor, offset = %d", d.Offset())
			}
		})
	}
}

func TestSkipTagThenRead(t *testing.T) {
	// Field 1, wire type varint, followed by the value.
	payload := []byte{0x08, 0xb0, 0xea, 0xd9, 0xaf, 0x61}

	d := NewDecoder(payload)
	if err := d.SkipTag(); err != nil {
		t.Fatalf("SkipTag failed: %v", err)
	}
	got, err := d.ReadUvarint()
	if err != nil {
		t.Fatalf("ReadUvarint failed: %v", err)
	}
	if got != 26138277168 {
		t.Fatalf("ReadUvarint = %d, want 26138277168", got)
	}
}

func TestSkipTagDoesNotValidate(t *testing.T) {
	// Field number 0 is not legal protobuf, but the skipper reads the tag
	// blindly and moves on.
	d := NewDecoder([]byte{0x00, 0x2a})
	if err := d.SkipTag(); err != nil {
		t.Fatalf("SkipTag failed: %v", err)
	}
	got, err := d.ReadUvarint()
	if err != nil {
		t.Fatalf("ReadUvarint failed: %v", err)
	}
	if got != 42 {
		t.Fatalf("ReadUvarint = %d, want 42", got)
	}
}

func TestSkipTagEmptyPayload(t *testing.T) {
	d := NewDecoder(nil)
	err := d.SkipTag()
	var decodeErr *errspkg.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}
