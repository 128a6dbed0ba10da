package wide

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, input := range []string{"", "CID_V1:abc", "Zoë\x00SMTP\x00zoe@example.com", "日本語", "𝄞"} {
		encoded, err := Encode(input)
		if err != nil {
			t.Fatalf("encode %q: %v", input, err)
		}
		if len(encoded)%2 != 0 {
			t.Fatalf("expected even length for %q", input)
		}
		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatalf("decode %q: %v", input, err)
		}
		if decoded != input {
			t.Fatalf("expected %q, got %q", input, decoded)
		}
	}
}

func TestEncodeIsLittleEndianWithoutBOM(t *testing.T) {
	encoded, err := Encode("AB")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(encoded, []byte{'A', 0, 'B', 0}) {
		t.Fatalf("unexpected bytes % x", encoded)
	}
}

func TestDecodeRejectsOddLength(t *testing.T) {
	if _, err := Decode([]byte{'A', 0, 'B'}); err == nil {
		t.Fatalf("expected error for odd length")
	}
}
