package framing

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// testMessage is a minimal Encodable/Decodable implementation used to
// exercise the framing protocol without depending on any higher-level
// package's wire types.
type testMessage struct {
	payload []byte
}

func (m *testMessage) Size() int {
	return len(m.payload)
}

func (m *testMessage) MarshalTo(buffer []byte) (int, error) {
	return copy(buffer, m.payload), nil
}

func (m *testMessage) Unmarshal(buffer []byte) error {
	m.payload = append([]byte(nil), buffer...)
	return nil
}

func testFraming(t *testing.T, payload []byte) {
	transport := &bytes.Buffer{}

	encoder := NewEncoder(transport)
	if err := encoder.Encode(&testMessage{payload: payload}); err != nil {
		t.Fatal("unable to encode message:", err)
	}

	decoder := NewDecoder(transport)
	decoded := &testMessage{}
	if err := decoder.DecodeTo(decoded); err != nil {
		t.Fatal("unable to decode message:", err)
	}

	if !bytes.Equal(decoded.payload, payload) {
		t.Error("decoded message does not match original")
	}

	if transport.Len() > 0 {
		t.Error("framing did not leave transport clean")
	}
}

func TestFramingReusable(t *testing.T) {
	testFraming(t, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
}

func TestFramingNonReusable(t *testing.T) {
	testFraming(t, make([]byte, 2*reusableBufferSize))
}

func TestFramingTooLarge(t *testing.T) {
	transport := &bytes.Buffer{}

	encoder := NewEncoder(transport)
	message := &testMessage{payload: make([]byte, 2*maximumMessageSize)}
	if encoder.Encode(message) == nil {
		t.Fatal("encoding of message too large for framing should fail")
	}
}

func TestDecodingTooLarge(t *testing.T) {
	transport := &bytes.Buffer{}

	var bigSizeBytes [maximumMessageUvarintLength + 1]byte
	headerSize := binary.PutUvarint(bigSizeBytes[:], maximumMessageSize+1)
	transport.Write(bigSizeBytes[:headerSize])

	decoder := NewDecoder(transport)
	decoded := &testMessage{}
	if decoder.DecodeTo(decoded) == nil {
		t.Fatal("decoding of message too large for framing should fail")
	}
}

func TestMultipleMessagesInSequence(t *testing.T) {
	transport := &bytes.Buffer{}
	encoder := NewEncoder(transport)

	messages := [][]byte{
		[]byte("first"),
		[]byte("second"),
		make([]byte, 2*reusableBufferSize),
	}
	for _, payload := range messages {
		if err := encoder.Encode(&testMessage{payload: payload}); err != nil {
			t.Fatal("unable to encode message:", err)
		}
	}

	decoder := NewDecoder(transport)
	for i, want := range messages {
		decoded := &testMessage{}
		if err := decoder.DecodeTo(decoded); err != nil {
			t.Fatalf("unable to decode message %d: %v", i, err)
		}
		if !bytes.Equal(decoded.payload, want) {
			t.Errorf("message %d: decoded does not match original", i)
		}
	}
}
