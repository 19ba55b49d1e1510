package util

import "encoding/json"

// EncoderDecoder serializes values at a storage boundary. Every persisted
// conversation context round-trips through one of these, so Encode and
// Decode must be exact inverses for any value the engine produces.
type EncoderDecoder[T any] interface {
	Encode(value T) ([]byte, error)
	Decode(data []byte) (*T, error)
}

// JsonEncDec backs every store with plain JSON; the blobs stay readable
// from redis-cli, which matters more here than compactness.
type JsonEncDec[T any] struct{}

var _ EncoderDecoder[any] = new(JsonEncDec[any])

func NewJsonEncoderDecoder[T any]() *JsonEncDec[T] {
	return &JsonEncDec[T]{}
}

func (ed *JsonEncDec[T]) Encode(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (ed *JsonEncDec[T]) Decode(data []byte) (*T, error) {
	value := new(T)
	if err := json.Unmarshal(data, value); err != nil {
		return nil, err
	}
	return value, nil
}
