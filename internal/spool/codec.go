package spool

import "encoding/json"

// Codec converts items to and from their on-disk byte form. One encoded item
// occupies one spool file, so the file boundary is the record boundary and no
// internal framing is needed. Implementations must be safe for concurrent use.
type Codec[T any] interface {
	Marshal(item T) ([]byte, error)
	Unmarshal(data []byte) (T, error)
}

// JSONCodec encodes items with encoding/json, one document per file.
type JSONCodec[T any] struct{}

func (JSONCodec[T]) Marshal(item T) ([]byte, error) {
	return json.Marshal(item)
}

func (JSONCodec[T]) Unmarshal(data []byte) (T, error) {
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}
