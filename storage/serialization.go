package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/varint"
)

// MarshalStamp serializes a write stamp to bytes as varint epoch-millis.
func MarshalStamp(at time.Time) []byte {
	millis := at.UnixMilli()
	buf := make([]byte, varint.Int64.Size(millis))
	varint.Int64.Marshal(millis, buf)
	return buf
}

// UnmarshalStamp deserializes a write stamp from bytes.
func UnmarshalStamp(data []byte) (time.Time, error) {
	millis, _, err := varint.Int64.Unmarshal(data)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return time.UnixMilli(millis), nil
}
