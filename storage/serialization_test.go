package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStampRoundTrip(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 30, 45, 123_000_000, time.UTC)

	data := MarshalStamp(at)
	restored, err := UnmarshalStamp(data)
	require.NoError(t, err)
	assert.True(t, at.Equal(restored), "expected %v, got %v", at, restored)
}

func TestUnmarshalStamp_Corrupt(t *testing.T) {
	_, err := UnmarshalStamp([]byte{0xff})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
