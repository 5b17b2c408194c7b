package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	t.Run("valid embedding config", func(t *testing.T) {
		cfg := DatapointConfig{Description: "Temperatur", DataType: DataTypeNumber, Embed: true}
		assert.NoError(t, ValidateConfig(cfg))
	})

	t.Run("embedding without description", func(t *testing.T) {
		cfg := DatapointConfig{DataType: DataTypeNumber, Embed: true}
		err := ValidateConfig(cfg)
		assert.ErrorIs(t, err, ErrConfigInvalid)
		assert.ErrorIs(t, err, ErrEmptyDescription)
	})

	t.Run("blank description counts as empty", func(t *testing.T) {
		cfg := DatapointConfig{Description: "   ", DataType: DataTypeText, Embed: true}
		assert.ErrorIs(t, ValidateConfig(cfg), ErrEmptyDescription)
	})

	t.Run("description not required without embedding", func(t *testing.T) {
		cfg := DatapointConfig{DataType: DataTypeBoolean}
		assert.NoError(t, ValidateConfig(cfg))
	})

	t.Run("unknown data type", func(t *testing.T) {
		cfg := DatapointConfig{Description: "d", DataType: "json", Embed: true}
		assert.ErrorIs(t, ValidateConfig(cfg), ErrInvalidDataType)
	})

	t.Run("empty data type allowed", func(t *testing.T) {
		cfg := DatapointConfig{Description: "d", Embed: true}
		assert.NoError(t, ValidateConfig(cfg))
	})
}

func TestValidateRecord(t *testing.T) {
	valid := func() *DatapointRecord {
		id := "zone1.livingroom.Temperatur"
		cfg := DatapointConfig{Description: "Temperatur", DataType: DataTypeNumber, Units: "°C"}
		return &DatapointRecord{
			Id:            PointID(id, time.Now()),
			DatapointID:   id,
			Timestamp:     time.Now().Add(-time.Second),
			Value:         21.5,
			FormattedText: FormatState(id, cfg, 21.5),
			Embedding:     []float32{0.1, 0.2},
			DeviceName:    DeviceName(id),
			DeviceChannel: DeviceChannel(id),
		}
	}

	t.Run("valid record", func(t *testing.T) {
		require.NoError(t, ValidateRecord(valid()))
	})

	t.Run("nil record", func(t *testing.T) {
		assert.ErrorIs(t, ValidateRecord(nil), ErrInvalidRecord)
	})

	t.Run("empty datapoint id", func(t *testing.T) {
		r := valid()
		r.DatapointID = ""
		assert.ErrorIs(t, ValidateRecord(r), ErrEmptyDatapointID)
	})

	t.Run("future timestamp", func(t *testing.T) {
		r := valid()
		r.Timestamp = time.Now().Add(time.Hour)
		assert.ErrorIs(t, ValidateRecord(r), ErrInvalidTimestamp)
	})

	t.Run("zero timestamp", func(t *testing.T) {
		r := valid()
		r.Timestamp = time.Time{}
		assert.ErrorIs(t, ValidateRecord(r), ErrInvalidTimestamp)
	})

	t.Run("missing embedding", func(t *testing.T) {
		r := valid()
		r.Embedding = nil
		assert.ErrorIs(t, ValidateRecord(r), ErrEmptyEmbedding)
	})

	t.Run("formatted text without datapoint id", func(t *testing.T) {
		r := valid()
		r.FormattedText = "Temperatur: 21.5°C (Wohnzimmer)"
		assert.ErrorIs(t, ValidateRecord(r), ErrInvalidRecord)
	})
}
