package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatState_Boolean(t *testing.T) {
	cfg := DatapointConfig{
		Description:       "Jemand ist",
		Location:          "Zuhause",
		DataType:          DataTypeBoolean,
		BooleanTrueValue:  "anwesend",
		BooleanFalseValue: "abwesend",
	}
	id := "zone1.presence.Anwesenheit"

	t.Run("true uses configured label", func(t *testing.T) {
		text := FormatState(id, cfg, true)
		assert.True(t, strings.HasPrefix(text, "Jemand ist anwesend (Zuhause)"), text)
		assert.Contains(t, text, "Anwesenheit")
		assert.Contains(t, text, id)
	})

	t.Run("false uses configured label", func(t *testing.T) {
		text := FormatState(id, cfg, false)
		assert.True(t, strings.HasPrefix(text, "Jemand ist abwesend (Zuhause)"), text)
	})

	t.Run("generic labels when unconfigured", func(t *testing.T) {
		plain := cfg
		plain.BooleanTrueValue = ""
		plain.BooleanFalseValue = ""
		assert.True(t, strings.HasPrefix(FormatState(id, plain, true), "Jemand ist true (Zuhause)"))
		assert.True(t, strings.HasPrefix(FormatState(id, plain, false), "Jemand ist false (Zuhause)"))
	})
}

func TestFormatState_Number(t *testing.T) {
	cfg := DatapointConfig{
		Description: "Zählerstand",
		Location:    "Zuhause",
		DataType:    DataTypeNumber,
		Units:       "l",
	}
	id := "zone1.water.Zaehlerstand"

	text := FormatState(id, cfg, 1250)
	assert.True(t, strings.HasPrefix(text, "Zählerstand: 1250l (Zuhause)"), text)

	t.Run("integral float renders without fraction", func(t *testing.T) {
		text := FormatState(id, cfg, float64(1250))
		assert.True(t, strings.HasPrefix(text, "Zählerstand: 1250l (Zuhause)"), text)
	})

	t.Run("fractional float keeps fraction", func(t *testing.T) {
		text := FormatState(id, cfg, 21.5)
		assert.True(t, strings.HasPrefix(text, "Zählerstand: 21.5l (Zuhause)"), text)
	})
}

func TestFormatState_Text(t *testing.T) {
	cfg := DatapointConfig{
		Description: "Status",
		Location:    "Flur",
		DataType:    DataTypeText,
	}
	id := "zone1.hallway.Status"

	t.Run("without additional text", func(t *testing.T) {
		text := FormatState(id, cfg, "offen")
		assert.True(t, strings.HasPrefix(text, "Status: offen (Flur)"), text)
	})

	t.Run("with additional text", func(t *testing.T) {
		extended := cfg
		extended.AdditionalText = "Haustür"
		text := FormatState(id, extended, "offen")
		assert.True(t, strings.HasPrefix(text, "Status: offen (Flur) - Haustür"), text)
	})

	t.Run("unknown data type falls back to text", func(t *testing.T) {
		unknown := cfg
		unknown.DataType = ""
		text := FormatState(id, unknown, "offen")
		assert.True(t, strings.HasPrefix(text, "Status: offen (Flur)"), text)
	})
}

func TestFormatState_AlwaysContainsDeviceAndID(t *testing.T) {
	ids := []string{
		"zone1.livingroom.Temperatur_Wohnzimmer",
		"single",
		"a.b",
	}
	for _, id := range ids {
		text := FormatState(id, DatapointConfig{Description: "d", DataType: DataTypeText}, "v")
		assert.Contains(t, text, DeviceName(id))
		assert.Contains(t, text, id)
	}
}

func TestTruthy(t *testing.T) {
	assert.True(t, Truthy(true))
	assert.True(t, Truthy("true"))
	assert.True(t, Truthy("on"))
	assert.True(t, Truthy(1))
	assert.True(t, Truthy(float64(2)))
	assert.False(t, Truthy(false))
	assert.False(t, Truthy("false"))
	assert.False(t, Truthy(0))
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(struct{}{}))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "1250", FormatValue(1250))
	assert.Equal(t, "1250", FormatValue(float64(1250)))
	assert.Equal(t, "21.5", FormatValue(21.5))
	assert.Equal(t, "true", FormatValue(true))
	assert.Equal(t, "offen", FormatValue("offen"))
	assert.Equal(t, "", FormatValue(nil))
}
