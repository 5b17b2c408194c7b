package vectorstore

import (
	"time"

	"github.com/bloop16/homestate/core"
)

// Payload field keys. These are the wire names stored in the vector
// database; changing them orphans existing points.
const (
	KeyDatapointID       = "datapoint_id"
	KeyTimestamp         = "timestamp"
	KeyValue             = "value"
	KeyDescription       = "description"
	KeyLocation          = "location"
	KeyDataType          = "dataType"
	KeyFormattedText     = "formatted_text"
	KeyAllowAutoChange   = "allowAutoChange"
	KeyBooleanTrueValue  = "booleanTrueValue"
	KeyBooleanFalseValue = "booleanFalseValue"
	KeyDeviceName        = "deviceName"
	KeyDeviceChannel     = "deviceChannel"
)

// RecordPayload converts a record into the generic payload map stored
// alongside the point's vector.
func RecordPayload(record *core.DatapointRecord) map[string]any {
	return map[string]any{
		KeyDatapointID:       record.DatapointID,
		KeyTimestamp:         record.Timestamp.UTC().Format(core.TimestampLayout),
		KeyValue:             record.Value,
		KeyDescription:       record.Description,
		KeyLocation:          record.Location,
		KeyDataType:          string(record.DataType),
		KeyFormattedText:     record.FormattedText,
		KeyAllowAutoChange:   record.AllowAutoChange,
		KeyBooleanTrueValue:  record.BooleanTrueValue,
		KeyBooleanFalseValue: record.BooleanFalseValue,
		KeyDeviceName:        record.DeviceName,
		KeyDeviceChannel:     record.DeviceChannel,
	}
}

// PayloadRecord rebuilds a record from a stored payload map. The embedding
// is not part of the payload and stays empty; callers that need it fetch
// vectors explicitly.
func PayloadRecord(id core.ID, payload map[string]any) *core.DatapointRecord {
	record := &core.DatapointRecord{
		Id:                id,
		DatapointID:       stringField(payload, KeyDatapointID),
		Value:             payload[KeyValue],
		Description:       stringField(payload, KeyDescription),
		Location:          stringField(payload, KeyLocation),
		DataType:          core.DataType(stringField(payload, KeyDataType)),
		FormattedText:     stringField(payload, KeyFormattedText),
		AllowAutoChange:   boolField(payload, KeyAllowAutoChange),
		BooleanTrueValue:  stringField(payload, KeyBooleanTrueValue),
		BooleanFalseValue: stringField(payload, KeyBooleanFalseValue),
		DeviceName:        stringField(payload, KeyDeviceName),
		DeviceChannel:     stringField(payload, KeyDeviceChannel),
	}

	if raw := stringField(payload, KeyTimestamp); raw != "" {
		if ts, err := time.Parse(core.TimestampLayout, raw); err == nil {
			record.Timestamp = ts
		} else if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			record.Timestamp = ts
		}
	}

	return record
}

func stringField(payload map[string]any, key string) string {
	s, _ := payload[key].(string)
	return s
}

func boolField(payload map[string]any, key string) bool {
	b, _ := payload[key].(bool)
	return b
}
