package core

import (
	"fmt"
	"strings"
	"time"
)

// ValidateDataType checks that dt is one of the known data types.
// The empty string is allowed and treated as text by the formatter.
func ValidateDataType(dt DataType) error {
	switch dt {
	case DataTypeBoolean, DataTypeNumber, DataTypeText, "":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDataType, dt)
	}
}

// ValidateConfig validates a DatapointConfig for ingestion.
//
// Validation rules:
//   - DataType must be a known type (or empty, meaning text)
//   - Description must not be empty when embedding is enabled, since the
//     formatted text would otherwise carry no human-readable identity
//
// NOT validated:
//   - Location, Units, AdditionalText (optional display metadata)
//   - Boolean labels (generic "true"/"false" are substituted)
func ValidateConfig(cfg DatapointConfig) error {
	if err := ValidateDataType(cfg.DataType); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	if cfg.Embed && strings.TrimSpace(cfg.Description) == "" {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, ErrEmptyDescription)
	}
	return nil
}

// ValidateRecord validates a DatapointRecord before it is stored.
//
// Validation rules:
//   - DatapointID must not be empty
//   - Timestamp must not be in the future
//   - Embedding must not be empty
//   - FormattedText must contain both the device name and the full
//     datapoint ID, which guarantees lexical fallback recall
func ValidateRecord(record *DatapointRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}
	if record.DatapointID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyDatapointID)
	}
	if !IsValidTimestamp(record.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrInvalidTimestamp)
	}
	if len(record.Embedding) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyEmbedding)
	}
	if !strings.Contains(record.FormattedText, DeviceName(record.DatapointID)) ||
		!strings.Contains(record.FormattedText, record.DatapointID) {
		return fmt.Errorf("%w: formatted text must contain device name and datapoint id", ErrInvalidRecord)
	}
	return nil
}

// IsValidTimestamp checks that a timestamp is set and not in the future.
// A small tolerance absorbs clock skew between host and ingestion process.
func IsValidTimestamp(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return !ts.After(time.Now().Add(5 * time.Second))
}
