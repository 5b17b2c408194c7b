package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is the vector-store point identifier for a stored state record.
// It is derived from content so that re-ingesting the same (datapoint,
// timestamp) pair overwrites the existing point instead of duplicating it.
type ID uint64

// TimestampLayout is the wire format for record timestamps: RFC 3339 with
// millisecond precision. Point IDs hash this rendering, so two captures of
// the same datapoint within one millisecond collide and the last writer wins.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// PointID generates a deterministic point ID from a datapoint ID and the
// ingestion timestamp using BLAKE2b hashing.
func PointID(datapointID string, ts time.Time) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(datapointID))
	h.Write([]byte{'_'})
	h.Write([]byte(ts.UTC().Format(TimestampLayout)))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DataType classifies a datapoint's value and drives text formatting.
type DataType string

const (
	// DataTypeBoolean represents on/off style datapoints.
	DataTypeBoolean DataType = "boolean"
	// DataTypeNumber represents numeric sensor readings.
	DataTypeNumber DataType = "number"
	// DataTypeText represents free-form string values.
	DataTypeText DataType = "text"
)

// DatapointState is a point-in-time value reported by the host platform.
type DatapointState struct {
	Value     any
	Timestamp time.Time // The state's own timestamp, not the ingestion time
}

// DatapointConfig is the per-datapoint metadata supplied by the user.
// Embed and AllowAutoChange are independent flags: a datapoint can be
// readable for retrieval without being writable for control.
type DatapointConfig struct {
	Description       string
	Location          string
	DataType          DataType
	Embed             bool // Qualifying state changes are ingested
	AllowAutoChange   bool // Resolved writes may change the state
	BooleanTrueValue  string
	BooleanFalseValue string
	AdditionalText    string
	Units             string
}

// DatapointRecord is one stored vector-store point. Records are immutable
// once stored; a later state change produces a new record with a new
// timestamp and therefore a new ID.
type DatapointRecord struct {
	Id                ID
	DatapointID       string
	Timestamp         time.Time // Ingestion time
	Value             any       // bool, number, or string
	Description       string
	Location          string
	DataType          DataType
	FormattedText     string // The exact string that was embedded
	Embedding         []float32
	AllowAutoChange   bool
	BooleanTrueValue  string
	BooleanFalseValue string
	DeviceName        string
	DeviceChannel     string
}

// SearchResult is a record returned from similarity search with its score.
type SearchResult struct {
	Record *DatapointRecord
	Score  float32
}

// DeviceName returns the last segment of a dot-delimited datapoint ID.
func DeviceName(datapointID string) string {
	segments := strings.Split(datapointID, ".")
	return segments[len(segments)-1]
}

// DeviceChannel returns the second-to-last segment of a dot-delimited
// datapoint ID, or "" when the ID has a single segment.
func DeviceChannel(datapointID string) string {
	segments := strings.Split(datapointID, ".")
	if len(segments) < 2 {
		return ""
	}
	return segments[len(segments)-2]
}
