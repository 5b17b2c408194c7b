package control

import "errors"

var (
	// ErrStateStoreRequired is returned when a state store is not provided.
	ErrStateStoreRequired = errors.New("state store required")

	// ErrResolverRequired is returned when a resolver is not provided.
	ErrResolverRequired = errors.New("resolver required")

	// ErrRegistryRequired is returned when a datapoint registry is not provided.
	ErrRegistryRequired = errors.New("datapoint registry required")

	// ErrUnknownDatapoint is returned when a reference resolves to nothing.
	ErrUnknownDatapoint = errors.New("unknown datapoint")

	// ErrNotWritable is returned when a resolved datapoint does not permit
	// automated changes.
	ErrNotWritable = errors.New("datapoint not writable")

	// ErrInvalidValue is returned when a value cannot be coerced to the
	// datapoint's type.
	ErrInvalidValue = errors.New("invalid value for datapoint")
)
