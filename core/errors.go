// Copyright 2025 Bloop16
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Domain validation errors
var (
	// ErrConfigInvalid indicates a DatapointConfig is missing required metadata.
	ErrConfigInvalid = errors.New("invalid datapoint config")

	// ErrInvalidRecord indicates a DatapointRecord failed validation.
	ErrInvalidRecord = errors.New("invalid datapoint record")

	// ErrEmptyDatapointID indicates the datapoint ID is empty.
	ErrEmptyDatapointID = errors.New("datapoint id cannot be empty")

	// ErrInvalidDataType indicates an unknown DataType value.
	ErrInvalidDataType = errors.New("invalid data type")

	// ErrEmptyDescription indicates the Description field is empty.
	ErrEmptyDescription = errors.New("description cannot be empty")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrEmptyEmbedding indicates the record carries no embedding vector.
	ErrEmptyEmbedding = errors.New("embedding cannot be empty")
)
