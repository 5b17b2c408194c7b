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


package search

import "errors"

var (
	// ErrRegistryRequired is returned when a datapoint registry is not provided.
	ErrRegistryRequired = errors.New("datapoint registry required")

	// ErrStoreRequired is returned when a vector store is not provided.
	ErrStoreRequired = errors.New("vector store required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrChatModelRequired is returned when a chat model is not provided.
	ErrChatModelRequired = errors.New("chat model required")

	// ErrEmptyQuery is returned for a blank query string.
	ErrEmptyQuery = errors.New("empty query")

	// ErrInvalidThreshold is returned for a score threshold outside [0, 1].
	ErrInvalidThreshold = errors.New("score threshold must be between 0 and 1")

	// ErrInvalidLimit is returned for a non-positive candidate limit.
	ErrInvalidLimit = errors.New("candidate limit must be positive")
)
