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


// Package search resolves free-text datapoint references and grounds
// chat answers in stored device state.
//
// The Resolver type implements a staged resolution algorithm over the
// readable datapoint set:
//   - Exact ID and alias lookups on the short device name
//   - Case-insensitive substring and word-overlap matching
//   - Vector similarity as a last resort, with literal name containment
//     preferred over raw proximity
//
// The Searcher type retrieves the states most relevant to a query and
// renders them as a recency-ordered context block for the chat model.
package search
